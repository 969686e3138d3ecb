package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/dgraph-io/badger/v4"

	"github.com/comalice/dfax"
)

// Store is a dfax.Persister that keeps the latest snapshot of every
// automaton plus a bounded history of earlier versions.
//
// Keys:
//
//	<prefix>automaton:<name>             latest snapshot
//	<prefix>version:<name>:<version>     historical snapshot
type Store struct {
	db          *badger.DB
	keyPrefix   string
	maxVersions int
}

// VersionInfo describes one stored version.
type VersionInfo struct {
	Version  string
	Snapshot dfax.Snapshot
}

// NewStore opens a store with the given configuration.
func NewStore(cfg Config, opts ...Option) (*Store, error) {
	for _, opt := range opts {
		opt(&cfg)
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:          db,
		keyPrefix:   cfg.KeyPrefix,
		maxVersions: cfg.MaxVersions,
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) latestKey(name string) []byte {
	return []byte(s.keyPrefix + "automaton:" + name)
}

func (s *Store) versionPrefix(name string) []byte {
	return []byte(s.keyPrefix + "version:" + name + ":")
}

// Save stores snap as the latest version of snap.Name and appends it to the
// history.
func (s *Store) Save(ctx context.Context, snap dfax.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if snap.Name == "" {
		return errors.New("badger: snapshot name is required")
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	version := dfax.ComputeVersion(snap)

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(s.latestKey(snap.Name), data); err != nil {
			return err
		}
		return txn.Set(append(s.versionPrefix(snap.Name), version...), data)
	})
	if err != nil {
		return fmt.Errorf("badger: save %q: %w", snap.Name, err)
	}

	return s.prune(snap.Name)
}

// Load returns the latest snapshot of name.
func (s *Store) Load(ctx context.Context, name string) (dfax.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return dfax.Snapshot{}, err
	}

	var snap dfax.Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(s.latestKey(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return dfax.Snapshot{}, fmt.Errorf("%w: %q: %w", ErrNotFound, name, os.ErrNotExist)
	}
	if err != nil {
		return dfax.Snapshot{}, fmt.Errorf("badger: load %q: %w", name, err)
	}
	snap.Name = name
	return snap, nil
}

// Versions returns the stored history of name, newest first.
func (s *Store) Versions(ctx context.Context, name string) ([]VersionInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefix := s.versionPrefix(name)
	var out []VersionInfo
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{Prefix: prefix, PrefetchValues: true, PrefetchSize: 16})
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			info := VersionInfo{Version: string(item.Key()[len(prefix):])}
			if err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &info.Snapshot)
			}); err != nil {
				return err
			}
			out = append(out, info)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("badger: versions %q: %w", name, err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Snapshot.Timestamp.After(out[j].Snapshot.Timestamp)
	})
	return out, nil
}

// Restore makes the given version the latest snapshot again.
func (s *Store) Restore(ctx context.Context, name, version string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := append(s.versionPrefix(name), version...)
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		data, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		return txn.Set(s.latestKey(name), data)
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return fmt.Errorf("%w: %q version %q", ErrNotFound, name, version)
	}
	if err != nil {
		return fmt.Errorf("badger: restore %q: %w", name, err)
	}
	return nil
}

// prune drops the oldest versions beyond maxVersions.
func (s *Store) prune(name string) error {
	if s.maxVersions <= 0 {
		return nil
	}
	versions, err := s.Versions(context.Background(), name)
	if err != nil {
		return err
	}
	if len(versions) <= s.maxVersions {
		return nil
	}

	return s.db.Update(func(txn *badger.Txn) error {
		for _, v := range versions[s.maxVersions:] {
			if err := txn.Delete(append(s.versionPrefix(name), v.Version...)); err != nil {
				return err
			}
		}
		return nil
	})
}
