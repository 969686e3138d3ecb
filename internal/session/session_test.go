package session

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"

	"github.com/comalice/dfax"
	"github.com/comalice/dfax/internal/logging"
)

// memStore is an in-memory dfax.Persister that counts saves.
type memStore struct {
	snaps   map[string]dfax.Snapshot
	saves   int
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{snaps: map[string]dfax.Snapshot{}}
}

func (m *memStore) Save(ctx context.Context, snap dfax.Snapshot) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.snaps[snap.Name] = snap
	return nil
}

func (m *memStore) Load(ctx context.Context, name string) (dfax.Snapshot, error) {
	snap, ok := m.snaps[name]
	if !ok {
		return dfax.Snapshot{}, os.ErrNotExist
	}
	return snap, nil
}

func testLog(buf *bytes.Buffer) logging.Config {
	return logging.Config{Level: "debug", Format: "json", Output: buf}
}

func TestOpenMissingStartsEmpty(t *testing.T) {
	var buf bytes.Buffer
	s := Open(context.Background(), newMemStore(), "m", logging.New(testLog(&buf)))

	if got := len(s.Automaton().States()); got != 0 {
		t.Errorf("len(States()) = %d, want 0", got)
	}
	if !bytes.Contains(buf.Bytes(), []byte("starting empty automaton")) {
		t.Errorf("load failure not logged: %s", buf.String())
	}
}

func TestOpenMalformedStartsEmpty(t *testing.T) {
	store := newMemStore()
	store.snaps["m"] = dfax.Snapshot{Name: "m", K: []string{"A"}, Sigma: []string{"too long"}}

	s := Open(context.Background(), store, "m", logging.New(logging.Config{Level: "error"}))
	if s.Automaton().HasState("A") {
		t.Error("malformed snapshot partially loaded")
	}
}

func TestApplyPersists(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	log := logging.New(logging.Config{Level: "error"})

	s := Open(ctx, store, "m", log)
	err := s.Apply(ctx, func(a *dfax.Automaton) error {
		a.AddStates([]dfax.State{"A", "B"})
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1", store.saves)
	}

	reopened := Open(ctx, store, "m", log)
	if !reopened.Automaton().HasState("B") {
		t.Error("mutation not visible after reopen")
	}
}

func TestApplyFailureRollsBack(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()
	s := Open(ctx, store, "m", logging.New(logging.Config{Level: "error"}))
	_ = s.Apply(ctx, func(a *dfax.Automaton) error {
		a.AddStates([]dfax.State{"A"})
		return nil
	})

	boom := errors.New("boom")
	err := s.Apply(ctx, func(a *dfax.Automaton) error {
		a.AddStates([]dfax.State{"B"})
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if store.saves != 1 {
		t.Errorf("saves = %d, want 1 (no save on failure)", store.saves)
	}
	if s.Automaton().HasState("B") {
		t.Error("failed mutation not rolled back")
	}
	if !s.Automaton().HasState("A") {
		t.Error("rollback lost earlier state")
	}
}

func TestSaveError(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("disk full")
	var buf bytes.Buffer

	s := Open(context.Background(), store, "m", logging.New(testLog(&buf)))
	err := s.Apply(context.Background(), func(a *dfax.Automaton) error { return nil })
	if !errors.Is(err, store.saveErr) {
		t.Errorf("err = %v, want %v", err, store.saveErr)
	}
	if !bytes.Contains(buf.Bytes(), []byte("save failed")) {
		t.Errorf("save failure not logged: %s", buf.String())
	}
}
