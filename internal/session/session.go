// Package session owns one automaton for the duration of one edit: it loads
// it, applies a mutation and persists the result only if the mutation
// succeeded.
package session

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/bolt/v3"

	"github.com/comalice/dfax"
	"github.com/comalice/dfax/internal/logging"
)

// Session binds an automaton to its name and store.
type Session struct {
	name  string
	store dfax.Persister
	log   *bolt.Logger
	a     *dfax.Automaton
}

// Open loads the named automaton. Any load failure, including a missing or
// unreadable record, yields a fresh empty automaton.
func Open(ctx context.Context, store dfax.Persister, name string, log *bolt.Logger) *Session {
	s := &Session{name: name, store: store, log: log}

	snap, err := store.Load(ctx, name)
	if err != nil {
		logging.NewEvent(log.Debug()).Add(logging.Automaton(name)).Add(logging.Err(err)).
			Msg("load failed, starting empty automaton")
		s.a = dfax.New()
		return s
	}

	a, err := dfax.FromSnapshot(snap)
	if err != nil {
		logging.NewEvent(log.Warn()).Add(logging.Automaton(name)).Add(logging.Err(err)).
			Msg("stored automaton is malformed, starting empty automaton")
		s.a = dfax.New()
		return s
	}

	logging.NewEvent(log.Debug()).Add(logging.Automaton(name)).Add(logging.Counts(a)).Msg("automaton loaded")
	s.a = a
	return s
}

func (s *Session) Name() string {
	return s.name
}

// Automaton returns the owned automaton for read access.
func (s *Session) Automaton() *dfax.Automaton {
	return s.a
}

// Apply runs fn against the automaton and saves the result. If fn fails the
// automaton is rolled back and nothing is saved.
func (s *Session) Apply(ctx context.Context, fn func(a *dfax.Automaton) error) error {
	before := s.a.Snapshot(s.name)
	if err := fn(s.a); err != nil {
		restored, rerr := dfax.FromSnapshot(before)
		if rerr == nil {
			s.a = restored
		}
		return err
	}
	return s.Save(ctx)
}

// Save persists the automaton as it is.
func (s *Session) Save(ctx context.Context) error {
	if err := s.store.Save(ctx, s.a.Snapshot(s.name)); err != nil {
		logging.NewEvent(s.log.Error()).Add(logging.Automaton(s.name)).Add(logging.Err(err)).Msg("save failed")
		return fmt.Errorf("save %s: %w", s.name, err)
	}
	logging.NewEvent(s.log.Debug()).Add(logging.Automaton(s.name)).Add(logging.Counts(s.a)).Msg("automaton saved")
	return nil
}
