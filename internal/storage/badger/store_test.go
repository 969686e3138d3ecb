package badger_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/comalice/dfax"
	"github.com/comalice/dfax/internal/storage/badger"
)

func newTestStore(t *testing.T, opts ...badger.Option) *badger.Store {
	t.Helper()
	s, err := badger.NewStore(badger.DefaultConfig(), append([]badger.Option{badger.WithInMemory()}, opts...)...)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func parity(t *testing.T) *dfax.Automaton {
	t.Helper()
	a, err := dfax.NewBuilder("even").
		State("even").On("1", "odd").On("0", "even").Accepting().
		State("odd").On("1", "even").On("0", "odd").
		Build()
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestStore_SaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, parity(t).Snapshot("parity")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	snap, err := s.Load(ctx, "parity")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	a, err := dfax.FromSnapshot(snap)
	if err != nil {
		t.Fatal(err)
	}
	res, err := a.Run(ctx, "1011")
	if err != nil {
		t.Fatal(err)
	}
	if res.Accepted() {
		t.Error("1011 has three ones, want rejected")
	}
}

func TestStore_LoadMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background(), "nope")
	if !errors.Is(err, badger.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestStore_SaveRequiresName(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(context.Background(), parity(t).Snapshot("")); err == nil {
		t.Error("expected error for unnamed snapshot")
	}
}

func TestStore_VersionsAndRestore(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := parity(t)
	first := a.Snapshot("parity")
	if err := s.Save(ctx, first); err != nil {
		t.Fatal(err)
	}

	a.RemoveState("odd")
	second := a.Snapshot("parity")
	second.Timestamp = first.Timestamp.Add(time.Second)
	if err := s.Save(ctx, second); err != nil {
		t.Fatal(err)
	}

	versions, err := s.Versions(ctx, "parity")
	if err != nil {
		t.Fatal(err)
	}
	if len(versions) != 2 {
		t.Fatalf("len(Versions) = %d, want 2", len(versions))
	}
	if got := len(versions[0].Snapshot.K); got != 1 {
		t.Errorf("newest version has %d states, want 1", got)
	}

	if err := s.Restore(ctx, "parity", versions[1].Version); err != nil {
		t.Fatal(err)
	}
	snap, err := s.Load(ctx, "parity")
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.K) != 2 {
		t.Errorf("restored K = %v, want both states", snap.K)
	}

	if err := s.Restore(ctx, "parity", "bogus"); !errors.Is(err, badger.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStore_MaxVersions(t *testing.T) {
	s := newTestStore(t, badger.WithMaxVersions(2))
	ctx := context.Background()

	a := parity(t)
	base := time.Now().UTC()
	for i, sym := range []dfax.Symbol{'x', 'y', 'z'} {
		a.AddSymbols([]dfax.Symbol{sym})
		snap := a.Snapshot("parity")
		snap.Timestamp = base.Add(time.Duration(i) * time.Second)
		if err := s.Save(ctx, snap); err != nil {
			t.Fatal(err)
		}
	}

	versions, err := s.Versions(ctx, "parity")
	if err != nil {
		t.Fatal(err)
	}
	if len(versions) != 2 {
		t.Fatalf("len(Versions) = %d, want 2", len(versions))
	}
	if got := len(versions[1].Snapshot.Sigma); got != 4 {
		t.Errorf("oldest kept version has %d symbols, want 4", got)
	}
}

func TestStore_KeyPrefixIsolation(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t, badger.WithKeyPrefix("tenant-a/"))

	if err := s.Save(ctx, parity(t).Snapshot("parity")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(ctx, "parity"); err != nil {
		t.Errorf("Load with same prefix failed: %v", err)
	}
}

func TestStore_CancelledContext(t *testing.T) {
	s := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Save(ctx, parity(t).Snapshot("parity")); !errors.Is(err, context.Canceled) {
		t.Errorf("Save err = %v, want context.Canceled", err)
	}
	if _, err := s.Load(ctx, "parity"); !errors.Is(err, context.Canceled) {
		t.Errorf("Load err = %v, want context.Canceled", err)
	}
}
