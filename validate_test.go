package dfax_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/comalice/dfax"
)

func TestValidate(t *testing.T) {
	ctx := context.Background()

	valid := func() *Automaton {
		a := New()
		a.AddStates(states("A", "B"))
		a.AddSymbols(symbols("0"))
		_ = a.SetStart(ctx, "A", refuse(t))
		_ = a.AddFinal(ctx, states("B"), refuse(t))
		return a
	}

	tests := []struct {
		name   string
		mutate func(a *Automaton)
		valid  bool
	}{
		{"valid", func(a *Automaton) {}, true},
		{"no states", func(a *Automaton) { a.SetStates(nil) }, false},
		{"no alphabet", func(a *Automaton) { a.SetAlphabet(nil) }, false},
		{"start removed", func(a *Automaton) { a.RemoveState("A") }, false},
		{"no accepting", func(a *Automaton) { a.RemoveFinal(states("B")) }, false},
		{"accepting removed", func(a *Automaton) { a.RemoveState("B") }, false},
		{"incomplete table is still valid", func(a *Automaton) { a.AddSymbols(symbols("1")) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := valid()
			tt.mutate(a)
			if got := a.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
			err := a.Validate()
			if tt.valid && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
			if !tt.valid && !errors.Is(err, ErrInvalidAutomaton) {
				t.Errorf("Validate() = %v, want ErrInvalidAutomaton", err)
			}
		})
	}
}

func TestValidateAcceptingOutsideStates(t *testing.T) {
	a, err := FromSnapshot(Snapshot{
		K:     []string{"A"},
		Sigma: []string{"0"},
		S:     "A",
		F:     []string{"A", "ghost"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if a.IsValid() {
		t.Error("IsValid() = true with F not a subset of K")
	}
}
