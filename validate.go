package dfax

import "fmt"

// IsValid reports whether the automaton is ready to run:
// K, Σ and F are non-empty, s is in K and F is a subset of K.
// Totality of Delta is not part of validity; see IsComplete.
func (a *Automaton) IsValid() bool {
	return a.Validate() == nil
}

// Validate returns the first failed validity clause wrapped in
// ErrInvalidAutomaton, or nil.
func (a *Automaton) Validate() error {
	if len(a.states) == 0 {
		return fmt.Errorf("%w: no states", ErrInvalidAutomaton)
	}
	if len(a.alphabet) == 0 {
		return fmt.Errorf("%w: empty alphabet", ErrInvalidAutomaton)
	}
	if a.start == NoState {
		return fmt.Errorf("%w: start state not set", ErrInvalidAutomaton)
	}
	if !a.HasState(a.start) {
		return fmt.Errorf("%w: start state %q not in states", ErrInvalidAutomaton, a.start)
	}
	if len(a.final) == 0 {
		return fmt.Errorf("%w: no accepting states", ErrInvalidAutomaton)
	}
	for _, q := range a.final {
		if !a.HasState(q) {
			return fmt.Errorf("%w: accepting state %q not in states", ErrInvalidAutomaton, q)
		}
	}
	return nil
}
