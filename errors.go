package dfax

import "errors"

var (
	// ErrInvalidAutomaton is returned by Run when the automaton fails IsValid.
	ErrInvalidAutomaton = errors.New("invalid automaton")

	// ErrInvalidWord is returned by Run when the word has a symbol outside Σ.
	ErrInvalidWord = errors.New("invalid word")

	// ErrIncompleteTransition is returned by Run when Delta has no entry for
	// the current state and symbol.
	ErrIncompleteTransition = errors.New("incomplete transition table")

	ErrUnknownState  = errors.New("unknown state")
	ErrUnknownSymbol = errors.New("unknown symbol")

	// ErrTooManyAttempts is returned by Complete when a bounded number of
	// prompts did not resolve a transition.
	ErrTooManyAttempts = errors.New("too many attempts")

	ErrMalformedSnapshot = errors.New("malformed snapshot")
)
