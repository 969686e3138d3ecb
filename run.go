package dfax

import (
	"context"
	"fmt"
)

// Verdict is the outcome of a run.
type Verdict int

const (
	Rejected Verdict = iota
	Accepted
)

func (v Verdict) String() string {
	if v == Accepted {
		return "accepted"
	}
	return "rejected"
}

// Step is one transition surfaced to a stepper before it is applied.
type Step struct {
	Index  int
	From   State
	Symbol Symbol
	To     State
}

// StepDecision tells Run whether to apply a step.
type StepDecision int

const (
	Continue StepDecision = iota
	Quit
)

// StepFunc is called before every transition in step mode.
type StepFunc func(ctx context.Context, step Step) (StepDecision, error)

// Result of a run. Path holds s followed by every state entered.
type Result struct {
	Verdict Verdict
	Final   State
	Path    []State
	Quit    bool
}

func (r Result) Accepted() bool {
	return r.Verdict == Accepted
}

type runConfig struct {
	stepper StepFunc
}

// RunOption configures Run.
type RunOption func(*runConfig)

// WithStepper enables step mode.
func WithStepper(fn StepFunc) RunOption {
	return func(c *runConfig) {
		c.stepper = fn
	}
}

// Run evaluates word from the start state. The word is checked against Σ
// first, then the automaton against IsValid, before any symbol is consumed.
// On Quit the pending transition is not applied and the verdict is taken at
// the current state. Run does not modify the automaton.
func (a *Automaton) Run(ctx context.Context, word string, opts ...RunOption) (Result, error) {
	cfg := runConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	symbols := []Symbol{}
	for i, r := range []rune(word) {
		c := Symbol(r)
		if !a.HasSymbol(c) {
			return Result{}, fmt.Errorf("%w: symbol %q at position %d not in alphabet", ErrInvalidWord, r, i)
		}
		symbols = append(symbols, c)
	}

	if err := a.Validate(); err != nil {
		return Result{}, err
	}

	current := a.start
	res := Result{Path: []State{current}}
	for i, c := range symbols {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		target, ok := a.Transition(current, c)
		if !ok {
			return Result{}, fmt.Errorf("%w: no transition from %q on %q", ErrIncompleteTransition, current, c)
		}

		if cfg.stepper != nil {
			decision, err := cfg.stepper(ctx, Step{Index: i, From: current, Symbol: c, To: target})
			if err != nil {
				return Result{}, err
			}
			if decision == Quit {
				res.Quit = true
				break
			}
		}

		current = target
		res.Path = append(res.Path, current)
	}

	res.Final = current
	if a.IsFinal(current) {
		res.Verdict = Accepted
	}
	return res, nil
}
