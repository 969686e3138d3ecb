package dfax

import (
	"context"
	"fmt"
	"strings"
)

type completeConfig struct {
	maxAttempts int
	observer    func(Pair, State)
}

// CompleteOption configures Complete.
type CompleteOption func(*completeConfig)

// WithMaxAttempts bounds the number of target prompts per transition.
// Zero, the default, keeps asking until an answer resolves the transition.
func WithMaxAttempts(n int) CompleteOption {
	return func(c *completeConfig) {
		c.maxAttempts = n
	}
}

// WithObserver is called after every transition Complete records.
func WithObserver(fn func(Pair, State)) CompleteOption {
	return func(c *completeConfig) {
		c.observer = fn
	}
}

// Complete fills in Delta until it is total over K×Σ, asking for the target
// of every missing transition.
//
// States are visited from a FIFO queue seeded with K. Naming an unknown target
// offers to create it: "yes" appends it to K and to the tail of the queue,
// "front" appends it to K and to the head of the queue so its own transitions
// are completed next. Any other answer asks for the same transition again.
func Complete(ctx context.Context, a *Automaton, asker Asker, opts ...CompleteOption) error {
	cfg := completeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	queue := a.States()
	for len(queue) > 0 {
		q := queue[0]
		queue = queue[1:]
		if !a.HasState(q) {
			continue
		}

		for _, c := range a.Alphabet() {
			if _, ok := a.Transition(q, c); ok {
				continue
			}
			target, front, err := resolveTarget(ctx, a, asker, Pair{State: q, Symbol: c}, cfg.maxAttempts)
			if err != nil {
				return err
			}
			if a.addState(target) {
				if front {
					queue = append([]State{target}, queue...)
				} else {
					queue = append(queue, target)
				}
			}
			a.setTransition(q, c, target)
			if cfg.observer != nil {
				cfg.observer(Pair{State: q, Symbol: c}, target)
			}
		}
	}
	return nil
}

// resolveTarget prompts until the answer names an existing state or an
// accepted new one. front reports a new state that goes to the queue head.
func resolveTarget(ctx context.Context, a *Automaton, asker Asker, p Pair, maxAttempts int) (State, bool, error) {
	for attempt := 1; ; attempt++ {
		if maxAttempts > 0 && attempt > maxAttempts {
			return NoState, false, fmt.Errorf("%w: δ(%s, %s) unresolved after %d prompts", ErrTooManyAttempts, p.State, p.Symbol, maxAttempts)
		}

		answer, err := asker.Ask(ctx, fmt.Sprintf("δ(%s, %s) = ", p.State, p.Symbol))
		if err != nil {
			return NoState, false, fmt.Errorf("δ(%s, %s): %w", p.State, p.Symbol, err)
		}
		target := State(strings.TrimSpace(answer))
		if target == NoState {
			continue
		}
		if a.HasState(target) {
			return target, false, nil
		}

		answer, err = asker.Ask(ctx, string(target)+" does not exist. Create it?\n[y]es/[n]o/[f]ront: ")
		if err != nil {
			return NoState, false, fmt.Errorf("δ(%s, %s): %w", p.State, p.Symbol, err)
		}
		switch {
		case isYes(answer):
			return target, false, nil
		case isFront(answer):
			return target, true, nil
		}
	}
}
