package dfax_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/comalice/dfax"
)

var errScriptExhausted = errors.New("script exhausted")

// scriptAsker answers prompts from a fixed list and records every prompt.
type scriptAsker struct {
	answers []string
	prompts []string
}

func (s *scriptAsker) Ask(ctx context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.answers) == 0 {
		return "", errScriptExhausted
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

// refuse fails the test if it is ever consulted.
func refuse(t *testing.T) Asker {
	t.Helper()
	return AskFunc(func(ctx context.Context, prompt string) (string, error) {
		t.Fatalf("unexpected prompt %q", prompt)
		return "", nil
	})
}

func states(names ...string) []State {
	out := make([]State, len(names))
	for i, n := range names {
		out[i] = State(n)
	}
	return out
}

func symbols(s string) []Symbol {
	var out []Symbol
	for _, r := range s {
		out = append(out, Symbol(r))
	}
	return out
}

func equalStates(a, b []State) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// exampleDFA accepts words over {a,b} that end in a.
func exampleDFA(t *testing.T) *Automaton {
	t.Helper()
	a, err := NewBuilder("q0").
		State("q0").On("a", "q1").On("b", "q0").
		State("q1").On("a", "q1").On("b", "q0").Accepting().
		Build()
	if err != nil {
		t.Fatal(err)
	}
	return a
}
