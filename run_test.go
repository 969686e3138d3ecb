package dfax_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/comalice/dfax"
)

func TestRunScenarios(t *testing.T) {
	a := exampleDFA(t)
	ctx := context.Background()

	tests := []struct {
		word    string
		path    []State
		verdict Verdict
	}{
		{"ab", states("q0", "q1", "q0"), Rejected},
		{"aab", states("q0", "q1", "q1", "q0"), Rejected},
		{"a", states("q0", "q1"), Accepted},
		{"", states("q0"), Rejected},
	}

	for _, tt := range tests {
		res, err := a.Run(ctx, tt.word)
		if err != nil {
			t.Fatalf("Run(%q): %v", tt.word, err)
		}
		if res.Verdict != tt.verdict {
			t.Errorf("Run(%q) = %v, want %v", tt.word, res.Verdict, tt.verdict)
		}
		if !equalStates(res.Path, tt.path) {
			t.Errorf("Run(%q) path = %v, want %v", tt.word, res.Path, tt.path)
		}
		if res.Final != tt.path[len(tt.path)-1] {
			t.Errorf("Run(%q) final = %q, want %q", tt.word, res.Final, tt.path[len(tt.path)-1])
		}
	}
}

func TestRunEmptyWordAcceptedWhenStartIsFinal(t *testing.T) {
	a := exampleDFA(t)
	_ = a.AddFinal(context.Background(), states("q0"), refuse(t))

	res, err := a.Run(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if !res.Accepted() {
		t.Error("empty word rejected although s is in F")
	}
}

func TestRunInvalidWord(t *testing.T) {
	ctx := context.Background()

	if _, err := exampleDFA(t).Run(ctx, "abc"); !errors.Is(err, ErrInvalidWord) {
		t.Errorf("err = %v, want ErrInvalidWord", err)
	}

	// Word errors win over automaton errors.
	empty := New()
	empty.AddSymbols(symbols("a"))
	if _, err := empty.Run(ctx, "ax"); !errors.Is(err, ErrInvalidWord) {
		t.Errorf("err = %v, want ErrInvalidWord on invalid automaton", err)
	}
}

func TestRunInvalidAutomaton(t *testing.T) {
	a := exampleDFA(t)
	a.RemoveFinal(states("q1"))

	called := false
	stepper := WithStepper(func(ctx context.Context, s Step) (StepDecision, error) {
		called = true
		return Continue, nil
	})
	if _, err := a.Run(context.Background(), "a", stepper); !errors.Is(err, ErrInvalidAutomaton) {
		t.Errorf("err = %v, want ErrInvalidAutomaton", err)
	}
	if called {
		t.Error("symbol processed before validity check")
	}
}

func TestRunIncompleteTransition(t *testing.T) {
	a := exampleDFA(t)
	a.RemoveTransition("q1", 'b')

	_, err := a.Run(context.Background(), "ab")
	if !errors.Is(err, ErrIncompleteTransition) {
		t.Errorf("err = %v, want ErrIncompleteTransition", err)
	}
	if !a.IsValid() {
		t.Error("run changed automaton validity")
	}
}

func TestRunStepMode(t *testing.T) {
	a := exampleDFA(t)

	var steps []Step
	res, err := a.Run(context.Background(), "ab", WithStepper(func(ctx context.Context, s Step) (StepDecision, error) {
		steps = append(steps, s)
		return Continue, nil
	}))
	if err != nil {
		t.Fatal(err)
	}

	want := []Step{
		{Index: 0, From: "q0", Symbol: 'a', To: "q1"},
		{Index: 1, From: "q1", Symbol: 'b', To: "q0"},
	}
	if len(steps) != len(want) {
		t.Fatalf("got %d steps, want %d", len(steps), len(want))
	}
	for i := range want {
		if steps[i] != want[i] {
			t.Errorf("step %d = %+v, want %+v", i, steps[i], want[i])
		}
	}
	if res.Accepted() || res.Quit {
		t.Errorf("result = %+v, want rejected without quit", res)
	}
}

func TestRunStepQuit(t *testing.T) {
	a := exampleDFA(t)

	// Quit before the second transition leaves the run in q1, which accepts.
	res, err := a.Run(context.Background(), "ab", WithStepper(func(ctx context.Context, s Step) (StepDecision, error) {
		if s.Index == 1 {
			return Quit, nil
		}
		return Continue, nil
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.Quit {
		t.Error("Quit = false, want true")
	}
	if res.Final != "q1" || !res.Accepted() {
		t.Errorf("result = %+v, want accepted in q1", res)
	}
}

func TestRunStepperError(t *testing.T) {
	boom := errors.New("boom")
	_, err := exampleDFA(t).Run(context.Background(), "a", WithStepper(func(ctx context.Context, s Step) (StepDecision, error) {
		return Continue, boom
	}))
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want %v", err, boom)
	}
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := exampleDFA(t).Run(ctx, "a"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	// The empty word consumes no symbols, so there is no boundary to check.
	if _, err := exampleDFA(t).Run(ctx, ""); err != nil {
		t.Errorf("empty word: err = %v, want nil", err)
	}
}
