package dfax

import "context"

// Asker is the human-input capability. Ask blocks until an answer is given.
type Asker interface {
	Ask(ctx context.Context, prompt string) (string, error)
}

// AskFunc adapts a function to Asker.
type AskFunc func(ctx context.Context, prompt string) (string, error)

func (f AskFunc) Ask(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Answer vocabularies. Comparison is case-sensitive.

func isYes(answer string) bool {
	return answer == "yes" || answer == "y"
}

func isAdd(answer string) bool {
	return answer == "add" || answer == "a"
}

func isFront(answer string) bool {
	return answer == "front" || answer == "f"
}

// IsQuit reports whether answer asks to stop a stepped run.
func IsQuit(answer string) bool {
	return answer == "quit" || answer == "q"
}
