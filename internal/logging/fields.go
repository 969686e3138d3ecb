package logging

import (
	"github.com/felixgeelhaar/bolt/v3"

	"github.com/comalice/dfax"
)

// Field is a function that applies structured data to a log event.
type Field func(*bolt.Event) *bolt.Event

// Automaton adds the automaton name.
func Automaton(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("automaton", name)
	}
}

// Command adds the CLI command path.
func Command(path string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("command", path)
	}
}

// State adds a state field.
func State(q dfax.State) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("state", string(q))
	}
}

// Step adds the fields of one executed transition.
func Step(s dfax.Step) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("index", s.Index).
			Str("from_state", string(s.From)).
			Str("symbol", s.Symbol.String()).
			Str("to_state", string(s.To))
	}
}

// Word adds the input word.
func Word(w string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("word", w)
	}
}

// Accepted adds a run verdict.
func Accepted(ok bool) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Bool("accepted", ok)
	}
}

// Counts adds the sizes of K, Σ and F.
func Counts(a *dfax.Automaton) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Int("states", len(a.States())).
			Int("symbols", len(a.Alphabet())).
			Int("accepting", len(a.Final())).
			Bool("valid", a.IsValid())
	}
}

// Backend adds the storage backend name.
func Backend(name string) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Str("backend", name)
	}
}

// Err adds an error field.
func Err(err error) Field {
	return func(e *bolt.Event) *bolt.Event {
		return e.Err(err)
	}
}
