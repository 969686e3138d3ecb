package dfax

import "fmt"

// Builder provides a fluent API for constructing automata in code, without
// going through the interactive edit operations.
type Builder struct {
	a       *Automaton
	targets map[Pair]State // recorded before targets are declared; resolved in Build
	order   []Pair
}

// StateBuilder configures a single state.
type StateBuilder struct {
	b    *Builder
	name State
}

// NewBuilder creates a builder whose automaton starts in start.
// The start state is declared immediately.
func NewBuilder(start string) *Builder {
	a := New()
	a.addState(State(start))
	a.start = State(start)
	return &Builder{
		a:       a,
		targets: make(map[Pair]State),
	}
}

// Alphabet adds every character of symbols to Σ.
func (b *Builder) Alphabet(symbols string) *Builder {
	for _, r := range symbols {
		b.a.AddSymbols([]Symbol{Symbol(r)})
	}
	return b
}

// State declares a state, or retrieves it if already declared.
func (b *Builder) State(name string) *StateBuilder {
	b.a.addState(State(name))
	return &StateBuilder{b: b, name: State(name)}
}

// Build checks that every transition target was declared and that the result
// passes Validate. Symbols used by On are added to Σ automatically.
func (b *Builder) Build() (*Automaton, error) {
	for _, p := range b.order {
		target := b.targets[p]
		if !b.a.HasState(target) {
			return nil, fmt.Errorf("state %s has transition on %s to unknown state %q: %w", p.State, p.Symbol, target, ErrUnknownState)
		}
		b.a.setTransition(p.State, p.Symbol, target)
	}
	if err := b.a.Validate(); err != nil {
		return nil, err
	}
	return b.a, nil
}

// On adds a transition to target for every character of symbols.
// Later calls for the same symbol replace earlier ones.
func (sb *StateBuilder) On(symbols string, target string) *StateBuilder {
	for _, r := range symbols {
		c := Symbol(r)
		sb.b.a.AddSymbols([]Symbol{c})
		p := Pair{State: sb.name, Symbol: c}
		if _, exists := sb.b.targets[p]; !exists {
			sb.b.order = append(sb.b.order, p)
		}
		sb.b.targets[p] = State(target)
	}
	return sb
}

// Accepting marks this state as a member of F.
func (sb *StateBuilder) Accepting() *StateBuilder {
	if !sb.b.a.IsFinal(sb.name) {
		sb.b.a.final = append(sb.b.a.final, sb.name)
	}
	return sb
}

// State continues with another state; convenience for chaining.
func (sb *StateBuilder) State(name string) *StateBuilder {
	return sb.b.State(name)
}

// Build is a chaining shortcut for the parent Builder's Build.
func (sb *StateBuilder) Build() (*Automaton, error) {
	return sb.b.Build()
}
