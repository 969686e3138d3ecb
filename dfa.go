// Package dfax models deterministic finite automata that are edited one
// operation at a time and then used to decide whether a word is accepted.
//
// An Automaton is the 5-tuple (K, Σ, Delta, s, F). Edits keep the pieces
// referentially consistent: removing a state cascades into F, s and Delta,
// removing a symbol prunes Delta. Validity (IsValid) is checked by Run, not
// enforced by the editing operations, so an Automaton may be temporarily
// invalid while it is being built.
//
// The core is stdlib-only. Persistence and prompting are reached through the
// Persister and Asker interfaces.
package dfax

import (
	"context"
	"fmt"
)

// State is an opaque state label. The empty State means "unset".
type State string

// NoState is the value of an unset start state.
const NoState State = ""

// Symbol is a single input character.
type Symbol rune

func (c Symbol) String() string {
	return string(rune(c))
}

// Automaton is a DFA under construction.
// It is not safe for concurrent use; a session owns it exclusively.
type Automaton struct {
	states   []State
	alphabet []Symbol
	delta    map[State]map[Symbol]State
	start    State
	final    []State
}

// Pair is a (state, symbol) key of the transition table.
type Pair struct {
	State  State
	Symbol Symbol
}

// New returns an empty automaton.
func New() *Automaton {
	return &Automaton{
		delta: make(map[State]map[Symbol]State),
	}
}

//
// Read access
//

// States returns K in insertion order.
func (a *Automaton) States() []State {
	return append([]State(nil), a.states...)
}

// Alphabet returns Σ in insertion order.
func (a *Automaton) Alphabet() []Symbol {
	return append([]Symbol(nil), a.alphabet...)
}

// Start returns s, or NoState when unset.
func (a *Automaton) Start() State {
	return a.start
}

// Final returns F in insertion order.
func (a *Automaton) Final() []State {
	return append([]State(nil), a.final...)
}

func (a *Automaton) HasState(q State) bool {
	return indexOf(a.states, q) >= 0
}

func (a *Automaton) HasSymbol(c Symbol) bool {
	return indexOf(a.alphabet, c) >= 0
}

func (a *Automaton) IsFinal(q State) bool {
	return indexOf(a.final, q) >= 0
}

// Transition looks up Delta(q, c).
func (a *Automaton) Transition(q State, c Symbol) (State, bool) {
	row, ok := a.delta[q]
	if !ok {
		return NoState, false
	}
	target, ok := row[c]
	return target, ok
}

// Transitions returns a deep copy of Delta.
func (a *Automaton) Transitions() map[State]map[Symbol]State {
	out := make(map[State]map[Symbol]State, len(a.delta))
	for q, row := range a.delta {
		cp := make(map[Symbol]State, len(row))
		for c, target := range row {
			cp[c] = target
		}
		out[q] = cp
	}
	return out
}

// Missing lists every (state, symbol) pair of K×Σ that has no Delta entry,
// in K then Σ order.
func (a *Automaton) Missing() []Pair {
	var missing []Pair
	for _, q := range a.states {
		for _, c := range a.alphabet {
			if _, ok := a.Transition(q, c); !ok {
				missing = append(missing, Pair{State: q, Symbol: c})
			}
		}
	}
	return missing
}

// IsComplete reports whether Delta is total over K×Σ.
func (a *Automaton) IsComplete() bool {
	return len(a.Missing()) == 0
}

//
// States
//

// SetStates replaces K with the de-duplicated names. States dropped from K
// go through RemoveState so F, s and Delta follow.
func (a *Automaton) SetStates(names []State) {
	keep := dedupe(names)
	for _, q := range a.States() {
		if indexOf(keep, q) < 0 {
			a.RemoveState(q)
		}
	}
	a.states = keep
}

// AddStates appends the names not already in K.
func (a *Automaton) AddStates(names []State) {
	for _, q := range names {
		a.addState(q)
	}
}

// RemoveStates removes each named state with the RemoveState cascade.
func (a *Automaton) RemoveStates(names []State) {
	for _, q := range names {
		a.RemoveState(q)
	}
}

// RemoveState drops q from K and F, unsets s if it was q, and rebuilds Delta
// without any entry whose source or target is q. No-op if q is not in K.
func (a *Automaton) RemoveState(q State) {
	if !a.HasState(q) {
		return
	}
	a.states = without(a.states, q)
	a.final = without(a.final, q)
	if a.start == q {
		a.start = NoState
	}
	a.rebuildDelta(func(src State, _ Symbol, dst State) bool {
		return src != q && dst != q
	})
}

func (a *Automaton) addState(q State) bool {
	if q == NoState || a.HasState(q) {
		return false
	}
	a.states = append(a.states, q)
	return true
}

//
// Alphabet
//

// SetAlphabet replaces Σ with the de-duplicated symbols and prunes Delta
// entries on symbols no longer in Σ.
func (a *Automaton) SetAlphabet(symbols []Symbol) {
	a.alphabet = dedupe(symbols)
	a.pruneSymbols()
}

// AddSymbols appends the symbols not already in Σ.
func (a *Automaton) AddSymbols(symbols []Symbol) {
	for _, c := range symbols {
		if !a.HasSymbol(c) {
			a.alphabet = append(a.alphabet, c)
		}
	}
}

// RemoveSymbols drops every symbol in the given set from Σ and Delta.
func (a *Automaton) RemoveSymbols(symbols []Symbol) {
	var kept []Symbol
	for _, c := range a.alphabet {
		if indexOf(symbols, c) < 0 {
			kept = append(kept, c)
		}
	}
	a.alphabet = kept
	a.pruneSymbols()
}

func (a *Automaton) pruneSymbols() {
	a.rebuildDelta(func(_ State, c Symbol, _ State) bool {
		return a.HasSymbol(c)
	})
}

//
// Start and accepting states
//

// SetStart makes q the start state. If q is not in K the asker decides
// whether to create it; on refusal s is left unchanged.
func (a *Automaton) SetStart(ctx context.Context, q State, asker Asker) error {
	if q == NoState {
		return nil
	}
	if a.HasState(q) {
		a.start = q
		return nil
	}
	answer, err := asker.Ask(ctx, string(q)+" does not exist. Do you want to create it?\n[y]es/[n]o: ")
	if err != nil {
		return err
	}
	if isYes(answer) {
		a.addState(q)
		a.start = q
	}
	return nil
}

// SetFinal replaces F with the accepted candidates. Candidates outside K are
// added to K only if the asker answers add.
func (a *Automaton) SetFinal(ctx context.Context, qs []State, asker Asker) error {
	accepted, err := a.acceptCandidates(ctx, qs, asker)
	if err != nil {
		return err
	}
	a.final = dedupe(accepted)
	return nil
}

// AddFinal is SetFinal without clearing F first.
func (a *Automaton) AddFinal(ctx context.Context, qs []State, asker Asker) error {
	accepted, err := a.acceptCandidates(ctx, qs, asker)
	if err != nil {
		return err
	}
	a.final = dedupe(append(a.final, accepted...))
	return nil
}

// RemoveFinal filters the named states out of F. K is not touched.
func (a *Automaton) RemoveFinal(qs []State) {
	var kept []State
	for _, q := range a.final {
		if indexOf(qs, q) < 0 {
			kept = append(kept, q)
		}
	}
	a.final = kept
}

// acceptCandidates asks about every unknown candidate before touching K, so an
// asker failure halfway leaves the automaton as it was.
func (a *Automaton) acceptCandidates(ctx context.Context, qs []State, asker Asker) ([]State, error) {
	var accepted, created []State
	for _, q := range qs {
		if q == NoState {
			continue
		}
		if a.HasState(q) || indexOf(created, q) >= 0 {
			accepted = append(accepted, q)
			continue
		}
		answer, err := asker.Ask(ctx, string(q)+" does not exist. [a]dd it or [s]kip it?: ")
		if err != nil {
			return nil, err
		}
		if isAdd(answer) {
			created = append(created, q)
			accepted = append(accepted, q)
		}
	}
	a.AddStates(created)
	return accepted, nil
}

//
// Transitions
//

// SetTransition records Delta(from, c) = to. Both states must be in K and c
// in Σ.
func (a *Automaton) SetTransition(from State, c Symbol, to State) error {
	if !a.HasState(from) {
		return fmt.Errorf("%w: %q", ErrUnknownState, from)
	}
	if !a.HasState(to) {
		return fmt.Errorf("%w: %q", ErrUnknownState, to)
	}
	if !a.HasSymbol(c) {
		return fmt.Errorf("%w: %q", ErrUnknownSymbol, c)
	}
	a.setTransition(from, c, to)
	return nil
}

// RemoveTransition deletes Delta(from, c) if present.
func (a *Automaton) RemoveTransition(from State, c Symbol) {
	row, ok := a.delta[from]
	if !ok {
		return
	}
	delete(row, c)
	if len(row) == 0 {
		delete(a.delta, from)
	}
}

func (a *Automaton) setTransition(from State, c Symbol, to State) {
	if a.delta == nil {
		a.delta = make(map[State]map[Symbol]State)
	}
	row, ok := a.delta[from]
	if !ok {
		row = make(map[Symbol]State)
		a.delta[from] = row
	}
	row[c] = to
}

// rebuildDelta replaces Delta with a fresh map holding only the entries keep
// accepts.
func (a *Automaton) rebuildDelta(keep func(src State, c Symbol, dst State) bool) {
	next := make(map[State]map[Symbol]State, len(a.delta))
	for src, row := range a.delta {
		for c, dst := range row {
			if !keep(src, c, dst) {
				continue
			}
			nrow, ok := next[src]
			if !ok {
				nrow = make(map[Symbol]State, len(row))
				next[src] = nrow
			}
			nrow[c] = dst
		}
	}
	a.delta = next
}

//
// Helpers
//

func indexOf[T comparable](xs []T, x T) int {
	for i, v := range xs {
		if v == x {
			return i
		}
	}
	return -1
}

func without[T comparable](xs []T, x T) []T {
	out := make([]T, 0, len(xs))
	for _, v := range xs {
		if v != x {
			out = append(out, v)
		}
	}
	return out
}

// dedupe keeps the first occurrence of each element and drops zero values.
func dedupe[T comparable](xs []T) []T {
	var zero T
	out := make([]T, 0, len(xs))
	for _, v := range xs {
		if v == zero || indexOf(out, v) >= 0 {
			continue
		}
		out = append(out, v)
	}
	return out
}
