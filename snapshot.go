package dfax

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"
)

// Persister is the load/save capability for whole automata.
type Persister interface {
	Save(ctx context.Context, snapshot Snapshot) error
	Load(ctx context.Context, name string) (Snapshot, error)
}

// Snapshot is the serializable form of an automaton.
// The tuple keys follow the save-file layout: K, Sigma, Delta, s, F.
type Snapshot struct {
	Name      string                       `json:"name,omitempty" yaml:"name,omitempty"`
	K         []string                     `json:"K" yaml:"K"`
	Sigma     []string                     `json:"Sigma" yaml:"Sigma"`
	Delta     map[string]map[string]string `json:"Delta" yaml:"Delta"`
	S         string                       `json:"s" yaml:"s"`
	F         []string                     `json:"F" yaml:"F"`
	Timestamp time.Time                    `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// Snapshot captures the automaton under the given name.
func (a *Automaton) Snapshot(name string) Snapshot {
	snap := Snapshot{
		Name:      name,
		K:         make([]string, 0, len(a.states)),
		Sigma:     make([]string, 0, len(a.alphabet)),
		Delta:     make(map[string]map[string]string, len(a.delta)),
		S:         string(a.start),
		F:         make([]string, 0, len(a.final)),
		Timestamp: time.Now().UTC(),
	}
	for _, q := range a.states {
		snap.K = append(snap.K, string(q))
	}
	for _, c := range a.alphabet {
		snap.Sigma = append(snap.Sigma, c.String())
	}
	for q, row := range a.delta {
		srow := make(map[string]string, len(row))
		for c, target := range row {
			srow[c.String()] = string(target)
		}
		snap.Delta[string(q)] = srow
	}
	for _, q := range a.final {
		snap.F = append(snap.F, string(q))
	}
	return snap
}

// FromSnapshot rebuilds an automaton. Symbols must be single characters.
// Delta entries that refer to undeclared states or symbols are dropped, and
// the start and accepting states are kept as stored for Validate to judge.
func FromSnapshot(snap Snapshot) (*Automaton, error) {
	a := New()
	for _, q := range snap.K {
		a.addState(State(q))
	}
	for _, s := range snap.Sigma {
		c, err := parseSymbol(s)
		if err != nil {
			return nil, err
		}
		a.AddSymbols([]Symbol{c})
	}
	for src, row := range snap.Delta {
		for s, dst := range row {
			c, err := parseSymbol(s)
			if err != nil {
				return nil, err
			}
			if a.HasState(State(src)) && a.HasState(State(dst)) && a.HasSymbol(c) {
				a.setTransition(State(src), c, State(dst))
			}
		}
	}
	a.start = State(snap.S)
	for _, q := range snap.F {
		if q != "" && !a.IsFinal(State(q)) {
			a.final = append(a.final, State(q))
		}
	}
	return a, nil
}

func parseSymbol(s string) (Symbol, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: symbol %q is not a single character", ErrMalformedSnapshot, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return Symbol(r), nil
}

// ComputeVersion derives a deterministic version for a snapshot:
// SHA256 of the tuple (name and timestamp excluded) plus the snapshot time.
func ComputeVersion(snap Snapshot) string {
	tuple := struct {
		K     []string
		Sigma []string
		Delta [][3]string
		S     string
		F     []string
	}{K: snap.K, Sigma: snap.Sigma, S: snap.S, F: snap.F}
	for src, row := range snap.Delta {
		for c, dst := range row {
			tuple.Delta = append(tuple.Delta, [3]string{src, c, dst})
		}
	}
	sort.Slice(tuple.Delta, func(i, j int) bool {
		if tuple.Delta[i][0] != tuple.Delta[j][0] {
			return tuple.Delta[i][0] < tuple.Delta[j][0]
		}
		return tuple.Delta[i][1] < tuple.Delta[j][1]
	})

	data, err := json.Marshal(tuple)
	if err != nil {
		return fmt.Sprintf("invalid-%d", time.Now().Unix())
	}

	hash := sha256.Sum256(data)
	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	return fmt.Sprintf("%x-%s", hash[:8], ts.UTC().Format("20060102T150405Z"))
}
