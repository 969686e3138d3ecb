package production

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/comalice/dfax"
)

// Describer renders a read-only text projection of an automaton.
type Describer struct{}

// Describe writes K, Sigma, s, F and the transition table to w.
// In the table the start state is marked "->", accepting states "*", and
// missing transitions "-".
func (d *Describer) Describe(w io.Writer, name string, a *dfax.Automaton) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "automaton:\t%s\n", name)
	fmt.Fprintf(tw, "K:\t{%s}\n", joinStates(a.States()))
	fmt.Fprintf(tw, "Sigma:\t{%s}\n", joinSymbols(a.Alphabet()))
	fmt.Fprintf(tw, "s:\t%s\n", orDash(string(a.Start())))
	fmt.Fprintf(tw, "F:\t{%s}\n", joinStates(a.Final()))
	fmt.Fprintf(tw, "valid:\t%t\n", a.IsValid())
	fmt.Fprintf(tw, "complete:\t%t\n", a.IsComplete())
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(a.States()) == 0 || len(a.Alphabet()) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header := []string{"Delta"}
	for _, c := range a.Alphabet() {
		header = append(header, c.String())
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, q := range a.States() {
		row := []string{marker(a, q) + " " + string(q)}
		for _, c := range a.Alphabet() {
			target, ok := a.Transition(q, c)
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, string(target))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// ExportJSON serializes the automaton in its save-file layout.
func (d *Describer) ExportJSON(name string, a *dfax.Automaton) ([]byte, error) {
	return json.MarshalIndent(a.Snapshot(name), "", "  ")
}

func marker(a *dfax.Automaton, q dfax.State) string {
	m := "  "
	if a.Start() == q {
		m = "->"
	}
	if a.IsFinal(q) {
		return m + "*"
	}
	return m + " "
}

func joinStates(qs []dfax.State) string {
	parts := make([]string, len(qs))
	for i, q := range qs {
		parts[i] = string(q)
	}
	return strings.Join(parts, ", ")
}

func joinSymbols(cs []dfax.Symbol) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, ", ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
