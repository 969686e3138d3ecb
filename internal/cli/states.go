package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/dfax"
)

// newStateCmd creates the state command group (K).
func (a *App) newStateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "state",
		Aliases: []string{"states", "K"},
		Short:   "Edit the set of states K",
	}

	report := func(cmd *cobra.Command, fn func(*dfax.Automaton)) error {
		s, err := a.edit(cmd, func(d *dfax.Automaton) error {
			fn(d)
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "K is now %s\n", formatStates(s.Automaton().States()))
		return nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <state>[,<state>...]",
			Short: "Replace K; removed states are cascaded out of s, F and Delta",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return report(cmd, func(d *dfax.Automaton) { d.SetStates(parseStates(args)) })
			},
		},
		&cobra.Command{
			Use:   "add <state>[,<state>...]",
			Short: "Add states to K",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return report(cmd, func(d *dfax.Automaton) { d.AddStates(parseStates(args)) })
			},
		},
		&cobra.Command{
			Use:     "rm <state>[,<state>...]",
			Aliases: []string{"remove"},
			Short:   "Remove states from K, cascading into s, F and Delta",
			Args:    cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return report(cmd, func(d *dfax.Automaton) { d.RemoveStates(parseStates(args)) })
			},
		},
	)
	return cmd
}

// newAlphabetCmd creates the alphabet command group (Sigma).
func (a *App) newAlphabetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alphabet",
		Aliases: []string{"sigma"},
		Short:   "Edit the input alphabet Sigma",
		Long: `Edit the input alphabet Sigma. Every character of the arguments is a
symbol, so "01", "0,1" and "0 1" all name the same two symbols.`,
	}

	report := func(cmd *cobra.Command, fn func(*dfax.Automaton)) error {
		s, err := a.edit(cmd, func(d *dfax.Automaton) error {
			fn(d)
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "Sigma is now %s\n", formatSymbols(s.Automaton().Alphabet()))
		return nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <symbols>",
			Short: "Replace Sigma; transitions on dropped symbols are removed",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return report(cmd, func(d *dfax.Automaton) { d.SetAlphabet(parseSymbols(args)) })
			},
		},
		&cobra.Command{
			Use:   "add <symbols>",
			Short: "Add symbols to Sigma",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return report(cmd, func(d *dfax.Automaton) { d.AddSymbols(parseSymbols(args)) })
			},
		},
		&cobra.Command{
			Use:     "rm <symbols>",
			Aliases: []string{"remove"},
			Short:   "Remove symbols from Sigma and their transitions",
			Args:    cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return report(cmd, func(d *dfax.Automaton) { d.RemoveSymbols(parseSymbols(args)) })
			},
		},
	)
	return cmd
}

// newStartCmd creates the start command (s).
func (a *App) newStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <state>",
		Short: "Set the start state s, offering to create it if it is not in K",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			states := parseStates(args)
			if len(states) != 1 {
				return fmt.Errorf("start takes exactly one state, got %d", len(states))
			}
			s, err := a.edit(cmd, func(d *dfax.Automaton) error {
				return d.SetStart(cmd.Context(), states[0], a.asker())
			})
			if err != nil {
				return err
			}
			if start := s.Automaton().Start(); start != dfax.NoState {
				fmt.Fprintf(a.stdout, "s is now %s\n", start)
			} else {
				fmt.Fprintln(a.stdout, "s is unset")
			}
			return nil
		},
	}
}

// newAcceptCmd creates the accept command group (F).
func (a *App) newAcceptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "accept",
		Aliases: []string{"final", "F"},
		Short:   "Edit the set of accepting states F",
	}

	report := func(cmd *cobra.Command, fn func(*dfax.Automaton) error) error {
		s, err := a.edit(cmd, fn)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "F is now %s\n", formatStates(s.Automaton().Final()))
		return nil
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <state>[,<state>...]",
			Short: "Replace F, offering to add states that are not in K",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return report(cmd, func(d *dfax.Automaton) error {
					return d.SetFinal(cmd.Context(), parseStates(args), a.asker())
				})
			},
		},
		&cobra.Command{
			Use:   "add <state>[,<state>...]",
			Short: "Add states to F, offering to add states that are not in K",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return report(cmd, func(d *dfax.Automaton) error {
					return d.AddFinal(cmd.Context(), parseStates(args), a.asker())
				})
			},
		},
		&cobra.Command{
			Use:     "rm <state>[,<state>...]",
			Aliases: []string{"remove"},
			Short:   "Remove states from F; K is unchanged",
			Args:    cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return report(cmd, func(d *dfax.Automaton) error {
					d.RemoveFinal(parseStates(args))
					return nil
				})
			},
		},
	)
	return cmd
}
