package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/dfax"
)

type buildOptions struct {
	maxAttempts int
}

// newTransitionCmd creates the transition command group (Delta).
func (a *App) newTransitionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transition",
		Aliases: []string{"delta"},
		Short:   "Edit the transition function Delta",
	}
	cmd.AddCommand(a.newTransitionSetCmd(), a.newTransitionRmCmd(), a.newTransitionBuildCmd())
	return cmd
}

func (a *App) newTransitionSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <state> <symbol> <target>",
		Short: "Set a single transition; both states and the symbol must exist",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseSymbol(args[1])
			if err != nil {
				return err
			}
			from, to := dfax.State(args[0]), dfax.State(args[2])
			if _, err := a.edit(cmd, func(d *dfax.Automaton) error {
				return d.SetTransition(from, c, to)
			}); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "δ(%s, %s) = %s\n", from, c, to)
			return nil
		},
	}
}

func (a *App) newTransitionRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <state> <symbol>",
		Aliases: []string{"remove"},
		Short:   "Remove a single transition",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseSymbol(args[1])
			if err != nil {
				return err
			}
			from := dfax.State(args[0])
			if _, err := a.edit(cmd, func(d *dfax.Automaton) error {
				d.RemoveTransition(from, c)
				return nil
			}); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "δ(%s, %s) removed\n", from, c)
			return nil
		},
	}
}

func (a *App) newTransitionBuildCmd() *cobra.Command {
	opts := &buildOptions{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Interactively fill in every missing transition",
		Long: `Ask for the target of every missing transition until Delta is total
over K x Sigma.

Naming a state that is not in K offers to create it: [y]es completes it
after the states already queued, [f]ront completes it next, anything else
asks again. Nothing is saved unless every transition is answered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			recorded := 0
			s, err := a.edit(cmd, func(d *dfax.Automaton) error {
				return dfax.Complete(ctx, d, a.asker(),
					dfax.WithMaxAttempts(opts.maxAttempts),
					dfax.WithObserver(func(p dfax.Pair, target dfax.State) {
						recorded++
					}),
				)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%d transitions added; Delta is complete over %d states\n",
				recorded, len(s.Automaton().States()))
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.maxAttempts, "max-attempts", 0, "Give up after this many prompts per transition (0 = unbounded)")

	return cmd
}
