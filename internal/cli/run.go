package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/dfax"
	"github.com/comalice/dfax/internal/logging"
)

type runOptions struct {
	step bool
}

// newRunCmd creates the run command.
func (a *App) newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run [word]",
		Short: "Run a word through the automaton",
		Long: `Run a word through the automaton from its start state and report whether
it is accepted. Omitting the word runs the empty word.

With --step every transition is shown before it is taken; answer [q]uit to
stop and take the verdict at the current state.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := ""
			if len(args) == 1 {
				word = args[0]
			}
			return a.runWord(cmd.Context(), word, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.step, "step", "s", false, "Step through the run one transition at a time")

	return cmd
}

func (a *App) runWord(ctx context.Context, word string, opts *runOptions) error {
	s, err := a.session(ctx)
	if err != nil {
		return err
	}

	var runOpts []dfax.RunOption
	if opts.step {
		asker := a.asker()
		runOpts = append(runOpts, dfax.WithStepper(func(ctx context.Context, step dfax.Step) (dfax.StepDecision, error) {
			logging.NewEvent(a.log.Trace()).Add(logging.Step(step)).Msg("step")
			answer, err := asker.Ask(ctx, fmt.Sprintf("%s --%s--> %s\n[enter] next/[q]uit: ", step.From, step.Symbol, step.To))
			if err != nil {
				return dfax.Quit, err
			}
			if dfax.IsQuit(answer) {
				return dfax.Quit, nil
			}
			return dfax.Continue, nil
		}))
	}

	res, err := s.Automaton().Run(ctx, word, runOpts...)
	if err != nil {
		return err
	}

	logging.NewEvent(a.log.Info()).Add(logging.Automaton(s.Name())).Add(logging.Word(word)).
		Add(logging.State(res.Final)).Add(logging.Accepted(res.Accepted())).Msg("run finished")

	if res.Quit {
		fmt.Fprintf(a.stdout, "stopped in %s\n", res.Final)
	}
	if res.Accepted() {
		fmt.Fprintf(a.stdout, "word accepted by %s\n", s.Name())
	} else {
		fmt.Fprintf(a.stdout, "word not accepted by %s\n", s.Name())
	}
	return nil
}
