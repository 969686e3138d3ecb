package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/dfax/internal/production"
)

// newShowCmd creates the show command.
func (a *App) newShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"export"},
		Short:   "Print the automaton and its transition table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.session(cmd.Context())
			if err != nil {
				return err
			}
			d := &production.Describer{}
			if asJSON || cmd.CalledAs() == "export" {
				data, err := d.ExportJSON(s.Name(), s.Automaton())
				if err != nil {
					return err
				}
				fmt.Fprintln(a.stdout, string(data))
				return nil
			}
			return d.Describe(a.stdout, s.Name(), s.Automaton())
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the save-file JSON instead of the table")

	return cmd
}
