package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/comalice/dfax/internal/storage/badger"
)

// versionedStore is implemented by backends that keep earlier versions.
type versionedStore interface {
	Versions(ctx context.Context, name string) ([]badger.VersionInfo, error)
	Restore(ctx context.Context, name, version string) error
}

// newHistoryCmd creates the history command group.
func (a *App) newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or restore earlier versions of the automaton (badger store)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.versioned()
			if err != nil {
				return err
			}
			versions, err := store.Versions(cmd.Context(), a.cfg.Name)
			if err != nil {
				return err
			}
			if len(versions) == 0 {
				fmt.Fprintf(a.stdout, "no saved versions of %s\n", a.cfg.Name)
				return nil
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "VERSION\tSAVED\tSTATES\tSYMBOLS")
			for _, v := range versions {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", v.Version,
					v.Snapshot.Timestamp.Format("2006-01-02 15:04:05"), len(v.Snapshot.K), len(v.Snapshot.Sigma))
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "restore <version>",
		Short: "Make an earlier version the current automaton",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.versioned()
			if err != nil {
				return err
			}
			if err := store.Restore(cmd.Context(), a.cfg.Name, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s restored to %s\n", a.cfg.Name, args[0])
			return nil
		},
	})

	return cmd
}

func (a *App) versioned() (versionedStore, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, err
	}
	v, ok := store.(versionedStore)
	if !ok {
		return nil, errVersionedStore
	}
	return v, nil
}
