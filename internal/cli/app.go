// Package cli provides the dfa command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/felixgeelhaar/bolt/v3"
	"github.com/spf13/cobra"

	"github.com/comalice/dfax"
	"github.com/comalice/dfax/internal/config"
	"github.com/comalice/dfax/internal/logging"
	"github.com/comalice/dfax/internal/production"
	"github.com/comalice/dfax/internal/prompt"
	"github.com/comalice/dfax/internal/session"
	"github.com/comalice/dfax/internal/storage/badger"
)

// Version information set at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	name       string
	backend    string
	dir        string
	format     string
	logLevel   string
}

// App represents the CLI application.
type App struct {
	root   *cobra.Command
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	opts   globalOptions

	cfg   config.Config
	log   *bolt.Logger
	store dfax.Persister
	close func() error
}

// New creates a new CLI application.
func New() *App {
	app := &App{
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		cfg:    config.Default(),
	}

	app.root = &cobra.Command{
		Use:   "dfa",
		Short: "Define and run a deterministic finite automaton from the command line",
		Long: `dfa lets you quickly define a deterministic finite automaton (K, Sigma,
Delta, s, F) one edit at a time and run words through it.

Every edit is saved immediately; the next command picks up where the last
one left off.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
	}

	pf := app.root.PersistentFlags()
	pf.StringVarP(&app.opts.configPath, "config", "c", "", "Path to configuration file (yaml or json)")
	pf.StringVarP(&app.opts.name, "name", "n", "", "Name of the automaton to edit")
	pf.StringVar(&app.opts.backend, "store", "", "Storage backend (file or badger)")
	pf.StringVar(&app.opts.dir, "dir", "", "Storage directory")
	pf.StringVar(&app.opts.format, "format", "", "Save file format for the file backend (json or yaml)")
	pf.StringVar(&app.opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")

	app.root.AddCommand(
		app.newVersionCmd(),
		app.newStateCmd(),
		app.newAlphabetCmd(),
		app.newStartCmd(),
		app.newAcceptCmd(),
		app.newTransitionCmd(),
		app.newRunCmd(),
		app.newShowCmd(),
		app.newHistoryCmd(),
	)

	return app
}

// WithOutput sets custom output writers.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	a.root.SetOut(stdout)
	a.root.SetErr(stderr)
	return a
}

// WithInput sets the reader answers to prompts are read from.
func (a *App) WithInput(stdin io.Reader) *App {
	a.stdin = stdin
	a.root.SetIn(stdin)
	return a
}

// Execute runs the CLI application.
func (a *App) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	defer a.closeStore()

	return a.root.ExecuteContext(ctx)
}

// ExecuteWithArgs runs the CLI with specific arguments (useful for testing).
func (a *App) ExecuteWithArgs(ctx context.Context, args []string) error {
	a.root.SetArgs(args)
	return a.Execute(ctx)
}

// setup resolves configuration (defaults, file, environment, flags, in that
// order) and initializes the logger.
func (a *App) setup(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if a.opts.configPath != "" {
		loaded, err := config.LoadFile(a.opts.configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()

	flags := cmd.Flags()
	if flags.Changed("name") {
		cfg.Name = a.opts.name
	}
	if flags.Changed("store") {
		cfg.Store.Backend = a.opts.backend
	}
	if flags.Changed("dir") {
		cfg.Store.Dir = a.opts.dir
	}
	if flags.Changed("format") {
		cfg.Store.Format = a.opts.format
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.Log.Output = a.stderr
	a.cfg = cfg
	a.log = logging.New(cfg.Log)
	logging.NewEvent(a.log.Debug()).Add(logging.Command(cmd.CommandPath())).
		Add(logging.Automaton(cfg.Name)).Add(logging.Backend(cfg.Store.Backend)).Msg("command started")
	return nil
}

// openStore opens the configured backend once per process.
func (a *App) openStore() (dfax.Persister, error) {
	if a.store != nil {
		return a.store, nil
	}

	switch a.cfg.Store.Backend {
	case config.BackendBadger:
		opts := []badger.Option{badger.WithDir(a.cfg.Store.Dir)}
		if a.cfg.Store.InMemory {
			opts = append(opts, badger.WithInMemory())
		}
		s, err := badger.NewStore(badger.DefaultConfig(), opts...)
		if err != nil {
			return nil, err
		}
		a.store, a.close = s, s.Close
	default:
		if a.cfg.Store.Format == config.FormatYAML {
			p, err := production.NewYAMLPersister(a.cfg.Store.Dir)
			if err != nil {
				return nil, err
			}
			a.store = p
		} else {
			p, err := production.NewJSONPersister(a.cfg.Store.Dir)
			if err != nil {
				return nil, err
			}
			a.store = p
		}
	}
	return a.store, nil
}

func (a *App) closeStore() {
	if a.close == nil {
		return
	}
	if err := a.close(); err != nil && a.log != nil {
		logging.NewEvent(a.log.Warn()).Add(logging.Err(err)).Msg("closing store")
	}
	a.store, a.close = nil, nil
}

// session opens the configured automaton.
func (a *App) session(ctx context.Context) (*session.Session, error) {
	store, err := a.openStore()
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return session.Open(ctx, store, a.cfg.Name, a.log), nil
}

// edit opens the automaton, applies fn and saves on success.
func (a *App) edit(cmd *cobra.Command, fn func(a *dfax.Automaton) error) (*session.Session, error) {
	ctx := cmd.Context()
	s, err := a.session(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.Apply(ctx, fn); err != nil {
		return nil, err
	}
	logging.NewEvent(a.log.Info()).Add(logging.Command(cmd.CommandPath())).
		Add(logging.Automaton(s.Name())).Add(logging.Counts(s.Automaton())).Msg("automaton updated")
	return s, nil
}

func (a *App) asker() dfax.Asker {
	return prompt.NewTerminal(a.stdin, a.stdout)
}

// newVersionCmd creates the version command.
func (a *App) newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "dfa version %s\n", Version)
			fmt.Fprintf(a.stdout, "  Git commit: %s\n", GitCommit)
			fmt.Fprintf(a.stdout, "  Build date: %s\n", BuildDate)
		},
	}
}

// splitList turns "a, b" "c" into [a b c].
func splitList(args []string) []string {
	var out []string
	for _, arg := range args {
		for _, part := range strings.Split(arg, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseStates(args []string) []dfax.State {
	parts := splitList(args)
	out := make([]dfax.State, len(parts))
	for i, p := range parts {
		out[i] = dfax.State(p)
	}
	return out
}

// parseSymbols accepts "a,b", "a b" or "ab"; every character is a symbol.
func parseSymbols(args []string) []dfax.Symbol {
	var out []dfax.Symbol
	for _, part := range splitList(args) {
		for _, r := range part {
			if r == ' ' || r == '\t' {
				continue
			}
			out = append(out, dfax.Symbol(r))
		}
	}
	return out
}

func parseSymbol(arg string) (dfax.Symbol, error) {
	symbols := []rune(arg)
	if len(symbols) != 1 {
		return 0, fmt.Errorf("symbol %q must be a single character", arg)
	}
	return dfax.Symbol(symbols[0]), nil
}

var errVersionedStore = errors.New("history requires the badger store (--store badger)")

func formatStates(qs []dfax.State) string {
	parts := make([]string, len(qs))
	for i, q := range qs {
		parts[i] = string(q)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func formatSymbols(cs []dfax.Symbol) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
