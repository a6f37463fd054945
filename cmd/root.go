// Package cmd implements the forkline command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/zjrosen/forkline/internal/config"
	"github.com/zjrosen/forkline/internal/examine"
	"github.com/zjrosen/forkline/internal/log"
	"github.com/zjrosen/forkline/internal/mode/session"
	"github.com/zjrosen/forkline/internal/repl"
	"github.com/zjrosen/forkline/internal/tracing"
)

// ErrNoRootData is returned when neither the argument nor the config names
// the master commit's payload.
var ErrNoRootData = errors.New("give command line argument for master commit data")

// app carries the state of one command-line invocation.
type app struct {
	v   *viper.Viper
	cfg config.Config

	configFile string
	script     string
	tui        bool
	debug      bool

	closeLog func() error
	tracer   *tracing.Provider
}

// Execute runs the command line against the process's standard streams and
// exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) error {
	a := &app{v: viper.New(), tracer: tracing.Noop()}
	root := a.rootCommand()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.ExecuteContext(ctx)
	if cerr := a.close(ctx); err == nil {
		err = cerr
	}
	return err
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "forkline [flags] <root-data>",
		Short: "An interactive interpreter for a branch and commit graph",
		Long: `forkline reads commands from standard input and maintains a table of named
branches pointing into a graph of commits. Commits are destroyed as soon as no
branch can reach them.

Commands:
  new branch <name> <base>[~<n>]
  new commit '<data>' <branch>
  delete branch <name>
  examine

Root data that collides with a subcommand name ("init", "demo") goes after
"--", as in "forkline -- demo", or in the root.data config key.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		RunE:              a.runRoot,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file (default ./.forkline.yaml, then ~/.config/forkline/config.yaml)")
	pf.Bool("verbose-errors", false, "print the reason after each failure")
	pf.String("examine-format", "tree", "examine layout: tree or yaml")
	pf.String("log-file", "", "write diagnostic logs to this file")
	pf.BoolVar(&a.debug, "debug", false, "log at debug level")

	root.Flags().StringVar(&a.script, "script", "", "read commands from this file instead of standard input")
	root.Flags().BoolVar(&a.tui, "tui", false, "run the interactive terminal UI")

	_ = a.v.BindPFlag("repl.verbose_errors", pf.Lookup("verbose-errors"))
	_ = a.v.BindPFlag("examine.format", pf.Lookup("examine-format"))
	_ = a.v.BindPFlag("log.file", pf.Lookup("log-file"))

	root.AddCommand(a.initCommand(), a.demoCommand())
	return root
}

// setup loads configuration and starts logging and tracing.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	config.SetDefaults(a.v)
	config.ConfigureEnv(a.v)
	if path := a.resolveConfigFile(); path != "" {
		a.v.SetConfigFile(path)
		if err := config.ReadFile(a.v); err != nil {
			return err
		}
	}
	if a.debug {
		a.v.Set("log.level", "debug")
	}

	cfg, err := config.Load(a.v)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg

	if cfg.Log.File != "" {
		level, err := log.ParseLevel(cfg.Log.Level)
		if err != nil {
			return err
		}
		closer, err := log.InitFile(cfg.Log.File, level)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		a.closeLog = closer
	}
	log.Debug(log.CatConfig, "Config loaded", "file", a.v.ConfigFileUsed(), "command", cmd.Name())

	tp, err := tracing.New(cmd.Context(), cfg.Tracing)
	if err != nil {
		return fmt.Errorf("starting tracing: %w", err)
	}
	a.tracer = tp
	return nil
}

// resolveConfigFile returns --config if given, else the first existing file
// of ./.forkline.yaml and the user config file.
func (a *app) resolveConfigFile() string {
	if a.configFile != "" {
		return a.configFile
	}
	candidates := []string{config.LocalConfigFile}
	if dir := config.DefaultConfigDir(); dir != "" {
		candidates = append(candidates, filepath.Join(dir, "config.yaml"))
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func (a *app) close(ctx context.Context) error {
	var errs []error
	if err := a.tracer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flushing traces: %w", err))
	}
	if a.closeLog != nil {
		if err := a.closeLog(); err != nil {
			errs = append(errs, fmt.Errorf("closing log file: %w", err))
		}
		log.Reset()
	}
	return errors.Join(errs...)
}

func (a *app) runRoot(cmd *cobra.Command, args []string) error {
	rootData := a.cfg.Root.Data
	switch {
	case len(args) == 1:
		rootData = args[0]
	case !a.v.IsSet("root.data"):
		return ErrNoRootData
	}

	out := cmd.OutOrStdout()
	if a.tui {
		return a.runTUI(cmd, rootData)
	}

	var src repl.LineSource = repl.NewReaderSource(cmd.InOrStdin())
	opts := a.sessionOptions(out)
	if a.script != "" {
		f, err := os.Open(a.script)
		if err != nil {
			return fmt.Errorf("opening script: %w", err)
		}
		defer f.Close()
		src = repl.NewReaderSource(f)
	} else if a.cfg.REPL.ShowPrompt && isTerminal(cmd.InOrStdin()) {
		opts = append(opts, repl.WithPrompt(out, a.cfg.REPL.Prompt))
	}

	s := repl.NewSession(rootData, repl.NewWriterEmitter(out), opts...)
	if err := s.Run(cmd.Context(), src); err != nil {
		return err
	}
	return nil
}

func (a *app) runTUI(cmd *cobra.Command, rootData string) error {
	m := session.New(session.Config{
		RootData: rootData,
		Prompt:   a.cfg.REPL.Prompt,
		Options:  a.sessionOptions(cmd.OutOrStdout()),
	})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}

func (a *app) sessionOptions(out io.Writer) []repl.Option {
	return []repl.Option{
		repl.WithVerboseErrors(a.cfg.REPL.VerboseErrors),
		repl.WithTracer(a.tracer.Tracer()),
		repl.WithRenderer(examine.New(examine.Options{
			Format:     examine.Format(a.cfg.Examine.Format),
			Color:      examine.ColorMode(a.cfg.Examine.Color),
			ShowOwners: a.cfg.Examine.ShowOwners,
			MaxWidth:   a.cfg.Examine.MaxWidth,
			Output:     out,
		})),
	}
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
