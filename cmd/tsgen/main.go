package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sghaida/typedstrings/internal/config"
	"github.com/sghaida/typedstrings/internal/logging"
	"github.com/sghaida/typedstrings/internal/watch"
	"github.com/sghaida/typedstrings/typedstring"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

// usageError marks errors caused by bad invocation rather than bad input.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

// withUsage turns argument validation failures into usage errors.
func withUsage(args cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, a []string) error {
		if err := args(cmd, a); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// app carries what every subcommand needs once flags are parsed.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   string
	logFormat  string
	root       string
	out        string
	workers    int
	prune      bool

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:   "tsgen",
		Short: "Generate typed-string wrappers for C# projects",
		Long: `tsgen finds readonly partial structs marked [TypedString(typeof(Comparer))]
and writes their equality, hashing, operator and conversion members as <Type>.g.cs.`,
		Args:              withUsage(cobra.NoArgs),
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configPath, "config", "c", "", "config file (default "+config.DefaultPath+")")
	flags.StringVar(&a.root, "root", "", "directory scanned for C# sources")
	flags.StringVarP(&a.out, "out", "o", "", "directory generated units are written to")
	flags.IntVarP(&a.workers, "workers", "j", 0, "concurrent parsers")
	flags.BoolVar(&a.prune, "prune", true, "delete generated units that are no longer produced")
	flags.StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error")
	flags.StringVar(&a.logFormat, "log-format", "", "console or json")

	rootCmd.AddCommand(
		a.generateCmd(),
		a.watchCmd(),
		a.bootstrapCmd(),
		versionCmd(stdout),
	)
	return rootCmd
}

// setup loads config, applies explicitly set flags over it and builds the
// logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.Root = a.root
	}
	if flags.Changed("out") {
		cfg.Out = a.out
	}
	if flags.Changed("workers") {
		cfg.Workers = a.workers
	}
	if flags.Changed("prune") {
		cfg.Prune = a.prune
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, a.stderr)
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

func (a *app) generateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate [paths...]",
		Short: "Scan sources and write typed-string units",
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := generate(cmd.Context(), a.cfg, a.logger, args)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(a.stdout, sum)
			return nil
		},
	}
}

func (a *app) watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Generate, then regenerate whenever a source changes",
		Args:  withUsage(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			regenerate := func(ctx context.Context) error {
				sum, err := generate(ctx, a.cfg, a.logger, nil)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(a.stdout, sum)
				return nil
			}
			if err := regenerate(ctx); err != nil && !errors.Is(err, ErrNoSources) {
				return err
			}

			root, err := filepath.Abs(a.cfg.Root)
			if err != nil {
				return err
			}
			out, err := filepath.Abs(a.cfg.Out)
			if err != nil {
				return err
			}
			a.cfg.Root, a.cfg.Out = root, out

			w, err := watch.New(watch.Options{
				Root:     root,
				Include:  a.cfg.Include,
				Exclude:  a.cfg.Exclude,
				Ignore:   []string{out},
				Debounce: a.cfg.Watch.Debounce,
				Logger:   a.logger,
				OnChange: func(ctx context.Context, changed []string) error {
					a.logger.Info("sources changed", zap.Int("count", len(changed)))
					return regenerate(ctx)
				},
			})
			if err != nil {
				return err
			}
			a.logger.Info("watching", zap.String("root", root), zap.Strings("dirs", w.WatchedDirs()))
			return w.Run(ctx)
		},
	}
}

func (a *app) bootstrapCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Write only the marker attribute and comparer interface units",
		Args:  withUsage(cobra.NoArgs),
		RunE: func(*cobra.Command, []string) error {
			res, err := writeBootstrap(a.cfg)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.stdout, "bootstrap: %d written, %d unchanged\n", len(res.Written), len(res.Unchanged))
			return nil
		},
	}
}

func versionCmd(stdout io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the generator version",
		Args:  withUsage(cobra.NoArgs),
		// Skip config loading.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(*cobra.Command, []string) {
			_, _ = fmt.Fprintf(stdout, "tsgen %s %s\n", typedstring.GeneratorName, typedstring.Version)
		},
	}
}

// run executes the CLI and returns an exit code.
// It exists separately from main to allow unit testing without os.Exit.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	_, _ = fmt.Fprintf(stderr, "tsgen: %v\n", err)
	var uerr usageError
	if errors.As(err, &uerr) {
		_, _ = fmt.Fprintln(stderr, "Run 'tsgen --help' for usage.")
		return exitUsage
	}
	return exitError
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
