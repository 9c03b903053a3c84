// Package cli implements the orm-generator command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"orm-generator/internal/analyze"
	"orm-generator/internal/config"
	"orm-generator/internal/gen"
	"orm-generator/internal/logger"
	"orm-generator/internal/pipeline"
	"orm-generator/internal/report"
)

// Build-time variables set via ldflags
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// ErrReported is returned when a pass reported errors. The details have
// already been printed.
var ErrReported = errors.New("generation reported errors")

type rootOptions struct {
	debug      bool
	configPath string
	logLevel   string
	dir        string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "orm-generator",
		Short: "Row mapper generator for marked Go structs",
		Long: fmt.Sprintf(`orm-generator generates functions that read database rows into structs
marked with //orm:model or //orm:nestable.

Version: %s@%s %s %s

Commands:
  init    Write a default config file
  gen     Generate mappers
  check   Report diagnostics and stale mappers without writing
  watch   Regenerate mappers whenever models change

Use "orm-generator [command] --help" for more information about a command.`,
			Version, GitCommit, platform(), BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging and unformatted output sidecars")
	flags.StringVar(&opts.configPath, "config", "", "Path to the config file (default <dir>/"+config.FileName+")")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVarP(&opts.dir, "dir", "C", "", "Directory package patterns are resolved in")

	root.AddCommand(
		newInitCmd(opts),
		newGenCmd(opts),
		newCheckCmd(opts),
		newWatchCmd(opts),
		newVersionCmd(),
	)

	return root
}

// platform returns the OS/architecture combination
func platform() string {
	return runtime.GOOS + "/" + runtime.GOARCH
}

// Execute runs the command line and exits with status 1 on failure.
func Execute() {
	root := NewRootCmd()

	if err := root.Execute(); err != nil {
		if !errors.Is(err, ErrReported) {
			fmt.Fprintln(os.Stderr, err)
		}

		os.Exit(1)
	}
}

// runner carries the resolved settings of one command invocation.
type runner struct {
	cfg      *config.Config
	dir      string
	patterns []string
	log      *slog.Logger
	out      *report.Printer
}

// setup loads the config, applies environment and flag overrides and
// installs the global logger.
func (o *rootOptions) setup(cmd *cobra.Command, args []string) (*runner, error) {
	path := o.configPath
	if path == "" {
		path = filepath.Join(o.dir, config.FileName)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}

	if o.logLevel != "" {
		if _, err := config.ParseLevel(o.logLevel); err != nil {
			return nil, err
		}

		cfg.LogLevel = o.logLevel
	}

	level := cfg.Level()
	if o.debug {
		level = slog.LevelDebug
	}

	log := logger.New(cmd.ErrOrStderr(), level)
	logger.SetGlobal(log, o.debug)

	patterns := args
	if len(patterns) == 0 {
		patterns = cfg.Packages
	}

	if len(patterns) == 0 {
		return nil, fmt.Errorf("no packages given: pass patterns or list them in %s", path)
	}

	log.Debug("configuration loaded", "path", path, "packages", patterns, "workers", cfg.Workers)

	return &runner{
		cfg:      cfg,
		dir:      o.dir,
		patterns: patterns,
		log:      log,
		out:      report.New(cmd.OutOrStdout()),
	}, nil
}

func (r *runner) session() *pipeline.Session {
	return pipeline.NewSession(pipeline.Config{
		Workers: r.cfg.Workers,
		Emitter: gen.Config{RowImport: r.cfg.RowPackage},
	}, r.log)
}

// pass loads the packages and runs them through s.
func (r *runner) pass(ctx context.Context, s *pipeline.Session) (*pipeline.Result, error) {
	snap, err := analyze.NewAnalyzer(r.dir).LoadPackages(ctx, r.patterns...)
	if err != nil {
		return nil, err
	}

	r.log.Debug("packages loaded", "declarations", snap.Len(), "targets", len(snap.Targets()))

	return s.Run(ctx, snap)
}

// write stores the outputs of res and removes the files of retired and
// failed models. Debug sidecars are written for models whose code could
// not be formatted.
func (r *runner) write(res *pipeline.Result) error {
	for _, o := range res.Outputs {
		path, err := gen.WriteArtifact(o.Artifact, o.Dir)
		if err != nil {
			return err
		}

		if o.Fresh {
			r.out.Written(r.rel(path))
		}
	}

	gone := slices.Clone(res.Retired)
	for _, f := range res.Failed {
		gone = append(gone, f.Target)
	}

	for _, o := range gone {
		removed, err := gen.RemoveArtifact(o.Artifact, o.Dir)
		if err != nil {
			return err
		}

		if removed {
			r.out.Removed(r.rel(filepath.Join(o.Dir, o.Artifact.FileName())))
		}
	}

	if !logger.IsDebug() && !r.cfg.DebugUnformatted {
		return nil
	}

	for _, f := range res.Failed {
		if f.Unformatted == nil {
			continue
		}

		if err := gen.WriteDebugUnformatted(f.Unformatted.Dir, f.Unformatted.Artifact); err != nil {
			r.log.Warn("failed to write unformatted sidecar", "model", f.ID.String(), "error", err)
		}
	}

	return nil
}

// rel shortens path relative to the working directory when possible.
func (r *runner) rel(path string) string {
	base := r.dir
	if base == "" {
		base = "."
	}

	abs, err := filepath.Abs(base)
	if err != nil {
		return path
	}

	if rel, err := filepath.Rel(abs, path); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}

	return path
}

func writeLine(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format+"\n", args...)
}
