package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/lakshaymaurya-felt/trash/internal/config"
	"github.com/lakshaymaurya-felt/trash/internal/logging"
	"github.com/lakshaymaurya-felt/trash/internal/trash"
)

const programName = "trash"

// Exit statuses.
const (
	exitOK      = 0
	exitFailure = 1 // at least one target failed
	exitAbort   = 2 // fatal error, brittle abort, or bad usage
)

var (
	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

// options holds the raw command-line flags before they are layered over
// the config file and environment.
type options struct {
	overwrite   bool
	complain    bool
	verbose     int
	debug       bool
	brittle     bool
	dryRun      bool
	version     bool
	trashFolder string
	configFile  string
}

func bindFlags(fs *pflag.FlagSet, o *options) {
	fs.BoolVarP(&o.overwrite, "overwrite", "o", false,
		"Overwrite files with identical names already present in the TRASH. Default behavior is to append a number to the end of the filename before moving it to the trash.")
	fs.BoolVarP(&o.complain, "complain", "c", false,
		"Skip and print a complaint if a file with identical name is already present in the TRASH; fatal if -b is present. Takes precedence over -o.")
	fs.CountVarP(&o.verbose, "verbose", "v",
		"Display helpful messages; repeat (-vv) for debugging information.")
	fs.BoolVar(&o.debug, "debug", false, "Display debugging information.")
	fs.BoolVar(&o.debug, "very-verbose", false, "Same as --debug.")
	fs.BoolVarP(&o.brittle, "brittle", "b", false,
		"Immediately exit on the first error.")
	fs.BoolVarP(&o.dryRun, "dry-run", "n", false,
		"Show what would be moved without touching anything.")
	fs.BoolVar(&o.version, "version", false,
		"Print name and version info and then exit.")
	fs.StringVarP(&o.trashFolder, "trash-folder", "t", "",
		fmt.Sprintf("Specify the TRASH folder. Defaults to $%s or %s.", config.EnvTrash, config.DefaultTrashFolder()))
	fs.StringVar(&o.configFile, "config", os.Getenv(config.EnvConfigFile),
		fmt.Sprintf("Path to a YAML config file (default %s).", config.DefaultConfigFile()))
}

// resolve layers the flags over the config file and environment.
func (o *options) resolve(files []string) (*config.Config, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, err
	}

	if o.trashFolder != "" {
		cfg.TrashFolder = config.ExpandHome(o.trashFolder)
	}
	if o.overwrite || o.complain {
		cfg.Policy = config.ResolvePolicy(o.overwrite, o.complain)
	}
	switch {
	case o.debug:
		cfg.Verbosity = config.VerbosityDebug
	case o.verbose > 0:
		cfg.Verbosity = config.VerbosityFromCount(o.verbose)
	}
	cfg.Brittle = cfg.Brittle || o.brittle
	cfg.DryRun = o.dryRun
	cfg.Files = files

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   programName + " [flags] FILE...",
		Short: "Move files to the TRASH",
		Long: `Moves files to the TRASH instead of deleting them.

When a file with the same name is already in the TRASH, a number is
appended to the new file's name (photo.jpg -> photo.jpg0, photo.jpg1, ...)
unless --overwrite or --complain says otherwise.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}
	bindFlags(cmd.Flags(), opts)
	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	// Errors past this point are logged by us, not printed with usage.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	stderr := cmd.ErrOrStderr()

	cfg, err := opts.resolve(args)
	if err != nil {
		logging.New(stderr, programName, slog.LevelWarn).Error(err.Error())
		return &exitError{code: exitAbort, err: err}
	}

	logger := logging.New(stderr, programName, cfg.Verbosity.Level())
	logger.Debug("parsed configuration",
		slog.String("trash", cfg.TrashFolder),
		slog.String("policy", string(cfg.Policy)),
		slog.Bool("brittle", cfg.Brittle),
		slog.Bool("dry_run", cfg.DryRun),
		slog.String("verbosity", cfg.Verbosity.String()),
		slog.Any("files", cfg.Files))
	if opts.overwrite && opts.complain {
		logger.Warn("both --overwrite and --complain given; --complain wins")
	}

	report, err := trash.New(cfg, logger).Run(cfg.Files)
	if err != nil {
		return &exitError{code: exitAbort, err: err}
	}
	if report.Failed() {
		return &exitError{code: exitFailure}
	}
	return nil
}

// exitError carries a process exit status out of cobra. The underlying
// error, if any, has already been logged.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func (e *exitError) Unwrap() error { return e.err }

// ExitCode maps an error returned by Execute to a process exit status.
// Errors cobra raises itself (unknown flag, missing FILE) are usage errors.
func ExitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitAbort
}

// Execute runs the root command against os.Args.
func Execute() error {
	return execute(os.Args[1:], os.Stdout, os.Stderr)
}

func execute(args []string, stdout, stderr io.Writer) error {
	// --version wins over everything else, including missing FILE
	// operands and flags cobra would reject.
	if wantsVersion(args) {
		printVersion(stdout)
		return nil
	}

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}
