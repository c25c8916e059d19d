// Package config resolves the options for a single trash invocation.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Policy decides what happens when a target's base filename already exists
// in the trash folder.
type Policy string

// Conflict policies.
const (
	PolicyUniquify  Policy = "uniquify"
	PolicyOverwrite Policy = "overwrite"
	PolicySkip      Policy = "skip-and-warn"
)

// ResolvePolicy turns the --overwrite and --complain flags into a single
// policy. --complain wins when both are set.
func ResolvePolicy(overwrite, complain bool) Policy {
	switch {
	case complain:
		return PolicySkip
	case overwrite:
		return PolicyOverwrite
	default:
		return PolicyUniquify
	}
}

// ParsePolicy accepts the names used in config files. "skip" and "complain"
// are accepted as aliases of skip-and-warn, "rename" of uniquify.
func ParsePolicy(raw string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(PolicyUniquify), "rename":
		return PolicyUniquify, nil
	case string(PolicyOverwrite):
		return PolicyOverwrite, nil
	case string(PolicySkip), "skip", "complain":
		return PolicySkip, nil
	default:
		return "", fmt.Errorf("invalid conflict policy %q (allowed: uniquify|overwrite|skip-and-warn)", raw)
	}
}

// Verbosity gates which log lines reach stderr.
type Verbosity int

// Verbosity levels. Quiet still shows warnings and errors.
const (
	VerbosityQuiet Verbosity = iota
	VerbosityInfo
	VerbosityDebug
)

// VerbosityFromCount maps the number of -v flags to a verbosity.
func VerbosityFromCount(n int) Verbosity {
	switch {
	case n >= 2:
		return VerbosityDebug
	case n == 1:
		return VerbosityInfo
	default:
		return VerbosityQuiet
	}
}

// ParseVerbosity accepts "quiet", "info" and "debug" (and "verbose" as an
// alias of info).
func ParseVerbosity(raw string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "quiet", "warning", "warn":
		return VerbosityQuiet, nil
	case "info", "verbose":
		return VerbosityInfo, nil
	case "debug":
		return VerbosityDebug, nil
	default:
		return 0, fmt.Errorf("invalid verbosity %q (allowed: quiet|info|debug)", raw)
	}
}

// Level returns the minimum slog level shown at this verbosity.
func (v Verbosity) Level() slog.Level {
	switch v {
	case VerbosityDebug:
		return slog.LevelDebug
	case VerbosityInfo:
		return slog.LevelInfo
	default:
		return slog.LevelWarn
	}
}

func (v Verbosity) String() string {
	switch v {
	case VerbosityDebug:
		return "debug"
	case VerbosityInfo:
		return "info"
	default:
		return "quiet"
	}
}

// Config is the fully resolved, per-invocation configuration.
type Config struct {
	// TrashFolder is the directory targets are moved into. It must already
	// exist; it is never created.
	TrashFolder string

	// Policy handles base-name collisions inside TrashFolder.
	Policy Policy

	// Brittle turns the first per-target error into a fatal abort.
	Brittle bool

	// DryRun logs the planned action for every target without touching
	// the filesystem.
	DryRun bool

	Verbosity Verbosity

	// Files are the targets, processed in order.
	Files []string
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.TrashFolder, validation.Required),
		validation.Field(&c.Policy, validation.Required,
			validation.In(PolicyUniquify, PolicyOverwrite, PolicySkip)),
		validation.Field(&c.Verbosity, validation.Min(VerbosityQuiet), validation.Max(VerbosityDebug)),
		validation.Field(&c.Files, validation.Required, validation.Each(validation.Required)),
	)
}

// NewDefaultConfig returns a Config holding the built-in defaults only.
// The TRASH variable is applied separately by Load so that it can take
// precedence over the config file.
func NewDefaultConfig() *Config {
	return &Config{
		TrashFolder: ExpandHome(defaultTrashFolder),
		Policy:      PolicyUniquify,
		Verbosity:   VerbosityQuiet,
	}
}
