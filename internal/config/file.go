package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML form of the persistent defaults.
//
//	trash_folder: ~/.local/share/Trash/files
//	conflict_policy: uniquify
//	brittle: false
//	verbosity: quiet
type FileConfig struct {
	TrashFolder    string `yaml:"trash_folder"`
	ConflictPolicy string `yaml:"conflict_policy"`
	Brittle        bool   `yaml:"brittle"`
	Verbosity      string `yaml:"verbosity"`
}

// Validate validates the file configuration.
func (f *FileConfig) Validate() error {
	return validation.ValidateStruct(f,
		validation.Field(&f.ConflictPolicy, validation.By(func(any) error {
			_, err := ParsePolicy(f.ConflictPolicy)
			return err
		})),
		validation.Field(&f.Verbosity, validation.By(func(any) error {
			_, err := ParseVerbosity(f.Verbosity)
			return err
		})),
	)
}

// Apply layers the non-empty file settings over cfg.
func (f *FileConfig) Apply(cfg *Config) error {
	if f.TrashFolder != "" {
		cfg.TrashFolder = ExpandHome(f.TrashFolder)
	}
	if f.ConflictPolicy != "" {
		p, err := ParsePolicy(f.ConflictPolicy)
		if err != nil {
			return err
		}
		cfg.Policy = p
	}
	if f.Verbosity != "" {
		v, err := ParseVerbosity(f.Verbosity)
		if err != nil {
			return err
		}
		cfg.Verbosity = v
	}
	cfg.Brittle = cfg.Brittle || f.Brittle
	return nil
}

// LoadFile reads a FileConfig from filename. $VAR references are expanded
// before parsing, unknown keys are rejected and an empty file yields an
// empty FileConfig.
func LoadFile(filename string) (*FileConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", filename, err)
	}

	var fc FileConfig
	dec := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", filename, err)
	}

	if err := fc.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", filename, err)
	}
	return &fc, nil
}

// LoadEnvFile reads KEY=VALUE pairs from filename into the process
// environment. Variables that are already set keep their value. A missing
// file is not an error.
func LoadEnvFile(filename string) error {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(filename); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", filename, err)
	}
	return nil
}

// Load builds the configuration from every source below the command line:
// built-in defaults, then the config file, then $TRASH. The env file is
// read first so it can supply TRASH.
//
// configFile may be empty, in which case DefaultConfigFile is used if it
// exists. An explicitly named file must exist.
func Load(configFile string) (*Config, error) {
	if err := LoadEnvFile(DefaultEnvFile()); err != nil {
		return nil, err
	}

	cfg := NewDefaultConfig()

	explicit := configFile != ""
	if !explicit {
		configFile = DefaultConfigFile()
	}
	if _, err := os.Stat(configFile); err == nil || explicit {
		fc, err := LoadFile(configFile)
		if err != nil {
			return nil, err
		}
		if err := fc.Apply(cfg); err != nil {
			return nil, err
		}
	}

	if t := os.Getenv(EnvTrash); t != "" {
		cfg.TrashFolder = ExpandHome(t)
	}

	return cfg, nil
}
