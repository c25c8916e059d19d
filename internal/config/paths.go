package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// appName names the per-user configuration directory.
	appName = "trash"

	// defaultTrashFolder is used when neither TRASH, a config file nor
	// --trash-folder says otherwise.
	defaultTrashFolder = "~/.local/share/Trash/files/"

	// EnvTrash overrides the default trash folder.
	EnvTrash = "TRASH"

	// EnvConfigFile points at a YAML config file.
	EnvConfigFile = "TRASH_CONFIG"
)

// homeDir returns the user's home directory, falling back to $HOME when
// the platform lookup fails.
func homeDir() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}
	return os.Getenv("HOME")
}

// configDir returns the directory holding config.yaml and env.
// Honours $XDG_CONFIG_HOME, then falls back to ~/.config.
func configDir() string {
	if x := os.Getenv("XDG_CONFIG_HOME"); x != "" {
		return filepath.Join(x, appName)
	}
	return filepath.Join(homeDir(), ".config", appName)
}

// DefaultConfigFile returns the config file consulted when --config is
// not given.
func DefaultConfigFile() string {
	return filepath.Join(configDir(), "config.yaml")
}

// DefaultEnvFile returns the dotenv file loaded before TRASH is read.
func DefaultEnvFile() string {
	return filepath.Join(configDir(), "env")
}

// DefaultTrashFolder returns the trash folder used when nothing else is
// configured: $TRASH if set, otherwise ~/.local/share/Trash/files/.
// The result is home-expanded.
func DefaultTrashFolder() string {
	if t := os.Getenv(EnvTrash); t != "" {
		return ExpandHome(t)
	}
	return ExpandHome(defaultTrashFolder)
}

// ExpandHome replaces a leading "~" (alone or followed by a separator)
// with the user's home directory. "~user" forms are left untouched.
func ExpandHome(path string) string {
	if path == "~" {
		return homeDir()
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~`+string(filepath.Separator)) {
		return filepath.Join(homeDir(), path[2:])
	}
	return path
}
