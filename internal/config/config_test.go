package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolvePolicy(t *testing.T) {
	require.Equal(t, PolicyUniquify, ResolvePolicy(false, false))
	require.Equal(t, PolicyOverwrite, ResolvePolicy(true, false))
	require.Equal(t, PolicySkip, ResolvePolicy(false, true))
	// --complain is checked before --overwrite.
	require.Equal(t, PolicySkip, ResolvePolicy(true, true))
}

func TestParsePolicy(t *testing.T) {
	cases := map[string]Policy{
		"":              PolicyUniquify,
		"uniquify":      PolicyUniquify,
		"rename":        PolicyUniquify,
		"Overwrite":     PolicyOverwrite,
		"skip-and-warn": PolicySkip,
		" complain ":    PolicySkip,
	}
	for raw, want := range cases {
		got, err := ParsePolicy(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}

	_, err := ParsePolicy("shred")
	require.Error(t, err)
}

func TestVerbosity(t *testing.T) {
	require.Equal(t, VerbosityQuiet, VerbosityFromCount(0))
	require.Equal(t, VerbosityInfo, VerbosityFromCount(1))
	require.Equal(t, VerbosityDebug, VerbosityFromCount(2))
	require.Equal(t, VerbosityDebug, VerbosityFromCount(5))

	require.Equal(t, slog.LevelWarn, VerbosityQuiet.Level())
	require.Equal(t, slog.LevelInfo, VerbosityInfo.Level())
	require.Equal(t, slog.LevelDebug, VerbosityDebug.Level())

	v, err := ParseVerbosity("verbose")
	require.NoError(t, err)
	require.Equal(t, VerbosityInfo, v)
	_, err = ParseVerbosity("loud")
	require.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Files = []string{"a.txt"}
	require.NoError(t, cfg.Validate())

	noFiles := NewDefaultConfig()
	require.Error(t, noFiles.Validate(), "at least one target is required")

	emptyFile := NewDefaultConfig()
	emptyFile.Files = []string{""}
	require.Error(t, emptyFile.Validate())

	badPolicy := NewDefaultConfig()
	badPolicy.Files = []string{"a.txt"}
	badPolicy.Policy = "shred"
	require.Error(t, badPolicy.Validate())

	noTrash := NewDefaultConfig()
	noTrash.Files = []string{"a.txt"}
	noTrash.TrashFolder = ""
	require.Error(t, noTrash.Validate())
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	require.Equal(t, home, ExpandHome("~"))
	require.Equal(t, filepath.Join(home, ".trash"), ExpandHome("~/.trash"))
	require.Equal(t, "~other/trash", ExpandHome("~other/trash"))
	require.Equal(t, "/abs/trash", ExpandHome("/abs/trash"))
}

func TestDefaultTrashFolder(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	t.Setenv(EnvTrash, "")
	require.Equal(t, filepath.Join(home, ".local", "share", "Trash", "files"), DefaultTrashFolder())

	t.Setenv(EnvTrash, "~/bin")
	require.Equal(t, filepath.Join(home, "bin"), DefaultTrashFolder())
}

// isolate points every config lookup at a fresh directory.
func isolate(t *testing.T) (home, cfgDir string) {
	t.Helper()
	home = t.TempDir()
	xdg := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv(EnvTrash, "")
	cfgDir = filepath.Join(xdg, "trash")
	require.NoError(t, os.MkdirAll(cfgDir, 0o755))
	return home, cfgDir
}

func TestLoad_Defaults(t *testing.T) {
	home, _ := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, ".local", "share", "Trash", "files"), cfg.TrashFolder)
	require.Equal(t, PolicyUniquify, cfg.Policy)
	require.Equal(t, VerbosityQuiet, cfg.Verbosity)
	require.False(t, cfg.Brittle)
}

func TestLoad_ConfigFile(t *testing.T) {
	home, cfgDir := isolate(t)
	t.Setenv("TRASH_TEST_DIR", "bin")

	yaml := "trash_folder: ~/${TRASH_TEST_DIR}\nconflict_policy: overwrite\nbrittle: true\nverbosity: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "bin"), cfg.TrashFolder)
	require.Equal(t, PolicyOverwrite, cfg.Policy)
	require.Equal(t, VerbosityDebug, cfg.Verbosity)
	require.True(t, cfg.Brittle)
}

func TestLoad_EnvBeatsConfigFile(t *testing.T) {
	_, cfgDir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("trash_folder: /from/file\n"), 0o644))
	t.Setenv(EnvTrash, "/from/env")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "/from/env", cfg.TrashFolder)
}

func TestLoad_EnvFileSuppliesTrash(t *testing.T) {
	_, cfgDir := isolate(t)
	require.NoError(t, os.Unsetenv(EnvTrash))
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "env"), []byte("TRASH=/from/envfile\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "/from/envfile", cfg.TrashFolder)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	isolate(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidFile(t *testing.T) {
	_, cfgDir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfgDir, "config.yaml"), []byte("conflict_policy: shred\n"), 0o644))

	_, err := Load("")
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid conflict policy")
}

func TestLoadFile_UnknownKeyAndEmptyFile(t *testing.T) {
	dir := t.TempDir()

	typo := filepath.Join(dir, "typo.yaml")
	require.NoError(t, os.WriteFile(typo, []byte("trash_fodler: /tmp\n"), 0o644))
	_, err := LoadFile(typo)
	require.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	fc, err := LoadFile(empty)
	require.NoError(t, err)
	require.Equal(t, FileConfig{}, *fc)
}
