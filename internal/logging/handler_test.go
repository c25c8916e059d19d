package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHandler_LevelGating(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "trash", slog.LevelWarn)

	logger.Debug("hidden")
	logger.Info("hidden too")
	logger.Warn("shown")

	require.Equal(t, "trash: WARNING: shown\n", buf.String())
}

func TestHandler_CriticalLabel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "", slog.LevelDebug)

	logger.Log(context.Background(), LevelCritical, "trash folder is gone")
	logger.Error("plain error")

	require.Equal(t, "CRITICAL: trash folder is gone\nERROR: plain error\n", buf.String())
}

func TestHandler_Attrs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "trash", slog.LevelDebug).With("run", 1).WithGroup("target")

	logger.Debug("moved", slog.String("path", "a b.txt"), slog.String("dest", "x"))

	require.Equal(t, "trash: DEBUG: moved run=1 target.path=\"a b.txt\" target.dest=x\n", buf.String())
}

func TestHandler_NoColourOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	h := NewHandler(&buf, "", nil)
	require.Nil(t, h.styles)
	require.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	require.False(t, h.Enabled(context.Background(), slog.LevelDebug))
}
