package app

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	_ "github.com/taskdeck/taskdeck/testing"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"bogus": slog.LevelInfo,
		"":      slog.LevelInfo,
	} {
		require.Equal(t, want, parseLevel(&Config{LogLevel: in}), "level %q", in)
	}
	require.Equal(t, slog.LevelInfo, parseLevel(nil))
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	logger := NewLogger(&Config{LogFormat: "json", LogLevel: "warn"})
	require.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
	require.True(t, logger.Enabled(t.Context(), slog.LevelWarn))
}
