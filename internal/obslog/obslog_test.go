package obslog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/park285/glinski-chess/internal/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "glinski.log")
	logger, err := New(config.LogConfig{Level: "debug", Format: "json", ToFile: true, File: path})
	require.NoError(t, err)
	logger.Debug("move_applied", zap.String("session_id", "a"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"msg":"move_applied"`)
	require.Contains(t, string(data), `"session_id":"a"`)
}

func TestLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glinski.log")
	logger, err := New(config.LogConfig{Level: "warn", Format: "legacy", ToFile: true, File: path})
	require.NoError(t, err)
	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NotContains(t, string(data), "hidden", "info line leaked through warn level")
	require.Contains(t, string(data), "WARN | ")
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARNING": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range cases {
		require.Equal(t, want, parseLevel(in), "parseLevel(%q)", in)
	}
}

func TestInitInstallsLogger(t *testing.T) {
	prev := L()
	t.Cleanup(func() { globalLogger = prev })
	require.NoError(t, Init(config.LogConfig{Level: "info", Format: "console"}))
	require.NotSame(t, prev, L())
}
