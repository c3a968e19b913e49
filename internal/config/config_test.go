package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.ListenAddr)
	require.Equal(t, ".", cfg.AssetsDir)
	require.Equal(t, time.Hour, cfg.IndexMaxAge)
	require.Equal(t, "/ws", cfg.WS.Path)
	require.Equal(t, "chess", cfg.WS.Subprotocol)
	require.Equal(t, "glinski:moves", cfg.Journal.ListKey)
	require.Equal(t, "legacy", cfg.Log.Format)
	require.Empty(t, cfg.RedisURL)
}

func TestLoadLayersFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glinski.yaml")
	body := `
listen_addr: "127.0.0.1:9000"
assets_dir: /srv/www
ws:
  write_timeout: 3s
journal:
  max_len: 50
log:
  format: json
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("ASSETS_DIR", "/opt/assets")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	require.Equal(t, "/opt/assets", cfg.AssetsDir, "environment wins over the file")
	require.Equal(t, 3*time.Second, cfg.WS.WriteTimeout)
	require.Equal(t, "/ws", cfg.WS.Path, "unset keys keep their defaults")
	require.EqualValues(t, 50, cfg.Journal.MaxLen)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"relative ws path":  {"WS_PATH": "ws"},
		"bad duration":      {"WS_WRITE_TIMEOUT": "not-a-duration"},
		"zero timeout":      {"WS_WRITE_TIMEOUT": "0s"},
		"negative max len":  {"JOURNAL_MAX_LEN": "-1"},
		"missing file":      {"CONFIG_FILE": "/nonexistent/glinski.yaml"},
		"blank listen addr": {"LISTEN_ADDR": "  "},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv("CONFIG_FILE", "")
			for k, v := range vars {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
		})
	}
}

func TestLoadLogNormalizesFormat(t *testing.T) {
	t.Setenv("LOG_FORMAT", "XML")
	t.Setenv("LOG_TO_FILE", "true")
	lc, err := LoadLog()
	require.NoError(t, err)
	require.Equal(t, "legacy", lc.Format)
	require.True(t, lc.ToFile)
	require.True(t, lc.ToConsole)
}
