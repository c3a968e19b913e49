package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// AppConfig is the server configuration. Values are layered: built-in
// defaults, then the YAML file named by CONFIG_FILE, then the environment.
type AppConfig struct {
	ListenAddr string `yaml:"listen_addr" env:"LISTEN_ADDR"`
	AssetsDir  string `yaml:"assets_dir" env:"ASSETS_DIR"`
	// IndexMaxAge is the Cache-Control max-age for index.html.
	IndexMaxAge time.Duration `yaml:"index_max_age" env:"INDEX_MAX_AGE"`

	WS WSConfig `yaml:"ws"`

	RedisURL    string        `yaml:"redis_url" env:"REDIS_URL"`
	DatabaseURL string        `yaml:"database_url" env:"DATABASE_URL"`
	Journal     JournalConfig `yaml:"journal"`

	// MessagesDir holds YAML overrides for the message catalog.
	MessagesDir string `yaml:"messages_dir" env:"MESSAGES_DIR"`

	Log LogConfig `yaml:"log"`
}

type WSConfig struct {
	Path         string        `yaml:"path" env:"WS_PATH"`
	Subprotocol  string        `yaml:"subprotocol" env:"WS_SUBPROTOCOL"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"WS_WRITE_TIMEOUT"`
	// HelloTimeout bounds the wait for the session id frame.
	HelloTimeout time.Duration `yaml:"hello_timeout" env:"WS_HELLO_TIMEOUT"`
	ReadLimit    int64         `yaml:"read_limit" env:"WS_READ_LIMIT"`
}

type JournalConfig struct {
	ListKey string `yaml:"list_key" env:"JOURNAL_LIST_KEY"`
	Channel string `yaml:"channel" env:"JOURNAL_CHANNEL"`
	MaxLen  int64  `yaml:"max_len" env:"JOURNAL_MAX_LEN"`
	Table   string `yaml:"table" env:"JOURNAL_TABLE"`
}

type LogConfig struct {
	Level     string `yaml:"level" env:"LOG_LEVEL"`
	Format    string `yaml:"format" env:"LOG_FORMAT"`
	ToConsole bool   `yaml:"to_console" env:"LOG_TO_CONSOLE"`
	ToFile    bool   `yaml:"to_file" env:"LOG_TO_FILE"`
	File      string `yaml:"file" env:"LOG_FILE"`
	Caller    bool   `yaml:"caller" env:"LOG_CALLER"`
}

func Defaults() *AppConfig {
	return &AppConfig{
		ListenAddr:  "0.0.0.0:8080",
		AssetsDir:   ".",
		IndexMaxAge: time.Hour,
		WS: WSConfig{
			Path:         "/ws",
			Subprotocol:  "chess",
			WriteTimeout: 10 * time.Second,
			HelloTimeout: 30 * time.Second,
			ReadLimit:    4096,
		},
		Journal: JournalConfig{
			ListKey: "glinski:moves",
			Channel: "glinski:events",
			MaxLen:  10000,
			Table:   "glinski_moves",
		},
		Log: DefaultLog(),
	}
}

func DefaultLog() LogConfig {
	return LogConfig{
		Level:     "info",
		Format:    "legacy",
		ToConsole: true,
		ToFile:    false,
		File:      "logs/glinski.log",
	}
}

func Load() (*AppConfig, error) {
	cfg := Defaults()
	if path := strings.TrimSpace(os.Getenv("CONFIG_FILE")); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadLog reads only the logging section from the environment. Used by tools
// that do not need the full server configuration.
func LoadLog() (LogConfig, error) {
	lc := DefaultLog()
	if err := env.Parse(&lc); err != nil {
		return lc, fmt.Errorf("parse env: %w", err)
	}
	lc.normalize()
	return lc, nil
}

func loadFile(path string, cfg *AppConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *AppConfig) Validate() error {
	c.ListenAddr = strings.TrimSpace(c.ListenAddr)
	if c.ListenAddr == "" {
		return errors.New("LISTEN_ADDR is required")
	}
	if strings.TrimSpace(c.AssetsDir) == "" {
		c.AssetsDir = "."
	}
	if !strings.HasPrefix(c.WS.Path, "/") || c.WS.Path == "/" {
		return fmt.Errorf("WS_PATH must start with '/': %q", c.WS.Path)
	}
	if strings.TrimSpace(c.WS.Subprotocol) == "" {
		return errors.New("WS_SUBPROTOCOL is required")
	}
	if c.WS.WriteTimeout <= 0 {
		return fmt.Errorf("WS_WRITE_TIMEOUT must be positive: %s", c.WS.WriteTimeout)
	}
	if c.WS.HelloTimeout <= 0 {
		return fmt.Errorf("WS_HELLO_TIMEOUT must be positive: %s", c.WS.HelloTimeout)
	}
	if c.Journal.MaxLen < 0 {
		return fmt.Errorf("JOURNAL_MAX_LEN must not be negative: %d", c.Journal.MaxLen)
	}
	if c.IndexMaxAge < 0 {
		c.IndexMaxAge = 0
	}
	c.Log.normalize()
	return nil
}

// normalize falls back to the legacy format for unknown values.
func (l *LogConfig) normalize() {
	l.Format = strings.ToLower(strings.TrimSpace(l.Format))
	if l.Format != "legacy" && l.Format != "json" && l.Format != "console" {
		l.Format = "legacy"
	}
	l.Level = strings.ToLower(strings.TrimSpace(l.Level))
	if l.Level == "" {
		l.Level = "info"
	}
}
