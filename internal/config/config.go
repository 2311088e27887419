// Package config loads settings from defaults, an optional YAML file, .env and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/talgya/firmament/internal/llm"
	"github.com/talgya/firmament/internal/telemetry"
)

// memoryJournal keeps the journal in-process; it matches persistence.MemoryPath.
const memoryJournal = ":memory:"

// Config is the root configuration.
type Config struct {
	Narration NarrationConfig `yaml:"narration"`
	World     WorldConfig     `yaml:"world"`
	Journal   JournalConfig   `yaml:"journal"`
	Log       LogConfig       `yaml:"log"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

type NarrationConfig struct {
	URL     string        `yaml:"url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"` // 0 waits forever
}

type WorldConfig struct {
	Seed int64 `yaml:"seed"`
}

type JournalConfig struct {
	Path string `yaml:"path"` // ":memory:" keeps the transcript in-process only
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type TelemetryConfig struct {
	Enabled     bool   `yaml:"enabled"`
	ServiceName string `yaml:"service_name"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Narration: NarrationConfig{
			URL:   llm.DefaultURL,
			Model: llm.DefaultModel,
		},
		World:     WorldConfig{Seed: 42},
		Journal:   JournalConfig{Path: memoryJournal},
		Log:       LogConfig{Level: "warn"},
		Telemetry: TelemetryConfig{ServiceName: telemetry.DefaultServiceName},
	}
}

// LoadDotEnv loads .env from the working directory. A missing file is fine.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn(".env not loaded", "error", err)
	}
}

// Load builds the configuration: defaults, then the YAML file, then environment overrides.
// If path is empty, FIRMAMENT_CONFIG is consulted; no file at all is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("FIRMAMENT_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Narration.URL = envOrDefault("OLLAMA_URL", c.Narration.URL)
	c.Narration.Model = envOrDefault("OLLAMA_MODEL", c.Narration.Model)
	c.Narration.Timeout = envDurationOrDefault("OLLAMA_TIMEOUT", c.Narration.Timeout)
	c.World.Seed = int64(envIntOrDefault("FIRMAMENT_SEED", int(c.World.Seed)))
	c.Journal.Path = envOrDefault("FIRMAMENT_JOURNAL", c.Journal.Path)
	c.Log.Level = envOrDefault("FIRMAMENT_LOG_LEVEL", c.Log.Level)
	if v := os.Getenv("FIRMAMENT_TELEMETRY"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Telemetry.Enabled = b
		}
	}
}

// SlogLevel maps the configured level name onto slog. Unknown names fall back to warn.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// LLM returns the narration client settings.
func (c Config) LLM() llm.Config {
	return llm.Config{
		URL:     c.Narration.URL,
		Model:   c.Narration.Model,
		Timeout: c.Narration.Timeout,
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envIntOrDefault(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
