package config

import (
	"go/parser"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("FIRMAMENT_CONFIG", "")
	t.Setenv("OLLAMA_URL", "")
	t.Setenv("OLLAMA_MODEL", "")
	t.Setenv("FIRMAMENT_JOURNAL", "")
	t.Setenv("FIRMAMENT_LOG_LEVEL", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:11434/api/generate", cfg.Narration.URL)
	assert.Equal(t, "gemma3:1b", cfg.Narration.Model)
	assert.Zero(t, cfg.Narration.Timeout)
	assert.Equal(t, int64(42), cfg.World.Seed)
	assert.Equal(t, ":memory:", cfg.Journal.Path)
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "firmament.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
narration:
  url: http://ollama:11434/api/generate
  model: llama3.2
  timeout: 45s
world:
  seed: 7
log:
  level: debug
telemetry:
  enabled: true
`), 0o644))

	t.Setenv("OLLAMA_URL", "")
	t.Setenv("OLLAMA_MODEL", "mistral")
	t.Setenv("FIRMAMENT_LOG_LEVEL", "")
	t.Setenv("FIRMAMENT_JOURNAL", "journal.db")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://ollama:11434/api/generate", cfg.Narration.URL)
	assert.Equal(t, "mistral", cfg.Narration.Model)
	assert.Equal(t, 45*time.Second, cfg.Narration.Timeout)
	assert.Equal(t, int64(7), cfg.World.Seed)
	assert.Equal(t, "journal.db", cfg.Journal.Path)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.True(t, cfg.Telemetry.Enabled)
	assert.Equal(t, "firmament", cfg.Telemetry.ServiceName)

	llmCfg := cfg.LLM()
	assert.Equal(t, "mistral", llmCfg.Model)
	assert.Equal(t, 45*time.Second, llmCfg.Timeout)
}

func TestLoad_PathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world:\n  seed: 99\n"), 0o644))
	t.Setenv("FIRMAMENT_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(99), cfg.World.Seed)
}

func TestLoad_BadInput(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("world: [unclosed"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestEnvOverridesIgnoreGarbage(t *testing.T) {
	t.Setenv("FIRMAMENT_CONFIG", "")
	t.Setenv("FIRMAMENT_SEED", "not-a-number")
	t.Setenv("OLLAMA_TIMEOUT", "soon")
	t.Setenv("FIRMAMENT_TELEMETRY", "maybe")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.World.Seed)
	assert.Zero(t, cfg.Narration.Timeout)
	assert.False(t, cfg.Telemetry.Enabled)
}

func TestConfigDoesNotImportStorage(t *testing.T) {
	f, err := parser.ParseFile(token.NewFileSet(), "config.go", nil, parser.ImportsOnly)
	require.NoError(t, err)

	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		require.NoError(t, err)
		assert.NotEqual(t, "github.com/talgya/firmament/internal/persistence", path)
		assert.NotEqual(t, "modernc.org/sqlite", path)
	}
}
