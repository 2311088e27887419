package main

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response":"Grass bends in the wind."}`))
	}))
	t.Cleanup(srv.Close)

	journal := filepath.Join(t.TempDir(), "journal.db")
	t.Setenv("FIRMAMENT_CONFIG", "")
	t.Setenv("OLLAMA_URL", srv.URL)
	t.Setenv("FIRMAMENT_JOURNAL", journal)
	t.Setenv("FIRMAMENT_TELEMETRY", "false")
	t.Setenv("FIRMAMENT_SEED", "")
	return journal
}

func TestRun_QuitExitsCleanly(t *testing.T) {
	journal := setupEnv(t)
	var out bytes.Buffer

	code := run(strings.NewReader("east\nquit\n"), &out)
	assert.Equal(t, 0, code)
	assert.Contains(t, out.String(), "Grass bends in the wind.")

	_, err := os.Stat(journal + "-wal")
	assert.True(t, errors.Is(err, os.ErrNotExist), "journal was not closed: %v", err)
}

func TestRun_ReadErrorStillClosesJournal(t *testing.T) {
	journal := setupEnv(t)
	in := io.MultiReader(strings.NewReader("east\n"), iotest.ErrReader(errors.New("tty gone")))

	code := run(in, io.Discard)
	assert.Equal(t, 1, code)

	_, err := os.Stat(journal)
	require.NoError(t, err)
	_, err = os.Stat(journal + "-wal")
	assert.True(t, errors.Is(err, os.ErrNotExist), "journal was not closed: %v", err)
}

func TestRun_BadConfigFails(t *testing.T) {
	setupEnv(t)
	t.Setenv("FIRMAMENT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Equal(t, 1, run(strings.NewReader(""), io.Discard))
}
