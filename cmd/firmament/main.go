// Command firmament is a console exploration game narrated by a local language model.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/talgya/firmament/internal/config"
	"github.com/talgya/firmament/internal/game"
	"github.com/talgya/firmament/internal/llm"
	"github.com/talgya/firmament/internal/persistence"
	"github.com/talgya/firmament/internal/telemetry"
	"github.com/talgya/firmament/internal/world"
)

func main() {
	config.LoadDotEnv()
	os.Exit(run(os.Stdin, os.Stdout))
}

// run plays one session and returns the process exit code. Every return path
// flushes telemetry and closes the journal.
func run(in io.Reader, out io.Writer) int {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}

	// Narration owns stdout; logs go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)

	ctx := context.Background()

	// ── Telemetry ─────────────────────────────────────────────────────
	flush := func() {}
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName)
		if err != nil {
			slog.Warn("telemetry setup failed, continuing without traces", "error", err)
		} else {
			flush = func() {
				if err := shutdown(context.Background()); err != nil {
					slog.Warn("telemetry shutdown failed", "error", err)
				}
			}
		}
	}
	defer flush()

	// ── World (always rebuilt, deterministic from seed) ───────────────
	gen := world.DefaultGenConfig()
	gen.Seed = cfg.World.Seed
	worldMap, err := world.Build(gen)
	if err != nil {
		slog.Error("failed to build world", "error", err)
		return 1
	}
	slog.Info("world built", "map", worldMap.String())
	for t, c := range world.TerrainCounts(worldMap) {
		slog.Debug("terrain", "type", world.TerrainName(t), "count", c)
	}
	w, err := world.New(worldMap)
	if err != nil {
		slog.Error("failed to place player", "error", err)
		return 1
	}

	// ── Journal ───────────────────────────────────────────────────────
	db, err := persistence.Open(cfg.Journal.Path)
	if err != nil {
		slog.Error("failed to open journal", "path", cfg.Journal.Path, "error", err)
		return 1
	}
	defer db.Close()

	// ── Narrator ──────────────────────────────────────────────────────
	client := llm.NewClient(cfg.LLM())
	slog.Info("narrator ready", "url", cfg.Narration.URL, "model", client.Model())

	session := game.New(w, client, game.WithJournal(db))
	if err := db.StartSession(ctx, session.ID, map[string]string{
		"model": client.Model(),
		"seed":  strconv.FormatInt(cfg.World.Seed, 10),
	}); err != nil {
		slog.Warn("journal session meta not saved", "error", err)
	}

	// A blocked console read cannot be cancelled, so a signal ends the process here.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		signal.Stop(sigCh)
		close(sigCh)
	}()
	go func() {
		sig, ok := <-sigCh
		if !ok {
			return
		}
		slog.Info("received signal, shutting down", "signal", sig)
		flush()
		db.Close()
		fmt.Fprintln(out)
		os.Exit(0)
	}()

	if err := session.Run(ctx, in, out); err != nil {
		slog.Error("session ended with error", "error", err)
		return 1
	}
	return 0
}
