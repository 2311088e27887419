// Package game runs a play session: it owns the world, asks the narrator for prose,
// and keeps the turn journal.
package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/talgya/firmament/internal/llm"
	"github.com/talgya/firmament/internal/persistence"
	"github.com/talgya/firmament/internal/telemetry"
	"github.com/talgya/firmament/internal/world"
)

// Narrator turns a prompt into prose. Failures come back inside the Narration.
type Narrator interface {
	Narrate(ctx context.Context, prompt string) llm.Narration
}

// Journal records narrated turns.
type Journal interface {
	RecordTurn(ctx context.Context, t persistence.Turn) error
	RecentTurns(ctx context.Context, sessionID string, limit int) ([]persistence.Turn, error)
}

// Session holds all state for one player's run.
type Session struct {
	ID       string
	world    *world.World
	narrator Narrator
	journal  Journal
	seq      int
	now      func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithJournal records every narrated turn to j.
func WithJournal(j Journal) Option {
	return func(s *Session) { s.journal = j }
}

// WithClock overrides the journal timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates a session over w that narrates through n.
func New(w *world.World, n Narrator, opts ...Option) *Session {
	s := &Session{
		ID:       uuid.NewString(),
		world:    w,
		narrator: n,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// World exposes the session's world for inspection.
func (s *Session) World() *world.World {
	return s.world
}

// Start narrates the welcome scene.
func (s *Session) Start(ctx context.Context) llm.Narration {
	pos := s.world.Position()
	prompt := welcomePrompt(pos, s.world.Here(), s.world.Neighbors())
	return s.narrate(ctx, "start", prompt)
}

// Describe narrates the current location.
func (s *Session) Describe(ctx context.Context) llm.Narration {
	return s.describe(ctx, "look")
}

func (s *Session) describe(ctx context.Context, input string) llm.Narration {
	pos := s.world.Position()
	prompt := describePrompt(pos, s.world.Here(), s.world.Neighbors())
	return s.narrate(ctx, input, prompt)
}

// Move attempts a step. A rejected move leaves the player in place and narrates the refusal.
func (s *Session) Move(ctx context.Context, dir world.Direction) llm.Narration {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.move")
	defer span.End()

	res := s.world.Move(dir)
	span.SetAttributes(
		attribute.String("move.direction", string(dir)),
		attribute.Bool("move.moved", res.Moved),
		attribute.String("move.to", res.To.String()),
	)

	switch res.Blocked {
	case world.BlockedFirmament:
		slog.Debug("move blocked", "direction", dir, "reason", "firmament", "at", res.From)
		return s.narrate(ctx, string(dir), firmamentPrompt(res.From))
	case world.BlockedEdge:
		slog.Debug("move blocked", "direction", dir, "reason", "edge", "at", res.From)
		return s.narrate(ctx, string(dir), edgePrompt(res.From, dir, s.world.Map.Bounds))
	}

	slog.Debug("moved", "direction", dir, "from", res.From, "to", res.To)
	return s.describe(ctx, string(dir))
}

// Update interprets one line of player input. Directions move the player;
// anything else returns HelpText without narrating.
func (s *Session) Update(ctx context.Context, input string) string {
	dir, ok := world.ParseDirection(input)
	if !ok {
		return HelpText
	}
	return s.Move(ctx, dir).String()
}

func (s *Session) narrate(ctx context.Context, input, prompt string) llm.Narration {
	n := s.narrator.Narrate(ctx, prompt)
	s.record(ctx, input, prompt, n)
	return n
}

func (s *Session) record(ctx context.Context, input, prompt string, n llm.Narration) {
	s.seq++
	if s.journal == nil {
		return
	}

	pos := s.world.Position()
	t := persistence.Turn{
		SessionID: s.ID,
		Seq:       s.seq,
		Input:     input,
		X:         pos.X,
		Y:         pos.Y,
		Z:         pos.Z,
		Prompt:    prompt,
		Narration: n.Text,
		Failed:    n.Failed(),
		CreatedAt: s.now(),
	}
	if n.Failed() {
		t.Narration = n.Err.Error()
	}
	if err := s.journal.RecordTurn(ctx, t); err != nil {
		slog.Warn("journal write failed", "seq", s.seq, "error", err)
	}
}
