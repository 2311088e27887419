package game

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/talgya/firmament/internal/world"
)

const historyLimit = 10

// Run prints the welcome narration, then reads commands from in until EOF,
// "quit"/"exit", or ctx is cancelled. Empty lines are ignored; whitespace-only
// lines get the help text. Console input is trimmed before it reaches Update.
func (s *Session) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, s.Start(ctx))

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			fmt.Fprintln(out)
			return nil
		}

		raw := scanner.Text()
		if raw == "" {
			continue
		}
		line := strings.TrimSpace(raw)

		switch strings.ToLower(line) {
		case "quit", "exit":
			fmt.Fprintln(out, "The world holds its breath until you return.")
			return nil
		case "look":
			fmt.Fprintln(out, s.Describe(ctx))
		case "history":
			s.printHistory(ctx, out)
		default:
			fmt.Fprintln(out, s.Update(ctx, line))
		}
	}
}

// printHistory lists the latest journal turns, oldest first.
func (s *Session) printHistory(ctx context.Context, out io.Writer) {
	if s.journal == nil {
		fmt.Fprintln(out, "No journal configured.")
		return
	}

	turns, err := s.journal.RecentTurns(ctx, s.ID, historyLimit)
	if err != nil {
		fmt.Fprintf(out, "The journal is unreadable: %v\n", err)
		return
	}
	if len(turns) == 0 {
		fmt.Fprintln(out, "Nothing has happened yet.")
		return
	}

	for i := len(turns) - 1; i >= 0; i-- {
		t := turns[i]
		pos := world.Coord{X: t.X, Y: t.Y, Z: t.Z}
		fmt.Fprintf(out, "#%d %s -> %s (%s)\n", t.Seq, t.Input, pos, humanize.Time(t.CreatedAt))
	}
}
