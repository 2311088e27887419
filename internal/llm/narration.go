// Narration: one generate attempt per prompt, failures carried as values.
package llm

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/talgya/firmament/internal/telemetry"
)

// Narration is the outcome of a narrate call: generated text or the reason there is none.
type Narration struct {
	Text string
	Err  error
}

// Failed returns true if the service produced no text.
func (n Narration) Failed() bool {
	return n.Err != nil
}

// String returns the text, or the in-world fallback line when narration failed.
func (n Narration) String() string {
	if n.Err != nil {
		return fmt.Sprintf("Error: %v - the world fades to silence", n.Err)
	}
	return n.Text
}

// Narrate sends prompt to the model once. It never returns an error; a failed call
// yields a Narration carrying the failure detail.
func (c *Client) Narrate(ctx context.Context, prompt string) Narration {
	ctx, span := telemetry.Tracer("llm").Start(ctx, "llm.narrate")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", c.model),
		attribute.Int("llm.prompt_length", len(prompt)),
	)

	text, err := c.Generate(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "narration failed")
		slog.Warn("narration failed", "model", c.model, "error", err)
		return Narration{Err: err}
	}
	span.SetAttributes(attribute.Int("llm.response_length", len(text)))
	return Narration{Text: text}
}
