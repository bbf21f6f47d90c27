package ports

import (
	"context"

	"github.com/canopyhq/canopy/pkg/domain"
)

// RenderRequest carries everything a Renderer may use to phrase the next
// assistant message. The prompt text is the semantic payload; the rest
// is styling input only.
type RenderRequest struct {
	// Prompt is the next question's text, or the completion message
	// when the conversation is over. Its meaning must survive
	// rendering verbatim.
	Prompt string

	// Insights holds the contents of insights generated this turn, to
	// be woven into the message as acknowledgment material.
	Insights []string

	// Persona is the current communication-style profile.
	Persona domain.Persona

	// TurnCount is the number of user messages so far.
	TurnCount int
}

// Renderer rephrases an assistant message for tone. Implementations are
// advisory: any error (or an empty result) makes the engine fall back to
// the unrendered prompt, so a renderer can never block a conversation.
type Renderer interface {
	Render(ctx context.Context, req RenderRequest) (string, error)
}
