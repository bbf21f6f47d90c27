package runtime

import (
	"context"
	"strings"

	"github.com/canopyhq/canopy/pkg/domain"
	"github.com/canopyhq/canopy/pkg/ports"
)

// CompletionMessage closes the conversation once the graph is exhausted.
const CompletionMessage = "Thank you for sharing all of this! I now have a comprehensive picture of your business and where you want to take it."

// acknowledgments rotate deterministically with the turn count so the
// fallback path still reads naturally without a renderer.
var acknowledgments = []string{
	"Got it, thanks for sharing.",
	"That's really helpful context.",
	"Understood.",
	"Great, that tells me a lot.",
	"Thanks, that makes sense.",
}

// renderMessage produces the assistant reply for this turn. The renderer
// is advisory: any error, timeout or empty result falls back to the
// verbatim prompt with a canned acknowledgment.
func (e *Engine) renderMessage(ctx context.Context, state *domain.ConversationState, next *domain.QuestionNode, newInsights []domain.RealTimeInsight) string {
	prompt := CompletionMessage
	if next != nil {
		prompt = next.Prompt
	}
	contents := make([]string, 0, len(newInsights))
	for _, ins := range newInsights {
		contents = append(contents, ins.Content)
	}
	fallback := fallbackMessage(prompt, contents, len(state.History))

	if e.renderer == nil {
		return fallback
	}

	rctx, cancel := context.WithTimeout(ctx, e.renderTimeout)
	defer cancel()

	rendered, err := e.renderer.Render(rctx, ports.RenderRequest{
		Prompt:    prompt,
		Insights:  contents,
		Persona:   state.Persona,
		TurnCount: len(state.History),
	})
	if err != nil || strings.TrimSpace(rendered) == "" {
		if e.metrics != nil {
			e.metrics.RenderFallbacks.Inc()
		}
		e.logger.Warn("renderer failed, using verbatim prompt",
			"session_id", state.SessionID,
			"err", err,
		)
		return fallback
	}
	return rendered
}

// fallbackMessage concatenates the raw insight and prompt text verbatim
// so nothing surfaced this turn is lost when the renderer is down.
func fallbackMessage(prompt string, insights []string, turn int) string {
	ack := acknowledgments[turn%len(acknowledgments)]
	parts := make([]string, 0, len(insights)+2)
	parts = append(parts, ack)
	parts = append(parts, insights...)
	parts = append(parts, prompt)
	return strings.Join(parts, " ")
}
