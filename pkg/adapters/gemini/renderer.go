// Package gemini implements the message renderer on Google's Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	genai "google.golang.org/genai"

	"github.com/canopyhq/canopy/pkg/ports"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

var ErrEmptyResponse = errors.New("gemini: empty response from model")

// Renderer is a thin wrapper around the official genai client. It
// rephrases the next question for tone; the engine treats any failure as
// advisory and falls back to the unrendered prompt.
type Renderer struct {
	cli   *genai.Client
	model string
}

// Option configures the Renderer.
type Option func(*Renderer)

// WithModel overrides the model name.
func WithModel(model string) Option {
	return func(r *Renderer) {
		if model != "" {
			r.model = model
		}
	}
}

// New creates a Renderer. The API key is taken from the GEMINI_API_KEY
// environment variable by the underlying client.
func New(ctx context.Context, opts ...Option) (*Renderer, error) {
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{Backend: genai.BackendGeminiAPI})
	if err != nil {
		return nil, err
	}
	r := &Renderer{cli: cli, model: DefaultModel}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Render asks the model to phrase the message for the user's
// communication style. The question's meaning must survive verbatim, so
// the instructions forbid adding or dropping content.
func (r *Renderer) Render(ctx context.Context, req ports.RenderRequest) (string, error) {
	full := buildPrompt(req)

	resp, err := r.cli.Models.GenerateContent(ctx, r.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: full}}}},
		&genai.GenerateContentConfig{ResponseMIMEType: "text/plain"},
	)
	if err != nil {
		return "", fmt.Errorf("gemini render: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", ErrEmptyResponse
	}
	text := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

func buildPrompt(req ports.RenderRequest) string {
	var b strings.Builder
	b.WriteString("You are a business discovery assistant speaking with a founder.\n")
	b.WriteString("Rewrite the message below in your own words. Keep the question's meaning exactly; do not add new questions, advice, or options.\n")
	fmt.Fprintf(&b, "Communication style: %s. Expertise: %s. Turn %d of the conversation.\n",
		req.Persona.CommunicationStyle, req.Persona.ExpertiseLevel, req.TurnCount)
	if len(req.Insights) > 0 {
		b.WriteString("Briefly acknowledge these observations first:\n")
		for _, ins := range req.Insights {
			b.WriteString("- " + ins + "\n")
		}
	}
	b.WriteString("\n[MESSAGE]\n")
	b.WriteString(req.Prompt)
	return b.String()
}
