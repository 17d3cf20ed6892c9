// Package gateway is the single point through which the application asks
// a language model for content. Callers get plain text or a decoded value
// and see only two error kinds: GatewayError and ValidationError.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/abhisek/eliteprep/internal/llm"
)

const systemPrompt = `You are a senior Edexcel International A-Level Mathematics examiner.

Rules:
- Write in plain text. Do not use LaTeX or Markdown: never output the characters $ or *.
- Write powers with ^ and roots as sqrt(...), e.g. 2x^3 or sqrt(5).
- Be precise and concise. Match the style and rigour of real Edexcel IAL papers.`

// Config tunes the requests sent by the gateway.
type Config struct {
	System      string
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns the settings used by the application.
func DefaultConfig() Config {
	return Config{
		System:      systemPrompt,
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// Gateway wraps an llm.Provider with the text/structured contract.
type Gateway struct {
	provider llm.Provider
	cfg      Config
}

// New creates a Gateway. A nil provider yields a gateway whose every call
// fails with GatewayError, which keeps the UI usable without an API key.
func New(provider llm.Provider, cfg Config) *Gateway {
	return &Gateway{provider: provider, cfg: cfg}
}

// Available reports whether a provider is configured.
func (g *Gateway) Available() bool {
	return g != nil && g.provider != nil
}

// GenerateText returns the model's plain-text reply to prompt.
func (g *Gateway) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.generate(ctx, prompt, nil)
	if err != nil {
		return "", &GatewayError{Err: err}
	}
	if strings.TrimSpace(resp.Text) == "" {
		return "", &GatewayError{Err: llm.ErrEmptyResponse}
	}
	return resp.Text, nil
}

// GenerateStructured asks for a reply conforming to schema and decodes it
// into out.
func (g *Gateway) GenerateStructured(ctx context.Context, prompt string, schema *llm.Schema, out any) error {
	resp, err := g.generate(ctx, prompt, schema)
	if err != nil {
		var inv *llm.ErrInvalidResponse
		if errors.As(err, &inv) {
			return &ValidationError{Schema: schema.Name, Content: inv.Content, Err: err}
		}
		return &GatewayError{Err: err}
	}
	if len(resp.Content) == 0 {
		return &GatewayError{Err: llm.ErrEmptyResponse}
	}
	if err := json.Unmarshal(resp.Content, out); err != nil {
		return &ValidationError{Schema: schema.Name, Content: resp.Content, Err: err}
	}
	return nil
}

func (g *Gateway) generate(ctx context.Context, prompt string, schema *llm.Schema) (*llm.Response, error) {
	if !g.Available() {
		return nil, &llm.ErrProviderUnavailable{Err: errors.New("no LLM provider configured")}
	}
	return g.provider.Generate(ctx, llm.Request{
		System:      g.cfg.System,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Schema:      schema,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: g.cfg.Temperature,
	})
}
