// Package llm talks to hosted language models. Every vendor adapter
// implements Provider, and NewProvider stacks the timeout, retry and
// logging middleware on top.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one reply per call.
type Provider interface {
	// Generate returns schema-validated JSON in Response.Content when
	// req.Schema is set, or the plain reply in Response.Text otherwise.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID names the configured model, e.g. "gemini-2.5-flash".
	ModelID() string
}

// Request is a provider-neutral prompt.
type Request struct {
	System string

	// Messages alternate user and assistant turns. Question and paper
	// generation send a single user turn; tutor chat sends the transcript.
	Messages []Message

	// Schema switches the vendor into structured output mode.
	Schema *Schema

	// MaxTokens caps the reply. Zero leaves the vendor default.
	MaxTokens int

	// Temperature is passed through when non-zero.
	Temperature float64
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// Schema is a named JSON Schema. Name doubles as the OpenAI schema name
// and the key of the compiled-schema cache, so two different definitions
// must never share one.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Stop reasons reported in Response.StopReason.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

type Response struct {
	// Content is always valid JSON: the validated object for structured
	// requests, Text as a JSON string otherwise.
	Content json.RawMessage
	Text    string

	Usage      Usage
	Model      string
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
