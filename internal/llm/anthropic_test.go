package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// messagesServer answers the Messages API with a fixed reply or error.
type messagesServer struct {
	status     int
	retryAfter string
	text       string
	stop       string
	requests   int
	gotBody    map[string]any
}

func (s *messagesServer) handle(w http.ResponseWriter, r *http.Request) {
	s.requests++
	_ = json.NewDecoder(r.Body).Decode(&s.gotBody)
	w.Header().Set("Content-Type", "application/json")
	if s.status != 0 && s.status != http.StatusOK {
		if s.retryAfter != "" {
			w.Header().Set("Retry-After", s.retryAfter)
		}
		w.WriteHeader(s.status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": "api_error", "message": http.StatusText(s.status)},
		})
		return
	}
	stop := s.stop
	if stop == "" {
		stop = "end_turn"
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": s.text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	})
}

func newTestAnthropicProvider(t *testing.T, s *messagesServer) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(srv.Close)
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"}, option.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return p
}

func TestAnthropicProvider_Structured(t *testing.T) {
	s := &messagesServer{text: `{"question":"Solve 2x+1=7","answer":"3"}`}
	p := newTestAnthropicProvider(t, s)

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are an examiner.",
		Messages:  []Message{{Role: RoleUser, Content: "One question on Linear Equations."}},
		Schema:    examQuestionSchema,
		MaxTokens: 512,
	})
	require.NoError(t, err)
	assert.JSONEq(t, s.text, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, "claude-haiku-4-5-20251001", s.gotBody["model"])
	assert.EqualValues(t, 512, s.gotBody["max_tokens"])
}

func TestAnthropicProvider_ChatHistory(t *testing.T) {
	s := &messagesServer{text: "Try completing the square."}
	p := newTestAnthropicProvider(t, s)

	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{
			{Role: RoleUser, Content: "Stuck on x^2+6x+5=0"},
			{Role: RoleAssistant, Content: "What have you tried?"},
			{Role: RoleUser, Content: "Nothing yet"},
		},
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.Equal(t, "Try completing the square.", resp.Text)

	msgs := s.gotBody["messages"].([]any)
	require.Len(t, msgs, 3)
	assert.Equal(t, "assistant", msgs[1].(map[string]any)["role"])
}

func TestAnthropicProvider_Truncated(t *testing.T) {
	s := &messagesServer{text: `{"question":"Solve`, stop: "max_tokens"}
	p := newTestAnthropicProvider(t, s)

	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "q"}},
		Schema:    examQuestionSchema,
		MaxTokens: 8,
	})
	var maxTok *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &maxTok)
}

func TestAnthropicProvider_RateLimitHonoursRetryAfter(t *testing.T) {
	s := &messagesServer{status: http.StatusTooManyRequests, retryAfter: "2"}
	p := newTestAnthropicProvider(t, s)

	_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "q"}}, MaxTokens: 100})
	var rl *ErrRateLimit
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 2*time.Second, rl.RetryAfter)
	assert.Equal(t, 1, s.requests, "SDK retries must be off")
}

func TestAnthropicProvider_HTTPErrors(t *testing.T) {
	for status, want := range map[int]any{
		http.StatusUnauthorized:        new(*ErrAuth),
		http.StatusInternalServerError: new(*ErrProviderUnavailable),
	} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			p := newTestAnthropicProvider(t, &messagesServer{status: status})
			_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "q"}}, MaxTokens: 100})
			require.ErrorAs(t, err, want)
		})
	}
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "claude-sonnet-4-20250514", resolveModel("claude-sonnet", anthropicModels))
	assert.Equal(t, "gemini-2.5-pro", resolveModel("gemini-pro", geminiModels))
	assert.Equal(t, "claude-opus-4-1", resolveModel("claude-opus-4-1", anthropicModels))
}
