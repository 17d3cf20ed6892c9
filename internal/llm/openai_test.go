package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var examQuestionSchema = &Schema{
	Name:        "exam-question",
	Description: "One multiple-choice question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string"},
			"answer":   map[string]any{"type": "string"},
		},
		"required":             []any{"question", "answer"},
		"additionalProperties": false,
	},
}

// chatServer serves one canned chat completion and captures the request.
type chatServer struct {
	status  int
	content string
	finish  string
	gotBody map[string]any
	gotHdr  http.Header
}

func (s *chatServer) handle(w http.ResponseWriter, r *http.Request) {
	s.gotHdr = r.Header.Clone()
	_ = json.NewDecoder(r.Body).Decode(&s.gotBody)
	w.Header().Set("Content-Type", "application/json")
	if s.status != 0 && s.status != http.StatusOK {
		w.WriteHeader(s.status)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": http.StatusText(s.status), "type": "error"},
		})
		return
	}
	finish := s.finish
	if finish == "" {
		finish = "stop"
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": s.content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
	})
}

func newChatServer(t *testing.T, s *chatServer) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(srv.Close)
	return srv.URL + "/v1"
}

func newTestOpenAIProvider(t *testing.T, s *chatServer) *OpenAIProvider {
	t.Helper()
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: newChatServer(t, s)})
	require.NoError(t, err)
	return p
}

func TestOpenAIProvider_Structured(t *testing.T) {
	s := &chatServer{content: `{"question":"Expand (x+2)^2","answer":"x^2+4x+4"}`}
	p := newTestOpenAIProvider(t, s)

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are an examiner.",
		Messages:  []Message{{Role: RoleUser, Content: "One Easy question on Expanding Brackets."}},
		Schema:    examQuestionSchema,
		MaxTokens: 256,
	})
	require.NoError(t, err)
	assert.JSONEq(t, s.content, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 40, OutputTokens: 25, TotalTokens: 65}, resp.Usage)
	assert.Equal(t, "gpt-4o-mini-2024-07-18", resp.Model)
	assert.Equal(t, StopEnd, resp.StopReason)

	msgs := s.gotBody["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	format := s.gotBody["response_format"].(map[string]any)
	assert.Equal(t, "json_schema", format["type"])
	assert.Equal(t, "exam-question", format["json_schema"].(map[string]any)["name"])
}

func TestOpenAIProvider_TextReply(t *testing.T) {
	s := &chatServer{content: "Factorise first, then cancel."}
	p := newTestOpenAIProvider(t, s)

	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{
			{Role: RoleUser, Content: "How do I simplify this fraction?"},
			{Role: RoleAssistant, Content: "Which fraction?"},
			{Role: RoleUser, Content: "(x^2-1)/(x-1)"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Factorise first, then cancel.", resp.Text)
	assert.Equal(t, `"Factorise first, then cancel."`, string(resp.Content))
	assert.Nil(t, s.gotBody["response_format"])
	assert.Len(t, s.gotBody["messages"], 3)
}

func TestOpenAIProvider_TruncatedStructuredReply(t *testing.T) {
	s := &chatServer{content: `{"question":"Expand`, finish: "length"}
	p := newTestOpenAIProvider(t, s)

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
		Schema:   examQuestionSchema,
	})
	var maxTok *ErrMaxTokensExceeded
	require.ErrorAs(t, err, &maxTok)
	assert.Equal(t, `{"question":"Expand`, string(maxTok.Content))
}

func TestOpenAIProvider_SchemaViolation(t *testing.T) {
	s := &chatServer{content: `{"question":"Expand (x+2)^2"}`}
	p := newTestOpenAIProvider(t, s)

	_, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "q"}},
		Schema:   examQuestionSchema,
	})
	var inv *ErrInvalidResponse
	require.ErrorAs(t, err, &inv)
}

func TestOpenAIProvider_HTTPErrors(t *testing.T) {
	tests := []struct {
		status int
		want   any
	}{
		{http.StatusTooManyRequests, new(*ErrRateLimit)},
		{http.StatusUnauthorized, new(*ErrAuth)},
		{http.StatusInternalServerError, new(*ErrProviderUnavailable)},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := newTestOpenAIProvider(t, &chatServer{status: tt.status})
			_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "q"}}})
			require.ErrorAs(t, err, tt.want)
		})
	}
}

func TestNewOpenAIProvider_RequiresKey(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"})
	assert.ErrorContains(t, err, "openai API key is required")
}
