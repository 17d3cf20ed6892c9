package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userTurn(text string) Request {
	return Request{Messages: []Message{{Role: RoleUser, Content: text}}}
}

func TestMockProvider_ServesQueueInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: questionJSON, Usage: Usage{InputTokens: 30, OutputTokens: 12, TotalTokens: 42}},
		MockResponse{Text: "Complete the square first."},
	)
	ctx := context.Background()

	first, err := mock.Generate(ctx, userTurn("Quadratics, Medium"))
	require.NoError(t, err)
	assert.JSONEq(t, string(questionJSON), string(first.Content))
	assert.Equal(t, 42, first.Usage.TotalTokens)
	assert.Equal(t, StopEnd, first.StopReason)
	assert.Equal(t, "mock", first.Model)

	second, err := mock.Generate(ctx, userTurn("Explain"))
	require.NoError(t, err)
	assert.Equal(t, "Complete the square first.", second.Text)
	assert.Equal(t, `"Complete the square first."`, string(second.Content))

	_, err = mock.Generate(ctx, userTurn("again"))
	var unavailable *ErrProviderUnavailable
	assert.ErrorAs(t, err, &unavailable)

	require.Equal(t, 3, mock.CallCount())
	last, ok := mock.LastCall()
	require.True(t, ok)
	assert.Equal(t, "again", last.Messages[0].Content)
	assert.Equal(t, []int{1, 1, 1}, mock.Attempts)
}

func TestMockProvider_ConfiguredError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{RetryAfter: time.Second}})
	_, err := mock.Generate(context.Background(), Request{})

	var rl *ErrRateLimit
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, time.Second, rl.RetryAfter)
}

func TestMockProvider_ValidatesAgainstSchema(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"label":"(a)"}`)})

	_, err := mock.Generate(context.Background(), Request{Schema: testSchema()})
	var invErr *ErrInvalidResponse
	assert.ErrorAs(t, err, &invErr)
}

func TestMockProvider_AddResponse(t *testing.T) {
	mock := NewMockProvider()
	_, ok := mock.LastCall()
	assert.False(t, ok)

	mock.AddResponse(MockResponse{Text: "late"})
	resp, err := mock.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "late", resp.Text)
}

func TestPurposeAndAttempt(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, 1, attemptFrom(ctx))

	ctx = WithPurpose(ctx, "exam-batch")
	ctx = withAttempt(ctx, 3)
	assert.Equal(t, "exam-batch", PurposeFrom(ctx))
	assert.Equal(t, 3, attemptFrom(ctx))

	// Re-tagging the purpose keeps the attempt and vice versa.
	ctx = WithPurpose(ctx, "elaboration")
	assert.Equal(t, 3, attemptFrom(ctx))
}

func TestClassifyStatus(t *testing.T) {
	cause := errors.New("boom")
	hdr := http.Header{}
	hdr.Set("Retry-After", "7")

	var auth *ErrAuth
	require.ErrorAs(t, classifyStatus(http.StatusUnauthorized, nil, cause), &auth)
	assert.Equal(t, http.StatusUnauthorized, auth.Status)
	assert.ErrorAs(t, classifyStatus(http.StatusForbidden, nil, cause), &auth)

	var rl *ErrRateLimit
	require.ErrorAs(t, classifyStatus(http.StatusTooManyRequests, hdr, cause), &rl)
	assert.Equal(t, 7*time.Second, rl.RetryAfter)
	assert.ErrorIs(t, rl, cause)

	var unavailable *ErrProviderUnavailable
	assert.ErrorAs(t, classifyStatus(http.StatusBadGateway, nil, cause), &unavailable)
	assert.ErrorAs(t, classifyStatus(0, nil, cause), &unavailable)
}

func TestRetryAfter(t *testing.T) {
	for value, want := range map[string]time.Duration{
		"":         0,
		"3":        3 * time.Second,
		"-1":       0,
		"tomorrow": 0,
	} {
		hdr := http.Header{}
		hdr.Set("Retry-After", value)
		assert.Equal(t, want, retryAfter(hdr), "Retry-After %q", value)
	}
	assert.Zero(t, retryAfter(nil))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"gemini with key", Config{Provider: "gemini", Gemini: GeminiConfig{APIKey: "g"}}, false},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}, false},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "unknown"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Resolve(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		want     string
		resolved bool
	}{
		{"explicit provider kept", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "k"}, Gemini: GeminiConfig{APIKey: "g"}}, "openai", true},
		{"explicit provider without key", Config{Provider: "anthropic"}, "anthropic", false},
		{"gemini first", Config{Gemini: GeminiConfig{APIKey: "g"}, OpenAI: OpenAIConfig{APIKey: "o"}}, "gemini", true},
		{"openai before anthropic", Config{OpenAI: OpenAIConfig{APIKey: "o"}, Anthropic: AnthropicConfig{APIKey: "a"}}, "openai", true},
		{"openrouter last", Config{OpenRouter: OpenRouterConfig{APIKey: "r"}}, "openrouter", true},
		{"nothing configured", Config{}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.cfg.Resolve()
			assert.Equal(t, tt.resolved, ok)
			assert.Equal(t, tt.want, got.Provider)
		})
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, Deps{})
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	_, err = NewProvider(context.Background(), Config{Provider: "nope"}, Deps{})
	assert.Error(t, err)
}
