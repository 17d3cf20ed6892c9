package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts: attempts,
		InitialWait: time.Millisecond,
		MaxWait:     5 * time.Millisecond,
		Multiplier:  2,
	}
}

var questionJSON = json.RawMessage(`{"question":"Expand (x+2)^2","answer":"x^2+4x+4"}`)

func TestRetry_Outcomes(t *testing.T) {
	down := &ErrProviderUnavailable{Err: errors.New("503")}
	tests := []struct {
		name      string
		responses []MockResponse
		wantCalls int
		wantErr   any
	}{
		{
			name:      "first attempt succeeds",
			responses: []MockResponse{{Content: questionJSON}},
			wantCalls: 1,
		},
		{
			name:      "outage then success",
			responses: []MockResponse{{Err: down}, {Content: questionJSON}},
			wantCalls: 2,
		},
		{
			name:      "outage on every attempt",
			responses: []MockResponse{{Err: down}, {Err: down}, {Err: down}},
			wantCalls: 3,
			wantErr:   new(*ErrProviderUnavailable),
		},
		{
			name:      "malformed reply retried once",
			responses: []MockResponse{{Err: &ErrInvalidResponse{Err: errors.New("bad")}}, {Content: questionJSON}},
			wantCalls: 2,
		},
		{
			name: "malformed reply twice gives up",
			responses: []MockResponse{
				{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
				{Err: &ErrInvalidResponse{Err: errors.New("bad")}},
				{Content: questionJSON},
			},
			wantCalls: 2,
			wantErr:   new(*ErrInvalidResponse),
		},
		{
			name:      "rejected key is final",
			responses: []MockResponse{{Err: &ErrAuth{Status: 401, Err: errors.New("bad key")}}, {Content: questionJSON}},
			wantCalls: 1,
			wantErr:   new(*ErrAuth),
		},
		{
			name:      "truncation is final",
			responses: []MockResponse{{Err: &ErrMaxTokensExceeded{}}, {Content: questionJSON}},
			wantCalls: 1,
			wantErr:   new(*ErrMaxTokensExceeded),
		},
		{
			name:      "rate limit retried",
			responses: []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}, {Content: questionJSON}},
			wantCalls: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p := WithRetry(mock, fastRetry(3), nil)

			resp, err := p.Generate(context.Background(), Request{})
			assert.Equal(t, tt.wantCalls, mock.CallCount())
			if tt.wantErr != nil {
				require.ErrorAs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, string(questionJSON), string(resp.Content))
		})
	}
}

func TestRetry_NumbersAttempts(t *testing.T) {
	down := &ErrProviderUnavailable{Err: errors.New("503")}
	mock := NewMockProvider(MockResponse{Err: down}, MockResponse{Err: down}, MockResponse{Content: questionJSON})
	p := WithRetry(mock, fastRetry(3), nil)

	_, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, mock.Attempts)
}

func TestRetry_StopsWhenCancelled(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: time.Minute, Err: errors.New("429")}},
		MockResponse{Content: questionJSON},
	)
	p := WithRetry(mock, fastRetry(3), nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := p.Generate(ctx, Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{}})
	p := WithRetry(mock, fastRetry(0), nil)

	_, err := p.Generate(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestBackoff(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: 300 * time.Millisecond, Multiplier: 2}}

	first := r.backoff(0, errors.New("x"))
	assert.InDelta(t, float64(100*time.Millisecond), float64(first), float64(20*time.Millisecond))

	capped := r.backoff(5, errors.New("x"))
	assert.LessOrEqual(t, capped, 360*time.Millisecond)

	told := r.backoff(0, &ErrRateLimit{RetryAfter: 7 * time.Second})
	assert.Equal(t, 7*time.Second, told)
}
