package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/eliteprep/internal/logger"
	"github.com/abhisek/eliteprep/internal/metrics"
	"github.com/abhisek/eliteprep/internal/store"
)

func openEventRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestLoggingProvider_RecordsEvent(t *testing.T) {
	repo := openEventRepo(t)
	m := metrics.New()
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"label":"(b)","marks":4}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 8},
	})
	p := WithLogging(mock, Deps{Events: repo, Metrics: m})

	ctx := WithPurpose(context.Background(), "question-gen")
	_, err := p.Generate(ctx, Request{
		System:   "examiner",
		Messages: []Message{{Role: RoleUser, Content: "Topic: Surds"}},
		Schema:   testSchema(),
	})
	require.NoError(t, err)

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	e := events[0]
	assert.Equal(t, "question-gen", e.Purpose)
	assert.True(t, e.Success)
	assert.Equal(t, 12, e.InputTokens)
	assert.Contains(t, e.RequestBody, "Topic: Surds")
	assert.Contains(t, e.RequestBody, "[schema: test-object]")
	assert.JSONEq(t, `{"label":"(b)","marks":4}`, e.ResponseBody)

	n, err := testutil.GatherAndCount(m.Registry(), "eliteprep_llm_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := openEventRepo(t)
	mock := NewMockProvider(MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}})
	p := WithLogging(mock, Deps{Events: repo})

	_, err := p.Generate(WithPurpose(context.Background(), "elaboration"), Request{})
	require.Error(t, err)

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{Purpose: "elaboration"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.False(t, events[0].Success)
	assert.Contains(t, events[0].ErrorMessage, "down")
}

func TestLoggingProvider_NoDeps(t *testing.T) {
	p := WithLogging(NewMockProvider(MockResponse{Text: "hi"}), Deps{})
	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, "hi", resp.Text)
}

func TestLoggingProvider_LogsAttempt(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("503")}},
		MockResponse{Content: questionJSON},
	)
	p := WithRetry(WithLogging(mock, Deps{Log: log}), fastRetry(2), nil)

	_, err := p.Generate(WithPurpose(context.Background(), "question-gen"), Request{})
	require.NoError(t, err)

	failed := logs.FilterMessage("llm request failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, int64(1), failed[0].ContextMap()["attempt"])

	ok := logs.FilterMessage("llm request").All()
	require.Len(t, ok, 1)
	assert.Equal(t, int64(2), ok[0].ContextMap()["attempt"])
	assert.Equal(t, "question-gen", ok[0].ContextMap()["purpose"])
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 20*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, "slow", p.ModelID())
}

func TestWithTimeout_ZeroIsPassthrough(t *testing.T) {
	inner := NewMockProvider()
	assert.Same(t, Provider(inner), WithTimeout(inner, 0))
}
