package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/eliteprep/internal/logger"
	"github.com/abhisek/eliteprep/internal/metrics"
	"github.com/abhisek/eliteprep/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an
// event, a log line and a latency observation.
type LoggingProvider struct {
	inner   Provider
	events  store.EventRepo
	log     *logger.Logger
	metrics *metrics.Metrics
}

// WithLogging wraps a Provider with request recording.
func WithLogging(p Provider, deps Deps) Provider {
	return &LoggingProvider{
		inner:   p,
		events:  deps.Events,
		log:     deps.Log,
		metrics: deps.Metrics,
	}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	c := callFrom(ctx)
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	ev := l.event(c.purpose, req, resp, err, elapsed)
	fields := []any{
		"purpose", c.purpose,
		"attempt", c.attempt,
		"model", ev.Model,
		"latency_ms", ev.LatencyMs,
	}
	if err != nil {
		l.log.Warn("llm request failed", append(fields, "error", err)...)
	} else {
		l.log.Debug("llm request", append(fields,
			"input_tokens", ev.InputTokens,
			"output_tokens", ev.OutputTokens)...)
	}
	l.metrics.ObserveLLMRequest(c.purpose, err == nil, elapsed)

	// A broken event log never fails the request.
	if l.events != nil {
		if recErr := l.events.AppendLLMRequest(context.WithoutCancel(ctx), ev); recErr != nil {
			l.log.Warn("failed to record llm request event", "error", recErr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) event(purpose string, req Request, resp *Response, err error, elapsed time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.inner.ModelID(),
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   elapsed.Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
		if resp.Model != "" {
			ev.Model = resp.Model
		}
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	return ev
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest renders a request as the transcript shown by
// "eliteprep llm view".
func serializeRequest(req Request) string {
	var b strings.Builder
	section := func(title, body string) {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", title, body)
	}
	if req.System != "" {
		section("system", req.System)
	}
	for _, m := range req.Messages {
		section(string(m.Role), m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
