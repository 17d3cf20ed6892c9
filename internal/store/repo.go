package store

import (
	"context"
	"time"
)

// QueryOpts narrows QueryLLMEvents. Zero values do not filter.
type QueryOpts struct {
	Limit   int
	Purpose string
	// From and To bound the timestamp, both inclusive.
	From, To time.Time
}

// LLMRequestEventData is one provider call as written by the logging
// middleware. Provider is the configured model ID, Model the one that
// actually answered.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is an LLMRequestEventData with its row ID and write time.
type LLMEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage is one row of a usage aggregate. Only the grouping field,
// Purpose or Model, is set.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo is the LLM request log behind "eliteprep llm" and the usage
// screen. Only the SQLite backend provides one.
type EventRepo interface {
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns matching events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns nil, nil for an unknown id.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// The aggregates are ordered by call count, busiest first.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
