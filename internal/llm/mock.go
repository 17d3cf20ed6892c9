package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply. Content answers structured
// requests and Text answers plain ones; Err fails the call instead.
type MockResponse struct {
	Content json.RawMessage
	Text    string
	Usage   Usage
	Err     error
}

// MockProvider replays scripted replies in order and records every
// request. Structured replies still go through schema validation, so a
// malformed script fails the same way a misbehaving model would. It is
// also the "mock" provider for running the app without an API key.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse

	Calls []Request
	// Attempts[i] is the retry attempt Calls[i] was made on.
	Attempts []int
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// Generate pops the next scripted reply. An exhausted script reports the
// provider as unavailable.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	m.Attempts = append(m.Attempts, attemptFrom(ctx))
	if len(m.script) == 0 {
		return nil, &ErrProviderUnavailable{}
	}
	next := m.script[0]
	m.script = m.script[1:]
	if next.Err != nil {
		return nil, next.Err
	}

	text := next.Text
	if next.Content != nil {
		text = string(next.Content)
	}
	// Scripted JSON is served as is for plain requests.
	if req.Schema == nil && next.Content != nil {
		return m.reply(next.Content, text, next.Usage), nil
	}
	content, err := buildContent(req.Schema, text)
	if err != nil {
		return nil, err
	}
	return m.reply(content, text, next.Usage), nil
}

func (m *MockProvider) reply(content json.RawMessage, text string, usage Usage) *Response {
	return &Response{Content: content, Text: text, Usage: usage, Model: "mock", StopReason: StopEnd}
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, r)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// LastCall returns the most recent request; ok is false before the
// first call.
func (m *MockProvider) LastCall() (req Request, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Calls) == 0 {
		return Request{}, false
	}
	return m.Calls[len(m.Calls)-1], true
}
