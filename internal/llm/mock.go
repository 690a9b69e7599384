package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted answer for MockProvider. When Err is set
// it is returned instead of Content.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockJSON scripts an answer whose content is v encoded as JSON.
func MockJSON(v any) MockResponse {
	b, err := json.Marshal(v)
	if err != nil {
		return MockResponse{Err: err}
	}
	return MockResponse{Content: b}
}

// MockProvider replays scripted answers in order and records every
// request it receives. It backs the "mock" provider setting and tests.
type MockProvider struct {
	// Strict makes the mock check content against the request schema,
	// the way the real providers do.
	Strict bool

	mu      sync.Mutex
	pending []MockResponse
	Calls   []Request
}

// NewMockProvider returns a MockProvider that will answer with responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{pending: responses}
}

// Generate pops the next scripted answer. An exhausted script yields
// ErrProviderUnavailable, which callers treat as an outage.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	if err := ctx.Err(); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	if len(m.pending) == 0 {
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{}
	}
	next := m.pending[0]
	m.pending = m.pending[1:]
	strict := m.Strict
	m.mu.Unlock()

	if next.Err != nil {
		return nil, next.Err
	}
	if strict {
		if err := req.Schema.Check(next.Content); err != nil {
			return nil, err
		}
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      m.ModelID(),
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	m.pending = append(m.pending, resp)
	m.mu.Unlock()
}

// CallCount reports how many requests were received.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Remaining reports how many scripted answers are left.
func (m *MockProvider) Remaining() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}
