package channel

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

type MockCall struct {
	Phone string
	Text  string
}

// MockClient is a configurable in-memory channel, used in tests and
// as the development provider.
type MockClient struct {
	mu    sync.Mutex
	Calls []MockCall

	// FailNext makes the next call return an error, then resets.
	FailNext bool
	// RejectPhones lists recipients the provider will not accept.
	RejectPhones map[string]bool
}

func NewMockClient() *MockClient {
	return &MockClient{
		Calls:        make([]MockCall, 0),
		RejectPhones: make(map[string]bool),
	}
}

func (m *MockClient) Send(ctx context.Context, phone, text string) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{Phone: phone, Text: text})

	if m.FailNext {
		m.FailNext = false
		return nil, errors.New("mock channel send failure")
	}

	if m.RejectPhones[phone] {
		return &Result{Accepted: false, Provider: "mock"}, nil
	}

	return &Result{
		Accepted:    true,
		ProviderRef: fmt.Sprintf("mock-%d", len(m.Calls)),
		Provider:    "mock",
	}, nil
}

// CallCount returns how many sends were attempted.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
