package api

import (
	"context"
	"sync"
)

// MockChatClient is a mock implementation of ChatClientInterface for testing
type MockChatClient struct {
	// Mock return values
	Reply    string
	Err      error
	SendFunc func(ctx context.Context, message string) (string, error)
	URL      string

	// Call recorders
	mu          sync.Mutex
	Messages    []string
	CloseCalled bool
}

// Ensure MockChatClient implements ChatClientInterface
var _ ChatClientInterface = (*MockChatClient)(nil)

func (m *MockChatClient) Send(ctx context.Context, message string) (string, error) {
	m.mu.Lock()
	m.Messages = append(m.Messages, message)
	fn := m.SendFunc
	m.mu.Unlock()

	if fn != nil {
		return fn(ctx, message)
	}
	return m.Reply, m.Err
}

func (m *MockChatClient) Endpoint() string {
	if m.URL == "" {
		return "mock://chat"
	}
	return m.URL
}

func (m *MockChatClient) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CloseCalled = true
}

// Calls returns the number of Send calls made so far
func (m *MockChatClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Messages)
}
