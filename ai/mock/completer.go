package mock

import "context"

// MockCompleter is a test double for ai.ChatCompleter.
// It allows custom behavior injection via function fields.
type MockCompleter struct {
	// ChatFunc is called by Chat if set.
	// If nil, a fixed canned answer is returned.
	ChatFunc func(ctx context.Context, system, user string) (string, error)

	// CompleteFunc is called by Complete if set.
	// If nil, a fixed canned answer is returned.
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	chatCalls     int
	completeCalls int
}

// NewMockCompleter creates a mock completer with canned default answers.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{}
}

// Chat returns the injected or canned chat answer.
func (m *MockCompleter) Chat(ctx context.Context, system, user string) (string, error) {
	m.chatCalls++

	if m.ChatFunc != nil {
		return m.ChatFunc(ctx, system, user)
	}
	return "mock chat answer", nil
}

// Complete returns the injected or canned completion answer.
func (m *MockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.completeCalls++

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	return "mock completion answer", nil
}

// ChatCalls returns how many times Chat was called.
func (m *MockCompleter) ChatCalls() int {
	return m.chatCalls
}

// CompleteCalls returns how many times Complete was called.
func (m *MockCompleter) CompleteCalls() int {
	return m.completeCalls
}
