package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockChatClient is a mock implementation of port.ChatClient.
type MockChatClient struct {
	mock.Mock
}

func (m *MockChatClient) Chat(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}
