package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"munidocs/internal/domain"
	"munidocs/internal/port"
)

// MockLLMInvoker is a mock implementation of port.LLMInvoker.
type MockLLMInvoker struct {
	mock.Mock
}

func (m *MockLLMInvoker) Invoke(ctx context.Context, input port.InvokeInput) (*domain.GenerationResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GenerationResult), args.Error(1)
}

func (m *MockLLMInvoker) Provider() string {
	return "mock"
}
