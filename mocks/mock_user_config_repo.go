package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"munidocs/internal/domain"
)

// MockUserConfigRepo is a mock implementation of port.UserConfigRepository.
type MockUserConfigRepo struct {
	mock.Mock
}

func (m *MockUserConfigRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.UserConfig, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserConfig), args.Error(1)
}

func (m *MockUserConfigRepo) Upsert(ctx context.Context, cfg *domain.UserConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

// MockNormativaRepo is a mock implementation of port.NormativaRepository.
type MockNormativaRepo struct {
	mock.Mock
}

func (m *MockNormativaRepo) List(ctx context.Context, category string) ([]domain.Normativa, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Normativa), args.Error(1)
}
