package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"munidocs/internal/domain"
)

// MockUsageRepo is a mock implementation of port.UsageRepository.
type MockUsageRepo struct {
	mock.Mock
}

func (m *MockUsageRepo) Create(ctx context.Context, tx *domain.UsageTransaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockUsageRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.UsageTransaction, int, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.UsageTransaction), args.Int(1), args.Error(2)
}

func (m *MockUsageRepo) SummaryByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.UsageSummary, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UsageSummary), args.Error(1)
}
