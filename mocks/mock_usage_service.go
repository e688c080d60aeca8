package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"munidocs/internal/domain"
	"munidocs/internal/service"
)

// MockUsageService is a mock implementation of service.UsageService.
type MockUsageService struct {
	mock.Mock
}

func (m *MockUsageService) ListTransactions(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.UsageTransaction, int, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.UsageTransaction), args.Int(1), args.Error(2)
}

func (m *MockUsageService) Summary(ctx context.Context, ownerID uuid.UUID) (*service.UsageReport, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UsageReport), args.Error(1)
}

func (m *MockUsageService) Export(ctx context.Context, ownerID uuid.UUID, format domain.ReportFormat) (*service.ExportedFile, error) {
	args := m.Called(ctx, ownerID, format)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportedFile), args.Error(1)
}

// MockUserConfigService is a mock implementation of service.UserConfigService.
type MockUserConfigService struct {
	mock.Mock
}

func (m *MockUserConfigService) Get(ctx context.Context, userID uuid.UUID) (*domain.UserConfig, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserConfig), args.Error(1)
}

func (m *MockUserConfigService) Update(ctx context.Context, input *service.UpdateUserConfigInput) (*domain.UserConfig, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserConfig), args.Error(1)
}

// MockNormativaService is a mock implementation of service.NormativaService.
type MockNormativaService struct {
	mock.Mock
}

func (m *MockNormativaService) List(ctx context.Context, category string) ([]domain.Normativa, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Normativa), args.Error(1)
}
