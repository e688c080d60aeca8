package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"munidocs/internal/port"
)

// MockArchiveStorage is a mock implementation of port.ArchiveStorage.
type MockArchiveStorage struct {
	mock.Mock
}

func (m *MockArchiveStorage) Put(ctx context.Context, obj port.ArchiveObject) (string, error) {
	args := m.Called(ctx, obj)
	return args.String(0), args.Error(1)
}

func (m *MockArchiveStorage) PresignURL(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockArchiveStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
