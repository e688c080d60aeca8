package port

import (
	"context"

	"github.com/google/uuid"

	"munidocs/internal/domain"
)

// UserConfigRepository defines persistence for per-user preferences.
type UserConfigRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserConfig, error)
	Upsert(ctx context.Context, cfg *domain.UserConfig) error
}

// NormativaRepository reads the reference normativa table.
type NormativaRepository interface {
	List(ctx context.Context, category string) ([]domain.Normativa, error)
}
