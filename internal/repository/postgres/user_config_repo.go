package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"munidocs/internal/domain"
	"munidocs/internal/port"
)

type userConfigRepo struct {
	db *sqlx.DB
}

// NewUserConfigRepo creates a new PostgreSQL-backed UserConfigRepository.
func NewUserConfigRepo(db *sqlx.DB) port.UserConfigRepository {
	return &userConfigRepo{db: db}
}

func (r *userConfigRepo) Get(ctx context.Context, userID uuid.UUID) (*domain.UserConfig, error) {
	var cfg domain.UserConfig
	err := r.db.GetContext(ctx, &cfg,
		"SELECT * FROM user_configs WHERE user_id = $1", userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userConfigRepo.Get: %w", err)
	}
	return &cfg, nil
}

func (r *userConfigRepo) Upsert(ctx context.Context, cfg *domain.UserConfig) error {
	now := time.Now().UTC()
	cfg.UpdatedAt = now
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_configs (user_id, display_name, role, signature_enabled, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			role = EXCLUDED.role,
			signature_enabled = EXCLUDED.signature_enabled,
			updated_at = EXCLUDED.updated_at`,
		cfg.UserID, cfg.DisplayName, cfg.Role, cfg.SignatureEnabled, cfg.CreatedAt, cfg.UpdatedAt)
	if err != nil {
		return fmt.Errorf("userConfigRepo.Upsert: %w", err)
	}
	return nil
}
