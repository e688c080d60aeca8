package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"munidocs/internal/domain"
	"munidocs/internal/port"
)

type normativaRepo struct {
	db *sqlx.DB
}

// NewNormativaRepo creates a new PostgreSQL-backed NormativaRepository.
func NewNormativaRepo(db *sqlx.DB) port.NormativaRepository {
	return &normativaRepo{db: db}
}

func (r *normativaRepo) List(ctx context.Context, category string) ([]domain.Normativa, error) {
	var items []domain.Normativa
	var err error
	if category == "" {
		err = r.db.SelectContext(ctx, &items,
			"SELECT * FROM normativa ORDER BY category, code")
	} else {
		err = r.db.SelectContext(ctx, &items,
			"SELECT * FROM normativa WHERE category = $1 ORDER BY code", category)
	}
	if err != nil {
		return nil, fmt.Errorf("normativaRepo.List: %w", err)
	}
	return items, nil
}
