package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"munidocs/internal/domain"
	"munidocs/internal/port"
)

type usageRepo struct {
	db *sqlx.DB
}

// NewUsageRepo creates a new PostgreSQL-backed UsageRepository.
func NewUsageRepo(db *sqlx.DB) port.UsageRepository {
	return &usageRepo{db: db}
}

func (r *usageRepo) Create(ctx context.Context, tx *domain.UsageTransaction) error {
	tx.CreatedAt = time.Now().UTC()

	query := `INSERT INTO api_transactions (
		id, owner_id, document_id, agent, model,
		tokens_in, tokens_out, tokens_total, cost_estimate,
		duration_ms, status, created_at
	) VALUES (
		$1, $2, $3, $4, $5,
		$6, $7, $8, $9,
		$10, $11, $12
	)`

	_, err := r.db.ExecContext(ctx, query,
		tx.ID, tx.OwnerID, tx.DocumentID, tx.Agent, tx.Model,
		tx.TokensIn, tx.TokensOut, tx.TokensTotal, tx.CostEstimate,
		tx.DurationMs, tx.Status, tx.CreatedAt)
	if err != nil {
		return fmt.Errorf("usageRepo.Create: %w", err)
	}
	return nil
}

func (r *usageRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.UsageTransaction, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM api_transactions WHERE owner_id = $1", ownerID)
	if err != nil {
		return nil, 0, fmt.Errorf("usageRepo.ListByOwner count: %w", err)
	}

	var txs []domain.UsageTransaction
	err = r.db.SelectContext(ctx, &txs,
		`SELECT * FROM api_transactions WHERE owner_id = $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("usageRepo.ListByOwner: %w", err)
	}
	return txs, total, nil
}

func (r *usageRepo) SummaryByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.UsageSummary, error) {
	var rows []domain.UsageSummary
	err := r.db.SelectContext(ctx, &rows,
		`SELECT agent,
			COUNT(*) AS calls,
			COALESCE(SUM(tokens_in), 0) AS tokens_in,
			COALESCE(SUM(tokens_out), 0) AS tokens_out,
			COALESCE(SUM(tokens_total), 0) AS tokens_total,
			COALESCE(SUM(cost_estimate), 0) AS cost_total
		 FROM api_transactions
		 WHERE owner_id = $1
		 GROUP BY agent
		 ORDER BY agent`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("usageRepo.SummaryByOwner: %w", err)
	}
	return rows, nil
}
