package port

import (
	"context"

	"github.com/google/uuid"

	"munidocs/internal/domain"
)

// UsageRepository defines persistence for usage transactions. Transactions
// are write-once: there is no update or delete.
type UsageRepository interface {
	Create(ctx context.Context, tx *domain.UsageTransaction) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID, offset, limit int) ([]domain.UsageTransaction, int, error)
	SummaryByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.UsageSummary, error)
}
