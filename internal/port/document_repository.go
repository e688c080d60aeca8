package port

import (
	"context"

	"github.com/google/uuid"

	"munidocs/internal/domain"
)

// DocumentFilter narrows document listings.
type DocumentFilter struct {
	DocumentType *domain.DocumentType
}

// DocumentRepository defines persistence for generated documents.
// Every method is scoped by the owner id taken from the verified credential.
type DocumentRepository interface {
	Create(ctx context.Context, doc *domain.Document) error
	GetByID(ctx context.Context, ownerID, docID uuid.UUID) (*domain.Document, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, filter DocumentFilter, offset, limit int) ([]domain.Document, int, error)
	Update(ctx context.Context, doc *domain.Document) error
}
