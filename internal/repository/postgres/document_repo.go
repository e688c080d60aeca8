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

type documentRepo struct {
	db *sqlx.DB
}

// NewDocumentRepo creates a new PostgreSQL-backed DocumentRepository.
func NewDocumentRepo(db *sqlx.DB) port.DocumentRepository {
	return &documentRepo{db: db}
}

func (r *documentRepo) Create(ctx context.Context, doc *domain.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	query := `INSERT INTO documents (
		id, owner_id, document_type, title, body, metadata,
		state, archive_key, created_at, updated_at
	) VALUES (
		$1, $2, $3, $4, $5, $6,
		$7, $8, $9, $10
	)`

	_, err := r.db.ExecContext(ctx, query,
		doc.ID, doc.OwnerID, doc.DocumentType, doc.Title, doc.Body, doc.Metadata,
		doc.State, doc.ArchiveKey, doc.CreatedAt, doc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}
	return nil
}

func (r *documentRepo) GetByID(ctx context.Context, ownerID, docID uuid.UUID) (*domain.Document, error) {
	var doc domain.Document
	err := r.db.GetContext(ctx, &doc,
		"SELECT * FROM documents WHERE id = $1 AND owner_id = $2", docID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}
	return &doc, nil
}

func (r *documentRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, filter port.DocumentFilter, offset, limit int) ([]domain.Document, int, error) {
	where := "WHERE owner_id = $1"
	args := []interface{}{ownerID}
	if filter.DocumentType != nil {
		where += " AND document_type = $2"
		args = append(args, *filter.DocumentType)
	}

	var total int
	err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM documents "+where, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByOwner count: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT * FROM documents %s
		 ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, where, n+1, n+2)
	args = append(args, limit, offset)

	var docs []domain.Document
	if err := r.db.SelectContext(ctx, &docs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("documentRepo.ListByOwner: %w", err)
	}
	return docs, total, nil
}

func (r *documentRepo) Update(ctx context.Context, doc *domain.Document) error {
	doc.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET
			title = $1, body = $2, state = $3, archive_key = $4, updated_at = $5
		 WHERE id = $6 AND owner_id = $7`,
		doc.Title, doc.Body, doc.State, doc.ArchiveKey, doc.UpdatedAt,
		doc.ID, doc.OwnerID)
	if err != nil {
		return fmt.Errorf("documentRepo.Update: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("documentRepo.Update rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}
