package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"munidocs/internal/domain"
	"munidocs/internal/logger"
	"munidocs/internal/observability"
	"munidocs/internal/port"
)

// WriteResult reports what the writer managed to store.
type WriteResult struct {
	DocumentID *uuid.UUID
	Saved      bool
}

// DocumentWriter stores a generated document and its usage transaction as
// two independent inserts. The LLM call behind them cannot be rolled back, so
// a failed document insert still records usage with a nil document id.
type DocumentWriter struct {
	docRepo   port.DocumentRepository
	usageRepo port.UsageRepository
	log       *zap.Logger
}

// NewDocumentWriter creates a DocumentWriter.
func NewDocumentWriter(docRepo port.DocumentRepository, usageRepo port.UsageRepository, log *zap.Logger) *DocumentWriter {
	return &DocumentWriter{docRepo: docRepo, usageRepo: usageRepo, log: logger.OrNop(log)}
}

// Write never returns an error; failures are logged and reflected in Saved.
func (w *DocumentWriter) Write(ctx context.Context, doc *domain.Document, tx *domain.UsageTransaction) WriteResult {
	var result WriteResult

	if doc.ID == uuid.Nil {
		doc.ID = uuid.New()
	}
	if doc.State == "" {
		doc.State = domain.DocumentStateDraft
	}

	if err := w.docRepo.Create(ctx, doc); err != nil {
		w.fail(&domain.PersistenceError{Op: "insert_document", Err: err},
			zap.String("owner_id", doc.OwnerID.String()),
			zap.String("document_type", string(doc.DocumentType)))
	} else {
		id := doc.ID
		result.DocumentID = &id
		result.Saved = true
	}

	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	tx.OwnerID = doc.OwnerID
	tx.DocumentID = result.DocumentID

	if err := w.usageRepo.Create(ctx, tx); err != nil {
		w.fail(&domain.PersistenceError{Op: "insert_transaction", Err: err},
			zap.String("owner_id", tx.OwnerID.String()),
			zap.String("agent", string(tx.Agent)),
			zap.Int("tokens_total", tx.TokensTotal))
	}

	return result
}

func (w *DocumentWriter) fail(err *domain.PersistenceError, fields ...zap.Field) {
	observability.PersistenceFailures.WithLabelValues(err.Op).Inc()
	w.log.Error("persistence failed", append(fields, zap.String("op", err.Op), zap.Error(err))...)
}
