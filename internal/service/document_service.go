package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"munidocs/internal/domain"
	"munidocs/internal/export"
	"munidocs/internal/logger"
	"munidocs/internal/port"
)

// UpdateDocumentInput is the DTO for editing a document. Nil fields are left unchanged.
type UpdateDocumentInput struct {
	OwnerID    uuid.UUID
	DocumentID uuid.UUID
	Title      *string
	Body       *string
	State      *domain.DocumentState
}

// ExportedFile is a rendered download.
type ExportedFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ArchiveResult is an archived document plus a temporary download URL.
type ArchiveResult struct {
	Document *domain.Document
	URL      string
}

// DocumentService manages the caller's generated documents.
type DocumentService interface {
	List(ctx context.Context, ownerID uuid.UUID, filter port.DocumentFilter, offset, limit int) ([]domain.Document, int, error)
	Get(ctx context.Context, ownerID, docID uuid.UUID) (*domain.Document, error)
	Update(ctx context.Context, input *UpdateDocumentInput) (*domain.Document, error)
	Export(ctx context.Context, ownerID, docID uuid.UUID, format domain.ExportFormat) (*ExportedFile, error)
	Archive(ctx context.Context, ownerID, docID uuid.UUID) (*ArchiveResult, error)
}

type documentService struct {
	docRepo port.DocumentRepository
	storage port.ArchiveStorage
	log     *zap.Logger
}

// NewDocumentService creates a new DocumentService. storage may be nil when
// archiving is not configured.
func NewDocumentService(docRepo port.DocumentRepository, storage port.ArchiveStorage, log *zap.Logger) DocumentService {
	return &documentService{docRepo: docRepo, storage: storage, log: logger.OrNop(log)}
}

func (s *documentService) List(ctx context.Context, ownerID uuid.UUID, filter port.DocumentFilter, offset, limit int) ([]domain.Document, int, error) {
	return s.docRepo.ListByOwner(ctx, ownerID, filter, offset, limit)
}

func (s *documentService) Get(ctx context.Context, ownerID, docID uuid.UUID) (*domain.Document, error) {
	return s.docRepo.GetByID(ctx, ownerID, docID)
}

func (s *documentService) Update(ctx context.Context, input *UpdateDocumentInput) (*domain.Document, error) {
	doc, err := s.docRepo.GetByID(ctx, input.OwnerID, input.DocumentID)
	if err != nil {
		return nil, err
	}
	if doc.State == domain.DocumentStateArchived {
		return nil, domain.ErrInvalidState
	}

	if input.State != nil {
		if !domain.ValidDocumentStates[*input.State] || !doc.State.CanTransition(*input.State) {
			return nil, domain.ErrInvalidState
		}
		doc.State = *input.State
	}
	if input.Title != nil {
		if t := strings.TrimSpace(*input.Title); t != "" {
			doc.Title = t
		}
	}
	if input.Body != nil {
		doc.Body = *input.Body
	}

	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, fmt.Errorf("documentService.Update: %w", err)
	}
	return doc, nil
}

func (s *documentService) Export(ctx context.Context, ownerID, docID uuid.UUID, format domain.ExportFormat) (*ExportedFile, error) {
	contentType, ok := domain.ExportContentTypes[format]
	if !ok {
		return nil, domain.ErrUnsupportedFormat
	}
	doc, err := s.docRepo.GetByID(ctx, ownerID, docID)
	if err != nil {
		return nil, err
	}
	data, err := export.RenderDocument(doc, format)
	if err != nil {
		return nil, err
	}
	return &ExportedFile{
		Filename:    export.BuildFilename(doc.Title, string(format)),
		ContentType: contentType,
		Data:        data,
	}, nil
}

func (s *documentService) Archive(ctx context.Context, ownerID, docID uuid.UUID) (*ArchiveResult, error) {
	if s.storage == nil {
		return nil, domain.ErrStorageUnavailable
	}
	doc, err := s.docRepo.GetByID(ctx, ownerID, docID)
	if err != nil {
		return nil, err
	}

	if doc.State != domain.DocumentStateArchived || doc.ArchiveKey == "" {
		data, err := export.RenderDocument(doc, domain.ExportFormatHTML)
		if err != nil {
			return nil, err
		}
		key := fmt.Sprintf("documents/%s/%s.html", doc.OwnerID, doc.ID)
		if _, err := s.storage.Put(ctx, port.ArchiveObject{
			Key:         key,
			Body:        bytes.NewReader(data),
			ContentType: domain.ExportContentTypes[domain.ExportFormatHTML],
		}); err != nil {
			return nil, fmt.Errorf("documentService.Archive upload: %w", err)
		}

		doc.ArchiveKey = key
		doc.State = domain.DocumentStateArchived
		if err := s.docRepo.Update(ctx, doc); err != nil {
			// Leave no orphan object behind a document that is not marked archived.
			if delErr := s.storage.Delete(ctx, key); delErr != nil {
				s.log.Warn("archive cleanup failed", zap.String("key", key), zap.Error(delErr))
			}
			return nil, fmt.Errorf("documentService.Archive: %w", err)
		}
	}

	url, err := s.storage.PresignURL(ctx, doc.ArchiveKey)
	if err != nil {
		return nil, fmt.Errorf("documentService.Archive presign: %w", err)
	}
	return &ArchiveResult{Document: doc, URL: url}, nil
}
