package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Caller identifies the staff member requesting a generation, for attribution.
type Caller struct {
	Name string
	Role string
}

// ReferenceFile is a client-supplied auxiliary document with already extracted text.
type ReferenceFile struct {
	Name        string  `json:"nombre"`
	TextContent *string `json:"contenido,omitempty"`
}

// Text returns the extracted text, or "" when none was supplied.
func (f ReferenceFile) Text() string {
	if f.TextContent == nil {
		return ""
	}
	return *f.TextContent
}

// GenerationRequest is the structured input of one generation call.
type GenerationRequest struct {
	DocumentType DocumentType
	Fields       map[string]string
	Files        []ReferenceFile
	Caller       Caller
}

// Prompt is the paired system/user instruction text sent to the LLM.
type Prompt struct {
	SystemText string
	UserText   string
}

// GenerationResult is the text and token usage returned by the LLM.
type GenerationResult struct {
	Text      string
	TokensIn  int
	TokensOut int
	Model     string
}

// Document is a persisted generated document, owned by exactly one user.
type Document struct {
	ID           uuid.UUID       `db:"id" json:"id"`
	OwnerID      uuid.UUID       `db:"owner_id" json:"owner_id"`
	DocumentType DocumentType    `db:"document_type" json:"document_type"`
	Title        string          `db:"title" json:"title"`
	Body         string          `db:"body" json:"body"`
	Metadata     json.RawMessage `db:"metadata" json:"metadata"`
	State        DocumentState   `db:"state" json:"state"`
	ArchiveKey   string          `db:"archive_key" json:"archive_key,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// UsageTransaction is the write-once accounting record of one LLM call.
// DocumentID is nil when the related document insert failed.
type UsageTransaction struct {
	ID           uuid.UUID         `db:"id" json:"id"`
	OwnerID      uuid.UUID         `db:"owner_id" json:"owner_id"`
	DocumentID   *uuid.UUID        `db:"document_id" json:"document_id"`
	Agent        DocumentType      `db:"agent" json:"agent"`
	Model        string            `db:"model" json:"model"`
	TokensIn     int               `db:"tokens_in" json:"tokens_in"`
	TokensOut    int               `db:"tokens_out" json:"tokens_out"`
	TokensTotal  int               `db:"tokens_total" json:"tokens_total"`
	CostEstimate float64           `db:"cost_estimate" json:"cost_estimate"`
	DurationMs   int64             `db:"duration_ms" json:"duration_ms"`
	Status       TransactionStatus `db:"status" json:"status"`
	CreatedAt    time.Time         `db:"created_at" json:"created_at"`
}

// UsageSummary aggregates usage transactions for one agent.
type UsageSummary struct {
	Agent       DocumentType `db:"agent" json:"agent"`
	Calls       int          `db:"calls" json:"calls"`
	TokensIn    int          `db:"tokens_in" json:"tokens_in"`
	TokensOut   int          `db:"tokens_out" json:"tokens_out"`
	TokensTotal int          `db:"tokens_total" json:"tokens_total"`
	CostTotal   float64      `db:"cost_total" json:"cost_total"`
}

// UserConfig holds per-user preferences used for attribution.
type UserConfig struct {
	UserID           uuid.UUID `db:"user_id" json:"user_id"`
	DisplayName      string    `db:"display_name" json:"nombre"`
	Role             string    `db:"role" json:"cargo"`
	SignatureEnabled bool      `db:"signature_enabled" json:"firma_habilitada"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time `db:"updated_at" json:"updated_at"`
}

// Normativa is a reference legal norm used for categorization.
type Normativa struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Code        string    `db:"code" json:"codigo"`
	Title       string    `db:"title" json:"titulo"`
	Category    string    `db:"category" json:"categoria"`
	Description string    `db:"description" json:"descripcion"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
