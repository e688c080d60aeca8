package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrDocumentNotFound    = errors.New("document not found")
	ErrInvalidState        = errors.New("invalid document state transition")
	ErrUnsupportedFormat   = errors.New("unsupported export format")
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrStorageUnavailable  = errors.New("object storage not configured")
)

// ValidationError reports required fields that are missing or blank.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "Faltan campos requeridos: " + strings.Join(e.Fields, ", ")
}

// ConfigurationError reports a missing server-side setting. It names the
// setting and never carries its value.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuración del servidor incompleta: falta %s", e.Key)
}

// UpstreamError reports a non-success response from the LLM provider.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s API error (status %d): %s", e.Provider, e.StatusCode, e.Body)
}

// TransportError reports a network failure while calling the LLM provider.
type TransportError struct {
	Provider string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("calling %s API: %v", e.Provider, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// PersistenceError reports a failed storage write. It is logged, never
// surfaced to the caller of a generation request.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
