package domain

// DocumentType identifies one of the specialized generation workflows (agents).
type DocumentType string

const (
	DocumentTypeOficio            DocumentType = "oficio"
	DocumentTypeMemorando         DocumentType = "memorando"
	DocumentTypeCarta             DocumentType = "carta"
	DocumentTypeMinuta            DocumentType = "minuta"
	DocumentTypeResumenExpediente DocumentType = "resumen_expediente"
	DocumentTypeAnalisisInversion DocumentType = "analisis_inversion"
)

// DocumentState represents the lifecycle of a generated document.
type DocumentState string

const (
	DocumentStateDraft    DocumentState = "borrador"
	DocumentStateFinal    DocumentState = "final"
	DocumentStateArchived DocumentState = "archivado"
)

// ValidDocumentStates is the set of states a client may request.
var ValidDocumentStates = map[DocumentState]bool{
	DocumentStateDraft:    true,
	DocumentStateFinal:    true,
	DocumentStateArchived: true,
}

// CanTransition reports whether a document may move from one state to another.
// Archived documents are read-only.
func (s DocumentState) CanTransition(to DocumentState) bool {
	if s == to {
		return true
	}
	switch s {
	case DocumentStateDraft:
		return to == DocumentStateFinal || to == DocumentStateArchived
	case DocumentStateFinal:
		return to == DocumentStateDraft || to == DocumentStateArchived
	default:
		return false
	}
}

// TransactionStatus is the outcome recorded on a usage transaction.
type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusError   TransactionStatus = "error"
	TransactionStatusTimeout TransactionStatus = "timeout"
)

// ExportFormat is a download format for a generated document.
type ExportFormat string

const (
	ExportFormatText     ExportFormat = "txt"
	ExportFormatMarkdown ExportFormat = "md"
	ExportFormatHTML     ExportFormat = "html"
)

// ExportContentTypes maps export formats to their MIME content type.
var ExportContentTypes = map[ExportFormat]string{
	ExportFormatText:     "text/plain; charset=utf-8",
	ExportFormatMarkdown: "text/markdown; charset=utf-8",
	ExportFormatHTML:     "text/html; charset=utf-8",
}

// ReportFormat is a download format for the usage report.
type ReportFormat string

const (
	ReportFormatXLSX ReportFormat = "xlsx"
	ReportFormatCSV  ReportFormat = "csv"
)
