package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"munidocs/internal/domain"
	"munidocs/internal/port"
	"munidocs/internal/service"
)

// DocumentHandler handles the caller's stored documents.
type DocumentHandler struct {
	documentService service.DocumentService
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(documentService service.DocumentService) *DocumentHandler {
	return &DocumentHandler{documentService: documentService}
}

// List handles GET /api/v1/documents
// @Summary List documents
// @Description List the caller's generated documents, newest first
// @Tags documents
// @Produce json
// @Param tipo query string false "Filter by document type"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} APIResponse{data=[]domain.Document,meta=PagMeta} "Documents"
// @Failure 401 {object} ErrorBody "Unauthorized"
// @Security BearerAuth
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var filter port.DocumentFilter
	if t := c.Query("tipo"); t != "" {
		dt := domain.DocumentType(t)
		filter.DocumentType = &dt
	}
	offset, limit := parsePagination(c)

	docs, total, err := h.documentService.List(c.Request.Context(), userID, filter, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	if docs == nil {
		docs = []domain.Document{}
	}

	RespondPaginated(c, docs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/documents/:id
// @Summary Get a document
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} APIResponse{data=domain.Document} "Document"
// @Failure 400 {object} ErrorBody "Invalid document ID"
// @Failure 401 {object} ErrorBody "Unauthorized"
// @Failure 404 {object} ErrorBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id} [get]
func (h *DocumentHandler) GetByID(c *gin.Context) {
	userID, docID, ok := documentParams(c)
	if !ok {
		return
	}

	doc, err := h.documentService.Get(c.Request.Context(), userID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Update handles PUT /api/v1/documents/:id
// @Summary Update a document
// @Description Edit the title or body, or move the document to another state. Archived documents are read-only.
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param request body object true "titulo, contenido and estado, all optional"
// @Success 200 {object} APIResponse{data=domain.Document} "Updated document"
// @Failure 400 {object} ErrorBody "Invalid request"
// @Failure 401 {object} ErrorBody "Unauthorized"
// @Failure 404 {object} ErrorBody "Document not found"
// @Failure 409 {object} ErrorBody "Document is archived or the state change is not allowed"
// @Security BearerAuth
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	userID, docID, ok := documentParams(c)
	if !ok {
		return
	}

	var req struct {
		Title *string               `json:"titulo"`
		Body  *string               `json:"contenido"`
		State *domain.DocumentState `json:"estado"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "Cuerpo de la solicitud inválido", err.Error())
		return
	}

	doc, err := h.documentService.Update(c.Request.Context(), &service.UpdateDocumentInput{
		OwnerID:    userID,
		DocumentID: docID,
		Title:      req.Title,
		Body:       req.Body,
		State:      req.State,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, doc)
}

// Export handles GET /api/v1/documents/:id/export?format=txt|md|html
// @Summary Export a document
// @Tags documents
// @Produce plain
// @Produce html
// @Param id path string true "Document ID"
// @Param format query string false "Export format" Enums(txt, md, html) default(txt)
// @Success 200 {file} file "Document file"
// @Failure 400 {object} ErrorBody "Unsupported format"
// @Failure 401 {object} ErrorBody "Unauthorized"
// @Failure 404 {object} ErrorBody "Document not found"
// @Security BearerAuth
// @Router /documents/{id}/export [get]
func (h *DocumentHandler) Export(c *gin.Context) {
	userID, docID, ok := documentParams(c)
	if !ok {
		return
	}

	format := domain.ExportFormat(c.DefaultQuery("format", string(domain.ExportFormatText)))
	file, err := h.documentService.Export(c.Request.Context(), userID, docID, format)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondFile(c, file.Filename, file.ContentType, file.Data)
}

// Archive handles POST /api/v1/documents/:id/archive
// @Summary Archive a document
// @Description Upload the rendered document to object storage and mark it archived
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} APIResponse "Archived document and its download URL"
// @Failure 401 {object} ErrorBody "Unauthorized"
// @Failure 404 {object} ErrorBody "Document not found"
// @Failure 409 {object} ErrorBody "Document already archived"
// @Failure 503 {object} ErrorBody "Object storage not configured"
// @Security BearerAuth
// @Router /documents/{id}/archive [post]
func (h *DocumentHandler) Archive(c *gin.Context) {
	userID, docID, ok := documentParams(c)
	if !ok {
		return
	}

	result, err := h.documentService.Archive(c.Request.Context(), userID, docID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"documento": result.Document, "url": result.URL})
}

func documentParams(c *gin.Context) (userID, docID uuid.UUID, ok bool) {
	userID, ok = requireUserID(c)
	if !ok {
		return uuid.Nil, uuid.Nil, false
	}
	docID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Identificador inválido", "el id del documento no es un UUID")
		return uuid.Nil, uuid.Nil, false
	}
	return userID, docID, true
}
