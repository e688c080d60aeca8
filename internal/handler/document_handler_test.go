package handler_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"munidocs/internal/domain"
	"munidocs/internal/handler"
	"munidocs/internal/port"
	"munidocs/internal/service"
	"munidocs/mocks"
)

func newDocContext(method, path, body string, docID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	c.Request, _ = http.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	if docID != "" {
		c.Params = gin.Params{{Key: "id", Value: docID}}
	}
	return c, w
}

func TestDocumentHandler_List_FiltersByType(t *testing.T) {
	svc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(svc)
	userID := uuid.New()

	svc.On("List", mock.Anything, userID, mock.MatchedBy(func(f port.DocumentFilter) bool {
		return f.DocumentType != nil && *f.DocumentType == domain.DocumentTypeCarta
	}), 0, 20).Return([]domain.Document{{ID: uuid.New()}}, 1, nil)

	c, w := newDocContext(http.MethodGet, "/api/v1/documents?tipo=carta", "", "")
	setAuthContext(c, userID)

	h.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, float64(1), resp["meta"].(map[string]interface{})["total"])
	svc.AssertExpectations(t)
}

func TestDocumentHandler_GetByID_InvalidID(t *testing.T) {
	h := handler.NewDocumentHandler(new(mocks.MockDocumentService))

	c, w := newDocContext(http.MethodGet, "/api/v1/documents/abc", "", "abc")
	setAuthContext(c, uuid.New())

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentHandler_GetByID_NotFound(t *testing.T) {
	svc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(svc)
	userID, docID := uuid.New(), uuid.New()

	svc.On("Get", mock.Anything, userID, docID).Return(nil, domain.ErrDocumentNotFound)

	c, w := newDocContext(http.MethodGet, "/api/v1/documents/"+docID.String(), "", docID.String())
	setAuthContext(c, userID)

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocumentHandler_Update_PassesOptionalFields(t *testing.T) {
	svc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(svc)
	userID, docID := uuid.New(), uuid.New()

	svc.On("Update", mock.Anything, mock.MatchedBy(func(in *service.UpdateDocumentInput) bool {
		return in.OwnerID == userID && in.DocumentID == docID &&
			in.Title == nil && in.Body != nil && *in.Body == "nuevo" &&
			in.State != nil && *in.State == domain.DocumentStateFinal
	})).Return(&domain.Document{ID: docID, Body: "nuevo", State: domain.DocumentStateFinal}, nil)

	c, w := newDocContext(http.MethodPut, "/api/v1/documents/"+docID.String(),
		`{"contenido": "nuevo", "estado": "final"}`, docID.String())
	setAuthContext(c, userID)

	h.Update(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestDocumentHandler_Update_ArchivedConflict(t *testing.T) {
	svc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(svc)
	docID := uuid.New()

	svc.On("Update", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidState)

	c, w := newDocContext(http.MethodPut, "/", `{"contenido": "x"}`, docID.String())
	setAuthContext(c, uuid.New())

	h.Update(c)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDocumentHandler_Export_Attachment(t *testing.T) {
	svc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(svc)
	userID, docID := uuid.New(), uuid.New()

	svc.On("Export", mock.Anything, userID, docID, domain.ExportFormatMarkdown).Return(&service.ExportedFile{
		Filename: "Oficio_-_Fondos.md", ContentType: "text/markdown; charset=utf-8", Data: []byte("# Oficio"),
	}, nil)

	c, w := newDocContext(http.MethodGet, "/x?format=md", "", docID.String())
	setAuthContext(c, userID)

	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "# Oficio", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "Oficio_-_Fondos.md")
	assert.Equal(t, "text/markdown; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestDocumentHandler_Archive_StorageUnavailable(t *testing.T) {
	svc := new(mocks.MockDocumentService)
	h := handler.NewDocumentHandler(svc)
	docID := uuid.New()

	svc.On("Archive", mock.Anything, mock.Anything, docID).Return(nil, domain.ErrStorageUnavailable)

	c, w := newDocContext(http.MethodPost, "/", "", docID.String())
	setAuthContext(c, uuid.New())

	h.Archive(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
