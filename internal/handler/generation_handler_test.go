package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"munidocs/internal/domain"
	"munidocs/internal/handler"
	"munidocs/internal/middleware"
	"munidocs/internal/service"
	"munidocs/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setAuthContext(c *gin.Context, userID uuid.UUID) {
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyEmail, "ana@municipalidad.cl")
	c.Set(middleware.ContextKeyName, "Ana Pérez")
}

func newGenerateContext(t *testing.T, docType string, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/generate/"+docType, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "type", Value: docType}}
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGenerationHandler_Success(t *testing.T) {
	svc := new(mocks.MockGenerationService)
	h := handler.NewGenerationHandler(svc)
	userID, docID := uuid.New(), uuid.New()

	svc.On("Generate", mock.Anything, mock.MatchedBy(func(in *service.GenerateInput) bool {
		return in.OwnerID == userID &&
			in.DocumentType == domain.DocumentTypeMemorando &&
			in.Fields["asunto"] == "Pagos" &&
			in.Caller.Name == "Luis Soto" &&
			len(in.Files) == 1 && in.Files[0].Name == "informe.pdf"
	})).Return(&service.GenerateOutput{
		ResponseKey: "documento",
		Text:        "MEMORANDO\n\n---\nLuis Soto",
		DocumentID:  &docID,
		Saved:       true,
		Metadata: service.GenerationMetadata{
			Timestamp: time.Now(), Model: "gpt-4o", Tokens: 400, CostUSD: "0.003250",
			DocumentType: domain.DocumentTypeMemorando,
		},
	}, nil)

	c, w := newGenerateContext(t, "memorando", `{
		"para": "Finanzas", "de": "Obras", "asunto": "Pagos", "contenido": "x",
		"usuario_nombre": "Luis Soto",
		"archivos": [{"nombre": "informe.pdf", "contenido": "texto"}]
	}`)
	setAuthContext(c, userID)

	h.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "MEMORANDO\n\n---\nLuis Soto", resp["documento"])
	assert.Equal(t, docID.String(), resp["documento_id"])
	assert.Equal(t, true, resp["guardado"])
	meta := resp["metadata"].(map[string]interface{})
	assert.Equal(t, "0.003250", meta["costo_usd"])
	assert.Equal(t, "gpt-4o", meta["modelo"])
	svc.AssertExpectations(t)
}

func TestGenerationHandler_NotSavedReturnsNullID(t *testing.T) {
	svc := new(mocks.MockGenerationService)
	h := handler.NewGenerationHandler(svc)

	svc.On("Generate", mock.Anything, mock.Anything).Return(&service.GenerateOutput{
		ResponseKey: "resumen", Text: "RESUMEN", Saved: false,
	}, nil)

	c, w := newGenerateContext(t, "resumen_expediente", `{"numero_expediente": "1"}`)
	setAuthContext(c, uuid.New())

	h.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "RESUMEN", resp["resumen"])
	assert.Nil(t, resp["documento_id"])
	assert.Equal(t, false, resp["guardado"])
}

func TestGenerationHandler_NumbersAndListsKeptAsText(t *testing.T) {
	svc := new(mocks.MockGenerationService)
	h := handler.NewGenerationHandler(svc)

	svc.On("Generate", mock.Anything, mock.MatchedBy(func(in *service.GenerateInput) bool {
		return in.Fields["monto_inversion"] == "1500000000.50" &&
			in.Fields["riesgos"] == "Sismo, Retraso" &&
			in.Caller.Name == ""
	})).Return(&service.GenerateOutput{ResponseKey: "analisis"}, nil)

	c, w := newGenerateContext(t, "analisis_inversion",
		`{"monto_inversion": 1500000000.50, "riesgos": ["Sismo", "Retraso"], "notas": null}`)
	setAuthContext(c, uuid.New())

	h.Generate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestGenerationHandler_ValidationError(t *testing.T) {
	svc := new(mocks.MockGenerationService)
	h := handler.NewGenerationHandler(svc)

	svc.On("Generate", mock.Anything, mock.Anything).
		Return(nil, &domain.ValidationError{Fields: []string{"asunto"}})

	c, w := newGenerateContext(t, "memorando", `{"para": "A"}`)
	setAuthContext(c, uuid.New())

	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeBody(t, w)["error"], "asunto")
}

func TestGenerationHandler_UpstreamErrorSurfacesDetails(t *testing.T) {
	svc := new(mocks.MockGenerationService)
	h := handler.NewGenerationHandler(svc)

	svc.On("Generate", mock.Anything, mock.Anything).Return(nil, &domain.UpstreamError{
		Provider: "openai", StatusCode: 429, Body: `{"error":{"message":"Rate limit reached"}}`,
	})

	c, w := newGenerateContext(t, "oficio", `{}`)
	setAuthContext(c, uuid.New())

	h.Generate(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, decodeBody(t, w)["details"], "Rate limit reached")
}

func TestGenerationHandler_ConfigurationErrorDoesNotLeakValue(t *testing.T) {
	svc := new(mocks.MockGenerationService)
	h := handler.NewGenerationHandler(svc)

	svc.On("Generate", mock.Anything, mock.Anything).
		Return(nil, &domain.ConfigurationError{Key: "MUNIDOCS_LLM_API_KEY"})

	c, w := newGenerateContext(t, "oficio", `{}`)
	setAuthContext(c, uuid.New())

	h.Generate(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeBody(t, w)
	assert.Contains(t, resp["message"], "MUNIDOCS_LLM_API_KEY")
}

func TestGenerationHandler_InvalidJSON(t *testing.T) {
	svc := new(mocks.MockGenerationService)
	h := handler.NewGenerationHandler(svc)

	c, w := newGenerateContext(t, "oficio", `{not json`)
	setAuthContext(c, uuid.New())

	h.Generate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerationHandler_NoAuthContext(t *testing.T) {
	svc := new(mocks.MockGenerationService)
	h := handler.NewGenerationHandler(svc)

	c, w := newGenerateContext(t, "oficio", `{}`)

	h.Generate(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerationHandler_DocumentTypes(t *testing.T) {
	h := handler.NewGenerationHandler(new(mocks.MockGenerationService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/document-types", http.NoBody)

	h.DocumentTypes(c)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	data, ok := resp["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 6)
	memorando := data[1].(map[string]interface{})
	assert.Equal(t, "memorando", memorando["tipo"])
	assert.Equal(t, []interface{}{"para", "de", "asunto", "contenido"}, memorando["requeridos"])
}

func TestMapDomainError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrDocumentNotFound, http.StatusNotFound},
		{domain.ErrInvalidState, http.StatusConflict},
		{domain.ErrUnsupportedFormat, http.StatusBadRequest},
		{domain.ErrStorageUnavailable, http.StatusServiceUnavailable},
		{domain.ErrUnknownDocumentType, http.StatusNotFound},
		{&domain.TransportError{Provider: "claude", Err: errors.New("dial tcp")}, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		status, body := handler.MapDomainError(tc.err)
		assert.Equal(t, tc.status, status, tc.err.Error())
		assert.NotEmpty(t, body.Error)
	}

	_, body := handler.MapDomainError(errors.New("boom"))
	assert.Equal(t, "boom", body.Message)
}
