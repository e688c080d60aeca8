package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"munidocs/internal/domain"
	"munidocs/internal/prompt"
	"munidocs/internal/service"
)

// Request keys that are not structured form fields.
const (
	keyFiles      = "archivos"
	keyCallerName = "usuario_nombre"
	keyCallerRole = "usuario_cargo"
)

// GenerationHandler serves the document generation endpoints.
type GenerationHandler struct {
	generationService service.GenerationService
}

// NewGenerationHandler creates a new GenerationHandler.
func NewGenerationHandler(generationService service.GenerationService) *GenerationHandler {
	return &GenerationHandler{generationService: generationService}
}

// Generate handles POST /api/v1/generate/:type
// @Summary Generate a municipal document
// @Description Build the prompt for the document type, call the LLM, sign the text and persist the document and its usage record
// @Tags generation
// @Accept json
// @Produce json
// @Param type path string true "Document type" Enums(oficio, memorando, carta, minuta, resumen_expediente, analisis_inversion)
// @Param request body object true "Form fields plus optional archivos, usuario_nombre and usuario_cargo"
// @Success 200 {object} object "Generated text under the type's response key, documento_id, guardado and metadata"
// @Failure 400 {object} ErrorBody "Missing required fields or invalid body"
// @Failure 401 {object} ErrorBody "Unauthorized"
// @Failure 404 {object} ErrorBody "Unknown document type"
// @Failure 500 {object} ErrorBody "Provider or configuration error"
// @Security BearerAuth
// @Router /generate/{type} [post]
func (h *GenerationHandler) Generate(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	input, err := decodeGenerateInput(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "Cuerpo de la solicitud inválido", err.Error())
		return
	}
	input.OwnerID = userID
	input.DocumentType = domain.DocumentType(c.Param("type"))

	out, err := h.generationService.Generate(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	var docID interface{}
	if out.DocumentID != nil {
		docID = out.DocumentID.String()
	}
	c.JSON(http.StatusOK, gin.H{
		out.ResponseKey: out.Text,
		"documento_id":  docID,
		"guardado":      out.Saved,
		"metadata":      out.Metadata,
	})
}

// DocumentTypes handles GET /api/v1/document-types
// @Summary List document types
// @Description List the registered document types with their fields and required keys
// @Tags generation
// @Produce json
// @Success 200 {object} APIResponse "Document types"
// @Router /document-types [get]
func (h *GenerationHandler) DocumentTypes(c *gin.Context) {
	type fieldView struct {
		Key      string `json:"clave"`
		Label    string `json:"etiqueta"`
		Required bool   `json:"requerido"`
		List     bool   `json:"lista"`
	}
	type typeView struct {
		Type        domain.DocumentType `json:"tipo"`
		DisplayName string              `json:"nombre"`
		ResponseKey string              `json:"clave_respuesta"`
		Required    []string            `json:"requeridos"`
		Fields      []fieldView         `json:"campos"`
	}

	specs := prompt.Specs()
	out := make([]typeView, 0, len(specs))
	for _, s := range specs {
		tv := typeView{Type: s.Type, DisplayName: s.DisplayName, ResponseKey: s.ResponseKey, Required: s.RequiredFields()}
		for _, f := range s.Fields {
			tv.Fields = append(tv.Fields, fieldView{Key: f.Key, Label: f.Label, Required: f.Required, List: f.List})
		}
		out = append(out, tv)
	}
	RespondOK(c, out)
}

// decodeGenerateInput splits the flat request body into reference files,
// caller attribution and structured fields. The caller identity in the body
// is used for the signature only; ownership comes from the credential.
func decodeGenerateInput(c *gin.Context) (*service.GenerateInput, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(c.Request.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}

	var caller domain.Caller
	input := &service.GenerateInput{Fields: make(map[string]string, len(raw))}

	for key, value := range raw {
		switch key {
		case keyFiles:
			if err := json.Unmarshal(value, &input.Files); err != nil {
				return nil, err
			}
		case keyCallerName:
			caller.Name = fieldString(value)
		case keyCallerRole:
			caller.Role = fieldString(value)
		default:
			if s := fieldString(value); s != "" {
				input.Fields[key] = s
			}
		}
	}
	input.Caller = caller
	return input, nil
}

// fieldString renders a JSON value as form text. Numbers keep their literal
// form; string arrays are joined with ", " so list fields accept both shapes.
func fieldString(raw json.RawMessage) string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return ""
	}

	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case []interface{}:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			switch it := item.(type) {
			case string:
				parts = append(parts, it)
			case json.Number:
				parts = append(parts, it.String())
			}
		}
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}
