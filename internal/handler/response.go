package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"munidocs/internal/domain"
	"munidocs/internal/middleware"
)

// APIResponse is the success envelope of the management endpoints.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// ErrorBody is the body of every error response.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, errText, msg string) {
	c.JSON(status, ErrorBody{Error: errText, Message: msg})
}

// RespondFile sends data as a download.
func RespondFile(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// MapDomainError translates domain errors to an HTTP status and error body.
// Configuration errors name the missing setting only.
func MapDomainError(err error) (int, ErrorBody) {
	var (
		valErr *domain.ValidationError
		cfgErr *domain.ConfigurationError
		upErr  *domain.UpstreamError
		trErr  *domain.TransportError
	)
	switch {
	case errors.As(err, &valErr):
		return http.StatusBadRequest, ErrorBody{Error: valErr.Error()}
	case errors.As(err, &cfgErr):
		return http.StatusInternalServerError, ErrorBody{
			Error:   "Configuración del servidor incompleta",
			Message: cfgErr.Error(),
		}
	case errors.As(err, &upErr):
		return http.StatusInternalServerError, ErrorBody{
			Error:   "Error al generar el documento",
			Message: fmt.Sprintf("el proveedor %s respondió con estado %d", upErr.Provider, upErr.StatusCode),
			Details: upErr.Body,
		}
	case errors.As(err, &trErr):
		return http.StatusInternalServerError, ErrorBody{
			Error:   "Error al generar el documento",
			Message: "no se pudo contactar al proveedor " + trErr.Provider,
			Details: trErr.Err.Error(),
		}
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrorBody{Error: "No autorizado"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrorBody{Error: "Acceso denegado"}
	case errors.Is(err, domain.ErrUnknownDocumentType):
		return http.StatusNotFound, ErrorBody{Error: "Tipo de documento desconocido"}
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, ErrorBody{Error: "Documento no encontrado"}
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrorBody{Error: "Recurso no encontrado"}
	case errors.Is(err, domain.ErrInvalidState):
		return http.StatusConflict, ErrorBody{Error: "Cambio de estado no permitido"}
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, ErrorBody{Error: "Formato no soportado"}
	case errors.Is(err, domain.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, ErrorBody{Error: "Archivo no disponible", Message: "el almacenamiento de archivo no está configurado"}
	default:
		return http.StatusInternalServerError, ErrorBody{Error: "Error interno del servidor", Message: err.Error()}
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Server errors are attached to the context for the request logger.
func HandleError(c *gin.Context, err error) {
	status, body := MapDomainError(err)
	if status >= 500 {
		_ = c.Error(err)
	}
	c.JSON(status, body)
}

// requireUserID returns the authenticated caller id. It writes a 401 and
// returns false when the auth context is missing.
func requireUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "No autorizado", "falta el contexto de usuario")
		return uuid.Nil, false
	}
	return userID, true
}

func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
