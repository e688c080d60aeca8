package handler

import (
	"github.com/gin-gonic/gin"

	"munidocs/internal/service"
)

// NormativaHandler lists reference legal norms.
type NormativaHandler struct {
	normativaService service.NormativaService
}

// NewNormativaHandler creates a new NormativaHandler.
func NewNormativaHandler(normativaService service.NormativaService) *NormativaHandler {
	return &NormativaHandler{normativaService: normativaService}
}

// List handles GET /api/v1/normativa?categoria=
// @Summary List legal norms
// @Tags normativa
// @Produce json
// @Param categoria query string false "Category filter"
// @Success 200 {object} APIResponse{data=[]domain.Normativa} "Norms"
// @Failure 401 {object} ErrorBody "Unauthorized"
// @Security BearerAuth
// @Router /normativa [get]
func (h *NormativaHandler) List(c *gin.Context) {
	if _, ok := requireUserID(c); !ok {
		return
	}

	items, err := h.normativaService.List(c.Request.Context(), c.Query("categoria"))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, items)
}
