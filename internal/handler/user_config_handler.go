package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"munidocs/internal/middleware"
	"munidocs/internal/service"
)

// UserConfigHandler manages the caller's attribution preferences.
type UserConfigHandler struct {
	userConfigService service.UserConfigService
}

// NewUserConfigHandler creates a new UserConfigHandler.
func NewUserConfigHandler(userConfigService service.UserConfigService) *UserConfigHandler {
	return &UserConfigHandler{userConfigService: userConfigService}
}

// Get handles GET /api/v1/me/config. An unset display name is filled from
// the token so the client form starts prefilled.
// @Summary Get signature settings
// @Tags config
// @Produce json
// @Success 200 {object} APIResponse{data=domain.UserConfig} "Caller configuration"
// @Failure 401 {object} ErrorBody "Unauthorized"
// @Security BearerAuth
// @Router /me/config [get]
func (h *UserConfigHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	cfg, err := h.userConfigService.Get(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}
	if strings.TrimSpace(cfg.DisplayName) == "" {
		caller := middleware.GetCaller(c)
		cfg.DisplayName = caller.Name
		if cfg.Role == "" {
			cfg.Role = caller.Role
		}
	}

	RespondOK(c, cfg)
}

// Update handles PUT /api/v1/me/config
// @Summary Update signature settings
// @Tags config
// @Accept json
// @Produce json
// @Param request body object true "nombre, cargo and firma_habilitada"
// @Success 200 {object} APIResponse{data=domain.UserConfig} "Saved configuration"
// @Failure 400 {object} ErrorBody "Invalid request"
// @Failure 401 {object} ErrorBody "Unauthorized"
// @Security BearerAuth
// @Router /me/config [put]
func (h *UserConfigHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req struct {
		DisplayName      string `json:"nombre"`
		Role             string `json:"cargo"`
		SignatureEnabled *bool  `json:"firma_habilitada"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "Cuerpo de la solicitud inválido", err.Error())
		return
	}

	signature := true
	if req.SignatureEnabled != nil {
		signature = *req.SignatureEnabled
	}

	cfg, err := h.userConfigService.Update(c.Request.Context(), &service.UpdateUserConfigInput{
		UserID:           userID,
		DisplayName:      req.DisplayName,
		Role:             req.Role,
		SignatureEnabled: signature,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, cfg)
}
