package handler

import (
	"github.com/gin-gonic/gin"

	"munidocs/internal/domain"
	"munidocs/internal/service"
)

// UsageHandler exposes the caller's LLM usage and cost records.
type UsageHandler struct {
	usageService service.UsageService
}

// NewUsageHandler creates a new UsageHandler.
func NewUsageHandler(usageService service.UsageService) *UsageHandler {
	return &UsageHandler{usageService: usageService}
}

// Transactions handles GET /api/v1/usage/transactions
// @Summary List usage transactions
// @Tags usage
// @Produce json
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Pagination limit" default(20)
// @Success 200 {object} APIResponse{data=[]domain.UsageTransaction,meta=PagMeta} "Usage transactions"
// @Failure 401 {object} ErrorBody "Unauthorized"
// @Security BearerAuth
// @Router /usage/transactions [get]
func (h *UsageHandler) Transactions(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	offset, limit := parsePagination(c)

	txs, total, err := h.usageService.ListTransactions(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	if txs == nil {
		txs = []domain.UsageTransaction{}
	}

	RespondPaginated(c, txs, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Summary handles GET /api/v1/usage/summary
// @Summary Summarize usage
// @Description Token and cost totals per agent and overall
// @Tags usage
// @Produce json
// @Success 200 {object} APIResponse{data=service.UsageReport} "Usage summary"
// @Failure 401 {object} ErrorBody "Unauthorized"
// @Security BearerAuth
// @Router /usage/summary [get]
func (h *UsageHandler) Summary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	report, err := h.usageService.Summary(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, report)
}

// Export handles GET /api/v1/usage/export?format=xlsx|csv
// @Summary Export usage
// @Tags usage
// @Produce octet-stream
// @Param format query string false "Report format" Enums(xlsx, csv) default(xlsx)
// @Success 200 {file} file "Usage report"
// @Failure 400 {object} ErrorBody "Unsupported format"
// @Failure 401 {object} ErrorBody "Unauthorized"
// @Security BearerAuth
// @Router /usage/export [get]
func (h *UsageHandler) Export(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	format := domain.ReportFormat(c.DefaultQuery("format", string(domain.ReportFormatXLSX)))
	file, err := h.usageService.Export(c.Request.Context(), userID, format)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondFile(c, file.Filename, file.ContentType, file.Data)
}
