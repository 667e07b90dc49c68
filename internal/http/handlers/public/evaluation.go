package public

import (
	"github.com/officer-registry/internal/http/handlers/shared"
	"github.com/officer-registry/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RecentEvaluations 最近考核
func (h *Handler) RecentEvaluations(c *gin.Context) {
	items, err := h.EvaluationService.Recent(shared.RequestContext(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.evaluation_fetch_failed", err)
		return
	}
	response.Success(c, items)
}

// OfficerEvaluations 某警员的考核历史
func (h *Handler) OfficerEvaluations(c *gin.Context) {
	officerID, ok := shared.ParseIDParam(c, "officerId")
	if !ok {
		return
	}
	items, err := h.EvaluationService.ListByOfficer(shared.RequestContext(c), officerID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.evaluation_fetch_failed", err)
		return
	}
	response.Success(c, items)
}
