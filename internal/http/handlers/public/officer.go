package public

import (
	"github.com/officer-registry/internal/http/handlers/shared"
	"github.com/officer-registry/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListOfficers 按警衔排序的警员列表
func (h *Handler) ListOfficers(c *gin.Context) {
	officers, err := h.OfficerService.List(shared.RequestContext(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.officer_fetch_failed", err)
		return
	}
	response.Success(c, officers)
}

// CountOfficers 警员总数
func (h *Handler) CountOfficers(c *gin.Context) {
	count, err := h.OfficerService.Count(shared.RequestContext(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.officer_fetch_failed", err)
		return
	}
	response.Success(c, count)
}

// RecentPromotions 最近晋升
func (h *Handler) RecentPromotions(c *gin.Context) {
	items, err := h.OfficerService.RecentPromotions(shared.RequestContext(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.officer_fetch_failed", err)
		return
	}
	response.Success(c, items)
}

// GetOfficer 警员详情
func (h *Handler) GetOfficer(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	officer, err := h.OfficerService.Get(id)
	if err != nil {
		respondMappedError(c, err, shared.OfficerErrorRules, response.CodeInternal, "error.officer_fetch_failed")
		return
	}
	response.Success(c, officer)
}
