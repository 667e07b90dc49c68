package public

import (
	"github.com/officer-registry/internal/http/handlers/shared"
	"github.com/officer-registry/internal/http/response"

	"github.com/gin-gonic/gin"
)

// DashboardOverview 全局统计
func (h *Handler) DashboardOverview(c *gin.Context) {
	data, err := h.AnalyticsService.Overview(shared.RequestContext(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.analytics_fetch_failed", err)
		return
	}
	response.Success(c, data)
}

// DashboardOfficer 单个警员的统计
func (h *Handler) DashboardOfficer(c *gin.Context) {
	officerID, ok := shared.ParseIDParam(c, "officerId")
	if !ok {
		return
	}
	data, err := h.AnalyticsService.OfficerStats(shared.RequestContext(c), officerID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.analytics_fetch_failed", err)
		return
	}
	response.Success(c, data)
}

// DashboardRanking 排行榜
func (h *Handler) DashboardRanking(c *gin.Context) {
	data, err := h.AnalyticsService.Ranking(shared.RequestContext(c))
	if err != nil {
		respondError(c, response.CodeInternal, "error.analytics_fetch_failed", err)
		return
	}
	response.Success(c, data)
}
