package admin

import (
	"github.com/officer-registry/internal/http/handlers/shared"
	"github.com/officer-registry/internal/http/response"
	"github.com/officer-registry/internal/service"

	"github.com/gin-gonic/gin"
)

// ListAuditLogs 审计日志查询
// 查询参数：user（主体 ID）、action、entity、search、page、limit
func (h *Handler) ListAuditLogs(c *gin.Context) {
	actorID, ok := shared.ParseOptionalUintQuery(c, "user")
	if !ok {
		return
	}
	page, err := h.AuditService.Query(service.AuditQuery{
		ActorID:      actorID,
		Action:       c.Query("action"),
		TargetEntity: c.Query("entity"),
		Search:       c.Query("search"),
		Page:         shared.ParseIntQuery(c, "page"),
		PageSize:     shared.ParseIntQuery(c, "limit"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.audit_fetch_failed", err)
		return
	}
	response.Success(c, page)
}
