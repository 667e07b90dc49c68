package admin

import (
	"github.com/officer-registry/internal/http/handlers/shared"
	"github.com/officer-registry/internal/http/response"
	"github.com/officer-registry/internal/i18n"
	"github.com/officer-registry/internal/service"

	"github.com/gin-gonic/gin"
)

// EvaluationRequest 创建考核请求
type EvaluationRequest struct {
	OfficerID uint                `json:"officerId" binding:"required"`
	Skills    service.SkillsInput `json:"skills"`
}

// CreateEvaluation 记录考核，考核人为当前登录用户
func (h *Handler) CreateEvaluation(c *gin.Context) {
	var req EvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.evaluation_invalid", err)
		return
	}
	evaluation, err := h.EvaluationService.Create(shared.RequestContext(c), shared.RequestMeta(c), service.EvaluationInput{
		OfficerID: req.OfficerID,
		Skills:    req.Skills,
	})
	if err != nil {
		respondMappedError(c, err, shared.EvaluationErrorRules, response.CodeInternal, "error.evaluation_save_failed")
		return
	}
	response.Created(c, evaluation)
}

// DeleteEvaluation 删除考核
func (h *Handler) DeleteEvaluation(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.EvaluationService.Delete(shared.RequestContext(c), shared.RequestMeta(c), id); err != nil {
		respondMappedError(c, err, shared.EvaluationErrorRules, response.CodeInternal, "error.evaluation_save_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "success.deleted"), nil)
}
