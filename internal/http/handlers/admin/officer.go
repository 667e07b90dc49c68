package admin

import (
	"strings"
	"time"

	"github.com/officer-registry/internal/http/handlers/shared"
	"github.com/officer-registry/internal/http/response"
	"github.com/officer-registry/internal/i18n"
	"github.com/officer-registry/internal/service"

	"github.com/gin-gonic/gin"
)

// OfficerRequest 创建/更新警员请求
type OfficerRequest struct {
	Name      string `json:"name"`
	Rank      string `json:"rank"`
	StartDate string `json:"startDate"`
}

// 同时接受完整时间戳与纯日期
var startDateLayouts = []string{time.RFC3339, "2006-01-02"}

func (r OfficerRequest) toInput() (service.OfficerInput, bool) {
	input := service.OfficerInput{Name: r.Name, Rank: r.Rank}
	raw := strings.TrimSpace(r.StartDate)
	if raw == "" {
		return input, true
	}
	for _, layout := range startDateLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			input.StartDate = &parsed
			return input, true
		}
	}
	return input, false
}

func bindOfficerRequest(c *gin.Context) (service.OfficerInput, bool) {
	var req OfficerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return service.OfficerInput{}, false
	}
	input, ok := req.toInput()
	if !ok {
		respondError(c, response.CodeBadRequest, "error.officer_invalid", nil)
		return service.OfficerInput{}, false
	}
	return input, true
}

// CreateOfficer 登记警员
func (h *Handler) CreateOfficer(c *gin.Context) {
	input, ok := bindOfficerRequest(c)
	if !ok {
		return
	}
	officer, err := h.OfficerService.Create(shared.RequestContext(c), shared.RequestMeta(c), input)
	if err != nil {
		respondMappedError(c, err, shared.OfficerErrorRules, response.CodeInternal, "error.officer_save_failed")
		return
	}
	response.Created(c, officer)
}

// UpdateOfficer 更新警员资料
func (h *Handler) UpdateOfficer(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	input, ok := bindOfficerRequest(c)
	if !ok {
		return
	}
	officer, err := h.OfficerService.Update(shared.RequestContext(c), shared.RequestMeta(c), id, input)
	if err != nil {
		respondMappedError(c, err, shared.OfficerErrorRules, response.CodeInternal, "error.officer_save_failed")
		return
	}
	response.Success(c, officer)
}

// DeleteOfficer 删除警员
func (h *Handler) DeleteOfficer(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.OfficerService.Delete(shared.RequestContext(c), shared.RequestMeta(c), id); err != nil {
		respondMappedError(c, err, shared.OfficerErrorRules, response.CodeInternal, "error.officer_save_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "success.deleted"), nil)
}

// PromoteOfficer 晋升一级
func (h *Handler) PromoteOfficer(c *gin.Context) {
	id, ok := shared.ParseIDParam(c, "id")
	if !ok {
		return
	}
	result, err := h.OfficerService.Promote(shared.RequestContext(c), shared.RequestMeta(c), id)
	if err != nil {
		respondMappedError(c, err, shared.OfficerErrorRules, response.CodeInternal, "error.officer_save_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "success.officer_promoted"), result)
}
