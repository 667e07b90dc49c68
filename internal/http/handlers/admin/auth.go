package admin

import (
	"github.com/officer-registry/internal/http/handlers/shared"
	"github.com/officer-registry/internal/http/response"
	"github.com/officer-registry/internal/i18n"
	"github.com/officer-registry/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册用户请求
type RegisterRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required"`
	OfficerName string `json:"officerName" binding:"required"`
	Role        string `json:"role" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

// Register 管理员创建用户
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	user, err := h.AuthService.Register(shared.RequestContext(c), shared.RequestMeta(c), service.RegisterInput{
		Username:    req.Username,
		Password:    req.Password,
		OfficerName: req.OfficerName,
		Role:        req.Role,
	})
	if err != nil {
		respondMappedError(c, err, shared.AuthErrorRules, response.CodeInternal, "error.user_save_failed")
		return
	}
	response.Created(c, user)
}

// ChangePassword 修改当前用户密码
func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if err := h.AuthService.ChangePassword(shared.RequestContext(c), shared.RequestMeta(c), req.CurrentPassword, req.NewPassword); err != nil {
		respondMappedError(c, err, shared.AuthErrorRules, response.CodeInternal, "error.user_save_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "success.password_changed"), nil)
}
