package public

import (
	"github.com/officer-registry/internal/http/handlers/shared"
	"github.com/officer-registry/internal/http/response"

	"github.com/gin-gonic/gin"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 用户登录
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.AuthService.Login(shared.RequestContext(c), shared.RequestMeta(c), req.Username, req.Password)
	if err != nil {
		respondMappedError(c, err, shared.AuthErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, result)
}
