package admin

import (
	"github.com/officer-registry/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListUsers 用户列表，不含密码哈希
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.UserService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	response.Success(c, users)
}
