package admin

import (
	"github.com/officer-registry/internal/authz"
	"github.com/officer-registry/internal/http/handlers/shared"
	"github.com/officer-registry/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AuthzMeResponse 当前用户的角色与生效策略
type AuthzMeResponse struct {
	UserID   uint           `json:"userId"`
	Username string         `json:"username"`
	Role     string         `json:"role"`
	Policies []authz.Policy `json:"policies"`
}

// GetAuthzMe 查询当前用户的权限
func (h *Handler) GetAuthzMe(c *gin.Context) {
	claims := shared.Claims(c)
	if claims == nil {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return
	}
	policies, err := h.AuthzService.GetRolePolicies(claims.Role)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, AuthzMeResponse{
		UserID:   claims.UserID,
		Username: claims.Username,
		Role:     claims.Role,
		Policies: policies,
	})
}
