package admin

import "github.com/officer-registry/internal/provider"

// Handler 需要登录的写接口处理器入口
// 说明：路由层先经过 JWT 与 casbin 校验，这里只处理已授权的请求。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
