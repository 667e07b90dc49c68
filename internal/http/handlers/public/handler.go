package public

import "github.com/officer-registry/internal/provider"

// Handler 公开接口处理器入口
// 说明：登录与只读查询，无需鉴权。
type Handler struct {
	*provider.Container
}

// New 创建公开处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
