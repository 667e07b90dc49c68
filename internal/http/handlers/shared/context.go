package shared

import (
	"context"

	"github.com/officer-registry/internal/audit"
	"github.com/officer-registry/internal/http/response"
	"github.com/officer-registry/internal/logger"
	"github.com/officer-registry/internal/service"

	"github.com/gin-gonic/gin"
)

// 中间件写入 gin.Context 的键
const (
	ContextKeyRequestID = "request_id"
	ContextKeyClaims    = "claims"
	ContextKeyUserID    = "user_id"
	ContextKeyRole      = "role"
)

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}

// RequestID 读取请求 ID
func RequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get(ContextKeyRequestID); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}

// Claims 读取鉴权中间件写入的 JWT 声明，匿名请求返回 nil
func Claims(c *gin.Context) *service.JWTClaims {
	if c == nil {
		return nil
	}
	if value, ok := c.Get(ContextKeyClaims); ok {
		if claims, ok := value.(*service.JWTClaims); ok {
			return claims
		}
	}
	return nil
}

// RequestMeta 组装写操作的主体与来源，供审计使用
func RequestMeta(c *gin.Context) service.RequestMeta {
	meta := service.RequestMeta{Actor: Claims(c).Actor()}
	if c != nil && c.Request != nil {
		meta.Source = audit.Source{
			Method:    c.Request.Method,
			Endpoint:  c.Request.URL.Path,
			RequestID: RequestID(c),
		}
	}
	return meta
}

// RequestContext 返回携带 request_id 的请求 context
func RequestContext(c *gin.Context) context.Context {
	if c == nil || c.Request == nil {
		return context.Background()
	}
	return logger.WithRequestID(c.Request.Context(), RequestID(c))
}
