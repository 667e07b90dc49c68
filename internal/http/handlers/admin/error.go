package admin

import (
	"github.com/officer-registry/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, code int, key string, err error) {
	shared.RespondError(c, code, key, err)
}

func respondMappedError(c *gin.Context, err error, rules []shared.MappedError, fallbackCode int, fallbackKey string) {
	shared.RespondMappedError(c, err, rules, fallbackCode, fallbackKey)
}
