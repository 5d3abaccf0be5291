package middleware

import (
	"Inkpost/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminOnly 仅允许管理员访问，需在 AuthMiddleware 之后使用
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !ActorFrom(c).IsAdmin {
			response.Fail(c, response.Forbidden, "You are not authorized to access this resource.")
			c.Abort()
			return
		}
		c.Next()
	}
}
