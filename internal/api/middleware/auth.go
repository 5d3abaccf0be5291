package middleware

import (
	"Inkpost/internal/pkg/logger"
	"Inkpost/internal/pkg/response"
	"Inkpost/internal/pkg/security"
	"Inkpost/internal/service"
	"context"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	actorKey = "actor"
	tokenKey = "token"
)

// ActorResolver 按用户 ID 解析操作者，用户不存在时返回 nil
type ActorResolver interface {
	GetActor(ctx context.Context, id uint64) (*service.Actor, error)
}

// AuthMiddleware 负责验证 JWT，并从数据库加载当前用户注入 Context
func AuthMiddleware(tokens *security.TokenManager, blacklist security.Blacklist, users ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			unauthenticated(c)
			return
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			unauthenticated(c)
			return
		}

		revoked, err := blacklist.IsRevoked(ctx, signature)
		if err != nil {
			log.ErrorContext(ctx, "token blacklist lookup failed", "err", err)
			response.Fail(c, response.InternalServerError, "Server Error")
			c.Abort()
			return
		}
		if revoked {
			unauthenticated(c)
			return
		}

		claims, err := tokens.ValidateToken(tokenString)
		if err != nil {
			unauthenticated(c)
			return
		}

		actor, err := users.GetActor(ctx, claims.UserID)
		if err != nil {
			log.ErrorContext(ctx, "load actor failed", "err", err)
			response.Fail(c, response.InternalServerError, "Server Error")
			c.Abort()
			return
		}
		if actor == nil {
			unauthenticated(c)
			return
		}

		c.Set(actorKey, *actor)
		c.Set(tokenKey, tokenString)
		c.Request = c.Request.WithContext(logger.WithUserID(ctx, actor.ID))

		c.Next()
	}
}

// ActorFrom 读取鉴权中间件注入的操作者
func ActorFrom(c *gin.Context) service.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(service.Actor); ok {
			return actor
		}
	}
	return service.Actor{}
}

// TokenFrom 当前请求携带的 Token
func TokenFrom(c *gin.Context) string {
	return c.GetString(tokenKey)
}

func unauthenticated(c *gin.Context) {
	response.Fail(c, response.Unauthorized, service.ErrUnauthenticated.Error())
	c.Abort()
}
