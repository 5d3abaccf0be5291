package api

import (
	"Inkpost/internal/api/middleware"
	"Inkpost/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup, logIndex string, corsOrigins []string) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(corsOrigins))
	logger.SetupGin(r, logIndex)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "pong",
		})
	})

	r.POST("/register", group.UserHandler.Register)
	r.POST("/login", group.UserHandler.Login)

	authGroup := r.Group("")
	authGroup.Use(middleware.AuthMiddleware(group.Tokens, group.Blacklist, group.UserSvc))
	{
		authGroup.POST("/logout", group.UserHandler.Logout)

		authGroup.GET("/users", group.UserHandler.Index)
		authGroup.POST("/user/update", group.UserHandler.Update)
		authGroup.GET("/user/details", group.UserHandler.Details)
		authGroup.POST("/user/destroy", group.UserHandler.Destroy)

		authGroup.GET("/posts", group.PostHandler.Index)
		authGroup.POST("/post/create", group.PostHandler.Store)
		authGroup.GET("/post/details", group.PostHandler.Details)
		authGroup.POST("/post/update", group.PostHandler.Update)
		authGroup.POST("/post/destroy", group.PostHandler.Destroy)

		authGroup.POST("/comment/create", group.CommentHandler.Store)
		authGroup.GET("/user/comments", group.CommentHandler.Index)
		authGroup.POST("/comment/update", group.CommentHandler.Update)
		authGroup.GET("/comment/details", group.CommentHandler.Details)
		authGroup.POST("/comment/destroy", group.CommentHandler.Destroy)
		authGroup.POST("/comment/changePinStatus", group.CommentHandler.ChangePinStatus)

		authGroup.GET("/tags", group.TagHandler.Index)

		// 需要登录 & 管理员
		adminGroup := authGroup.Group("")
		adminGroup.Use(middleware.AdminOnly())
		{
			adminGroup.POST("/tag/create", group.TagHandler.Store)
			adminGroup.POST("/tag/destroy", group.TagHandler.Destroy)
		}
	}

	return r
}
