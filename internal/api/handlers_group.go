package api

import (
	"Inkpost/internal/api/handler"
	"Inkpost/internal/pkg/security"
	"Inkpost/internal/service"
)

// HandlersGroup 封装了所有已初始化的 Handler 实例及鉴权依赖
type HandlersGroup struct {
	UserHandler    *handler.UserHandler
	PostHandler    *handler.PostHandler
	TagHandler     *handler.TagHandler
	CommentHandler *handler.CommentHandler

	Tokens    *security.TokenManager
	Blacklist security.Blacklist
	UserSvc   service.UserService
}
