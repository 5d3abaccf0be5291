package wire

import (
	"Inkpost/internal/api"
	"Inkpost/internal/api/config"
	"Inkpost/internal/api/handler"
	"Inkpost/internal/pkg/response"
	"Inkpost/internal/pkg/security"
	"Inkpost/internal/pkg/util"
	"Inkpost/internal/repository"
	"Inkpost/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

// BuildApplication blacklist 由调用方根据是否配置 Redis 决定实现
func BuildApplication(db *gorm.DB, blacklist security.Blacklist, cfg *config.Config) (*ApplicationContainer, error) {
	if err := util.RegisterValidators(); err != nil {
		return nil, err
	}
	response.SetExposeErrors(cfg.Server.ExposeErrors)

	tokens := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.ExpirationHours)*time.Hour,
		cfg.JWT.Issuer,
	)

	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepository(db)
	tagRepo := repository.NewTagRepository(db)
	commentRepo := repository.NewCommentRepo(db)

	userService := service.NewUserService(userRepo, tokens, blacklist)
	postService := service.NewPostService(postRepo)
	tagService := service.NewTagService(tagRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)

	handlers := &api.HandlersGroup{
		UserHandler:    handler.NewUserHandler(userService),
		PostHandler:    handler.NewPostHandler(postService),
		TagHandler:     handler.NewTagHandler(tagService),
		CommentHandler: handler.NewCommentHandler(commentService),
		Tokens:         tokens,
		Blacklist:      blacklist,
		UserSvc:        userService,
	}

	router := api.SetupRouter(handlers, cfg.Logstash.Index, cfg.Server.CORSOrigins)

	return &ApplicationContainer{
		Router: router,
		DB:     db,
	}, nil
}
