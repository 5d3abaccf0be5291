package handler

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/api/middleware"
	"Inkpost/internal/pkg/response"
	"Inkpost/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

func (s *PostHandler) Index(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err, "Failed to fetch posts.")
		return
	}
	page, err := s.postSvc.ListPosts(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err, "Failed to fetch posts.")
		return
	}
	response.Success(c, "Posts fetched successfully.", page)
}

func (s *PostHandler) Store(c *gin.Context) {
	var createDTO dto.CreatePostDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err, "Failed to create post.")
		return
	}
	post, err := s.postSvc.CreatePost(c.Request.Context(), middleware.ActorFrom(c), &createDTO)
	if err != nil {
		response.Error(c, err, "Failed to create post.")
		return
	}
	response.SuccessCreated(c, "Post created successfully.", post)
}

func (s *PostHandler) Details(c *gin.Context) {
	var query dto.PostDetailsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err, "Failed to fetch post.")
		return
	}
	post, err := s.postSvc.GetPostDetails(c.Request.Context(), query.PostID)
	if err != nil {
		response.Error(c, err, "Failed to fetch post.")
		return
	}
	response.Success(c, "Post fetched successfully.", post)
}

func (s *PostHandler) Update(c *gin.Context) {
	var updateDTO dto.UpdatePostDTO
	if err := c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err, "Failed to update post.")
		return
	}
	post, err := s.postSvc.UpdatePost(c.Request.Context(), middleware.ActorFrom(c), &updateDTO)
	if err != nil {
		response.Error(c, err, "Failed to update post.")
		return
	}
	response.Success(c, "Post updated successfully.", post)
}

func (s *PostHandler) Destroy(c *gin.Context) {
	var req dto.PostIDDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err, "Failed to delete post.")
		return
	}
	if err := s.postSvc.DeletePost(c.Request.Context(), middleware.ActorFrom(c), req.PostID); err != nil {
		response.Error(c, err, "Failed to delete post.")
		return
	}
	response.Success(c, "Post deleted successfully.", nil)
}
