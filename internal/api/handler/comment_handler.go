package handler

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/api/middleware"
	"Inkpost/internal/pkg/response"
	"Inkpost/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentSvc: commentSvc,
	}
}

// Index 当前用户的评论
func (s *CommentHandler) Index(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err, "Failed to fetch comments.")
		return
	}
	page, err := s.commentSvc.ListUserComments(c.Request.Context(), middleware.ActorFrom(c), &query)
	if err != nil {
		response.Error(c, err, "Failed to fetch comments.")
		return
	}
	response.Success(c, "Comments fetched successfully.", page)
}

func (s *CommentHandler) Store(c *gin.Context) {
	var createDTO dto.CreateCommentDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err, "Failed to create comment.")
		return
	}
	comment, err := s.commentSvc.CreateComment(c.Request.Context(), middleware.ActorFrom(c), &createDTO)
	if err != nil {
		response.Error(c, err, "Failed to create comment.")
		return
	}
	response.SuccessCreated(c, "Comment created successfully.", comment)
}

func (s *CommentHandler) Update(c *gin.Context) {
	var updateDTO dto.UpdateCommentDTO
	if err := c.ShouldBind(&updateDTO); err != nil {
		response.Error(c, err, "Failed to update comment.")
		return
	}
	comment, err := s.commentSvc.UpdateComment(c.Request.Context(), middleware.ActorFrom(c), &updateDTO)
	if err != nil {
		response.Error(c, err, "Failed to update comment.")
		return
	}
	response.Success(c, "Comment updated successfully.", comment)
}

func (s *CommentHandler) Details(c *gin.Context) {
	var query dto.CommentDetailsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err, "Failed to fetch comment.")
		return
	}
	comment, err := s.commentSvc.GetCommentDetails(c.Request.Context(), query.CommentID)
	if err != nil {
		response.Error(c, err, "Failed to fetch comment.")
		return
	}
	response.Success(c, "Comment fetched successfully.", comment)
}

func (s *CommentHandler) Destroy(c *gin.Context) {
	var req dto.CommentIDDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err, "Failed to delete comment.")
		return
	}
	if err := s.commentSvc.DeleteComment(c.Request.Context(), middleware.ActorFrom(c), req.CommentID); err != nil {
		response.Error(c, err, "Failed to delete comment.")
		return
	}
	response.Success(c, "Comment deleted successfully.", nil)
}

func (s *CommentHandler) ChangePinStatus(c *gin.Context) {
	var req dto.ChangePinStatusDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err, "Failed to update comment.")
		return
	}
	comment, err := s.commentSvc.ChangePinStatus(c.Request.Context(), middleware.ActorFrom(c), req.CommentID, req.Pinned())
	if err != nil {
		response.Error(c, err, "Failed to update comment.")
		return
	}

	message := "Comment unpinned successfully."
	if comment.IsPinned {
		message = "Comment pinned successfully."
	}
	response.Success(c, message, comment)
}
