package handler

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/pkg/response"
	"Inkpost/internal/service"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagSvc service.TagService
}

func NewTagHandler(tagSvc service.TagService) *TagHandler {
	return &TagHandler{
		tagSvc: tagSvc,
	}
}

func (s *TagHandler) Index(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err, "Failed to fetch tags.")
		return
	}
	page, err := s.tagSvc.ListTags(c.Request.Context(), &query)
	if err != nil {
		response.Error(c, err, "Failed to fetch tags.")
		return
	}
	response.Success(c, "Tags fetched successfully.", page)
}

func (s *TagHandler) Store(c *gin.Context) {
	var createDTO dto.CreateTagDTO
	if err := c.ShouldBind(&createDTO); err != nil {
		response.Error(c, err, "Failed to add tag.")
		return
	}
	tag, err := s.tagSvc.CreateTag(c.Request.Context(), &createDTO)
	if err != nil {
		response.Error(c, err, "Failed to add tag.")
		return
	}
	response.Success(c, "Tags added successfully.", tag)
}

func (s *TagHandler) Destroy(c *gin.Context) {
	var req dto.TagIDDTO
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err, "Failed to delete tag.")
		return
	}
	if err := s.tagSvc.DeleteTag(c.Request.Context(), req.TagID); err != nil {
		response.Error(c, err, "Failed to delete tag.")
		return
	}
	response.Success(c, "Tags deleted successfully.", nil)
}
