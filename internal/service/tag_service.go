package service

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/util"
	"Inkpost/internal/repository"
	"context"
	log "log/slog"

	"github.com/jinzhu/copier"
)

type TagService interface {
	ListTags(ctx context.Context, query *dto.PageQuery) (*dto.PageDTO[*dto.TagDTO], error)
	CreateTag(ctx context.Context, dto *dto.CreateTagDTO) (*dto.TagDTO, error)
	DeleteTag(ctx context.Context, id uint64) error
}

type TagServiceImpl struct {
	tagRepo repository.TagRepo
}

func NewTagService(tagRepo repository.TagRepo) TagService {
	return &TagServiceImpl{tagRepo: tagRepo}
}

func (s *TagServiceImpl) ListTags(ctx context.Context, query *dto.PageQuery) (*dto.PageDTO[*dto.TagDTO], error) {
	page := query.CurrentPage()
	tags, total, err := s.tagRepo.ListTags(ctx, query.Keyword, page, query.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.TagDTO, 0, len(tags))
	if err = copier.Copy(&items, &tags); err != nil {
		return nil, err
	}

	return &dto.PageDTO[*dto.TagDTO]{
		CurrentPage: page,
		PerPage:     query.Limit,
		Total:       total,
		LastPage:    util.LastPage(total, query.Limit),
		Data:        items,
	}, nil
}

func (s *TagServiceImpl) CreateTag(ctx context.Context, createDTO *dto.CreateTagDTO) (*dto.TagDTO, error) {
	tag := &model.Tag{Name: createDTO.Name}
	if err := s.tagRepo.CreateTag(ctx, tag); err != nil {
		if isDuplicateError(err) {
			return nil, ErrTagExists
		}
		return nil, err
	}

	res := &dto.TagDTO{}
	if err := copier.Copy(res, tag); err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteTag 标签与帖子的关联一并删除
func (s *TagServiceImpl) DeleteTag(ctx context.Context, id uint64) error {
	affected, err := s.tagRepo.DeleteTag(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrTagNotFound
	}
	log.InfoContext(ctx, "tag deleted", "tag_id", id)
	return nil
}
