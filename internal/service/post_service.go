package service

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/util"
	"Inkpost/internal/repository"
	"context"
	"errors"
	"fmt"
	log "log/slog"

	"github.com/jinzhu/copier"
)

type PostService interface {
	ListPosts(ctx context.Context, query *dto.PageQuery) (*dto.PageDTO[*dto.PostDTO], error)
	GetPostDetails(ctx context.Context, id uint64) (*dto.PostDTO, error)
	CreatePost(ctx context.Context, actor Actor, dto *dto.CreatePostDTO) (*dto.PostDTO, error)
	UpdatePost(ctx context.Context, actor Actor, dto *dto.UpdatePostDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, actor Actor, id uint64) error
}

type PostServiceImpl struct {
	postRepo repository.PostRepo
}

func NewPostService(postRepo repository.PostRepo) PostService {
	return &PostServiceImpl{
		postRepo: postRepo,
	}
}

func (s *PostServiceImpl) ListPosts(ctx context.Context, query *dto.PageQuery) (*dto.PageDTO[*dto.PostDTO], error) {
	page := query.CurrentPage()
	posts, total, err := s.postRepo.ListPosts(ctx, query.Keyword, page, query.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.PostDTO, 0, len(posts))
	if err = copier.Copy(&items, &posts); err != nil {
		return nil, err
	}

	return &dto.PageDTO[*dto.PostDTO]{
		CurrentPage: page,
		PerPage:     query.Limit,
		Total:       total,
		LastPage:    util.LastPage(total, query.Limit),
		Data:        items,
	}, nil
}

func (s *PostServiceImpl) GetPostDetails(ctx context.Context, id uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPostDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return toPostDTO(post)
}

func (s *PostServiceImpl) CreatePost(ctx context.Context, actor Actor, createDTO *dto.CreatePostDTO) (*dto.PostDTO, error) {
	post := &model.Post{
		UserID: actor.ID,
		Title:  createDTO.Title,
		Body:   createDTO.Body,
	}
	if err := s.postRepo.CreatePost(ctx, post, createDTO.Tags, createDTO.TagIDs); err != nil {
		return nil, tagError(err)
	}

	log.InfoContext(ctx, "post created", "post_id", post.ID, "tags", len(post.Tags))
	return toPostDTO(post)
}

func (s *PostServiceImpl) UpdatePost(ctx context.Context, actor Actor, updateDTO *dto.UpdatePostDTO) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, updateDTO.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if !Editable(actor, post) {
		return nil, Denied("update this post")
	}

	post.Title = updateDTO.Title
	post.Body = updateDTO.Body
	if err = s.postRepo.UpdatePost(ctx, post, updateDTO.Tags, updateDTO.TagIDs); err != nil {
		return nil, tagError(err)
	}

	updated, err := s.postRepo.GetPostDetails(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrPostNotFound
	}
	updated.Comments = nil
	return toPostDTO(updated)
}

// DeletePost 删除帖子的同时删除评论并解除标签关联
func (s *PostServiceImpl) DeletePost(ctx context.Context, actor Actor, id uint64) error {
	post, err := s.postRepo.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if !Editable(actor, post) {
		return Denied("delete this post")
	}

	if err = s.postRepo.DeletePost(ctx, post.ID); err != nil {
		return err
	}
	log.InfoContext(ctx, "post deleted", "post_id", post.ID, "actor_id", actor.ID)
	return nil
}

// tagError 将不存在的标签 ID 转换为字段错误
func tagError(err error) error {
	var notFound *repository.TagIDsNotFoundError
	if errors.As(err, &notFound) {
		return FieldErrors{"tag_ids": {fmt.Sprintf("The selected tag ids is invalid: %v.", notFound.IDs)}}
	}
	return err
}

func toPostDTO(post *model.Post) (*dto.PostDTO, error) {
	res := &dto.PostDTO{}
	if err := copier.Copy(res, post); err != nil {
		return nil, err
	}
	return res, nil
}
