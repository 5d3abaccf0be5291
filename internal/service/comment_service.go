package service

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/model"
	"Inkpost/internal/pkg/util"
	"Inkpost/internal/repository"
	"context"
	"errors"
	log "log/slog"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type CommentService interface {
	ListUserComments(ctx context.Context, actor Actor, query *dto.PageQuery) (*dto.PageDTO[*dto.CommentDTO], error)
	GetCommentDetails(ctx context.Context, id uint64) (*dto.CommentDTO, error)
	CreateComment(ctx context.Context, actor Actor, dto *dto.CreateCommentDTO) (*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, actor Actor, dto *dto.UpdateCommentDTO) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, actor Actor, id uint64) error
	ChangePinStatus(ctx context.Context, actor Actor, id uint64, pinned bool) (*dto.CommentDTO, error)
}

type CommentServiceImpl struct {
	commentRepo repository.CommentRepo
	postRepo    repository.PostRepo
}

func NewCommentService(commentRepo repository.CommentRepo, postRepo repository.PostRepo) CommentService {
	return &CommentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *CommentServiceImpl) ListUserComments(ctx context.Context, actor Actor, query *dto.PageQuery) (*dto.PageDTO[*dto.CommentDTO], error) {
	page := query.CurrentPage()
	comments, total, err := s.commentRepo.ListUserComments(ctx, actor.ID, page, query.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.CommentDTO, 0, len(comments))
	if err = copier.Copy(&items, &comments); err != nil {
		return nil, err
	}

	return &dto.PageDTO[*dto.CommentDTO]{
		CurrentPage: page,
		PerPage:     query.Limit,
		Total:       total,
		LastPage:    util.LastPage(total, query.Limit),
		Data:        items,
	}, nil
}

func (s *CommentServiceImpl) GetCommentDetails(ctx context.Context, id uint64) (*dto.CommentDTO, error) {
	comment, err := s.commentRepo.GetCommentDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	return toCommentDTO(comment)
}

func (s *CommentServiceImpl) CreateComment(ctx context.Context, actor Actor, createDTO *dto.CreateCommentDTO) (*dto.CommentDTO, error) {
	post, err := s.postRepo.GetPost(ctx, createDTO.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &model.Comment{
		PostID: post.ID,
		UserID: actor.ID,
		Body:   createDTO.Comment,
	}
	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return toCommentDTO(comment)
}

func (s *CommentServiceImpl) UpdateComment(ctx context.Context, actor Actor, updateDTO *dto.UpdateCommentDTO) (*dto.CommentDTO, error) {
	comment, err := s.commentRepo.GetComment(ctx, updateDTO.CommentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if !Editable(actor, comment) {
		return nil, Denied("update this comment")
	}

	if err = s.commentRepo.UpdateCommentBody(ctx, comment.ID, updateDTO.Comment); err != nil {
		return nil, err
	}
	comment.Body = updateDTO.Comment
	return toCommentDTO(comment)
}

func (s *CommentServiceImpl) DeleteComment(ctx context.Context, actor Actor, id uint64) error {
	comment, err := s.commentRepo.GetComment(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if !Editable(actor, comment) {
		return Denied("delete this comment")
	}
	return s.commentRepo.DeleteComment(ctx, comment.ID)
}

// ChangePinStatus 置顶权限以所属帖子为准，同一帖子最多一条置顶评论
func (s *CommentServiceImpl) ChangePinStatus(ctx context.Context, actor Actor, id uint64, pinned bool) (*dto.CommentDTO, error) {
	comment, err := s.commentRepo.GetComment(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}

	err = s.commentRepo.ChangePinStatus(ctx, comment, pinned, func(post *model.Post) error {
		if !Editable(actor, post) {
			return Denied("update comment pinning")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrCommentGone) {
			return nil, ErrCommentNotFound
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	log.InfoContext(ctx, "comment pin status changed",
		"comment_id", comment.ID,
		"post_id", comment.PostID,
		"pinned", pinned,
	)
	return toCommentDTO(comment)
}

func toCommentDTO(comment *model.Comment) (*dto.CommentDTO, error) {
	res := &dto.CommentDTO{}
	if err := copier.Copy(res, comment); err != nil {
		return nil, err
	}
	return res, nil
}
