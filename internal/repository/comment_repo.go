package repository

import (
	"Inkpost/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrCommentGone 置顶事务内评论已不存在
var ErrCommentGone = errors.New("comment no longer exists")

type CommentRepo interface {
	GetComment(ctx context.Context, id uint64) (*model.Comment, error)
	GetCommentDetails(ctx context.Context, id uint64) (*model.Comment, error)
	ListUserComments(ctx context.Context, userID uint64, page, limit int) ([]*model.Comment, int64, error)
	CreateComment(ctx context.Context, comment *model.Comment) error
	UpdateCommentBody(ctx context.Context, id uint64, body string) error
	DeleteComment(ctx context.Context, id uint64) error
	ChangePinStatus(ctx context.Context, comment *model.Comment, pinned bool, authorize func(post *model.Post) error) error
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) GetComment(ctx context.Context, id uint64) (*model.Comment, error) {
	comment := &model.Comment{}
	err := s.db.WithContext(ctx).First(comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get comment")
	}
	return comment, nil
}

// GetCommentDetails 附带评论作者、所属帖子及其作者
func (s *CommentRepoImpl) GetCommentDetails(ctx context.Context, id uint64) (*model.Comment, error) {
	comment := &model.Comment{}
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Post").
		Preload("Post.User").
		First(comment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get comment details")
	}
	return comment, nil
}

func (s *CommentRepoImpl) ListUserComments(ctx context.Context, userID uint64, page, limit int) ([]*model.Comment, int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&model.Comment{}).Where("user_id = ?", userID).Count(&total).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "count user comments")
	}

	comments := make([]*model.Comment, 0)
	if total == 0 {
		return comments, 0, nil
	}
	err = s.db.WithContext(ctx).
		Preload("User").
		Preload("Post").
		Where("user_id = ?", userID).
		Order("is_pinned DESC").
		Order("created_at DESC").
		Order("id DESC").
		Scopes(paginate(page, limit)).
		Find(&comments).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list user comments")
	}
	return comments, total, nil
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(comment).Error, "create comment")
}

func (s *CommentRepoImpl) UpdateCommentBody(ctx context.Context, id uint64, body string) error {
	err := s.db.WithContext(ctx).
		Model(&model.Comment{}).
		Where("id = ?", id).
		Update("body", body).Error
	return errors.Wrap(err, "update comment")
}

func (s *CommentRepoImpl) DeleteComment(ctx context.Context, id uint64) error {
	return errors.Wrap(s.db.WithContext(ctx).Delete(&model.Comment{}, id).Error, "delete comment")
}

// ChangePinStatus 锁定所属帖子后完成置顶转移，authorize 返回错误时整个事务回滚
func (s *CommentRepoImpl) ChangePinStatus(ctx context.Context, comment *model.Comment, pinned bool, authorize func(post *model.Post) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		post := &model.Post{}
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(post, comment.PostID).Error
		if err != nil {
			return errors.Wrap(err, "lock post")
		}

		if err = authorize(post); err != nil {
			return err
		}

		if pinned {
			err = tx.Model(&model.Comment{}).
				Where("post_id = ? AND is_pinned = ? AND id <> ?", comment.PostID, true, comment.ID).
				Update("is_pinned", false).Error
			if err != nil {
				return errors.Wrap(err, "unpin current comment")
			}
		}

		res := tx.Model(comment).Where("post_id = ?", comment.PostID).Update("is_pinned", pinned)
		if res.Error != nil {
			return errors.Wrap(res.Error, "update pin status")
		}
		if res.RowsAffected == 0 {
			// MySQL 只统计实际变化的行，需要再确认评论是否存在
			var count int64
			err = tx.Model(&model.Comment{}).Where("id = ? AND post_id = ?", comment.ID, comment.PostID).Count(&count).Error
			if err != nil {
				return errors.Wrap(err, "check comment")
			}
			if count == 0 {
				return ErrCommentGone
			}
		}
		comment.IsPinned = pinned
		return nil
	})
}
