package repository

import (
	"Inkpost/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const postCountColumns = "posts.*, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comments_count, " +
	"(SELECT COUNT(*) FROM post_tags WHERE post_tags.post_id = posts.id) AS tags_count"

type PostRepo interface {
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	GetPostDetails(ctx context.Context, id uint64) (*model.Post, error)
	ListPosts(ctx context.Context, keyword string, page, limit int) ([]*model.Post, int64, error)
	CreatePost(ctx context.Context, post *model.Post, tagNames []string, tagIDs []uint64) error
	UpdatePost(ctx context.Context, post *model.Post, tagNames []string, tagIDs []uint64) error
	DeletePost(ctx context.Context, id uint64) error
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &PostRepoImpl{
		db: db,
	}
}

// GetPost 只查询未删除的帖子，附带作者
func (s PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	post := &model.Post{}
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("is_deleted = ?", false).
		First(post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get post")
	}
	return post, nil
}

// GetPostDetails 附带作者、标签以及评论，置顶评论在前
func (s PostRepoImpl) GetPostDetails(ctx context.Context, id uint64) (*model.Post, error) {
	post := &model.Post{}
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("is_pinned DESC").Order("created_at DESC").Order("id DESC")
		}).
		Preload("Comments.User").
		Where("is_deleted = ?", false).
		First(post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get post details")
	}

	if err = loadTags(s.db.WithContext(ctx), []*model.Post{post}); err != nil {
		return nil, errors.Wrap(err, "load post tags")
	}
	return post, nil
}

func (s PostRepoImpl) ListPosts(ctx context.Context, keyword string, page, limit int) ([]*model.Post, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		db = db.Where("posts.is_deleted = ?", false)
		if keyword == "" {
			return db
		}
		pattern := containsPattern(keyword)
		return db.Where(
			"LOWER(posts.title) LIKE ? ESCAPE '!' OR LOWER(posts.body) LIKE ? ESCAPE '!' OR "+
				"posts.user_id IN (SELECT users.id FROM users WHERE LOWER(users.name) LIKE ? ESCAPE '!' OR LOWER(users.email) LIKE ? ESCAPE '!') OR "+
				"posts.id IN (SELECT post_tags.post_id FROM post_tags JOIN tags ON tags.id = post_tags.tag_id WHERE LOWER(tags.name) LIKE ? ESCAPE '!')",
			pattern, pattern, pattern, pattern, pattern,
		)
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Post{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count posts")
	}

	posts := make([]*model.Post, 0)
	if total == 0 {
		return posts, 0, nil
	}
	err := s.db.WithContext(ctx).
		Select(postCountColumns).
		Preload("User").
		Scopes(filter, paginate(page, limit)).
		Order("posts.created_at DESC").
		Order("posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list posts")
	}
	return posts, total, nil
}

// CreatePost 帖子写入与标签解析在同一事务内完成
func (s PostRepoImpl) CreatePost(ctx context.Context, post *model.Post, tagNames []string, tagIDs []uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, tagNames, tagIDs)
		if err != nil {
			return err
		}
		if err = tx.Create(post).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err = tx.Create(postTags(post.ID, tags)).Error; err != nil {
				return err
			}
		}
		post.Tags = tags
		return nil
	})
	return errors.Wrap(err, "create post")
}

// UpdatePost 覆盖标题和正文，并将标签关联同步为新的集合
func (s PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post, tagNames []string, tagIDs []uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := resolveTags(tx, tagNames, tagIDs)
		if err != nil {
			return err
		}

		err = tx.Model(post).
			Updates(map[string]interface{}{"title": post.Title, "body": post.Body}).Error
		if err != nil {
			return err
		}

		keep := make([]uint64, 0, len(tags))
		for _, tag := range tags {
			keep = append(keep, tag.ID)
		}
		detach := tx.Where("post_id = ?", post.ID)
		if len(keep) > 0 {
			detach = detach.Where("tag_id NOT IN ?", keep)
		}
		if err = detach.Delete(&model.PostTag{}).Error; err != nil {
			return err
		}

		if len(tags) > 0 {
			err = tx.Clauses(clause.OnConflict{DoNothing: true}).Create(postTags(post.ID, tags)).Error
			if err != nil {
				return err
			}
		}
		post.Tags = tags
		return nil
	})
	return errors.Wrap(err, "update post")
}

// DeletePost 软删除帖子，删除其评论并解除标签关联，标签本身保留
func (s PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Post{}).Where("id = ?", id).Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Where("post_id = ?", id).Delete(&model.PostTag{}).Error
	})
	return errors.Wrap(err, "delete post")
}

func postTags(postID uint64, tags []*model.Tag) []*model.PostTag {
	rows := make([]*model.PostTag, 0, len(tags))
	for _, tag := range tags {
		rows = append(rows, &model.PostTag{PostID: postID, TagID: tag.ID})
	}
	return rows
}

// loadTags 为帖子填充标签
func loadTags(db *gorm.DB, posts []*model.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint64, 0, len(posts))
	byID := make(map[uint64]*model.Post, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		byID[p.ID] = p
		p.Tags = []*model.Tag{}
	}

	type row struct {
		model.Tag
		PostID uint64
	}
	var rows []row
	err := db.Table("tags").
		Select("tags.*, post_tags.post_id AS post_id").
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id IN ?", ids).
		Order("tags.id ASC").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	for i := range rows {
		tag := rows[i].Tag
		byID[rows[i].PostID].Tags = append(byID[rows[i].PostID].Tags, &tag)
	}
	return nil
}
