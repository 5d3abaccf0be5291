package repository

import (
	"Inkpost/internal/model"
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const userCountColumns = "users.*, " +
	"(SELECT COUNT(*) FROM posts WHERE posts.user_id = users.id AND posts.is_deleted = ?) AS posts_count, " +
	"(SELECT COUNT(*) FROM comments WHERE comments.user_id = users.id) AS comments_count"

type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserWithCounts(ctx context.Context, id uint64) (*model.User, error)
	GetUserWithPosts(ctx context.Context, id uint64) (*model.User, error)
	ListUsers(ctx context.Context, keyword string, page, limit int) ([]*model.User, int64, error)
	EmailTaken(ctx context.Context, email string, exceptID uint64) (bool, error)
	CreateUser(ctx context.Context, user *model.User) error
	UpdateUser(ctx context.Context, user *model.User) error
	UpdateUserIsAdmin(ctx context.Context, id uint64, isAdmin bool) (int64, error)
	DeleteUser(ctx context.Context, id uint64) (int64, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).First(user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "get user by id")
	}
	return user, nil
}

func (s *UserRepoImpl) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).Where("email = ?", email).First(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "get user by email")
	}
	return user, nil
}

func (s *UserRepoImpl) GetUserWithCounts(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Select(userCountColumns, false).
		Where("users.id = ?", id).
		First(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "get user with counts")
	}
	return user, nil
}

// GetUserWithPosts 附带用户未删除的帖子，新帖在前
func (s *UserRepoImpl) GetUserWithPosts(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Preload("Posts", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("created_at DESC").Order("id DESC")
		}).
		First(user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "get user with posts")
	}
	return user, nil
}

func (s *UserRepoImpl) ListUsers(ctx context.Context, keyword string, page, limit int) ([]*model.User, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if keyword == "" {
			return db
		}
		pattern := containsPattern(keyword)
		return db.Where("LOWER(users.name) LIKE ? ESCAPE '!' OR LOWER(users.email) LIKE ? ESCAPE '!'", pattern, pattern)
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.User{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count users")
	}

	users := make([]*model.User, 0)
	if total == 0 {
		return users, 0, nil
	}
	err := s.db.WithContext(ctx).
		Select(userCountColumns, false).
		Scopes(filter, paginate(page, limit)).
		Order("users.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list users")
	}
	return users, total, nil
}

func (s *UserRepoImpl) EmailTaken(ctx context.Context, email string, exceptID uint64) (bool, error) {
	var count int64
	query := s.db.WithContext(ctx).Model(&model.User{}).Where("email = ?", email)
	if exceptID != 0 {
		query = query.Where("id <> ?", exceptID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "check email")
	}
	return count > 0, nil
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(user).Error, "create user")
}

// UpdateUser 只更新资料字段，管理员标记不经由此方法修改
func (s *UserRepoImpl) UpdateUser(ctx context.Context, user *model.User) error {
	err := s.db.WithContext(ctx).
		Model(user).
		Select("name", "email", "password").
		Updates(user).Error
	return errors.Wrap(err, "update user")
}

func (s *UserRepoImpl) UpdateUserIsAdmin(ctx context.Context, id uint64, isAdmin bool) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", id).
		Update("is_admin", isAdmin)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "update user is_admin")
	}
	return result.RowsAffected, nil
}

// DeleteUser 用户的帖子和评论保留
func (s *UserRepoImpl) DeleteUser(ctx context.Context, id uint64) (int64, error) {
	result := s.db.WithContext(ctx).Delete(&model.User{}, id)
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "delete user")
	}
	return result.RowsAffected, nil
}
