package repository

import (
	"Inkpost/internal/model"
	"context"
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TagIDsNotFoundError 引用了不存在的标签 ID
type TagIDsNotFoundError struct {
	IDs []uint64
}

func (e *TagIDsNotFoundError) Error() string {
	return fmt.Sprintf("tag ids not found: %v", e.IDs)
}

type TagRepo interface {
	GetTag(ctx context.Context, id uint64) (*model.Tag, error)
	GetOrCreateTags(ctx context.Context, tagNames []string) ([]*model.Tag, error)
	ListTags(ctx context.Context, keyword string, page, limit int) ([]*model.Tag, int64, error)
	CreateTag(ctx context.Context, tag *model.Tag) error
	DeleteTag(ctx context.Context, id uint64) (int64, error)
}

type tagRepoImpl struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepo {
	return &tagRepoImpl{
		db: db,
	}
}

func (s *tagRepoImpl) GetTag(ctx context.Context, id uint64) (*model.Tag, error) {
	tag := &model.Tag{}
	err := s.db.WithContext(ctx).First(tag, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "get tag")
	}
	return tag, nil
}

func (s *tagRepoImpl) GetOrCreateTags(ctx context.Context, tagNames []string) ([]*model.Tag, error) {
	return getOrCreateTags(s.db.WithContext(ctx), tagNames)
}

func (s *tagRepoImpl) ListTags(ctx context.Context, keyword string, page, limit int) ([]*model.Tag, int64, error) {
	filter := func(db *gorm.DB) *gorm.DB {
		if keyword == "" {
			return db
		}
		return db.Where("LOWER(tags.name) LIKE ? ESCAPE '!'", containsPattern(keyword))
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&model.Tag{}).Scopes(filter).Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count tags")
	}

	tags := make([]*model.Tag, 0)
	if total == 0 {
		return tags, 0, nil
	}
	err := s.db.WithContext(ctx).
		Scopes(filter, paginate(page, limit)).
		Order("created_at ASC").
		Order("id ASC").
		Find(&tags).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "list tags")
	}
	return tags, total, nil
}

func (s *tagRepoImpl) CreateTag(ctx context.Context, tag *model.Tag) error {
	return errors.Wrap(s.db.WithContext(ctx).Create(tag).Error, "create tag")
}

// DeleteTag 同时解除该标签与所有帖子的关联
func (s *tagRepoImpl) DeleteTag(ctx context.Context, id uint64) (int64, error) {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.PostTag{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Tag{}, id)
		if result.Error != nil {
			return result.Error
		}
		affected = result.RowsAffected
		return nil
	})
	if err != nil {
		return 0, errors.Wrap(err, "delete tag")
	}
	return affected, nil
}

// getOrCreateTags 按名称精确查找标签，不存在的先创建
func getOrCreateTags(db *gorm.DB, tagNames []string) ([]*model.Tag, error) {
	names := uniqueNames(tagNames)
	if len(names) == 0 {
		return []*model.Tag{}, nil
	}

	// 使用 OnConflict DoNothing 避免并发创建同名标签时报错
	for _, name := range names {
		tag := model.Tag{Name: name}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&tag).Error; err != nil {
			return nil, err
		}
	}

	var tags []*model.Tag
	if err := db.Where("name IN ?", names).Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// resolveTags 合并标签名与标签 ID 并去重，ID 不存在时返回 TagIDsNotFoundError
func resolveTags(db *gorm.DB, tagNames []string, tagIDs []uint64) ([]*model.Tag, error) {
	byName, err := getOrCreateTags(db, tagNames)
	if err != nil {
		return nil, err
	}

	ids := uniqueIDs(tagIDs)
	var byID []*model.Tag
	if len(ids) > 0 {
		if err = db.Where("id IN ?", ids).Find(&byID).Error; err != nil {
			return nil, err
		}
		if len(byID) != len(ids) {
			return nil, &TagIDsNotFoundError{IDs: missingIDs(ids, byID)}
		}
	}

	seen := make(map[uint64]struct{}, len(byName)+len(byID))
	tags := make([]*model.Tag, 0, len(byName)+len(byID))
	for _, tag := range append(byName, byID...) {
		if _, ok := seen[tag.ID]; ok {
			continue
		}
		seen[tag.ID] = struct{}{}
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].ID < tags[j].ID })
	return tags, nil
}

func missingIDs(want []uint64, found []*model.Tag) []uint64 {
	have := make(map[uint64]struct{}, len(found))
	for _, tag := range found {
		have[tag.ID] = struct{}{}
	}
	var missing []uint64
	for _, id := range want {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}
