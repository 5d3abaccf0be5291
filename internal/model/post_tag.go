package model

import "time"

type PostTag struct {
	PostID    uint64 `gorm:"primaryKey"`
	TagID     uint64 `gorm:"primaryKey;index:idx_tag_id"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PostTag) TableName() string {
	return "post_tags"
}
