package model

import (
	"time"
)

type Post struct {
	ID        uint64    `gorm:"primaryKey"`
	UserID    uint64    `gorm:"not null;index:idx_user_id"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Body      string    `gorm:"type:text;not null"`
	IsDeleted bool      `gorm:"not null;default:false;index:idx_is_deleted"`
	CreatedAt time.Time `gorm:"index:idx_created_at"`
	UpdatedAt time.Time

	CommentsCount *int64 `gorm:"->;-:migration"`
	TagsCount     *int64 `gorm:"->;-:migration"`

	// 关联关系
	User     *User      `gorm:"foreignKey:UserID;references:ID"`
	Comments []*Comment `gorm:"foreignKey:PostID;references:ID"`
	// Tags 由 post_tags 显式维护，不交给 gorm 的 many2many
	Tags []*Tag `gorm:"-"`
}

func (Post) TableName() string {
	return "posts"
}

func (p *Post) OwnerID() uint64 {
	return p.UserID
}
