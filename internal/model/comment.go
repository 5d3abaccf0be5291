package model

import (
	"time"
)

type Comment struct {
	ID        uint64    `gorm:"primaryKey"`
	PostID    uint64    `gorm:"not null;index:idx_post_pinned,priority:1"`
	UserID    uint64    `gorm:"not null;index:idx_comment_user_id"`
	Body      string    `gorm:"type:text;not null"`
	IsPinned  bool      `gorm:"not null;default:false;index:idx_post_pinned,priority:2"`
	CreatedAt time.Time
	UpdatedAt time.Time

	User *User `gorm:"foreignKey:UserID;references:ID"`
	Post *Post `gorm:"foreignKey:PostID;references:ID"`
}

func (Comment) TableName() string {
	return "comments"
}

func (c *Comment) OwnerID() uint64 {
	return c.UserID
}
