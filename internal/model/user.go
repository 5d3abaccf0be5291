package model

import (
	"time"
)

type User struct {
	ID        uint64    `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(100);not null"`
	Email     string    `gorm:"type:varchar(191);not null;uniqueIndex:idx_email"`
	Password  string    `gorm:"type:varchar(255);not null"`
	IsAdmin   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// 只读统计列，由列表查询的子查询填充
	PostsCount    *int64 `gorm:"->;-:migration"`
	CommentsCount *int64 `gorm:"->;-:migration"`

	Posts []*Post `gorm:"foreignKey:UserID;references:ID"`
}

func (User) TableName() string {
	return "users"
}

// OwnerID 用户即是自身资料的所有者
func (u *User) OwnerID() uint64 {
	return u.ID
}
