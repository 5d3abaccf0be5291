package dto

import "time"

// RegisterDTO 注册
type RegisterDTO struct {
	Name     string `json:"name" form:"name" binding:"required,min=3,max=100"`
	Email    string `json:"email" form:"email" binding:"required,email,max=191"`
	Password string `json:"password" form:"password" binding:"required,min=6,max=16,password_strength"`
}

// LoginDTO 登录
type LoginDTO struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UpdateUserDTO 管理员可通过 user_id 修改他人资料
type UpdateUserDTO struct {
	UserID   uint64 `json:"user_id" form:"user_id" binding:"omitempty,min=1"`
	Name     string `json:"name" form:"name" binding:"required,min=3,max=100"`
	Email    string `json:"email" form:"email" binding:"required,email,max=191"`
	Password string `json:"password" form:"password" binding:"required,min=6,max=16,password_strength"`
}

type DestroyUserDTO struct {
	UserID uint64 `json:"user_id" form:"user_id" binding:"omitempty,min=1"`
}

type UserDetailsQuery struct {
	UserID uint64 `form:"user_id" binding:"required,min=1"`
}

// UserDTO 用户对外展示信息，不包含密码
type UserDTO struct {
	ID            uint64     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	IsAdmin       bool       `json:"is_admin"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	PostsCount    *int64     `json:"posts_count,omitempty"`
	CommentsCount *int64     `json:"comments_count,omitempty"`
	Posts         []*PostDTO `json:"posts,omitempty"`
}

// TokenDTO 登录态变更后返回的新 Token
type TokenDTO struct {
	Token string `json:"token"`
}
