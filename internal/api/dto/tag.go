package dto

import "time"

type CreateTagDTO struct {
	Name string `json:"name" form:"name" binding:"required,min=3,max=100"`
}

type TagIDDTO struct {
	TagID uint64 `json:"tag_id" form:"tag_id" binding:"required,min=1"`
}

type TagDTO struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
