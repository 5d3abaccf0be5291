package dto

import "time"

type CreateCommentDTO struct {
	Comment string `json:"comment" form:"comment" binding:"required"`
	PostID  uint64 `json:"post_id" form:"post_id" binding:"required,min=1"`
}

type UpdateCommentDTO struct {
	CommentID uint64 `json:"comment_id" form:"comment_id" binding:"required,min=1"`
	Comment   string `json:"comment" form:"comment" binding:"required"`
}

type CommentIDDTO struct {
	CommentID uint64 `json:"comment_id" form:"comment_id" binding:"required,min=1"`
}

type CommentDetailsQuery struct {
	CommentID uint64 `form:"comment_id" binding:"required,min=1"`
}

// ChangePinStatusDTO pin_status 接受 0/1、"0"/"1" 与 true/false
type ChangePinStatusDTO struct {
	CommentID uint64    `json:"comment_id" form:"comment_id" binding:"required,min=1"`
	PinStatus PinStatus `json:"pin_status" form:"pin_status" binding:"required,oneof=0 1"`
}

// Pinned 调用方需保证已通过校验
func (d *ChangePinStatusDTO) Pinned() bool {
	return d.PinStatus.Pinned()
}

type CommentDTO struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	UserID    uint64    `json:"user_id"`
	Body      string    `json:"comment"`
	IsPinned  bool      `json:"is_pinned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      *UserDTO  `json:"user,omitempty"`
	Post      *PostDTO  `json:"post,omitempty"`
}
