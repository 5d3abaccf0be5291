package dto

import "time"

// CreatePostDTO tags 为标签名，tag_ids 为已存在的标签 ID，两者都必须出现但可以为空
type CreatePostDTO struct {
	Title  string     `json:"title" form:"title" binding:"required,max=255"`
	Body   string     `json:"body" form:"body" binding:"required"`
	Tags   StringList `json:"tags" form:"tags" binding:"required,dive,max=100"`
	TagIDs IDList     `json:"tag_ids" form:"tag_ids" binding:"required"`
}

type UpdatePostDTO struct {
	PostID uint64     `json:"post_id" form:"post_id" binding:"required,min=1"`
	Title  string     `json:"title" form:"title" binding:"required,max=255"`
	Body   string     `json:"body" form:"body" binding:"required"`
	Tags   StringList `json:"tags" form:"tags" binding:"required,dive,max=100"`
	TagIDs IDList     `json:"tag_ids" form:"tag_ids" binding:"required"`
}

type PostIDDTO struct {
	PostID uint64 `json:"post_id" form:"post_id" binding:"required,min=1"`
}

type PostDetailsQuery struct {
	PostID uint64 `form:"post_id" binding:"required,min=1"`
}

type PostDTO struct {
	ID            uint64        `json:"id"`
	UserID        uint64        `json:"user_id"`
	Title         string        `json:"title"`
	Body          string        `json:"body"`
	IsDeleted     bool          `json:"is_deleted"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	CommentsCount *int64        `json:"comments_count,omitempty"`
	TagsCount     *int64        `json:"tags_count,omitempty"`
	User          *UserDTO      `json:"user,omitempty"`
	Tags          []*TagDTO     `json:"tags,omitempty"`
	Comments      []*CommentDTO `json:"comments,omitempty"`
}
