package dto

// PageQuery 列表接口的分页与关键字参数
type PageQuery struct {
	Limit   int    `form:"limit" binding:"required,min=1,max=100"`
	Page    int    `form:"page" binding:"omitempty,min=1"`
	Keyword string `form:"keyword" binding:"omitempty,max=255"`
}

// CurrentPage 未传 page 时视为第一页
func (q *PageQuery) CurrentPage() int {
	if q.Page < 1 {
		return 1
	}
	return q.Page
}

// PageDTO 分页结果
type PageDTO[T any] struct {
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	Total       int64 `json:"total"`
	LastPage    int   `json:"last_page"`
	Data        []T   `json:"data"`
}
