package util

// LastPage 总页数，空结果视为一页
func LastPage(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Offset 根据页码计算偏移量，页码从 1 开始
func Offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
