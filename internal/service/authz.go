package service

// Actor 当前请求的操作者，由鉴权中间件从数据库解析
type Actor struct {
	ID      uint64
	IsAdmin bool
}

// Owned 拥有归属者的资源
type Owned interface {
	OwnerID() uint64
}

// Editable 操作者是资源所有者或管理员时返回 true
func Editable(actor Actor, res Owned) bool {
	if actor.IsAdmin {
		return true
	}
	return actor.ID != 0 && actor.ID == res.OwnerID()
}
