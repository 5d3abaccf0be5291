package consts

const (
	TimeLayout = "2006-01-02 15:04:05"
)

const (
	TokenBlacklistKey = "auth:token:blacklist:"
)

const (
	MaxPageSize = 100
)
