package dto

// Response 统一返回结构，message 在校验失败时为字段错误表
type Response struct {
	Success bool        `json:"success"`
	Message interface{} `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Token   string      `json:"token,omitempty"`
}
