package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrUserNotFound       = errors.New("User doesn't exists.")
	ErrPostNotFound       = errors.New("Post doesn't exists.")
	ErrCommentNotFound    = errors.New("Comment doesn't exists.")
	ErrTagNotFound        = errors.New("Tag doesn't exists.")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUnauthenticated    = errors.New("Unauthenticated.")
	ErrPermissionDenied   = errors.New("You are not authorized to perform this action.")
	ErrEmailTaken         = errors.New("Email already exists.")
	ErrTagExists          = errors.New("Tag already exists.")
)

var ErrorMap = map[error]int{
	ErrUserNotFound:       NotFound,
	ErrPostNotFound:       NotFound,
	ErrCommentNotFound:    NotFound,
	ErrTagNotFound:        NotFound,
	ErrInvalidCredentials: Unauthorized,
	ErrUnauthenticated:    Unauthorized,
	ErrPermissionDenied:   Forbidden,
	ErrEmailTaken:         Conflict,
	ErrTagExists:          Conflict,
}

// StatusOf 返回错误链中第一个已知业务错误对应的 HTTP 状态码
func StatusOf(err error) (int, bool) {
	if code, ok := ErrorMap[err]; ok {
		return code, true
	}
	for sentinel, code := range ErrorMap {
		if errors.Is(err, sentinel) {
			return code, true
		}
	}
	return 0, false
}

// DeniedError 带有具体操作描述的权限错误，errors.Is 可匹配 ErrPermissionDenied
type DeniedError struct {
	Action string
}

func Denied(action string) error {
	return &DeniedError{Action: action}
}

func (e *DeniedError) Error() string {
	return fmt.Sprintf("You are not authorized to %s.", e.Action)
}

func (e *DeniedError) Is(target error) bool {
	return target == ErrPermissionDenied
}

// FieldErrors 字段级校验错误，返回 422
type FieldErrors map[string][]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(f[k], " "))
	}
	return strings.Join(parts, "; ")
}

// isDuplicateError 唯一索引冲突
func isDuplicateError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
