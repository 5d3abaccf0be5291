package response

import (
	"Inkpost/internal/api/dto"
	"Inkpost/internal/pkg/util"
	"Inkpost/internal/service"
	stdjson "encoding/json"
	"errors"
	"io"
	log "log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = http.StatusOK
	Created             = http.StatusCreated
	BadRequest          = http.StatusBadRequest
	Unauthorized        = http.StatusUnauthorized
	Forbidden           = http.StatusForbidden
	NotFound            = http.StatusNotFound
	Conflict            = http.StatusConflict
	UnprocessableEntity = http.StatusUnprocessableEntity
	InternalServerError = http.StatusInternalServerError
)

// exposeErrors 为 true 时 500 响应附带内部错误信息
var exposeErrors bool

func SetExposeErrors(expose bool) {
	exposeErrors = expose
}

// Success 成功返回封装
func Success(c *gin.Context, message string, data interface{}) {
	c.JSON(Ok, dto.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessCreated 创建成功返回 201
func SuccessCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(Created, dto.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// SuccessToken token 放在顶层，兼容已有客户端
func SuccessToken(c *gin.Context, status int, message string, token string) {
	c.JSON(status, dto.Response{
		Success: true,
		Message: message,
		Token:   token,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Response{
		Success: false,
		Message: message,
	})
}

// FailFields 字段校验失败，message 为字段错误表
func FailFields(c *gin.Context, fields map[string][]string) {
	c.JSON(UnprocessableEntity, dto.Response{
		Success: false,
		Message: fields,
	})
}

// Error 处理错误，fallback 为未知错误时展示给调用方的信息
func Error(c *gin.Context, err error, fallback string) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		FailFields(c, util.TranslateValidationErrors(ve))
		return
	}

	var fe service.FieldErrors
	if errors.As(err, &fe) {
		FailFields(c, fe)
		return
	}

	if field, ok := typeErrorField(err); ok {
		attr := strings.ReplaceAll(field, "_", " ")
		FailFields(c, map[string][]string{
			field: {"The " + attr + " field has an invalid type."},
		})
		return
	}

	if isMalformedBody(err) {
		Fail(c, BadRequest, "Malformed request body.")
		return
	}

	if code, ok := service.StatusOf(err); ok {
		Fail(c, code, err.Error())
		return
	}

	log.ErrorContext(c.Request.Context(), "Error",
		log.String("path", c.Request.URL.Path),
		log.Any("err", err),
	)

	res := dto.Response{
		Success: false,
		Message: fallback,
	}
	if exposeErrors {
		res.Error = err.Error()
	}
	c.JSON(InternalServerError, res)
}

// typeErrorField gin 默认使用 encoding/json，带 go_json 构建标签时使用 goccy/go-json
func typeErrorField(err error) (string, bool) {
	var stdErr *stdjson.UnmarshalTypeError
	if errors.As(err, &stdErr) {
		return fieldOrBody(stdErr.Field), true
	}
	var goErr *json.UnmarshalTypeError
	if errors.As(err, &goErr) {
		return fieldOrBody(goErr.Field), true
	}
	return "", false
}

func fieldOrBody(field string) string {
	if field == "" {
		return "body"
	}
	return field
}

func isMalformedBody(err error) bool {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var stdSyntax *stdjson.SyntaxError
	if errors.As(err, &stdSyntax) {
		return true
	}
	var goSyntax *json.SyntaxError
	return errors.As(err, &goSyntax)
}
