package util

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

var (
	lowerRegex   = regexp.MustCompile(`[a-z]`)
	upperRegex   = regexp.MustCompile(`[A-Z]`)
	digitRegex   = regexp.MustCompile(`[0-9]`)
	specialRegex = regexp.MustCompile(`[@$!%*?&#]`)
)

// RegisterValidators 为 gin 的校验引擎注册字段名解析和自定义规则，可重复调用
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("unexpected validator engine")
			return
		}
		v.RegisterTagNameFunc(fieldName)
		registerErr = v.RegisterValidation("password_strength", passwordStrength)
	})
	return registerErr
}

// fieldName 错误信息中使用 json/form 中的字段名
func fieldName(fld reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

// passwordStrength 至少包含一个小写字母、大写字母、数字和特殊字符
func passwordStrength(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	return lowerRegex.MatchString(pw) &&
		upperRegex.MatchString(pw) &&
		digitRegex.MatchString(pw) &&
		specialRegex.MatchString(pw)
}

// TranslateValidationErrors 将校验错误转换为 字段 -> 提示信息 列表
func TranslateValidationErrors(errs validator.ValidationErrors) map[string][]string {
	out := make(map[string][]string, len(errs))
	for _, fe := range errs {
		key := fe.Field()
		out[key] = append(out[key], message(fe))
	}
	return out
}

// customMessages 以 字段.规则 为 key 的专用提示
var customMessages = map[string]string{
	"name.required":              "Name is required.",
	"password.password_strength": "Password must include at least one lowercase letter, one uppercase letter, one number, and one special character.",
}

func message(fe validator.FieldError) string {
	if msg, ok := customMessages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}

	attr := strings.ReplaceAll(fe.Field(), "_", " ")

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", attr)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", attr)
	case "min":
		if isString(fe) {
			return fmt.Sprintf("The %s field must be at least %s characters.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", attr, fe.Param())
	case "max":
		if isString(fe) {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", attr, fe.Param())
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", attr)
	case "password_strength":
		return fmt.Sprintf("The %s field format is invalid.", attr)
	default:
		return fmt.Sprintf("The %s field is invalid.", attr)
	}
}

func isString(fe validator.FieldError) bool {
	return fe.Kind() == reflect.String
}
