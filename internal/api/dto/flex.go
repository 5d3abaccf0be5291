package dto

import (
	stdjson "encoding/json"
	"reflect"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// StringList 接受 JSON 数组、内容为 JSON 数组的字符串或逗号分隔的字符串
type StringList []string

// IDList 与 StringList 相同的输入形式，元素为正整数 ID
type IDList []uint64

// PinStatus 归一化为 "0" 或 "1"，接受数字、数字字符串和布尔值，空值表示未传
type PinStatus string

const (
	PinStatusUnpinned PinStatus = "0"
	PinStatusPinned   PinStatus = "1"
)

func (l *StringList) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		return nil
	}
	items, err := decodeFlexible(b, reflect.TypeOf(*l))
	if err != nil {
		return err
	}
	out := make(StringList, 0, len(items))
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	*l = out
	return nil
}

// UnmarshalParam 供 gin 表单绑定使用
func (l *StringList) UnmarshalParam(param string) error {
	return l.UnmarshalJSON(quote(param))
}

func (l *IDList) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		return nil
	}
	items, err := decodeFlexible(b, reflect.TypeOf(*l))
	if err != nil {
		return err
	}
	out := make(IDList, 0, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		id, err := strconv.ParseUint(item, 10, 64)
		if err != nil || id == 0 {
			return &stdjson.UnmarshalTypeError{Value: "string " + strconv.Quote(item), Type: reflect.TypeOf(*l)}
		}
		out = append(out, id)
	}
	*l = out
	return nil
}

func (l *IDList) UnmarshalParam(param string) error {
	return l.UnmarshalJSON(quote(param))
}

// UnmarshalJSON 取值范围交给 oneof 校验，这里只拒绝对象和数组
func (p *PinStatus) UnmarshalJSON(b []byte) error {
	if isNull(b) {
		return nil
	}
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case bool:
		*p = PinStatusUnpinned
		if v {
			*p = PinStatusPinned
		}
	case float64:
		*p = PinStatus(strconv.FormatFloat(v, 'f', -1, 64))
	case string:
		*p = PinStatus(strings.TrimSpace(v))
	default:
		return &stdjson.UnmarshalTypeError{Value: reflect.TypeOf(raw).Kind().String(), Type: reflect.TypeOf(*p)}
	}
	return nil
}

func (p PinStatus) Pinned() bool {
	return p == PinStatusPinned
}

func isNull(b []byte) bool {
	return strings.TrimSpace(string(b)) == "null"
}

func quote(s string) []byte {
	b, _ := json.Marshal(s)
	return b
}

// decodeFlexible 将三种输入形式统一展开为字符串元素
// 返回的 UnmarshalTypeError 不带字段名，encoding/json 解码结构体时会补上所在字段
func decodeFlexible(b []byte, typ reflect.Type) ([]string, error) {
	var raw interface{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}

	switch v := raw.(type) {
	case []interface{}:
		return flatten(v, typ)
	case string:
		s := strings.TrimSpace(v)
		if strings.HasPrefix(s, "[") {
			var inner []interface{}
			if err := json.Unmarshal([]byte(s), &inner); err != nil {
				return nil, &stdjson.UnmarshalTypeError{Value: "string", Type: typ}
			}
			return flatten(inner, typ)
		}
		if s == "" {
			return []string{}, nil
		}
		parts := strings.Split(s, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts, nil
	case float64:
		return []string{strconv.FormatFloat(v, 'f', -1, 64)}, nil
	default:
		return nil, &stdjson.UnmarshalTypeError{Value: reflect.TypeOf(raw).Kind().String(), Type: typ}
	}
}

func flatten(items []interface{}, typ reflect.Type) ([]string, error) {
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			out = append(out, strings.TrimSpace(v))
		case float64:
			out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
		default:
			return nil, &stdjson.UnmarshalTypeError{Value: "array element", Type: typ}
		}
	}
	return out, nil
}
