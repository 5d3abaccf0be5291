package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey gin.Context 中 trace_id 的 Key
const TraceIDKey = "trace_id"

type ctxKey int

const (
	traceIDCtxKey ctxKey = iota
	userIDCtxKey
)

// WithTraceID 把 trace_id 写入请求 Context
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDCtxKey, traceID)
}

// TraceID 读取 Context 中的 trace_id
func TraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDCtxKey).(string)
	return id
}

// WithUserID 把当前用户 ID 写入请求 Context，仅用于日志
func WithUserID(ctx context.Context, userID uint64) context.Context {
	return context.WithValue(ctx, userIDCtxKey, userID)
}

// ContextHandler 包装器，用于从 ctx 中提取 trace_id 和 user_id
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(traceIDCtxKey).(string); ok {
			r.AddAttrs(log.String(TraceIDKey, traceID))
		}
		if userID, ok := ctx.Value(userIDCtxKey).(uint64); ok {
			r.AddAttrs(log.Uint64("user_id", userID))
		}
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &ContextHandler{h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) log.Handler {
	return &ContextHandler{h.Handler.WithGroup(name)}
}
