package logger

import (
	"context"
	"errors"
	log "log/slog"
)

// MultiHandler 将日志分发到多个 Handler，各自按级别过滤
type MultiHandler []log.Handler

func (s MultiHandler) Enabled(ctx context.Context, level log.Level) bool {
	for _, h := range s {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

// Handle 某个 Handler 写入失败不影响其余 Handler
func (s MultiHandler) Handle(ctx context.Context, r log.Record) error {
	var errs []error
	for _, h := range s {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s MultiHandler) WithAttrs(attrs []log.Attr) log.Handler {
	out := make(MultiHandler, len(s))
	for i, h := range s {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (s MultiHandler) WithGroup(name string) log.Handler {
	out := make(MultiHandler, len(s))
	for i, h := range s {
		out[i] = h.WithGroup(name)
	}
	return out
}

// TracedOnlyHandler 只放行带 trace_id 的记录，用于远程上报
type TracedOnlyHandler struct {
	next log.Handler
}

func NewTracedOnlyHandler(next log.Handler) *TracedOnlyHandler {
	return &TracedOnlyHandler{next: next}
}

func (s *TracedOnlyHandler) Enabled(ctx context.Context, level log.Level) bool {
	return s.next.Enabled(ctx, level)
}

func (s *TracedOnlyHandler) Handle(ctx context.Context, r log.Record) error {
	if TraceID(ctx) == "" && !hasAttr(r, TraceIDKey) {
		return nil
	}
	return s.next.Handle(ctx, r)
}

func (s *TracedOnlyHandler) WithAttrs(attrs []log.Attr) log.Handler {
	return &TracedOnlyHandler{next: s.next.WithAttrs(attrs)}
}

func (s *TracedOnlyHandler) WithGroup(name string) log.Handler {
	return &TracedOnlyHandler{next: s.next.WithGroup(name)}
}

func hasAttr(r log.Record, key string) bool {
	found := false
	r.Attrs(func(a log.Attr) bool {
		if a.Key == key && a.Value.String() != "" {
			found = true
			return false
		}
		return true
	})
	return found
}
