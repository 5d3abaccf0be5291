package logger

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type accessRecord struct {
	Time        string `json:"time"`
	Level       string `json:"level"`
	Msg         string `json:"msg"`
	TraceID     string `json:"trace_id"`
	UserID      uint64 `json:"user_id,omitempty"`
	TargetIndex string `json:"target_index"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Status      int    `json:"status"`
	ClientIP    string `json:"client_ip"`
	Latency     string `json:"latency"`
}

func SetupGin(r *gin.Engine, index string) {
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Output: LogWriter,
		Formatter: func(p gin.LogFormatterParams) string {
			return formatAccess(p, index)
		},
	}))

	r.Use(gin.Recovery())
}

func formatAccess(p gin.LogFormatterParams, index string) string {
	rec := accessRecord{
		Time:        p.TimeStamp.Format(time.RFC3339),
		Level:       "INFO",
		Msg:         "GIN_ACCESS",
		TargetIndex: index,
		Method:      p.Method,
		Path:        p.Path,
		Status:      p.StatusCode,
		ClientIP:    p.ClientIP,
		Latency:     p.Latency.String(),
	}
	if id, ok := p.Keys[TraceIDKey].(string); ok {
		rec.TraceID = id
	}
	if p.Request != nil {
		ctx := p.Request.Context()
		if rec.TraceID == "" {
			rec.TraceID = TraceID(ctx)
		}
		rec.UserID, _ = ctx.Value(userIDCtxKey).(uint64)
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return ""
	}
	return string(b) + "\n"
}
