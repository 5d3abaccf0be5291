package middleware

import (
	"bytes"
	"io"
	log "log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

const redacted = "[PROTECTED]"

// sensitiveFields 审计日志中需要脱敏的字段
var sensitiveFields = map[string]struct{}{
	"password": {},
	"token":    {},
}

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (r *responseBodyWriter) Write(b []byte) (int, error) {
	if r.body.Len() < 16384 {
		r.body.Write(b)
	}
	return r.ResponseWriter.Write(b)
}

func (r *responseBodyWriter) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var reqBody []byte
		if c.Request.Body != nil {
			reqBody, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(reqBody))
		}

		rawQuery := c.Request.URL.RawQuery
		decodedQuery, err := url.QueryUnescape(rawQuery)
		if err != nil {
			decodedQuery = rawQuery
		}

		log.InfoContext(ctx, "Recv Request",
			log.String("method", c.Request.Method),
			log.String("path", c.Request.URL.Path),
			log.String("query", decodedQuery),
			log.String("req_body", redactBody(c.ContentType(), reqBody)),
		)

		w := &responseBodyWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w
		startTime := time.Now()

		c.Next()

		log.InfoContext(c.Request.Context(), "Send Response",
			log.Int("status", c.Writer.Status()),
			log.Duration("latency", time.Since(startTime)),
			log.String("res_body", redactBody(w.Header().Get("Content-Type"), w.body.Bytes())),
		)
	}
}

// redactBody 对 JSON 和表单请求体中的敏感字段脱敏
func redactBody(contentType string, body []byte) string {
	if len(body) == 0 {
		return ""
	}

	switch {
	case strings.Contains(contentType, "json"):
		var fields map[string]interface{}
		if err := json.Unmarshal(body, &fields); err != nil {
			return string(body)
		}
		for key := range fields {
			if _, ok := sensitiveFields[strings.ToLower(key)]; ok {
				fields[key] = redacted
			}
		}
		out, err := json.Marshal(fields)
		if err != nil {
			return redacted
		}
		return string(out)
	case strings.Contains(contentType, "form-urlencoded"):
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return redacted
		}
		for key := range values {
			if _, ok := sensitiveFields[strings.ToLower(key)]; ok {
				values.Set(key, redacted)
			}
		}
		return values.Encode()
	case strings.Contains(contentType, "multipart"):
		return "[MULTIPART]"
	default:
		return string(body)
	}
}
