package logger

import (
	"Inkpost/internal/pkg/consts"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLoggerHook 记录 Redis 错误与慢命令，黑名单键中的 Token 签名会被遮蔽
type RedisLoggerHook struct {
	slow time.Duration
}

func NewRedisLogger(slow time.Duration) *RedisLoggerHook {
	return &RedisLoggerHook{slow: slow}
}

func (s *RedisLoggerHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		start := time.Now()
		conn, err := next(ctx, network, addr)
		if err != nil {
			log.ErrorContext(ctx, "Redis Dial Error",
				log.String("addr", addr),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return conn, err
	}
}

func (s *RedisLoggerHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmd)
		elapsed := time.Since(start)

		switch {
		case err != nil && !errors.Is(err, redis.Nil):
			log.ErrorContext(ctx, "Redis Error",
				log.String("command", cmd.Name()),
				log.String("args", redactArgs(cmd)),
				log.Duration("latency", elapsed),
				log.Any("err", err),
			)
		case elapsed > s.slow:
			log.WarnContext(ctx, "Redis Slow",
				log.String("command", cmd.Name()),
				log.String("args", redactArgs(cmd)),
				log.Duration("latency", elapsed),
			)
		}
		return err
	}
}

func (s *RedisLoggerHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		start := time.Now()
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			log.ErrorContext(ctx, "Redis Pipeline Error",
				log.Int("cmd_count", len(cmds)),
				log.Duration("latency", time.Since(start)),
				log.Any("err", err),
			)
		}
		return err
	}
}

func redactArgs(cmd redis.Cmder) string {
	switch cmd.Name() {
	case "auth", "hello":
		return "[PROTECTED]"
	}

	args := cmd.Args()
	parts := make([]string, len(args))
	for i, arg := range args {
		v := fmt.Sprint(arg)
		if strings.HasPrefix(v, consts.TokenBlacklistKey) {
			v = consts.TokenBlacklistKey + "***"
		}
		parts[i] = v
	}
	return strings.Join(parts, " ")
}
