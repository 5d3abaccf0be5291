package redis

import (
	"Inkpost/internal/pkg/consts"
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist 以 Token 签名为 key 记录已注销的 Token，过期时间与 Token 剩余有效期一致
type TokenBlacklist struct {
	rdb redis.Cmdable
}

func NewTokenBlacklist(rdb redis.Cmdable) *TokenBlacklist {
	return &TokenBlacklist{rdb: rdb}
}

func (b *TokenBlacklist) Revoke(ctx context.Context, signature string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.rdb.Set(ctx, consts.TokenBlacklistKey+signature, 1, ttl).Err()
}

func (b *TokenBlacklist) IsRevoked(ctx context.Context, signature string) (bool, error) {
	_, err := b.rdb.Get(ctx, consts.TokenBlacklistKey+signature).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
