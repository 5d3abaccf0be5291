package security

import (
	"context"
	"sync"
	"time"
)

// Blacklist 已注销 Token 的签名集合
type Blacklist interface {
	Revoke(ctx context.Context, signature string, ttl time.Duration) error
	IsRevoked(ctx context.Context, signature string) (bool, error)
}

// MemoryBlacklist 进程内实现，未配置 Redis 时使用
type MemoryBlacklist struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

func NewMemoryBlacklist() *MemoryBlacklist {
	return &MemoryBlacklist{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (b *MemoryBlacklist) Revoke(_ context.Context, signature string, ttl time.Duration) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries[signature] = b.now().Add(ttl)
	return nil
}

// Prune 清理已过期条目，返回清理数量
func (b *MemoryBlacklist) Prune() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	count := 0
	for sig, exp := range b.entries {
		if !now.Before(exp) {
			delete(b.entries, sig)
			count++
		}
	}
	return count
}

func (b *MemoryBlacklist) IsRevoked(_ context.Context, signature string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	exp, ok := b.entries[signature]
	if !ok {
		return false, nil
	}
	if !b.now().Before(exp) {
		delete(b.entries, signature)
		return false, nil
	}
	return true, nil
}
