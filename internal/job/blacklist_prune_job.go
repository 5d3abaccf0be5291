package job

import log "log/slog"

// Pruner 可清理过期条目的 Token 黑名单
type Pruner interface {
	Prune() int
}

// BlacklistPruneJob Redis 黑名单依赖 TTL 自动过期，只有进程内实现需要定期清理
type BlacklistPruneJob struct {
	blacklist Pruner
}

func NewBlacklistPruneJob(blacklist Pruner) *BlacklistPruneJob {
	return &BlacklistPruneJob{blacklist: blacklist}
}

func (s *BlacklistPruneJob) Run() {
	count := s.blacklist.Prune()
	if count > 0 {
		log.Info("blacklist prune job finished", "pruned_count", count)
	}
}
