package cron

import (
	"Inkpost/internal/job"
	log "log/slog"
)

// InitCron 构建并启动定时任务，调用方负责 Stop
func InitCron(blacklist job.Pruner) (*Manager, error) {
	mgr := NewCronManager(job.NewBlacklistPruneJob(blacklist))
	if err := mgr.RegisterJobs(); err != nil {
		return nil, err
	}
	mgr.Start()
	log.Info("Cron jobs started", "entries", mgr.Entries())
	return mgr, nil
}
