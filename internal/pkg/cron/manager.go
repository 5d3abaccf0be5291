package cron

import (
	"Inkpost/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

// BlacklistPruneSchedule 进程内黑名单清理周期
const BlacklistPruneSchedule = "@every 10m"

type Manager struct {
	engine            *cron.Cron
	blacklistPruneJob *job.BlacklistPruneJob
}

func NewCronManager(blacklistPruneJob *job.BlacklistPruneJob) *Manager {
	return &Manager{
		engine:            cron.New(cron.WithSeconds()),
		blacklistPruneJob: blacklistPruneJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if s.blacklistPruneJob != nil {
		if _, err := s.engine.AddJob(BlacklistPruneSchedule, s.blacklistPruneJob); err != nil {
			return err
		}
	}
	return nil
}

// Entries 已注册任务数
func (s *Manager) Entries() int {
	return len(s.engine.Entries())
}

func (s *Manager) Start() {
	log.Info("Cron engine started")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron engine stopped")
	<-s.engine.Stop().Done()
}
