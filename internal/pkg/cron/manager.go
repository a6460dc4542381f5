package cron

import (
	"Planting/internal/job"
	"fmt"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine          *cron.Cron
	spec            string
	boardMetricsJob *job.BoardMetricsJob
}

func NewCronManager(spec string, boardMetricsJob *job.BoardMetricsJob) *Manager {
	if spec == "" {
		spec = "@daily"
	}
	return &Manager{
		engine:          cron.New(cron.WithSeconds()),
		spec:            spec,
		boardMetricsJob: boardMetricsJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.spec, s.boardMetricsJob); err != nil {
		return err
	}
	return nil
}

// Launch 注册任务并启动引擎
func (s *Manager) Launch() error {
	if err := s.RegisterJobs(); err != nil {
		return fmt.Errorf("register board metrics job %q: %w", s.spec, err)
	}
	s.Start()
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动", "board_metrics", s.spec)
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
