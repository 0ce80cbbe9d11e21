package scheduler

import (
	"fmt"

	"github.com/amantech05/Gradlink/internal/config"
	"github.com/amantech05/Gradlink/internal/logger"
	"github.com/amantech05/Gradlink/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// Manager 任务管理器
type Manager struct {
	scheduler gocron.Scheduler
	fundLogic *logic.FundLogic
	config    *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(fundLogic *logic.FundLogic, cfg *config.Config) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Manager{
		scheduler: s,
		fundLogic: fundLogic,
		config:    cfg,
	}, nil
}

// Start 注册所有任务并启动调度器
func (m *Manager) Start() error {
	if err := m.RegisterJobs(); err != nil {
		return err
	}
	m.scheduler.Start()

	logger.Info("Task manager started, reconcile interval %ds", m.config.Task.Interval)
	return nil
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() error {
	return m.registerFundStatusJob(NewFundStatusJob(m.fundLogic, m.config.Task))
}

func (m *Manager) registerFundStatusJob(job *FundStatusJob) error {
	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to register job %s: %w", job.GetName(), err)
	}
	return nil
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
