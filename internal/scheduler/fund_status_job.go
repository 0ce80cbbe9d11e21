package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/amantech05/Gradlink/internal/config"
	"github.com/amantech05/Gradlink/internal/logger"
	"github.com/amantech05/Gradlink/internal/logic"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
)

// FundStatusJob 资助请求状态修正任务，已达目标的进行中请求置为 completed
type FundStatusJob struct {
	fundLogic *logic.FundLogic
	config    config.TaskConfig
}

func NewFundStatusJob(fundLogic *logic.FundLogic, cfg config.TaskConfig) *FundStatusJob {
	return &FundStatusJob{
		fundLogic: fundLogic,
		config:    cfg,
	}
}

func (j *FundStatusJob) GetName() string {
	return "fund_status_reconciler"
}

func (j *FundStatusJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Interval) * time.Second)
}

// Execute 执行任务
func (j *FundStatusJob) Execute() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout())
	defer cancel()

	updated, err := j.Run(ctx)
	if err != nil {
		logger.Error("Fund status reconcile failed: %v", err)
		return
	}
	logger.Debug("Fund status reconcile completed, updated %d requests", updated)
}

// Run 用协程池逐个修正进行中的请求，返回状态有变化的数量。
// 单个请求失败只记录日志
func (j *FundStatusJob) Run(ctx context.Context) (int, error) {
	ids, err := j.fundLogic.ActiveRequestIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list active requests: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	size := j.config.PoolSize
	if size > len(ids) {
		size = len(ids)
	}
	pool, err := ants.NewPool(size)
	if err != nil {
		return 0, fmt.Errorf("failed to create reconcile pool of %d: %w", size, err)
	}
	defer pool.Release()

	var (
		wg      sync.WaitGroup
		updated atomic.Int32
	)
	for _, id := range ids {
		id := id
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			changed, err := j.fundLogic.ReconcileStatus(ctx, id)
			if err != nil {
				logger.Error("Failed to reconcile fund request %s: %v", id, err)
				return
			}
			if changed {
				updated.Add(1)
			}
		})
		if err != nil {
			wg.Done()
			logger.Error("Failed to submit reconcile of %s: %v", id, err)
		}
	}
	wg.Wait()

	return int(updated.Load()), nil
}

// timeout 单次执行不超过任务间隔
func (j *FundStatusJob) timeout() time.Duration {
	return time.Duration(j.config.Interval) * time.Second
}
