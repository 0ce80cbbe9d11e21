package logic

import (
	"context"
	"io"
	"time"

	"github.com/amantech05/Gradlink/internal/fund"
	"github.com/amantech05/Gradlink/internal/model"
	"github.com/amantech05/Gradlink/internal/repository"
)

// MonitorLogic 捐赠监控逻辑
type MonitorLogic struct {
	repo         repository.Repository
	now          func() time.Time
	recentWindow time.Duration
	topLimit     int
}

func NewMonitorLogic(repo repository.Repository, recentWindow time.Duration, topLimit int) *MonitorLogic {
	return &MonitorLogic{
		repo:         repo,
		now:          time.Now,
		recentWindow: recentWindow,
		topLimit:     topLimit,
	}
}

// Summary 全部捐赠的汇总统计，window 非正时使用配置值
func (m *MonitorLogic) Summary(ctx context.Context, window time.Duration) (fund.Summary, error) {
	donations, err := m.repo.ListDonations(ctx, "")
	if err != nil {
		return fund.Summary{}, err
	}
	if window <= 0 {
		window = m.recentWindow
	}
	return fund.Summarize(donations, m.now(), window), nil
}

// TopDonors 捐赠排行，limit <= 0 时使用配置值
func (m *MonitorLogic) TopDonors(ctx context.Context, limit int) ([]fund.DonorTotal, error) {
	donations, err := m.repo.ListDonations(ctx, "")
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = m.topLimit
	}
	return fund.TopDonors(donations, limit), nil
}

// Donations 过滤并排序的捐赠列表
func (m *MonitorLogic) Donations(ctx context.Context, filter fund.DonationFilter, by fund.SortBy) ([]model.Donation, error) {
	donations, err := m.repo.ListDonations(ctx, "")
	if err != nil {
		return nil, err
	}
	return fund.SortDonations(fund.FilterDonations(donations, filter), by), nil
}

// ExportCSV 导出全部捐赠，按时间倒序
func (m *MonitorLogic) ExportCSV(ctx context.Context, w io.Writer) error {
	donations, err := m.repo.ListDonations(ctx, "")
	if err != nil {
		return err
	}
	return fund.WriteCSV(w, fund.SortDonations(donations, fund.SortByDate))
}
