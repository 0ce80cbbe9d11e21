// Package fund 资助相关的纯计算：已筹金额、完成百分比、请求状态流转
// 以及捐赠监控统计。不访问存储，调用方传入快照并负责持久化结果
package fund

import (
	"strings"

	"github.com/amantech05/Gradlink/internal/model"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Progress 请求的筹款进度
type Progress struct {
	RequestID     string              `json:"request_id"`
	Raised        decimal.Decimal     `json:"raised_amount"`
	Required      decimal.Decimal     `json:"required_amount"`
	Remaining     decimal.Decimal     `json:"remaining_amount"`
	Percentage    decimal.Decimal     `json:"percentage"`
	DonationCount int                 `json:"donation_count"`
	DonorCount    int                 `json:"donor_count"`
	Status        model.RequestStatus `json:"status"`
	ReachedTarget bool                `json:"reached_target"`
}

// RaisedAmount 汇总 requestID 的捐赠金额，无捐赠时为 0
func RaisedAmount(requestID string, donations []model.Donation) decimal.Decimal {
	total := decimal.Zero
	for _, d := range donations {
		if d.RequestID == requestID {
			total = total.Add(d.Amount)
		}
	}
	return total
}

// FundingPercentage 已筹/目标*100，最大为 100
func FundingPercentage(requestID string, donations []model.Donation, required decimal.Decimal) (decimal.Decimal, error) {
	if !required.IsPositive() {
		return decimal.Zero, ErrInvalidRequest
	}
	return percentage(RaisedAmount(requestID, donations), required), nil
}

func percentage(raised, required decimal.Decimal) decimal.Decimal {
	pct := raised.Div(required).Mul(hundred)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct
}

// ProgressOf 根据捐赠记录计算 req 的筹款进度
func ProgressOf(req model.FundRequest, donations []model.Donation) (Progress, error) {
	if !req.RequiredAmount.IsPositive() {
		return Progress{}, ErrInvalidRequest
	}

	raised := decimal.Zero
	count := 0
	donors := make(map[string]struct{})
	for _, d := range donations {
		if d.RequestID != req.ID {
			continue
		}
		raised = raised.Add(d.Amount)
		count++
		donors[strings.ToLower(strings.TrimSpace(d.DonorName))] = struct{}{}
	}

	remaining := req.RequiredAmount.Sub(raised)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return Progress{
		RequestID:     req.ID,
		Raised:        raised,
		Required:      req.RequiredAmount,
		Remaining:     remaining,
		Percentage:    percentage(raised, req.RequiredAmount),
		DonationCount: count,
		DonorCount:    len(donors),
		Status:        req.Status,
		ReachedTarget: raised.GreaterThanOrEqual(req.RequiredAmount),
	}, nil
}
