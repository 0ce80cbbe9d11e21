package fund

import (
	"github.com/amantech05/Gradlink/internal/model"
	"github.com/shopspring/decimal"
)

// AmountScale 金额保留的小数位数
const AmountScale = 2

// amountLimit numeric(14,2) 列的上限（不含）
var amountLimit = decimal.New(1, 14-AmountScale)

// ValidateAmount 金额须为正数，最多两位小数，且不超出存储范围
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if !amount.Equal(amount.Truncate(AmountScale)) {
		return ErrInvalidAmount
	}
	if amount.GreaterThanOrEqual(amountLimit) {
		return ErrInvalidAmount
	}
	return nil
}

// Result 一次捐赠的记录结果
type Result struct {
	Request   model.FundRequest
	Donations []model.Donation
	Raised    decimal.Decimal
	// Completed 本次捐赠使请求变为 completed
	Completed bool
}

// NextStatus 状态单向推进：active 且已筹金额达到目标时变为 completed，
// 其余状态原样返回
func NextStatus(current model.RequestStatus, raised, required decimal.Decimal) model.RequestStatus {
	if current == model.RequestStatusActive && raised.GreaterThanOrEqual(required) {
		return model.RequestStatusCompleted
	}
	return current
}

// RecordDonation 将 d 追加到 donations 的副本并据此推导 req 的新状态。
// 不修改入参
func RecordDonation(req model.FundRequest, donations []model.Donation, d model.Donation) (*Result, error) {
	if err := ValidateAmount(d.Amount); err != nil {
		return nil, err
	}
	if d.RequestID != req.ID {
		return nil, ErrUnknownRequest
	}
	if !req.RequiredAmount.IsPositive() {
		return nil, ErrInvalidRequest
	}
	if req.Status == model.RequestStatusCancelled {
		return nil, ErrRequestCancelled
	}

	next := make([]model.Donation, 0, len(donations)+1)
	next = append(next, donations...)
	next = append(next, d)

	raised := RaisedAmount(req.ID, next)
	updated := req
	updated.Status = NextStatus(req.Status, raised, req.RequiredAmount)

	return &Result{
		Request:   updated,
		Donations: next,
		Raised:    raised,
		Completed: req.Status != updated.Status,
	}, nil
}

// FindRequest 按 id 查找请求
func FindRequest(requests []model.FundRequest, id string) (model.FundRequest, error) {
	for _, r := range requests {
		if r.ID == id {
			return r, nil
		}
	}
	return model.FundRequest{}, ErrUnknownRequest
}

// Cancel 取消进行中的请求
func Cancel(req model.FundRequest) (model.FundRequest, error) {
	if req.Status != model.RequestStatusActive {
		return req, ErrInvalidTransition
	}
	req.Status = model.RequestStatusCancelled
	return req, nil
}
