package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amantech05/Gradlink/internal/fund"
	"github.com/amantech05/Gradlink/internal/logger"
	"github.com/amantech05/Gradlink/internal/model"
	"github.com/amantech05/Gradlink/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultRequesterName = "Anonymous Student"
	defaultDonorName     = "Anonymous Alumni"
)

// ValidationError 参数校验错误
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CreateRequestInput 创建资助请求参数
type CreateRequestInput struct {
	RequesterName  string
	Title          string
	Description    string
	RequiredAmount decimal.Decimal
}

// DonationInput 捐赠参数
type DonationInput struct {
	DonorName string
	Amount    decimal.Decimal
	Message   string
}

// RequestView 资助请求及其进度
type RequestView struct {
	Request  model.FundRequest
	Progress fund.Progress
}

// FundLogic 资助请求与捐赠业务逻辑
type FundLogic struct {
	repo  repository.Repository
	now   func() time.Time
	newID func() string
}

func NewFundLogic(repo repository.Repository) *FundLogic {
	return &FundLogic{
		repo:  repo,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// CreateFundRequest 创建资助请求
func (l *FundLogic) CreateFundRequest(ctx context.Context, in CreateRequestInput) (*model.FundRequest, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" {
		return nil, &ValidationError{Field: "title", Message: "must not be empty"}
	}
	if description == "" {
		return nil, &ValidationError{Field: "description", Message: "must not be empty"}
	}
	if err := fund.ValidateAmount(in.RequiredAmount); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.RequesterName)
	if name == "" {
		name = defaultRequesterName
	}

	req := &model.FundRequest{
		ID:             l.newID(),
		CreatedAt:      l.now(),
		RequesterName:  name,
		Title:          title,
		Description:    description,
		RequiredAmount: in.RequiredAmount,
		Status:         model.RequestStatusActive,
	}
	if err := l.repo.CreateRequest(ctx, req); err != nil {
		return nil, err
	}

	logger.Info("Created fund request %s (%s) for %s", req.ID, req.Title, req.RequiredAmount.StringFixed(2))
	return req, nil
}

// ListFundRequests 获取资助请求列表（含进度），status 为空时返回全部
func (l *FundLogic) ListFundRequests(ctx context.Context, status model.RequestStatus) ([]RequestView, error) {
	if status != "" && !status.Valid() {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}

	requests, err := l.repo.ListRequests(ctx, repository.RequestFilter{Status: status})
	if err != nil {
		return nil, err
	}
	donations, err := l.repo.ListDonations(ctx, "")
	if err != nil {
		return nil, err
	}

	views := make([]RequestView, 0, len(requests))
	for _, req := range requests {
		p, err := fund.ProgressOf(req, donations)
		if err != nil {
			return nil, fmt.Errorf("progress of %s: %w", req.ID, err)
		}
		views = append(views, RequestView{Request: req, Progress: p})
	}
	return views, nil
}

// GetFundRequest 获取资助请求详情
func (l *FundLogic) GetFundRequest(ctx context.Context, id string) (*RequestView, error) {
	req, err := l.getRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	donations, err := l.repo.ListDonations(ctx, id)
	if err != nil {
		return nil, err
	}
	p, err := fund.ProgressOf(*req, donations)
	if err != nil {
		return nil, err
	}
	return &RequestView{Request: *req, Progress: p}, nil
}

// ListDonations 获取请求的捐赠记录，按时间倒序
func (l *FundLogic) ListDonations(ctx context.Context, requestID string) ([]model.Donation, error) {
	if _, err := l.getRequest(ctx, requestID); err != nil {
		return nil, err
	}
	donations, err := l.repo.ListDonations(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return fund.SortDonations(donations, fund.SortByDate), nil
}

// Donate 记录捐赠并推进状态，捐赠与状态变更在同一事务内写入
func (l *FundLogic) Donate(ctx context.Context, requestID string, in DonationInput) (*model.Donation, *RequestView, error) {
	if err := fund.ValidateAmount(in.Amount); err != nil {
		return nil, nil, err
	}

	name := strings.TrimSpace(in.DonorName)
	if name == "" {
		name = defaultDonorName
	}
	donation := model.Donation{
		ID:        l.newID(),
		CreatedAt: l.now(),
		RequestID: requestID,
		DonorName: name,
		Amount:    in.Amount,
		Message:   strings.TrimSpace(in.Message),
	}

	var result *fund.Result
	err := l.repo.AppendDonation(ctx, requestID, func(req model.FundRequest, donations []model.Donation) (model.Donation, model.RequestStatus, error) {
		res, err := fund.RecordDonation(req, donations, donation)
		if err != nil {
			return model.Donation{}, "", err
		}
		result = res
		return donation, res.Request.Status, nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, fund.ErrUnknownRequest
		}
		return nil, nil, err
	}

	logger.Info("Recorded donation %s of %s to request %s, raised %s",
		donation.ID, donation.Amount.StringFixed(2), requestID, result.Raised.StringFixed(2))
	if result.Completed {
		logger.Info("Fund request %s reached its target of %s", requestID, result.Request.RequiredAmount.StringFixed(2))
	}

	p, err := fund.ProgressOf(result.Request, result.Donations)
	if err != nil {
		return nil, nil, err
	}
	return &donation, &RequestView{Request: result.Request, Progress: p}, nil
}

// CancelFundRequest 取消资助请求（仅限进行中）
func (l *FundLogic) CancelFundRequest(ctx context.Context, id string) (*model.FundRequest, error) {
	req, err := l.getRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	cancelled, err := fund.Cancel(*req)
	if err != nil {
		return nil, err
	}
	if err := l.repo.UpdateRequestStatus(ctx, id, req.Status, cancelled.Status); err != nil {
		switch {
		case errors.Is(err, repository.ErrStatusChanged):
			return nil, fund.ErrInvalidTransition
		case errors.Is(err, repository.ErrNotFound):
			return nil, fund.ErrUnknownRequest
		}
		return nil, err
	}
	logger.Info("Cancelled fund request %s", id)
	return &cancelled, nil
}

// ReconcileStatus 根据捐赠记录重新计算状态，有变化时写回。
// 返回状态是否变化
func (l *FundLogic) ReconcileStatus(ctx context.Context, id string) (bool, error) {
	req, err := l.getRequest(ctx, id)
	if err != nil {
		return false, err
	}
	donations, err := l.repo.ListDonations(ctx, id)
	if err != nil {
		return false, err
	}

	next := fund.NextStatus(req.Status, fund.RaisedAmount(id, donations), req.RequiredAmount)
	if next == req.Status {
		return false, nil
	}
	if err := l.repo.UpdateRequestStatus(ctx, id, req.Status, next); err != nil {
		if errors.Is(err, repository.ErrStatusChanged) {
			// 已被并发的捐赠或取消修改
			return false, nil
		}
		return false, err
	}
	logger.Info("Reconciled fund request %s status from %s to %s", id, req.Status, next)
	return true, nil
}

// ActiveRequestIDs 进行中请求的 id
func (l *FundLogic) ActiveRequestIDs(ctx context.Context) ([]string, error) {
	requests, err := l.repo.ListRequests(ctx, repository.RequestFilter{Status: model.RequestStatusActive})
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(requests))
	for i, r := range requests {
		ids[i] = r.ID
	}
	return ids, nil
}

func (l *FundLogic) getRequest(ctx context.Context, id string) (*model.FundRequest, error) {
	req, err := l.repo.GetRequest(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fund.ErrUnknownRequest
		}
		return nil, err
	}
	return req, nil
}
