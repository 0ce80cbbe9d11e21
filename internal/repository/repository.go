package repository

import (
	"context"
	"errors"

	"github.com/amantech05/Gradlink/internal/model"
)

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrStatusChanged 状态已被并发修改
	ErrStatusChanged = errors.New("request status changed concurrently")
)

// RequestFilter 请求列表过滤条件，零值表示全部
type RequestFilter struct {
	Status model.RequestStatus
}

// Repository 资助请求与捐赠记录的存储接口。
// 计算逻辑不直接访问存储，由 logic 层读取快照并写回结果
type Repository interface {
	CreateRequest(ctx context.Context, req *model.FundRequest) error
	GetRequest(ctx context.Context, id string) (*model.FundRequest, error)
	// ListRequests 按创建时间倒序返回
	ListRequests(ctx context.Context, filter RequestFilter) ([]model.FundRequest, error)
	// UpdateRequestStatus 仅当当前状态仍为 from 时改为 to，
	// 否则返回 ErrStatusChanged 且不写入
	UpdateRequestStatus(ctx context.Context, id string, from, to model.RequestStatus) error

	// ListDonations 按时间正序返回，requestID 为空时返回全部
	ListDonations(ctx context.Context, requestID string) ([]model.Donation, error)

	// AppendDonation 基于请求及其捐赠的一致快照调用 fn，
	// fn 成功时原子地写入捐赠和新状态，失败时不写入任何数据
	AppendDonation(ctx context.Context, requestID string, fn AppendFunc) error
}

// AppendFunc 决定要写入的捐赠和请求的新状态
type AppendFunc func(req model.FundRequest, donations []model.Donation) (model.Donation, model.RequestStatus, error)
