package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/amantech05/Gradlink/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormRepository 基于 postgres 的存储实现
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) CreateRequest(ctx context.Context, req *model.FundRequest) error {
	if err := r.db.WithContext(ctx).Create(req).Error; err != nil {
		return fmt.Errorf("create fund request: %w", err)
	}
	return nil
}

func (r *GormRepository) GetRequest(ctx context.Context, id string) (*model.FundRequest, error) {
	var req model.FundRequest
	if err := r.db.WithContext(ctx).First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get fund request %s: %w", id, err)
	}
	return &req, nil
}

func (r *GormRepository) ListRequests(ctx context.Context, filter RequestFilter) ([]model.FundRequest, error) {
	var requests []model.FundRequest
	query := r.db.WithContext(ctx).Order("created_at DESC").Order("id")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("list fund requests: %w", err)
	}
	return requests, nil
}

func (r *GormRepository) UpdateRequestStatus(ctx context.Context, id string, from, to model.RequestStatus) error {
	db := r.db.WithContext(ctx)
	res := db.Model(&model.FundRequest{}).Where("id = ? AND status = ?", id, from).Update("status", to)
	if res.Error != nil {
		return fmt.Errorf("update fund request %s status: %w", id, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	var count int64
	if err := db.Model(&model.FundRequest{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return fmt.Errorf("check fund request %s: %w", id, err)
	}
	if count == 0 {
		return ErrNotFound
	}
	return ErrStatusChanged
}

func (r *GormRepository) ListDonations(ctx context.Context, requestID string) ([]model.Donation, error) {
	var donations []model.Donation
	query := r.db.WithContext(ctx).Order("created_at").Order("id")
	if requestID != "" {
		query = query.Where("request_id = ?", requestID)
	}
	if err := query.Find(&donations).Error; err != nil {
		return nil, fmt.Errorf("list donations: %w", err)
	}
	return donations, nil
}

// AppendDonation 在事务内锁定请求行（SELECT ... FOR UPDATE），
// 同一请求的并发捐赠串行执行
func (r *GormRepository) AppendDonation(ctx context.Context, requestID string, fn AppendFunc) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var req model.FundRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&req, "id = ?", requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("lock fund request %s: %w", requestID, err)
		}

		var donations []model.Donation
		if err := tx.Where("request_id = ?", requestID).Order("created_at").Find(&donations).Error; err != nil {
			return fmt.Errorf("load donations: %w", err)
		}

		donation, status, err := fn(req, donations)
		if err != nil {
			return err
		}

		if err := tx.Create(&donation).Error; err != nil {
			return fmt.Errorf("create donation: %w", err)
		}
		if status != req.Status {
			if err := tx.Model(&req).Update("status", status).Error; err != nil {
				return fmt.Errorf("update fund request %s status: %w", requestID, err)
			}
		}
		return nil
	})
}
