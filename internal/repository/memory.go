package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/amantech05/Gradlink/internal/model"
)

// MemoryRepository 内存存储，用于 "memory" 驱动和测试
type MemoryRepository struct {
	mu        sync.RWMutex
	requests  map[string]model.FundRequest
	donations []model.Donation
	now       func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		requests: make(map[string]model.FundRequest),
		now:      time.Now,
	}
}

func (r *MemoryRepository) CreateRequest(_ context.Context, req *model.FundRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if req.CreatedAt.IsZero() {
		req.CreatedAt = r.now()
	}
	req.UpdatedAt = req.CreatedAt
	r.requests[req.ID] = *req
	return nil
}

func (r *MemoryRepository) GetRequest(_ context.Context, id string) (*model.FundRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &req, nil
}

func (r *MemoryRepository) ListRequests(_ context.Context, filter RequestFilter) ([]model.FundRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.FundRequest, 0, len(r.requests))
	for _, req := range r.requests {
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		out = append(out, req)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRepository) UpdateRequestStatus(_ context.Context, id string, from, to model.RequestStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return ErrNotFound
	}
	if req.Status != from {
		return ErrStatusChanged
	}
	req.Status = to
	req.UpdatedAt = r.now()
	r.requests[id] = req
	return nil
}

func (r *MemoryRepository) ListDonations(_ context.Context, requestID string) ([]model.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.donationsFor(requestID), nil
}

func (r *MemoryRepository) donationsFor(requestID string) []model.Donation {
	out := make([]model.Donation, 0, len(r.donations))
	for _, d := range r.donations {
		if requestID == "" || d.RequestID == requestID {
			out = append(out, d)
		}
	}
	return out
}

func (r *MemoryRepository) AppendDonation(_ context.Context, requestID string, fn AppendFunc) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[requestID]
	if !ok {
		return ErrNotFound
	}

	donation, status, err := fn(req, r.donationsFor(requestID))
	if err != nil {
		return err
	}
	if donation.CreatedAt.IsZero() {
		donation.CreatedAt = r.now()
	}
	r.donations = append(r.donations, donation)
	if status != req.Status {
		req.Status = status
		req.UpdatedAt = r.now()
		r.requests[requestID] = req
	}
	return nil
}
