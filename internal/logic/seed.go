package logic

import (
	"context"
	"time"

	"github.com/amantech05/Gradlink/internal/model"
	"github.com/amantech05/Gradlink/internal/repository"
	"github.com/shopspring/decimal"
)

type demoRequest struct {
	requester   string
	title       string
	description string
	required    int64
	age         time.Duration
	donations   []DonationInput
}

var demoData = []demoRequest{
	{
		requester:   "John Doe",
		title:       "AI Study App",
		description: "An AI-powered assistant to help students learn faster.",
		required:    500,
		age:         24 * time.Hour,
		donations: []DonationInput{
			{DonorName: "Alumni A", Amount: decimal.NewFromInt(100)},
			{DonorName: "Alumni B", Amount: decimal.NewFromInt(50)},
		},
	},
	{
		requester:   "Jane Smith",
		title:       "Solar Energy Project",
		description: "Developing affordable solar panels for local schools.",
		required:    1000,
		age:         48 * time.Hour,
		donations: []DonationInput{
			{DonorName: "Alumni C", Amount: decimal.NewFromInt(200)},
		},
	},
}

// SeedDemoData 存储为空时写入演示数据，已有数据则跳过
func (l *FundLogic) SeedDemoData(ctx context.Context) (bool, error) {
	existing, err := l.repo.ListRequests(ctx, repository.RequestFilter{})
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	now := l.now()
	for _, demo := range demoData {
		req := &model.FundRequest{
			ID:             l.newID(),
			CreatedAt:      now.Add(-demo.age),
			RequesterName:  demo.requester,
			Title:          demo.title,
			Description:    demo.description,
			RequiredAmount: decimal.NewFromInt(demo.required),
			Status:         model.RequestStatusActive,
		}
		if err := l.repo.CreateRequest(ctx, req); err != nil {
			return false, err
		}
		for _, in := range demo.donations {
			if _, _, err := l.Donate(ctx, req.ID, in); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}
