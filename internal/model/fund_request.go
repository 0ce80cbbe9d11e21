package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FundRequest 学生发起的资助请求
type FundRequest struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 发起人
	RequesterName string `json:"requester_name" gorm:"not null"`

	// 基本信息
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`

	// 资金信息
	RequiredAmount decimal.Decimal `json:"required_amount" gorm:"type:numeric(14,2);not null"`

	Status RequestStatus `json:"status" gorm:"type:varchar(16);index;default:'active'"`
}

// RequestStatus 资助请求状态
type RequestStatus string

const (
	RequestStatusActive    RequestStatus = "active"    // accepting donations
	RequestStatusCompleted RequestStatus = "completed" // target reached
	RequestStatusCancelled RequestStatus = "cancelled" // withdrawn
)

// Valid 是否为已知状态
func (s RequestStatus) Valid() bool {
	switch s {
	case RequestStatusActive, RequestStatusCompleted, RequestStatusCancelled:
		return true
	}
	return false
}

// Terminal 是否为终态
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusCompleted || s == RequestStatusCancelled
}

// TableName 自定义表名
func (FundRequest) TableName() string {
	return "fund_request"
}
