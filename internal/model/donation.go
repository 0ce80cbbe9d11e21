package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation 捐赠记录，对应唯一的资助请求
type Donation struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`

	RequestID string          `json:"request_id" gorm:"type:varchar(36);not null;index"`
	DonorName string          `json:"donor_name" gorm:"not null"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	Message   string          `json:"message,omitempty" gorm:"type:text"`
}

// TableName 自定义表名
func (Donation) TableName() string {
	return "donation"
}
