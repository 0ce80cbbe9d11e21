package handler

import (
	"github.com/amantech05/Gradlink/internal/fund"
	"github.com/amantech05/Gradlink/internal/logic"
	"github.com/amantech05/Gradlink/internal/model"
	"github.com/shopspring/decimal"
)

// Response 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// CreateFundRequestRequest 创建资助请求参数
type CreateFundRequestRequest struct {
	RequesterName  string          `json:"requester_name"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	RequiredAmount decimal.Decimal `json:"required_amount"`
}

// DonateRequest 捐赠参数
type DonateRequest struct {
	DonorName string          `json:"donor_name"`
	Amount    decimal.Decimal `json:"amount"`
	Message   string          `json:"message"`
}

// FundRequestResponse 资助请求响应模型（含进度）
type FundRequestResponse struct {
	model.FundRequest
	Progress fund.Progress `json:"progress"`
}

// DonateResponse 捐赠响应
type DonateResponse struct {
	Donation    model.Donation      `json:"donation"`
	FundRequest FundRequestResponse `json:"fund_request"`
}

func (r CreateFundRequestRequest) toInput() logic.CreateRequestInput {
	return logic.CreateRequestInput{
		RequesterName:  r.RequesterName,
		Title:          r.Title,
		Description:    r.Description,
		RequiredAmount: r.RequiredAmount,
	}
}

func (r DonateRequest) toInput() logic.DonationInput {
	return logic.DonationInput{
		DonorName: r.DonorName,
		Amount:    r.Amount,
		Message:   r.Message,
	}
}

// ToFundRequestResponse 转换为响应模型
func ToFundRequestResponse(v logic.RequestView) FundRequestResponse {
	return FundRequestResponse{FundRequest: v.Request, Progress: v.Progress}
}

// ToFundRequestResponseList 转换为响应模型列表
func ToFundRequestResponseList(views []logic.RequestView) []FundRequestResponse {
	result := make([]FundRequestResponse, len(views))
	for i, v := range views {
		result[i] = ToFundRequestResponse(v)
	}
	return result
}
