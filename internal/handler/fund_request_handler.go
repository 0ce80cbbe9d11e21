package handler

import (
	"net/http"

	"github.com/amantech05/Gradlink/internal/logic"
	"github.com/amantech05/Gradlink/internal/model"
	"github.com/gin-gonic/gin"
)

// FundRequestHandler 资助请求处理器
type FundRequestHandler struct {
	fundLogic *logic.FundLogic
}

func NewFundRequestHandler(fundLogic *logic.FundLogic) *FundRequestHandler {
	return &FundRequestHandler{fundLogic: fundLogic}
}

// CreateFundRequest 创建资助请求
func (h *FundRequestHandler) CreateFundRequest(c *gin.Context) {
	var body CreateFundRequestRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	req, err := h.fundLogic.CreateFundRequest(c.Request.Context(), body.toInput())
	if err != nil {
		HandleError(c, err)
		return
	}

	view, err := h.fundLogic.GetFundRequest(c.Request.Context(), req.ID)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "fund request created", ToFundRequestResponse(*view))
}

// ListFundRequests 获取资助请求列表
func (h *FundRequestHandler) ListFundRequests(c *gin.Context) {
	status := model.RequestStatus(c.Query("status"))

	views, err := h.fundLogic.ListFundRequests(c.Request.Context(), status)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", ToFundRequestResponseList(views))
}

// GetFundRequest 获取资助请求详情
func (h *FundRequestHandler) GetFundRequest(c *gin.Context) {
	view, err := h.fundLogic.GetFundRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", ToFundRequestResponse(*view))
}

// CancelFundRequest 取消资助请求
func (h *FundRequestHandler) CancelFundRequest(c *gin.Context) {
	req, err := h.fundLogic.CancelFundRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "fund request cancelled", req)
}

// ListRequestDonations 获取请求的捐赠记录
func (h *FundRequestHandler) ListRequestDonations(c *gin.Context) {
	donations, err := h.fundLogic.ListDonations(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", donations)
}

// Donate 捐赠
func (h *FundRequestHandler) Donate(c *gin.Context) {
	var body DonateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	donation, view, err := h.fundLogic.Donate(c.Request.Context(), c.Param("id"), body.toInput())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "donation recorded", DonateResponse{
		Donation:    *donation,
		FundRequest: ToFundRequestResponse(*view),
	})
}
