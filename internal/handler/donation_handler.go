package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/amantech05/Gradlink/internal/fund"
	"github.com/amantech05/Gradlink/internal/logic"
	"github.com/gin-gonic/gin"
)

const (
	maxWindowDays    = 3650
	maxTopDonorLimit = 1000
)

// DonationHandler 捐赠监控处理器
type DonationHandler struct {
	monitorLogic *logic.MonitorLogic
}

func NewDonationHandler(monitorLogic *logic.MonitorLogic) *DonationHandler {
	return &DonationHandler{monitorLogic: monitorLogic}
}

// ListDonations 捐赠列表（搜索、区间、排序）
func (h *DonationHandler) ListDonations(c *gin.Context) {
	filter := fund.DonationFilter{
		Search: c.Query("search"),
		Bucket: fund.ParseBucket(c.Query("bucket")),
	}
	sortBy := fund.ParseSortBy(c.Query("sort"))

	donations, err := h.monitorLogic.Donations(c.Request.Context(), filter, sortBy)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", donations)
}

// Summary 捐赠汇总统计
func (h *DonationHandler) Summary(c *gin.Context) {
	days, ok := boundedQuery(c, "window_days", maxWindowDays)
	if !ok {
		return
	}

	summary, err := h.monitorLogic.Summary(c.Request.Context(), time.Duration(days)*24*time.Hour)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", summary)
}

// TopDonors 捐赠排行
func (h *DonationHandler) TopDonors(c *gin.Context) {
	limit, ok := boundedQuery(c, "limit", maxTopDonorLimit)
	if !ok {
		return
	}

	donors, err := h.monitorLogic.TopDonors(c.Request.Context(), limit)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", donors)
}

// Export 导出 CSV
func (h *DonationHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.monitorLogic.ExportCSV(c.Request.Context(), &buf); err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("donations-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// boundedQuery 读取可选整数参数，取值 [0, upper]，缺省为 0；
// 非法时返回 400 并报告 false
func boundedQuery(c *gin.Context, key string, upper int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > upper {
		ErrorResponse(c, http.StatusBadRequest, fmt.Sprintf("%s must be an integer between 0 and %d", key, upper))
		return 0, false
	}
	return n, true
}
