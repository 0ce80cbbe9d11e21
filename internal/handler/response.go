package handler

import (
	"errors"
	"net/http"

	"github.com/amantech05/Gradlink/internal/fund"
	"github.com/amantech05/Gradlink/internal/logger"
	"github.com/amantech05/Gradlink/internal/logic"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// errorStatus 业务错误映射为 HTTP 状态码
func errorStatus(err error) int {
	var verr *logic.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, fund.ErrInvalidAmount),
		errors.Is(err, fund.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, fund.ErrUnknownRequest):
		return http.StatusNotFound
	case errors.Is(err, fund.ErrRequestCancelled),
		errors.Is(err, fund.ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// HandleError 按映射的状态码返回错误，500 只记录日志不返回详情
func HandleError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		ErrorResponse(c, status, "internal server error")
		return
	}
	ErrorResponse(c, status, err.Error())
}
