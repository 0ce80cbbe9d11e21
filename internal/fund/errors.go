package fund

import "errors"

var (
	// ErrInvalidAmount 金额非正、非数字、超过两位小数或超出范围
	ErrInvalidAmount = errors.New("amount must be a positive number with at most 2 decimal places and below 1000000000000")
	// ErrInvalidRequest 目标金额非正
	ErrInvalidRequest = errors.New("required amount must be positive")
	// ErrUnknownRequest 请求不存在
	ErrUnknownRequest = errors.New("unknown fund request")
	// ErrRequestCancelled 请求已取消，不再接受捐赠
	ErrRequestCancelled = errors.New("fund request is cancelled")
	// ErrInvalidTransition 不允许的状态变更
	ErrInvalidTransition = errors.New("invalid status transition")
)
