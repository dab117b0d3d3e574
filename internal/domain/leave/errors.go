package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrInsufficientQuota            = errors.New("insufficient leave quota")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrEmployeeNotFound             = errors.New("employee not found")
)
