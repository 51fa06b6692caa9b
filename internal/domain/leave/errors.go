package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("Leave request not found")
	ErrLeaveQuotaNotFound           = errors.New("Leave quota not found")
	ErrInsufficientQuota            = errors.New("Insufficient leave quota")
	ErrOverlappingLeave             = errors.New("Leave request overlaps an existing pending or approved request")
	ErrLeaveRequestAlreadyProcessed = errors.New("Leave request already processed")
)
