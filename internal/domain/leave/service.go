package leave

import (
	"context"
	"time"
)

type LeaveService interface {
	// Request
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequestResponse, error)
	ListCurrentLeaves(ctx context.Context, date time.Time) ([]LeaveRequestResponse, error)
	// Quota
	GetLeaveQuota(ctx context.Context, employeeID string) (LeaveQuotaResponse, error)
	SetLeaveAllocation(ctx context.Context, req SetAllocationRequest) (LeaveQuotaResponse, error)
	// EnsureQuota opens the ledger of an employee with the default allocation if missing
	EnsureQuota(ctx context.Context, employeeID string) (LeaveQuota, error)
}
