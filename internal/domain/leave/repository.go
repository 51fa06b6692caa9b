package leave

import (
	"context"
	"time"
)

// LeaveQuotaRepository - interface for quotas_conges table
type LeaveQuotaRepository interface {
	// CreateIfAbsent inserts quota unless the employee already has one.
	CreateIfAbsent(ctx context.Context, quota LeaveQuota) error
	GetByEmployeeID(ctx context.Context, employeeID string) (LeaveQuota, error)
	// GetByEmployeeIDForUpdate locks the row until the surrounding transaction ends.
	GetByEmployeeIDForUpdate(ctx context.Context, employeeID string) (LeaveQuota, error)
	Update(ctx context.Context, quota LeaveQuota) error
}

// LeaveRequestRepository - interface for conges table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetByIDForUpdate locks the row until the surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	UpdateStatus(ctx context.Context, id string, status LeaveStatus, decidedBy *string) error

	// HasActiveOverlap reports whether a pending or approved request of the employee intersects [start, end].
	HasActiveOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// IsOnApprovedLeave reports whether an approved request of the employee covers date.
	IsOnApprovedLeave(ctx context.Context, employeeID string, date time.Time) (bool, error)

	// ListApprovedCovering returns approved requests covering date.
	ListApprovedCovering(ctx context.Context, date time.Time) ([]LeaveRequest, error)

	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, error)
}
