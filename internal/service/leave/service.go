package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	db             database.Transactor
	employeeRepo   employee.EmployeeRepository
	quotaService   *QuotaService
	requestService *RequestService
}

func NewLeaveService(
	db database.Transactor,
	requestRepo leave.LeaveRequestRepository,
	quotaRepo leave.LeaveQuotaRepository,
	employeeRepo employee.EmployeeRepository,
	defaultAllocation int,
	clk clock.Clock,
) leave.LeaveService {
	quotaService := NewQuotaService(quotaRepo, defaultAllocation, clk)
	return &LeaveServiceImpl{
		db:             db,
		employeeRepo:   employeeRepo,
		quotaService:   quotaService,
		requestService: NewRequestService(requestRepo, employeeRepo, quotaService),
	}
}

// CreateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	var created leave.LeaveRequest
	err := l.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = l.requestService.Create(txCtx, req)
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(created), nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	var approved leave.LeaveRequest
	err := l.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		approved, err = l.requestService.Approve(txCtx, requestID, decidedBy(ctx))
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(approved), nil
}

// RejectLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	var rejected leave.LeaveRequest
	err := l.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		rejected, err = l.requestService.Reject(txCtx, requestID, decidedBy(ctx))
		return err
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	return leave.NewLeaveRequestResponse(rejected), nil
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.requestService.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toResponses(requests), nil
}

// ListCurrentLeaves implements leave.LeaveService.
func (l *LeaveServiceImpl) ListCurrentLeaves(ctx context.Context, date time.Time) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.requestService.ListApprovedCovering(ctx, clock.DateOf(date))
	if err != nil {
		return nil, fmt.Errorf("failed to list current leaves: %w", err)
	}
	return toResponses(requests), nil
}

// GetLeaveQuota implements leave.LeaveService. A missing quota is opened with the default allocation.
func (l *LeaveServiceImpl) GetLeaveQuota(ctx context.Context, employeeID string) (leave.LeaveQuotaResponse, error) {
	var quota leave.LeaveQuota
	err := l.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := l.employeeRepo.GetByID(txCtx, employeeID); err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		var err error
		quota, err = l.quotaService.Ensure(txCtx, employeeID)
		return err
	})
	if err != nil {
		return leave.LeaveQuotaResponse{}, err
	}
	return leave.NewLeaveQuotaResponse(quota), nil
}

// SetLeaveAllocation implements leave.LeaveService.
func (l *LeaveServiceImpl) SetLeaveAllocation(ctx context.Context, req leave.SetAllocationRequest) (leave.LeaveQuotaResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveQuotaResponse{}, err
	}

	var quota leave.LeaveQuota
	err := l.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := l.employeeRepo.GetByID(txCtx, req.EmployeeID); err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		var err error
		quota, err = l.quotaService.SetAllocation(txCtx, req.EmployeeID, req.Allocated)
		return err
	})
	if err != nil {
		return leave.LeaveQuotaResponse{}, err
	}

	return leave.NewLeaveQuotaResponse(quota), nil
}

// EnsureQuota implements leave.LeaveService.
func (l *LeaveServiceImpl) EnsureQuota(ctx context.Context, employeeID string) (leave.LeaveQuota, error) {
	return l.quotaService.Ensure(ctx, employeeID)
}

func decidedBy(ctx context.Context) *string {
	actor, ok := user.ActorFromContext(ctx)
	if !ok || actor.UserID == "" {
		return nil
	}
	return &actor.UserID
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.NewLeaveRequestResponse(r))
	}
	return responses
}
