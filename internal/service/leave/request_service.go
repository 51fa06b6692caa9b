package leave

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/clock"
	"github.com/google/uuid"
)

// RequestService drives the leave request lifecycle. Its methods expect to
// run inside a transaction opened by the caller.
type RequestService struct {
	leave.LeaveRequestRepository
	employeeRepo employee.EmployeeRepository
	quotas       *QuotaService
}

func NewRequestService(repo leave.LeaveRequestRepository, employeeRepo employee.EmployeeRepository, quotas *QuotaService) *RequestService {
	return &RequestService{
		LeaveRequestRepository: repo,
		employeeRepo:           employeeRepo,
		quotas:                 quotas,
	}
}

// Create checks the balance, then overlaps, and stores a pending request. The
// employee's quota row stays locked until the transaction ends, so concurrent
// requests of one employee are decided one after the other.
func (r *RequestService) Create(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	emp, err := r.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.Active {
		return leave.LeaveRequest{}, employee.ErrEmployeeInactive
	}

	startDate, err := clock.ParseDate(req.StartDate)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to parse start date: %w", err)
	}
	endDate, err := clock.ParseDate(req.EndDate)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to parse end date: %w", err)
	}

	quota, err := r.quotas.lock(ctx, emp.ID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if leave.DaysBetween(startDate, endDate) > quota.Remaining {
		return leave.LeaveRequest{}, leave.ErrInsufficientQuota
	}

	overlap, err := r.HasActiveOverlap(ctx, emp.ID, startDate, endDate)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to check overlapping leave: %w", err)
	}
	if overlap {
		return leave.LeaveRequest{}, leave.ErrOverlappingLeave
	}

	created, err := r.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		ID:         uuid.Must(uuid.NewV7()).String(),
		EmployeeID: emp.ID,
		StartDate:  startDate,
		EndDate:    endDate,
		LeaveType:  strings.TrimSpace(req.LeaveType),
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return created, nil
}

// Approve debits the ledger by the request's day count and marks it approved.
func (r *RequestService) Approve(ctx context.Context, requestID string, decidedBy *string) (leave.LeaveRequest, error) {
	request, err := r.GetByIDForUpdate(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	if request.Status != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	quota, err := r.quotas.Debit(ctx, request.EmployeeID, request.Days())
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if err := r.UpdateStatus(ctx, request.ID, leave.StatusApproved, decidedBy); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	request.Status = leave.StatusApproved
	request.DecidedBy = decidedBy

	slog.Info("Leave request approved",
		"request_id", request.ID,
		"employee_id", request.EmployeeID,
		"days", request.Days(),
		"remaining", quota.Remaining)

	return request, nil
}

// Reject closes a pending request without touching the ledger.
func (r *RequestService) Reject(ctx context.Context, requestID string, decidedBy *string) (leave.LeaveRequest, error) {
	request, err := r.GetByIDForUpdate(ctx, requestID)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	if request.Status != leave.StatusPending {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	if err := r.UpdateStatus(ctx, request.ID, leave.StatusRejected, decidedBy); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to update leave request: %w", err)
	}
	request.Status = leave.StatusRejected
	request.DecidedBy = decidedBy

	slog.Info("Leave request rejected", "request_id", request.ID, "employee_id", request.EmployeeID)

	return request, nil
}
