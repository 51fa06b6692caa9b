package leave

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/clock"
	"github.com/google/uuid"
)

// QuotaService keeps the per-employee leave ledger.
type QuotaService struct {
	leave.LeaveQuotaRepository
	defaultAllocation int
	clock             clock.Clock
}

func NewQuotaService(repo leave.LeaveQuotaRepository, defaultAllocation int, clk clock.Clock) *QuotaService {
	return &QuotaService{
		LeaveQuotaRepository: repo,
		defaultAllocation:    defaultAllocation,
		clock:                clk,
	}
}

// Ensure returns the quota of employeeID, opening it with the default allocation if missing.
func (q *QuotaService) Ensure(ctx context.Context, employeeID string) (leave.LeaveQuota, error) {
	quota, err := q.GetByEmployeeID(ctx, employeeID)
	if err == nil {
		return quota, nil
	}
	if !errors.Is(err, leave.ErrLeaveQuotaNotFound) {
		return leave.LeaveQuota{}, fmt.Errorf("failed to get leave quota: %w", err)
	}

	fresh := leave.LeaveQuota{
		ID:         uuid.Must(uuid.NewV7()).String(),
		EmployeeID: employeeID,
		Allocated:  q.defaultAllocation,
		Year:       q.clock.Now().Year(),
	}
	fresh.Recompute()

	// A concurrent request may have opened it first; re-read either way.
	if err := q.CreateIfAbsent(ctx, fresh); err != nil {
		return leave.LeaveQuota{}, fmt.Errorf("failed to create leave quota: %w", err)
	}
	quota, err = q.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return leave.LeaveQuota{}, fmt.Errorf("failed to get leave quota: %w", err)
	}
	return quota, nil
}

// lock opens the quota if needed and locks it for the rest of the transaction.
func (q *QuotaService) lock(ctx context.Context, employeeID string) (leave.LeaveQuota, error) {
	if _, err := q.Ensure(ctx, employeeID); err != nil {
		return leave.LeaveQuota{}, err
	}
	quota, err := q.GetByEmployeeIDForUpdate(ctx, employeeID)
	if err != nil {
		return leave.LeaveQuota{}, fmt.Errorf("failed to lock leave quota: %w", err)
	}
	return quota, nil
}

// Debit adds days to the used balance. Must run inside a transaction.
func (q *QuotaService) Debit(ctx context.Context, employeeID string, days int) (leave.LeaveQuota, error) {
	quota, err := q.lock(ctx, employeeID)
	if err != nil {
		return leave.LeaveQuota{}, err
	}

	quota.Debit(days)
	if err := q.Update(ctx, quota); err != nil {
		return leave.LeaveQuota{}, fmt.Errorf("failed to update leave quota: %w", err)
	}
	return quota, nil
}

// SetAllocation changes the allocated days and recomputes the balance. Must run inside a transaction.
func (q *QuotaService) SetAllocation(ctx context.Context, employeeID string, allocated int) (leave.LeaveQuota, error) {
	quota, err := q.lock(ctx, employeeID)
	if err != nil {
		return leave.LeaveQuota{}, err
	}

	quota.Allocated = allocated
	quota.Recompute()
	if err := q.Update(ctx, quota); err != nil {
		return leave.LeaveQuota{}, fmt.Errorf("failed to update leave quota: %w", err)
	}
	return quota, nil
}
