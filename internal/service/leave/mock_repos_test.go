package leave

import (
	"context"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/leave"
)

type inlineTx struct{ calls int }

func (t *inlineTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type memQuotaRepo struct {
	quotas map[string]leave.LeaveQuota
	locks  int
}

func newMemQuotaRepo() *memQuotaRepo {
	return &memQuotaRepo{quotas: make(map[string]leave.LeaveQuota)}
}

func (m *memQuotaRepo) CreateIfAbsent(_ context.Context, q leave.LeaveQuota) error {
	if _, ok := m.quotas[q.EmployeeID]; !ok {
		m.quotas[q.EmployeeID] = q
	}
	return nil
}

func (m *memQuotaRepo) GetByEmployeeID(_ context.Context, employeeID string) (leave.LeaveQuota, error) {
	q, ok := m.quotas[employeeID]
	if !ok {
		return leave.LeaveQuota{}, leave.ErrLeaveQuotaNotFound
	}
	return q, nil
}

func (m *memQuotaRepo) GetByEmployeeIDForUpdate(ctx context.Context, employeeID string) (leave.LeaveQuota, error) {
	m.locks++
	return m.GetByEmployeeID(ctx, employeeID)
}

func (m *memQuotaRepo) Update(_ context.Context, q leave.LeaveQuota) error {
	if _, ok := m.quotas[q.EmployeeID]; !ok {
		return leave.ErrLeaveQuotaNotFound
	}
	m.quotas[q.EmployeeID] = q
	return nil
}

type memRequestRepo struct {
	requests []leave.LeaveRequest
	// onOverlapCheck runs before HasActiveOverlap answers.
	onOverlapCheck func()
}

func (m *memRequestRepo) Create(_ context.Context, r leave.LeaveRequest) (leave.LeaveRequest, error) {
	m.requests = append(m.requests, r)
	return r, nil
}

func (m *memRequestRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	for _, r := range m.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (m *memRequestRepo) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return m.GetByID(ctx, id)
}

func (m *memRequestRepo) UpdateStatus(_ context.Context, id string, status leave.LeaveStatus, decidedBy *string) error {
	for i := range m.requests {
		if m.requests[i].ID == id {
			m.requests[i].Status = status
			m.requests[i].DecidedBy = decidedBy
			return nil
		}
	}
	return leave.ErrLeaveRequestNotFound
}

func (m *memRequestRepo) HasActiveOverlap(_ context.Context, employeeID string, start, end time.Time) (bool, error) {
	if m.onOverlapCheck != nil {
		m.onOverlapCheck()
	}
	for _, r := range m.requests {
		if r.EmployeeID == employeeID && r.Status.IsActive() && r.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRequestRepo) IsOnApprovedLeave(_ context.Context, employeeID string, date time.Time) (bool, error) {
	for _, r := range m.requests {
		if r.EmployeeID == employeeID && r.Status == leave.StatusApproved && r.Covers(date) {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRequestRepo) ListApprovedCovering(_ context.Context, date time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range m.requests {
		if r.Status == leave.StatusApproved && r.Covers(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memRequestRepo) List(_ context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range m.requests {
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type memEmployeeRepo struct {
	employees []employee.Employee
}

func (m *memEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	m.employees = append(m.employees, e)
	return e, nil
}

func (m *memEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	for _, e := range m.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (m *memEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (m *memEmployeeRepo) SetActive(_ context.Context, _ string, _ bool) error { return nil }

func (m *memEmployeeRepo) Delete(_ context.Context, _ string) error { return nil }

func (m *memEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, error) {
	return m.employees, nil
}

func (m *memEmployeeRepo) ListServices(_ context.Context) ([]string, error) { return nil, nil }
