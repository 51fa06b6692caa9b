package employee

import (
	"context"
	"sort"
	"strings"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/leave"
)

type inlineTx struct{ calls int }

func (t *inlineTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type memEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newMemEmployeeRepo() *memEmployeeRepo {
	return &memEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (m *memEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	m.employees[e.ID] = e
	return e, nil
}

func (m *memEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := m.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (m *memEmployeeRepo) Update(_ context.Context, e employee.Employee) (employee.Employee, error) {
	if _, ok := m.employees[e.ID]; !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	m.employees[e.ID] = e
	return e, nil
}

func (m *memEmployeeRepo) SetActive(_ context.Context, id string, active bool) error {
	e, ok := m.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	e.Active = active
	m.employees[id] = e
	return nil
}

func (m *memEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(m.employees, id)
	return nil
}

func (m *memEmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range m.employees {
		if !e.Active && !filter.IncludeInactive {
			continue
		}
		if filter.Service != "" && !strings.EqualFold(e.Service, filter.Service) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LastName < out[j].LastName })
	return out, nil
}

func (m *memEmployeeRepo) ListServices(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, e := range m.employees {
		if e.Active && !seen[e.Service] {
			seen[e.Service] = true
			out = append(out, e.Service)
		}
	}
	sort.Strings(out)
	return out, nil
}

type memQuotaRepo struct {
	quotas map[string]leave.LeaveQuota
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
	return m.GetByEmployeeID(ctx, employeeID)
}

func (m *memQuotaRepo) Update(_ context.Context, q leave.LeaveQuota) error {
	m.quotas[q.EmployeeID] = q
	return nil
}
