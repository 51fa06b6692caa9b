package rotation

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/rotation"
)

type inlineTx struct{ calls int }

func (t *inlineTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

type overrideKey struct {
	service string
	date    string
}

type memRotationRepo struct {
	overrides map[overrideKey]rotation.Override
	defaults  map[string]employee.NightGroup
}

func newMemRotationRepo() *memRotationRepo {
	return &memRotationRepo{
		overrides: make(map[overrideKey]rotation.Override),
		defaults:  make(map[string]employee.NightGroup),
	}
}

func (m *memRotationRepo) GetOverride(_ context.Context, service string, date time.Time) (*employee.NightGroup, error) {
	if o, ok := m.overrides[overrideKey{service, date.Format(time.DateOnly)}]; ok {
		g := o.Group
		return &g, nil
	}
	return nil, nil
}

func (m *memRotationRepo) GetServiceDefault(_ context.Context, service string) (*employee.NightGroup, error) {
	if g, ok := m.defaults[service]; ok {
		return &g, nil
	}
	return nil, nil
}

func (m *memRotationRepo) UpsertOverride(_ context.Context, o rotation.Override) error {
	m.overrides[overrideKey{o.Service, o.Date.Format(time.DateOnly)}] = o
	return nil
}

func (m *memRotationRepo) UpsertServiceDefault(_ context.Context, service string, group employee.NightGroup) error {
	m.defaults[service] = group
	return nil
}

func (m *memRotationRepo) OverridesOn(_ context.Context, date time.Time) (map[string]employee.NightGroup, error) {
	out := make(map[string]employee.NightGroup)
	for k, o := range m.overrides {
		if k.date == date.Format(time.DateOnly) {
			out[o.Service] = o.Group
		}
	}
	return out, nil
}

func (m *memRotationRepo) ServiceDefaults(_ context.Context) (map[string]employee.NightGroup, error) {
	out := make(map[string]employee.NightGroup, len(m.defaults))
	for k, v := range m.defaults {
		out[k] = v
	}
	return out, nil
}

func (m *memRotationRepo) History(_ context.Context, limit int) ([]rotation.Override, error) {
	var out []rotation.Override
	for _, o := range m.overrides {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if len(out) > limit {
		out = out[:limit]
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

func (m *memEmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range m.employees {
		if e.Active || filter.IncludeInactive {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *memEmployeeRepo) ListServices(_ context.Context) ([]string, error) { return nil, nil }
