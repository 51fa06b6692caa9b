package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/rotation"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/timeofday"
)

type inlineTx struct{ calls int }

func (t *inlineTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.calls++
	return fn(ctx)
}

func dayKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format(time.DateOnly)
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

type memClockRepo struct {
	records map[string]attendance.ClockRecord
	writes  int
}

func newMemClockRepo() *memClockRepo {
	return &memClockRepo{records: make(map[string]attendance.ClockRecord)}
}

func (m *memClockRepo) GetByID(_ context.Context, id string) (attendance.ClockRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.ClockRecord{}, attendance.ErrClockRecordNotFound
}

func (m *memClockRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.ClockRecord, error) {
	r, ok := m.records[dayKey(employeeID, date)]
	if !ok {
		return attendance.ClockRecord{}, attendance.ErrClockRecordNotFound
	}
	return r, nil
}

func (m *memClockRepo) UpsertArrival(_ context.Context, r attendance.ClockRecord) (attendance.ClockRecord, error) {
	m.writes++
	key := dayKey(r.EmployeeID, r.Date)
	existing, ok := m.records[key]
	if !ok {
		m.records[key] = r
		return r, nil
	}
	existing.ArrivalTime = r.ArrivalTime
	existing.ArrivalStatus = r.ArrivalStatus
	existing.LateMinutes = r.LateMinutes
	existing.LateReason = coalesce(r.LateReason, existing.LateReason)
	existing.Notes = coalesce(r.Notes, existing.Notes)
	m.records[key] = existing
	return existing, nil
}

func (m *memClockRepo) UpsertDeparture(_ context.Context, r attendance.ClockRecord) (attendance.ClockRecord, error) {
	m.writes++
	key := dayKey(r.EmployeeID, r.Date)
	existing, ok := m.records[key]
	if !ok {
		m.records[key] = r
		return r, nil
	}
	existing.DepartureTime = r.DepartureTime
	existing.DepartureStatus = r.DepartureStatus
	existing.EarlyDepartureMinutes = r.EarlyDepartureMinutes
	existing.EarlyDepartureReason = coalesce(r.EarlyDepartureReason, existing.EarlyDepartureReason)
	existing.Notes = coalesce(r.Notes, existing.Notes)
	m.records[key] = existing
	return existing, nil
}

func coalesce(v, fallback *string) *string {
	if v != nil {
		return v
	}
	return fallback
}

func (m *memClockRepo) Update(_ context.Context, r attendance.ClockRecord) (attendance.ClockRecord, error) {
	m.writes++
	m.records[dayKey(r.EmployeeID, r.Date)] = r
	return r, nil
}

func (m *memClockRepo) ArrivalsOn(_ context.Context, date time.Time) (map[string]timeofday.TimeOfDay, error) {
	out := make(map[string]timeofday.TimeOfDay)
	for _, r := range m.records {
		if r.Date.Equal(date) && r.ArrivalTime != nil {
			out[r.EmployeeID] = *r.ArrivalTime
		}
	}
	return out, nil
}

func (m *memClockRepo) ListByDate(_ context.Context, date time.Time) ([]attendance.ClockRecord, error) {
	var out []attendance.ClockRecord
	for _, r := range m.records {
		if r.Date.Equal(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memClockRepo) Search(_ context.Context, filter attendance.RecordFilter) ([]attendance.ClockRecord, error) {
	var out []attendance.ClockRecord
	for _, r := range m.records {
		if filter.Status != "" && (r.ArrivalStatus == nil || string(*r.ArrivalStatus) != filter.Status) {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type memLatenessRepo struct {
	records map[string]attendance.LatenessRecord
}

func newMemLatenessRepo() *memLatenessRepo {
	return &memLatenessRepo{records: make(map[string]attendance.LatenessRecord)}
}

func (m *memLatenessRepo) Upsert(_ context.Context, r attendance.LatenessRecord) error {
	m.records[dayKey(r.EmployeeID, r.Date)] = r
	return nil
}

func (m *memLatenessRepo) DeleteByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) error {
	delete(m.records, dayKey(employeeID, date))
	return nil
}

func (m *memLatenessRepo) ListByRange(_ context.Context, from, to time.Time) ([]attendance.LatenessRecord, error) {
	var out []attendance.LatenessRecord
	for _, r := range m.records {
		if !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

type memAbsenceRepo struct {
	records map[string]attendance.AbsenceRecord
}

func newMemAbsenceRepo() *memAbsenceRepo {
	return &memAbsenceRepo{records: make(map[string]attendance.AbsenceRecord)}
}

func (m *memAbsenceRepo) CreateIfAbsent(_ context.Context, r attendance.AbsenceRecord) (bool, error) {
	key := dayKey(r.EmployeeID, r.Date)
	if _, ok := m.records[key]; ok {
		return false, nil
	}
	m.records[key] = r
	return true, nil
}

func (m *memAbsenceRepo) Upsert(_ context.Context, r attendance.AbsenceRecord) (attendance.AbsenceRecord, error) {
	key := dayKey(r.EmployeeID, r.Date)
	if existing, ok := m.records[key]; ok {
		r.ID = existing.ID
	}
	m.records[key] = r
	return r, nil
}

func (m *memAbsenceRepo) GetByID(_ context.Context, id string) (attendance.AbsenceRecord, error) {
	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return attendance.AbsenceRecord{}, attendance.ErrAbsenceNotFound
}

func (m *memAbsenceRepo) Justify(_ context.Context, id string, certificate []byte, contentType string) error {
	for k, r := range m.records {
		if r.ID == id {
			r.Justified = true
			r.Certificate = certificate
			r.CertificateType = &contentType
			m.records[k] = r
			return nil
		}
	}
	return attendance.ErrAbsenceNotFound
}

func (m *memAbsenceRepo) ListByRange(_ context.Context, from, to time.Time) ([]attendance.AbsenceRecord, error) {
	var out []attendance.AbsenceRecord
	for _, r := range m.records {
		if !r.Date.Before(from) && !r.Date.After(to) {
			out = append(out, r)
		}
	}
	return out, nil
}

// approvedLeaves implements the read side of leave.LeaveRequestRepository.
type approvedLeaves struct {
	leave.LeaveRequestRepository
	requests []leave.LeaveRequest
}

func (m *approvedLeaves) IsOnApprovedLeave(_ context.Context, employeeID string, date time.Time) (bool, error) {
	for _, r := range m.requests {
		if r.EmployeeID == employeeID && r.Status == leave.StatusApproved && r.Covers(date) {
			return true, nil
		}
	}
	return false, nil
}

func (m *approvedLeaves) ListApprovedCovering(_ context.Context, date time.Time) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, r := range m.requests {
		if r.Status == leave.StatusApproved && r.Covers(date) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fixedGroups rotation.ActiveGroups

func (g fixedGroups) ActiveGroups(_ context.Context, _ time.Time) (rotation.ActiveGroups, error) {
	return rotation.ActiveGroups(g), nil
}
