package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/rotation"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/shift-attendance-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2026, 4, 7, 0, 0, 0, 0, time.UTC)

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func createEmployee(t *testing.T, ctx context.Context, repo employee.EmployeeRepository, last string, shift employee.ShiftType) employee.Employee {
	t.Helper()
	emp, err := repo.Create(ctx, employee.Employee{
		ID:                 newID(),
		LastName:           last,
		FirstName:          "Test",
		Service:            "Radiology",
		Shift:              shift,
		ScheduledArrival:   timeofday.MustParse("08:00"),
		ScheduledDeparture: timeofday.MustParse("17:00"),
		NightGroup:         employee.GroupB,
		NightDays:          []string{"Vendredi"},
		Active:             true,
	})
	require.NoError(t, err)
	return emp
}

func TestEmployeeRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	emp := createEmployee(t, ctx, repo, "Mensah", employee.ShiftMixed)
	assert.Equal(t, []string{"Vendredi"}, emp.NightDays)
	assert.Equal(t, "08:00:00", emp.ScheduledArrival.String())
	assert.Equal(t, employee.GroupB, emp.NightGroup)

	emp.Service = "ICU"
	updated, err := repo.Update(ctx, emp)
	require.NoError(t, err)
	assert.Equal(t, "ICU", updated.Service)

	list, err := repo.List(ctx, employee.EmployeeFilter{Search: "test mens"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, repo.SetActive(ctx, emp.ID, false))
	list, err = repo.List(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, repo.Delete(ctx, emp.ID))
	_, err = repo.GetByID(ctx, emp.ID)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestClockRecordRepository_ArrivalThenDeparture(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	emp := createEmployee(t, ctx, postgresql.NewEmployeeRepository(setup.DB), "Bello", employee.ShiftDay)
	repo := postgresql.NewClockRecordRepository(setup.DB)

	arrival := timeofday.MustParse("08:07")
	late := attendance.ArrivalLate
	reason := "Bus"
	notes := "Badge reader down"
	first, err := repo.UpsertArrival(ctx, attendance.ClockRecord{
		ID: newID(), EmployeeID: emp.ID, Date: day,
		ArrivalTime: &arrival, ArrivalStatus: &late, LateMinutes: 12, LateReason: &reason, Notes: &notes,
	})
	require.NoError(t, err)
	assert.Nil(t, first.DepartureTime)
	require.NotNil(t, first.EmployeeName)
	assert.Equal(t, "Test Bello", *first.EmployeeName)

	departure := timeofday.MustParse("17:00")
	present := attendance.DeparturePresent
	second, err := repo.UpsertDeparture(ctx, attendance.ClockRecord{
		ID: newID(), EmployeeID: emp.ID, Date: day,
		DepartureTime: &departure, DepartureStatus: &present,
	})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, arrival, *second.ArrivalTime)
	assert.Equal(t, late, *second.ArrivalStatus)
	assert.Equal(t, 12, second.LateMinutes)
	assert.Equal(t, reason, *second.LateReason)
	require.NotNil(t, second.Notes)
	assert.Equal(t, notes, *second.Notes)
	assert.Equal(t, departure, *second.DepartureTime)

	arrivals, err := repo.ArrivalsOn(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, arrival, arrivals[emp.ID])

	byDate, err := repo.ListByDate(ctx, day)
	require.NoError(t, err)
	assert.Len(t, byDate, 1)
}

func TestAbsenceRepository_CreateIfAbsent(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	emp := createEmployee(t, ctx, postgresql.NewEmployeeRepository(setup.DB), "Diallo", employee.ShiftDay)
	repo := postgresql.NewAbsenceRepository(setup.DB)

	record := attendance.AbsenceRecord{ID: newID(), EmployeeID: emp.ID, Date: day, Reason: attendance.SweepAbsenceReason}
	created, err := repo.CreateIfAbsent(ctx, record)
	require.NoError(t, err)
	assert.True(t, created)

	record.ID = newID()
	created, err = repo.CreateIfAbsent(ctx, record)
	require.NoError(t, err)
	assert.False(t, created)

	list, err := repo.ListByRange(ctx, day, day)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].HasCertificate)

	require.NoError(t, repo.Justify(ctx, list[0].ID, []byte("%PDF-1.4"), "application/pdf"))
	got, err := repo.GetByID(ctx, list[0].ID)
	require.NoError(t, err)
	assert.True(t, got.Justified)
	assert.True(t, got.HasCertificate)
	assert.Equal(t, []byte("%PDF-1.4"), got.Certificate)
}

func TestLeaveRepositories(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	emp := createEmployee(t, ctx, postgresql.NewEmployeeRepository(setup.DB), "Okafor", employee.ShiftDay)
	requests := postgresql.NewLeaveRequestRepository(setup.DB)
	quotas := postgresql.NewLeaveQuotaRepository(setup.DB)

	request, err := requests.Create(ctx, leave.LeaveRequest{
		ID: newID(), EmployeeID: emp.ID,
		StartDate: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC),
		LeaveType: "Annual", Status: leave.StatusPending,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, request.Days())

	overlap, err := requests.HasActiveOverlap(ctx, emp.ID,
		time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC), time.Date(2026, 5, 8, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, overlap)

	overlap, err = requests.HasActiveOverlap(ctx, emp.ID,
		time.Date(2026, 5, 6, 0, 0, 0, 0, time.UTC), time.Date(2026, 5, 8, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.False(t, overlap)

	require.NoError(t, requests.UpdateStatus(ctx, request.ID, leave.StatusApproved, nil))
	onLeave, err := requests.IsOnApprovedLeave(ctx, emp.ID, time.Date(2026, 5, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, onLeave)

	require.NoError(t, quotas.CreateIfAbsent(ctx, leave.LeaveQuota{ID: newID(), EmployeeID: emp.ID, Allocated: 25, Remaining: 25, Year: 2026}))
	require.NoError(t, quotas.CreateIfAbsent(ctx, leave.LeaveQuota{ID: newID(), EmployeeID: emp.ID, Allocated: 99, Remaining: 99, Year: 2026}))

	err = setup.DB.WithinTransaction(ctx, func(txCtx context.Context) error {
		quota, err := quotas.GetByEmployeeIDForUpdate(txCtx, emp.ID)
		if err != nil {
			return err
		}
		quota.Debit(request.Days())
		return quotas.Update(txCtx, quota)
	})
	require.NoError(t, err)

	quota, err := quotas.GetByEmployeeID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, quota.Allocated)
	assert.Equal(t, 20, quota.Remaining)
}

func TestTransactionRollback(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)
	boom := errors.New("boom")

	var id string
	err := setup.DB.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp := createEmployee(t, txCtx, repo, "Traore", employee.ShiftNight)
		id = emp.ID
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestRotationRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewRotationRepository(setup.DB)

	group, err := repo.GetOverride(ctx, "Radiology", day)
	require.NoError(t, err)
	assert.Nil(t, group)

	require.NoError(t, repo.UpsertOverride(ctx, rotation.Override{ID: newID(), Date: day, Service: "Radiology", Group: employee.GroupB}))
	require.NoError(t, repo.UpsertOverride(ctx, rotation.Override{ID: newID(), Date: day, Service: "Radiology", Group: employee.GroupA}))
	require.NoError(t, repo.UpsertServiceDefault(ctx, "Radiology", employee.GroupB))
	require.NoError(t, repo.UpsertServiceDefault(ctx, "Radiology", employee.GroupA))

	group, err = repo.GetOverride(ctx, "Radiology", day)
	require.NoError(t, err)
	require.NotNil(t, group)
	assert.Equal(t, employee.GroupA, *group)

	defaults, err := repo.ServiceDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]employee.NightGroup{"Radiology": employee.GroupA}, defaults)

	history, err := repo.History(ctx, 30)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
