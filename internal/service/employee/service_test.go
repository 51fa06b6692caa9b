package employee

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/validator"
	leaveservice "github.com/cmlabs-hris/shift-attendance-go/internal/service/leave"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() (employee.EmployeeService, *memEmployeeRepo, *memQuotaRepo) {
	repo := newMemEmployeeRepo()
	quotas := &memQuotaRepo{quotas: make(map[string]leave.LeaveQuota)}
	clk := clock.Fixed{At: time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC)}
	svc := NewEmployeeService(&inlineTx{}, repo, leaveservice.NewQuotaService(quotas, 25, clk))
	return svc, repo, quotas
}

func validCreate() employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		LastName:           " Ndiaye ",
		FirstName:          "Fatou",
		Service:            "Radiology",
		Shift:              string(employee.ShiftMixed),
		ScheduledArrival:   "08h00",
		ScheduledDeparture: "17.00",
		NightDays:          []string{"Vendredi", "saturday"},
	}
}

func TestCreateEmployee(t *testing.T) {
	svc, repo, quotas := newService()

	resp, err := svc.CreateEmployee(context.Background(), validCreate())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Ndiaye", resp.LastName)
	assert.Equal(t, "Fatou Ndiaye", resp.FullName)
	assert.Equal(t, "08:00:00", resp.ScheduledArrival)
	assert.Equal(t, "17:00:00", resp.ScheduledDeparture)
	assert.Equal(t, string(employee.GroupA), resp.NightGroup)
	assert.True(t, resp.Active)
	assert.Len(t, repo.employees, 1)

	quota, ok := quotas.quotas[resp.ID]
	require.True(t, ok)
	assert.Equal(t, 25, quota.Allocated)
	assert.Equal(t, 25, quota.Remaining)
	assert.Equal(t, 2026, quota.Year)
}

func TestCreateEmployee_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *employee.CreateEmployeeRequest)
		field  string
	}{
		{"missing last name", func(r *employee.CreateEmployeeRequest) { r.LastName = "" }, "last_name"},
		{"unknown shift", func(r *employee.CreateEmployeeRequest) { r.Shift = "Evening" }, "shift"},
		{"bad arrival", func(r *employee.CreateEmployeeRequest) { r.ScheduledArrival = "8 o'clock" }, "scheduled_arrival"},
		{"bad group", func(r *employee.CreateEmployeeRequest) { r.NightGroup = "C" }, "night_group"},
		{"bad weekday", func(r *employee.CreateEmployeeRequest) { r.NightDays = []string{"Someday"} }, "night_days"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService()
			req := validCreate()
			tt.mutate(&req)

			_, err := svc.CreateEmployee(context.Background(), req)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Contains(t, verrs.ToMap(), tt.field)
			assert.Empty(t, repo.employees)
		})
	}
}

func TestUpdateEmployee(t *testing.T) {
	svc, _, _ := newService()
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, validCreate())
	require.NoError(t, err)

	shift := string(employee.ShiftNight)
	group := string(employee.GroupB)
	arrival := "20:00"
	resp, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		ID:               created.ID,
		Shift:            &shift,
		NightGroup:       &group,
		ScheduledArrival: &arrival,
	})
	require.NoError(t, err)
	assert.Equal(t, shift, resp.Shift)
	assert.Equal(t, group, resp.NightGroup)
	assert.Equal(t, "20:00:00", resp.ScheduledArrival)
	assert.Equal(t, "Fatou", resp.FirstName)

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: "missing", Shift: &shift})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDeactivateAndDelete(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	created, err := svc.CreateEmployee(ctx, validCreate())
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateEmployee(ctx, created.ID))
	assert.False(t, repo.employees[created.ID].Active)

	active, err := svc.ListEmployees(ctx, employee.EmployeeFilter{})
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.ListEmployees(ctx, employee.EmployeeFilter{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, all, 1)

	services, err := svc.ListServices(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{}, services)

	require.NoError(t, svc.DeleteEmployee(ctx, created.ID))
	assert.Empty(t, repo.employees)

	assert.ErrorIs(t, svc.DeleteEmployee(ctx, created.ID), employee.ErrEmployeeNotFound)
	assert.ErrorIs(t, svc.DeactivateEmployee(ctx, created.ID), employee.ErrEmployeeNotFound)
}
