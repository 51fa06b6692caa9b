package roster

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/rotation"
)

// GroupResolver resolves the active night group of every service for a date.
type GroupResolver interface {
	ActiveGroups(ctx context.Context, date time.Time) (rotation.ActiveGroups, error)
}

// Service loads the day's inputs and applies the eligibility filter. Nothing is
// cached: leave approvals and rotation changes show up on the next call.
type Service struct {
	employeeRepo employee.EmployeeRepository
	groups       GroupResolver
	leaveRepo    leave.LeaveRequestRepository
	clockRepo    attendance.ClockRecordRepository
}

func NewRosterService(
	employeeRepo employee.EmployeeRepository,
	groups GroupResolver,
	leaveRepo leave.LeaveRequestRepository,
	clockRepo attendance.ClockRecordRepository,
) *Service {
	return &Service{
		employeeRepo: employeeRepo,
		groups:       groups,
		leaveRepo:    leaveRepo,
		clockRepo:    clockRepo,
	}
}

// Load returns the active staff and the filter inputs for date.
func (s *Service) Load(ctx context.Context, date time.Time) ([]employee.Employee, Day, error) {
	staff, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return nil, Day{}, fmt.Errorf("failed to list employees: %w", err)
	}

	groups, err := s.groups.ActiveGroups(ctx, date)
	if err != nil {
		return nil, Day{}, fmt.Errorf("failed to resolve night groups: %w", err)
	}

	leaves, err := s.leaveRepo.ListApprovedCovering(ctx, date)
	if err != nil {
		return nil, Day{}, fmt.Errorf("failed to list approved leaves: %w", err)
	}
	onLeave := make(map[string]struct{}, len(leaves))
	for _, l := range leaves {
		onLeave[l.EmployeeID] = struct{}{}
	}

	arrivals, err := s.clockRepo.ArrivalsOn(ctx, date)
	if err != nil {
		return nil, Day{}, fmt.Errorf("failed to list arrivals: %w", err)
	}

	return staff, Day{
		Date:         date,
		ActiveGroups: groups,
		OnLeave:      onLeave,
		Arrivals:     arrivals,
	}, nil
}

func (s *Service) EligibleEmployees(ctx context.Context, date time.Time, c Criteria) ([]employee.Employee, Day, error) {
	staff, day, err := s.Load(ctx, date)
	if err != nil {
		return nil, Day{}, err
	}
	return Eligible(staff, day, c), day, nil
}

func (s *Service) PendingEmployees(ctx context.Context, date time.Time, c Criteria) ([]employee.Employee, Day, error) {
	staff, day, err := s.Load(ctx, date)
	if err != nil {
		return nil, Day{}, err
	}
	return NotYetClocked(staff, day, c), day, nil
}

// Eligible implements attendance.RosterService.
func (s *Service) Eligible(ctx context.Context, date time.Time, filter attendance.RosterFilter) ([]attendance.RosterGroup, error) {
	staff, day, err := s.EligibleEmployees(ctx, date, Criteria(filter))
	if err != nil {
		return nil, err
	}
	return toGroups(staff, day), nil
}

// NotYetClocked implements attendance.RosterService.
func (s *Service) NotYetClocked(ctx context.Context, date time.Time, filter attendance.RosterFilter) ([]attendance.RosterGroup, error) {
	staff, day, err := s.PendingEmployees(ctx, date, Criteria(filter))
	if err != nil {
		return nil, err
	}
	return toGroups(staff, day), nil
}

// DaytimeNightStaff implements attendance.RosterService.
func (s *Service) DaytimeNightStaff(ctx context.Context, date time.Time) ([]attendance.RosterEntry, error) {
	staff, day, err := s.Load(ctx, date)
	if err != nil {
		return nil, err
	}

	entries := []attendance.RosterEntry{}
	for _, g := range ByService(DaytimeNightStaff(staff, day)) {
		for _, e := range g.Employees {
			entries = append(entries, toEntry(e, day))
		}
	}
	return entries, nil
}

func toGroups(staff []employee.Employee, day Day) []attendance.RosterGroup {
	groups := []attendance.RosterGroup{}
	for _, g := range ByService(staff) {
		group := attendance.RosterGroup{Service: g.Service}
		for _, e := range g.Employees {
			group.Employees = append(group.Employees, toEntry(e, day))
		}
		groups = append(groups, group)
	}
	return groups
}

func toEntry(e employee.Employee, day Day) attendance.RosterEntry {
	entry := attendance.RosterEntry{EmployeeResponse: employee.NewEmployeeResponse(e)}
	if arrival, ok := day.Arrivals[e.ID]; ok {
		s := arrival.String()
		entry.ArrivalTime = &s
	}
	return entry
}
