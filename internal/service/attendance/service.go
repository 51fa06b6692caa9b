package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/validator"
	"github.com/cmlabs-hris/shift-attendance-go/internal/service/roster"
	"github.com/google/uuid"
)

// Roster yields the employees in scope for a date.
type Roster interface {
	EligibleEmployees(ctx context.Context, date time.Time, c roster.Criteria) ([]employee.Employee, roster.Day, error)
	PendingEmployees(ctx context.Context, date time.Time, c roster.Criteria) ([]employee.Employee, roster.Day, error)
}

type AttendanceServiceImpl struct {
	db           database.Transactor
	employeeRepo employee.EmployeeRepository
	clockRepo    attendance.ClockRecordRepository
	latenessRepo attendance.LatenessRepository
	absenceRepo  attendance.AbsenceRepository
	leaveRepo    leave.LeaveRequestRepository
	roster       Roster
	clock        clock.Clock
}

func NewAttendanceService(
	db database.Transactor,
	employeeRepo employee.EmployeeRepository,
	clockRepo attendance.ClockRecordRepository,
	latenessRepo attendance.LatenessRepository,
	absenceRepo attendance.AbsenceRepository,
	leaveRepo leave.LeaveRequestRepository,
	roster Roster,
	clk clock.Clock,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		db:           db,
		employeeRepo: employeeRepo,
		clockRepo:    clockRepo,
		latenessRepo: latenessRepo,
		absenceRepo:  absenceRepo,
		leaveRepo:    leaveRepo,
		roster:       roster,
		clock:        clk,
	}
}

// eventDate returns the supplied date, or today when empty.
func (a *AttendanceServiceImpl) eventDate(s string) (time.Time, error) {
	if s == "" {
		return clock.Today(a.clock), nil
	}
	return clock.ParseDate(s)
}

// eventTime returns the supplied time, or now when empty. A supplied value
// that does not parse is an error, never replaced by the current time.
func (a *AttendanceServiceImpl) eventTime(s string) (timeofday.TimeOfDay, error) {
	if s == "" {
		return clock.NowTimeOfDay(a.clock), nil
	}
	return timeofday.Parse(s)
}

// clockable loads the employee and refuses inactive staff and staff on approved leave.
func (a *AttendanceServiceImpl) clockable(ctx context.Context, employeeID string, date time.Time) (employee.Employee, error) {
	emp, err := a.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.Active {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}

	onLeave, err := a.leaveRepo.IsOnApprovedLeave(ctx, emp.ID, date)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to check approved leave: %w", err)
	}
	if onLeave {
		return employee.Employee{}, attendance.ErrEmployeeOnLeave
	}
	return emp, nil
}

// RegisterArrival implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RegisterArrival(ctx context.Context, req attendance.ArrivalRequest) (attendance.ArrivalResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ArrivalResponse{}, err
	}
	date, err := a.eventDate(req.Date)
	if err != nil {
		return attendance.ArrivalResponse{}, err
	}
	actual, err := a.eventTime(req.Time)
	if err != nil {
		return attendance.ArrivalResponse{}, err
	}

	var (
		saved   attendance.ClockRecord
		outcome ArrivalOutcome
		absent  bool
	)
	err = a.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := a.clockable(txCtx, req.EmployeeID, date)
		if err != nil {
			return err
		}

		outcome = EvaluateArrival(emp, date, actual)
		absent = outcome.AutoAbsent || req.MarkAbsent

		status := outcome.Status
		if absent {
			status = attendance.ArrivalAbsent
		}

		saved, err = a.clockRepo.UpsertArrival(txCtx, attendance.ClockRecord{
			ID:            uuid.Must(uuid.NewV7()).String(),
			EmployeeID:    emp.ID,
			Date:          date,
			ArrivalTime:   &actual,
			ArrivalStatus: &status,
			LateMinutes:   outcome.LateMinutes(),
			LateReason:    req.Reason,
			Notes:         req.Notes,
		})
		if err != nil {
			return fmt.Errorf("failed to save arrival: %w", err)
		}

		// A repeated punch replaces the previous one, lateness included.
		if err := a.latenessRepo.DeleteByEmployeeAndDate(txCtx, emp.ID, date); err != nil {
			return fmt.Errorf("failed to clear lateness: %w", err)
		}

		if absent {
			reason := attendance.AutoAbsenceReason(outcome.LateMinutes())
			if !outcome.AutoAbsent {
				reason = attendance.ManualAbsenceReason
				if req.Reason != nil && *req.Reason != "" {
					reason = *req.Reason
				}
			}
			if _, err := a.absenceRepo.CreateIfAbsent(txCtx, attendance.AbsenceRecord{
				ID:         uuid.Must(uuid.NewV7()).String(),
				EmployeeID: emp.ID,
				Date:       date,
				Reason:     reason,
			}); err != nil {
				return fmt.Errorf("failed to record absence: %w", err)
			}
			return nil
		}

		if outcome.RecordsLateness() {
			if err := a.latenessRepo.Upsert(txCtx, attendance.LatenessRecord{
				ID:         uuid.Must(uuid.NewV7()).String(),
				EmployeeID: emp.ID,
				Date:       date,
				Minutes:    outcome.Minutes,
				Reason:     req.Reason,
			}); err != nil {
				return fmt.Errorf("failed to record lateness: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return attendance.ArrivalResponse{}, err
	}

	slog.Info("Arrival registered",
		"employee_id", saved.EmployeeID,
		"date", date.Format(time.DateOnly),
		"time", actual.String(),
		"status", string(*saved.ArrivalStatus),
		"minutes", outcome.Minutes)

	return attendance.ArrivalResponse{
		ClockRecordResponse: attendance.NewClockRecordResponse(saved),
		DeviationMinutes:    outcome.Minutes,
		AutoAbsent:          absent,
	}, nil
}

// departureDate picks the record a clock-out closes. Without an explicit date,
// a night worker leaving in the morning closes the previous day's open record.
func (a *AttendanceServiceImpl) departureDate(ctx context.Context, emp employee.Employee, today time.Time) (time.Time, error) {
	yesterday := today.AddDate(0, 0, -1)
	if !emp.WorksNightOn(yesterday) {
		return today, nil
	}

	current, err := a.clockRepo.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err == nil && current.ArrivalTime != nil {
		return today, nil
	}
	if err != nil && !errors.Is(err, attendance.ErrClockRecordNotFound) {
		return time.Time{}, fmt.Errorf("failed to get clock record: %w", err)
	}

	previous, err := a.clockRepo.GetByEmployeeAndDate(ctx, emp.ID, yesterday)
	if errors.Is(err, attendance.ErrClockRecordNotFound) {
		return today, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to get clock record: %w", err)
	}
	if previous.ArrivalTime != nil && previous.DepartureTime == nil {
		return yesterday, nil
	}
	return today, nil
}

// RegisterDeparture implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RegisterDeparture(ctx context.Context, req attendance.DepartureRequest) (attendance.ClockRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockRecordResponse{}, err
	}
	date, err := a.eventDate(req.Date)
	if err != nil {
		return attendance.ClockRecordResponse{}, err
	}
	actual, err := a.eventTime(req.Time)
	if err != nil {
		return attendance.ClockRecordResponse{}, err
	}

	var saved attendance.ClockRecord
	err = a.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		if req.Date == "" {
			emp, err := a.employeeRepo.GetByID(txCtx, req.EmployeeID)
			if err != nil {
				return fmt.Errorf("failed to get employee: %w", err)
			}
			if date, err = a.departureDate(txCtx, emp, date); err != nil {
				return err
			}
		}

		emp, err := a.clockable(txCtx, req.EmployeeID, date)
		if err != nil {
			return err
		}

		outcome := EvaluateDeparture(emp.ScheduledDeparture, actual)
		saved, err = a.clockRepo.UpsertDeparture(txCtx, attendance.ClockRecord{
			ID:                    uuid.Must(uuid.NewV7()).String(),
			EmployeeID:            emp.ID,
			Date:                  date,
			DepartureTime:         &actual,
			DepartureStatus:       &outcome.Status,
			EarlyDepartureMinutes: outcome.Minutes,
			EarlyDepartureReason:  req.Reason,
			Notes:                 req.Notes,
		})
		if err != nil {
			return fmt.Errorf("failed to save departure: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.ClockRecordResponse{}, err
	}

	slog.Info("Departure registered",
		"employee_id", saved.EmployeeID,
		"date", saved.Date.Format(time.DateOnly),
		"time", actual.String(),
		"status", string(*saved.DepartureStatus))

	return attendance.NewClockRecordResponse(saved), nil
}

// CorrectRecord implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CorrectRecord(ctx context.Context, req attendance.CorrectionRequest) (attendance.ClockRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockRecordResponse{}, err
	}

	var saved attendance.ClockRecord
	err := a.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		record, err := a.clockRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return fmt.Errorf("failed to get clock record: %w", err)
		}
		emp, err := a.employeeRepo.GetByID(txCtx, record.EmployeeID)
		if err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}

		if req.ArrivalTime != nil {
			t, err := timeofday.Parse(*req.ArrivalTime)
			if err != nil {
				return err
			}
			record.ArrivalTime = &t
		}
		if req.DepartureTime != nil {
			t, err := timeofday.Parse(*req.DepartureTime)
			if err != nil {
				return err
			}
			record.DepartureTime = &t
		}
		if req.LateReason != nil {
			record.LateReason = req.LateReason
		}
		if req.EarlyDepartureReason != nil {
			record.EarlyDepartureReason = req.EarlyDepartureReason
		}
		if req.Notes != nil {
			record.Notes = req.Notes
		}

		var outcome ArrivalOutcome
		if record.ArrivalTime != nil {
			outcome = EvaluateArrival(emp, record.Date, *record.ArrivalTime)
			record.ArrivalStatus = &outcome.Status
			record.LateMinutes = outcome.LateMinutes()
		}
		if req.ArrivalStatus != nil {
			status := attendance.ArrivalStatus(*req.ArrivalStatus)
			record.ArrivalStatus = &status
		}
		if record.DepartureTime != nil {
			departure := EvaluateDeparture(emp.ScheduledDeparture, *record.DepartureTime)
			record.DepartureStatus = &departure.Status
			record.EarlyDepartureMinutes = departure.Minutes
		}

		if err := a.reconcileLedgers(txCtx, record, outcome); err != nil {
			return err
		}

		saved, err = a.clockRepo.Update(txCtx, record)
		if err != nil {
			return fmt.Errorf("failed to update clock record: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.ClockRecordResponse{}, err
	}

	slog.Info("Clock record corrected", "record_id", saved.ID, "employee_id", saved.EmployeeID)

	return attendance.NewClockRecordResponse(saved), nil
}

// reconcileLedgers rewrites the lateness entry of a corrected record and adds
// an absence when the record ends up absent.
func (a *AttendanceServiceImpl) reconcileLedgers(ctx context.Context, record attendance.ClockRecord, outcome ArrivalOutcome) error {
	if err := a.latenessRepo.DeleteByEmployeeAndDate(ctx, record.EmployeeID, record.Date); err != nil {
		return fmt.Errorf("failed to clear lateness: %w", err)
	}

	if record.ArrivalStatus != nil && *record.ArrivalStatus == attendance.ArrivalAbsent {
		reason := attendance.AutoAbsenceReason(outcome.LateMinutes())
		if !outcome.AutoAbsent {
			reason = attendance.ManualAbsenceReason
		}
		if _, err := a.absenceRepo.CreateIfAbsent(ctx, attendance.AbsenceRecord{
			ID:         uuid.Must(uuid.NewV7()).String(),
			EmployeeID: record.EmployeeID,
			Date:       record.Date,
			Reason:     reason,
		}); err != nil {
			return fmt.Errorf("failed to record absence: %w", err)
		}
		return nil
	}

	if !outcome.RecordsLateness() || *record.ArrivalStatus != attendance.ArrivalLate {
		return nil
	}
	reason := record.LateReason
	if reason == nil {
		manual := attendance.ManualLatenessReason
		reason = &manual
	}
	if err := a.latenessRepo.Upsert(ctx, attendance.LatenessRecord{
		ID:         uuid.Must(uuid.NewV7()).String(),
		EmployeeID: record.EmployeeID,
		Date:       record.Date,
		Minutes:    outcome.Minutes,
		Reason:     reason,
	}); err != nil {
		return fmt.Errorf("failed to record lateness: %w", err)
	}
	return nil
}

// ListDay implements attendance.AttendanceService. Employees in scope with no
// record yet are listed with the "Not clocked" status.
func (a *AttendanceServiceImpl) ListDay(ctx context.Context, date time.Time) ([]attendance.ClockRecordResponse, error) {
	date = clock.DateOf(date)

	staff, _, err := a.roster.EligibleEmployees(ctx, date, roster.Criteria{})
	if err != nil {
		return nil, err
	}
	records, err := a.clockRepo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list clock records: %w", err)
	}
	byEmployee := make(map[string]attendance.ClockRecord, len(records))
	for _, r := range records {
		byEmployee[r.EmployeeID] = r
	}

	responses := []attendance.ClockRecordResponse{}
	for _, group := range roster.ByService(staff) {
		for _, emp := range group.Employees {
			record, ok := byEmployee[emp.ID]
			if !ok {
				notClocked := attendance.ArrivalNotClocked
				name, service := emp.FullName(), emp.Service
				record = attendance.ClockRecord{
					EmployeeID:    emp.ID,
					Date:          date,
					ArrivalStatus: &notClocked,
					EmployeeName:  &name,
					Service:       &service,
				}
			}
			responses = append(responses, attendance.NewClockRecordResponse(record))
		}
	}
	return responses, nil
}

// SearchRecords implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SearchRecords(ctx context.Context, filter attendance.RecordFilter) ([]attendance.ClockRecordResponse, error) {
	if err := checkRange(filter.From, filter.To); err != nil {
		return nil, err
	}
	if filter.Status != "" && !validator.IsInSlice(filter.Status, attendance.ArrivalStatuses) {
		return nil, validator.ValidationErrors{{Field: "status", Message: "status is not a known status"}}
	}

	records, err := a.clockRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search clock records: %w", err)
	}

	responses := make([]attendance.ClockRecordResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewClockRecordResponse(r))
	}
	return responses, nil
}

// ListLateness implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListLateness(ctx context.Context, from, to time.Time) ([]attendance.LatenessResponse, error) {
	if err := checkRange(&from, &to); err != nil {
		return nil, err
	}

	records, err := a.latenessRepo.ListByRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list lateness: %w", err)
	}

	responses := make([]attendance.LatenessResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewLatenessResponse(r))
	}
	return responses, nil
}

func checkRange(from, to *time.Time) error {
	if from != nil && to != nil && to.Before(*from) {
		return validator.ValidationErrors{{Field: "to", Message: "to must not be before from"}}
	}
	return nil
}
