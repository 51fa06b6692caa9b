package attendance

import (
	"context"
	"time"
)

// AttendanceService defines business logic for clock events and absences
type AttendanceService interface {
	// RegisterArrival evaluates and stores a clock-in
	RegisterArrival(ctx context.Context, req ArrivalRequest) (ArrivalResponse, error)

	// RegisterDeparture evaluates and stores a clock-out
	RegisterDeparture(ctx context.Context, req DepartureRequest) (ClockRecordResponse, error)

	// CorrectRecord edits a record and recomputes its statuses
	CorrectRecord(ctx context.Context, req CorrectionRequest) (ClockRecordResponse, error)

	// ListDay returns the records of date for employees in scope that day
	ListDay(ctx context.Context, date time.Time) ([]ClockRecordResponse, error)

	SearchRecords(ctx context.Context, filter RecordFilter) ([]ClockRecordResponse, error)
	ListLateness(ctx context.Context, from, to time.Time) ([]LatenessResponse, error)

	RecordAbsence(ctx context.Context, req RecordAbsenceRequest) (AbsenceResponse, error)
	JustifyAbsence(ctx context.Context, req JustifyAbsenceRequest) (AbsenceResponse, error)
	GetAbsence(ctx context.Context, id string) (AbsenceRecord, error)
	ListAbsences(ctx context.Context, from, to time.Time) ([]AbsenceResponse, error)

	// SweepAbsences marks absent every in-scope employee who never clocked in on date
	SweepAbsences(ctx context.Context, date time.Time) (SweepResponse, error)
}

// RosterService answers who is in scope for attendance on a date
type RosterService interface {
	Eligible(ctx context.Context, date time.Time, filter RosterFilter) ([]RosterGroup, error)
	NotYetClocked(ctx context.Context, date time.Time, filter RosterFilter) ([]RosterGroup, error)
	DaytimeNightStaff(ctx context.Context, date time.Time) ([]RosterEntry, error)
}
