package attendance

import (
	"context"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/timeofday"
)

// ClockRecordRepository stores one ClockRecord per (employee, date).
type ClockRecordRepository interface {
	GetByID(ctx context.Context, id string) (ClockRecord, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (ClockRecord, error)

	// UpsertArrival writes only the arrival columns, creating the row if needed.
	UpsertArrival(ctx context.Context, record ClockRecord) (ClockRecord, error)

	// UpsertDeparture writes only the departure columns, creating the row if needed.
	UpsertDeparture(ctx context.Context, record ClockRecord) (ClockRecord, error)

	// Update overwrites every mutable column of an existing row.
	Update(ctx context.Context, record ClockRecord) (ClockRecord, error)

	// ArrivalsOn returns the recorded arrival time per employee ID for date.
	ArrivalsOn(ctx context.Context, date time.Time) (map[string]timeofday.TimeOfDay, error)

	ListByDate(ctx context.Context, date time.Time) ([]ClockRecord, error)
	Search(ctx context.Context, filter RecordFilter) ([]ClockRecord, error)
}

// LatenessRepository holds at most one entry per (employee, date).
type LatenessRepository interface {
	Upsert(ctx context.Context, record LatenessRecord) error
	DeleteByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) error
	ListByRange(ctx context.Context, from, to time.Time) ([]LatenessRecord, error)
}

// AbsenceRepository holds at most one absence per (employee, date).
type AbsenceRepository interface {
	// CreateIfAbsent inserts record unless one exists for the same employee and date.
	CreateIfAbsent(ctx context.Context, record AbsenceRecord) (created bool, err error)

	// Upsert inserts record or replaces the reason, justification and certificate of the existing one.
	Upsert(ctx context.Context, record AbsenceRecord) (AbsenceRecord, error)

	GetByID(ctx context.Context, id string) (AbsenceRecord, error)
	Justify(ctx context.Context, id string, certificate []byte, contentType string) error
	ListByRange(ctx context.Context, from, to time.Time) ([]AbsenceRecord, error)
}
