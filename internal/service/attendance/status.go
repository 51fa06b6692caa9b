package attendance

import (
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/timeofday"
)

// Day shift windows, relative to the scheduled arrival.
const (
	dayOnTimeFrom = -15 * time.Minute
	dayGraceUntil = -5 * time.Minute
	dayAbsentFrom = 30 * time.Minute
)

// Night shift windows, relative to the scheduled arrival.
const (
	nightOnTimeFrom  = -30 * time.Minute
	nightOnTimeUntil = 60 * time.Minute
)

// Departures more than this before schedule are early.
const departureTolerance = 5 * time.Minute

// ArrivalOutcome is the verdict of the engine for a clock-in.
type ArrivalOutcome struct {
	Status attendance.ArrivalStatus
	// Minutes is late minutes, or a negative count for early day-shift arrivals.
	Minutes    int
	AutoAbsent bool
}

// LateMinutes is the non-negative lateness stored on the clock record.
func (o ArrivalOutcome) LateMinutes() int {
	if o.Minutes < 0 {
		return 0
	}
	return o.Minutes
}

// RecordsLateness reports whether the outcome belongs in the lateness ledger.
func (o ArrivalOutcome) RecordsLateness() bool {
	return o.Minutes > 0 && o.Minutes < attendance.LatenessLedgerLimit
}

// DepartureOutcome is a classified clock-out. Minutes counts an early leave.
type DepartureOutcome struct {
	Status  attendance.DepartureStatus
	Minutes int
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}

// EvaluateDayArrival applies the day shift windows:
// [T-15, T-5] on time, (T-5, T+30) late from T-5, >= T+30 absent, < T-15 early.
func EvaluateDayArrival(scheduled, actual timeofday.TimeOfDay) ArrivalOutcome {
	t, a := scheduled.Seconds(), actual.Seconds()
	onTimeFrom := t + seconds(dayOnTimeFrom)
	graceUntil := t + seconds(dayGraceUntil)
	absentFrom := t + seconds(dayAbsentFrom)

	switch {
	case a >= onTimeFrom && a <= graceUntil:
		return ArrivalOutcome{Status: attendance.ArrivalOnTime}
	case a > graceUntil && a < absentFrom:
		return ArrivalOutcome{Status: attendance.ArrivalLate, Minutes: (a - graceUntil) / 60}
	case a >= absentFrom:
		return ArrivalOutcome{Status: attendance.ArrivalAbsent, Minutes: seconds(dayAbsentFrom) / 60, AutoAbsent: true}
	case a < onTimeFrom:
		return ArrivalOutcome{Status: attendance.ArrivalEarly, Minutes: -((onTimeFrom - a) / 60)}
	}
	return ArrivalOutcome{Status: attendance.ArrivalNotClocked}
}

// EvaluateNightArrival applies the night shift windows:
// [T-30, T+60] on time, > T+60 late from T+60, < T-30 early without magnitude.
func EvaluateNightArrival(scheduled, actual timeofday.TimeOfDay) ArrivalOutcome {
	t, a := scheduled.Seconds(), actual.Seconds()
	onTimeFrom := t + seconds(nightOnTimeFrom)
	onTimeUntil := t + seconds(nightOnTimeUntil)

	switch {
	case a > onTimeUntil:
		return ArrivalOutcome{Status: attendance.ArrivalLate, Minutes: (a - onTimeUntil) / 60}
	case a < onTimeFrom:
		return ArrivalOutcome{Status: attendance.ArrivalEarly}
	}
	return ArrivalOutcome{Status: attendance.ArrivalOnTime}
}

// EvaluateDeparture compares both times as the same calendar day, even for overnight shifts.
func EvaluateDeparture(scheduled, actual timeofday.TimeOfDay) DepartureOutcome {
	delta := scheduled.Seconds() - actual.Seconds()
	if delta > seconds(departureTolerance) {
		return DepartureOutcome{Status: attendance.DepartureEarly, Minutes: delta / 60}
	}
	return DepartureOutcome{Status: attendance.DeparturePresent}
}

// EvaluateArrival picks night rules for night staff and for mixed staff on
// their night weekdays, day rules otherwise.
func EvaluateArrival(emp employee.Employee, date time.Time, actual timeofday.TimeOfDay) ArrivalOutcome {
	if emp.WorksNightOn(date) {
		return EvaluateNightArrival(emp.ScheduledArrival, actual)
	}
	return EvaluateDayArrival(emp.ScheduledArrival, actual)
}
