package clock

import (
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/timeofday"
)

// Clock is the source of "now" for the organization's local time.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type systemClock struct {
	loc *time.Location
}

// New returns a Clock backed by time.Now in loc.
func New(loc *time.Location) Clock {
	if loc == nil {
		loc = time.Local
	}
	return systemClock{loc: loc}
}

func (c systemClock) Now() time.Time {
	return time.Now().In(c.loc)
}

func (c systemClock) Location() *time.Location {
	return c.loc
}

// Fixed is a Clock frozen at a single instant. Used by tests and one-off commands.
type Fixed struct {
	At time.Time
}

func (f Fixed) Now() time.Time {
	return f.At
}

func (f Fixed) Location() *time.Location {
	return f.At.Location()
}

// DateOf returns the civil date of t as midnight UTC, the form DATE columns round-trip as.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current organizational date.
func Today(c Clock) time.Time {
	return DateOf(c.Now())
}

// NowTimeOfDay returns the current organizational wall-clock time.
func NowTimeOfDay(c Clock) timeofday.TimeOfDay {
	return timeofday.FromTime(c.Now())
}

// ParseDate reads a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	return DateOf(t), nil
}
