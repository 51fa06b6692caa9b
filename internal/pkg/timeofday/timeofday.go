package timeofday

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	secondsPerMinute = 60
	secondsPerDay    = 24 * 60 * 60
)

// TimeOfDay is a wall-clock time independent of any date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// Accepted input layouts, tried in order.
var layouts = []string{
	"15:04:05",
	"15:04",
	"15h04",
	"15h04:05",
	"15.04",
	"15.04.05",
}

// FormatError is returned when a textual time matches none of the accepted layouts.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unrecognized time format %q (expected HH:MM[:SS], HHhMM or HH.MM)", e.Input)
}

// New builds a TimeOfDay, rejecting out-of-range components.
func New(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return TimeOfDay{}, &FormatError{Input: fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)}
	}
	return TimeOfDay{Hour: hour, Minute: minute, Second: second}, nil
}

// MustParse is Parse that panics. Intended for constants and tests.
func MustParse(s string) TimeOfDay {
	t, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Parse reads a user supplied time such as "08:30:00", "08h30" or "08.30".
// Surrounding and embedded whitespace is ignored.
func Parse(s string) (TimeOfDay, error) {
	trimmed := strings.TrimSpace(s)
	candidates := []string{trimmed}
	if compact := strings.Join(strings.Fields(trimmed), ""); compact != trimmed {
		candidates = append(candidates, compact)
	}

	for _, candidate := range candidates {
		for _, layout := range layouts {
			t, err := time.Parse(layout, candidate)
			if err == nil {
				return FromTime(t), nil
			}
		}
	}

	return TimeOfDay{}, &FormatError{Input: s}
}

// OrDefault parses stored data and falls back to def when it is corrupt.
// Never use it for values typed in by a user.
func OrDefault(s string, def TimeOfDay) TimeOfDay {
	t, err := Parse(s)
	if err != nil {
		return def
	}
	return t
}

// FromTime drops the date part of t, keeping its wall clock in t's location.
func FromTime(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// Seconds returns the number of seconds since midnight.
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*secondsPerMinute + t.Second
}

// Truncate drops the seconds of t.
func (t TimeOfDay) Truncate() TimeOfDay {
	return TimeOfDay{Hour: t.Hour, Minute: t.Minute}
}

// On anchors t to the calendar day of date in loc.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, t.Second, 0, loc)
}

// Before reports whether t is strictly earlier in the day than u.
func (t TimeOfDay) Before(u TimeOfDay) bool {
	return t.Seconds() < u.Seconds()
}

// Between reports whether from <= t <= to.
func (t TimeOfDay) Between(from, to TimeOfDay) bool {
	s := t.Seconds()
	return s >= from.Seconds() && s <= to.Seconds()
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ScanTime implements pgtype.TimeScanner.
func (t *TimeOfDay) ScanTime(v pgtype.Time) error {
	if !v.Valid {
		return errors.New("cannot scan NULL into TimeOfDay")
	}
	total := int(v.Microseconds / 1_000_000 % secondsPerDay)
	*t = TimeOfDay{
		Hour:   total / 3600,
		Minute: total % 3600 / secondsPerMinute,
		Second: total % secondsPerMinute,
	}
	return nil
}

// TimeValue implements pgtype.TimeValuer.
func (t TimeOfDay) TimeValue() (pgtype.Time, error) {
	return pgtype.Time{Microseconds: int64(t.Seconds()) * 1_000_000, Valid: true}, nil
}
