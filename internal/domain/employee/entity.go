package employee

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/timeofday"
)

type Employee struct {
	ID                 string
	LastName           string
	FirstName          string
	Service            string
	Shift              ShiftType
	ScheduledArrival   timeofday.TimeOfDay
	ScheduledDeparture timeofday.TimeOfDay
	NightGroup         NightGroup
	// NightDays lists the weekdays on which a Mixed employee works the night pattern.
	NightDays []string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// WorksNightOn reports whether night rules apply to e on date.
func (e Employee) WorksNightOn(date time.Time) bool {
	switch e.Shift {
	case ShiftNight:
		return true
	case ShiftMixed:
		for _, day := range e.NightDays {
			if wd, ok := ParseWeekday(day); ok && wd == date.Weekday() {
				return true
			}
		}
	}
	return false
}

// ShiftType values are stored verbatim in personnel.poste.
type ShiftType string

const (
	ShiftDay   ShiftType = "Jour"
	ShiftNight ShiftType = "Nuit"
	ShiftMixed ShiftType = "Mixte"
)

func (s ShiftType) Valid() bool {
	return s == ShiftDay || s == ShiftNight || s == ShiftMixed
}

type NightGroup string

const (
	GroupA NightGroup = "A"
	GroupB NightGroup = "B"
)

// DefaultNightGroup is active when nothing else has been recorded for a service.
const DefaultNightGroup = GroupA

func (g NightGroup) Valid() bool {
	return g == GroupA || g == GroupB
}

var weekdayNames = map[string]time.Weekday{
	"lundi":     time.Monday,
	"mardi":     time.Tuesday,
	"mercredi":  time.Wednesday,
	"jeudi":     time.Thursday,
	"vendredi":  time.Friday,
	"samedi":    time.Saturday,
	"dimanche":  time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParseWeekday accepts French or English weekday names, case-insensitively.
func ParseWeekday(name string) (time.Weekday, bool) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	return wd, ok
}

// SplitDays parses the comma separated jours_travail column.
func SplitDays(csv string) []string {
	var days []string
	for _, part := range strings.Split(csv, ",") {
		if part = strings.TrimSpace(part); part != "" {
			days = append(days, part)
		}
	}
	return days
}

// JoinDays is the inverse of SplitDays.
func JoinDays(days []string) string {
	return strings.Join(days, ",")
}
