package roster

import (
	"sort"
	"strings"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/rotation"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/timeofday"
)

// Daytime bounds, inclusive at minute precision. A night worker punching in
// between them is flagged.
var (
	daytimeFrom = timeofday.TimeOfDay{Hour: 6}
	daytimeTo   = timeofday.TimeOfDay{Hour: 18}
)

// IsDaytime reports whether t falls within 06:00 and 18:00 inclusive, ignoring seconds.
func IsDaytime(t timeofday.TimeOfDay) bool {
	return t.Truncate().Between(daytimeFrom, daytimeTo)
}

// Day gathers everything the filter needs about one date.
type Day struct {
	Date         time.Time
	ActiveGroups rotation.ActiveGroups
	// OnLeave holds the IDs of employees with an approved leave covering Date.
	OnLeave map[string]struct{}
	// Arrivals holds the recorded arrival time per employee ID on Date.
	Arrivals map[string]timeofday.TimeOfDay
}

// Criteria narrows a roster by free text and service.
type Criteria struct {
	Search  string
	Service string
}

func (c Criteria) matches(e employee.Employee) bool {
	if c.Service != "" && !strings.EqualFold(e.Service, c.Service) {
		return false
	}
	search := strings.ToLower(strings.TrimSpace(c.Search))
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(e.LastName), search) ||
		strings.Contains(strings.ToLower(e.FirstName), search) ||
		strings.Contains(strings.ToLower(e.FullName()), search)
}

func (d Day) onLeave(e employee.Employee) bool {
	_, ok := d.OnLeave[e.ID]
	return ok
}

func (d Day) inRotation(e employee.Employee) bool {
	if e.Shift != employee.ShiftNight {
		return true
	}
	return e.NightGroup == d.ActiveGroups.For(e.Service)
}

func (d Day) punchedInDaytime(e employee.Employee) bool {
	arrival, ok := d.Arrivals[e.ID]
	return ok && IsDaytime(arrival)
}

// Eligible returns the employees in scope for attendance on d: active, not on
// approved leave, and either not night staff or in the service's active group.
// Off-rotation night staff who already punched in during daytime are kept.
func Eligible(staff []employee.Employee, d Day, c Criteria) []employee.Employee {
	var out []employee.Employee
	for _, e := range staff {
		if !e.Active || !c.matches(e) || d.onLeave(e) {
			continue
		}
		if d.inRotation(e) || (e.Shift == employee.ShiftNight && d.punchedInDaytime(e)) {
			out = append(out, e)
		}
	}
	return out
}

// NotYetClocked returns the in-rotation employees of d with no arrival. A night
// worker whose only punch is in daytime still owes their night shift.
func NotYetClocked(staff []employee.Employee, d Day, c Criteria) []employee.Employee {
	var out []employee.Employee
	for _, e := range staff {
		if !e.Active || !c.matches(e) || d.onLeave(e) || !d.inRotation(e) {
			continue
		}
		if e.Shift == employee.ShiftNight && d.punchedInDaytime(e) {
			continue
		}
		if _, clocked := d.Arrivals[e.ID]; clocked {
			continue
		}
		out = append(out, e)
	}
	return out
}

// DaytimeNightStaff returns active night staff whose arrival on d falls in daytime.
func DaytimeNightStaff(staff []employee.Employee, d Day) []employee.Employee {
	var out []employee.Employee
	for _, e := range staff {
		if e.Active && e.Shift == employee.ShiftNight && d.punchedInDaytime(e) {
			out = append(out, e)
		}
	}
	return out
}

// ByService groups employees by service, services and members sorted by name.
func ByService(staff []employee.Employee) []ServiceRoster {
	index := make(map[string]int)
	var groups []ServiceRoster
	for _, e := range staff {
		i, ok := index[e.Service]
		if !ok {
			i = len(groups)
			index[e.Service] = i
			groups = append(groups, ServiceRoster{Service: e.Service})
		}
		groups[i].Employees = append(groups[i].Employees, e)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Service < groups[j].Service })
	for _, g := range groups {
		sort.SliceStable(g.Employees, func(i, j int) bool {
			a, b := g.Employees[i], g.Employees[j]
			if a.LastName != b.LastName {
				return a.LastName < b.LastName
			}
			return a.FirstName < b.FirstName
		})
	}
	return groups
}

type ServiceRoster struct {
	Service   string
	Employees []employee.Employee
}
