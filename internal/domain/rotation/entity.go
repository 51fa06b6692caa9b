package rotation

import (
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
)

// Override pins the active night group of a service on one date.
type Override struct {
	ID      string
	Date    time.Time
	Service string
	Group   employee.NightGroup
}

// Source tells where a resolved group came from.
type Source string

const (
	SourceOverride Source = "override"
	SourceDefault  Source = "service_default"
	SourceSystem   Source = "system"
)

// Resolution is the active group of a service on a date.
type Resolution struct {
	Service string
	Date    time.Time
	Group   employee.NightGroup
	Source  Source
}

// Resolve applies the precedence date override, then service default, then group A.
func Resolve(service string, date time.Time, override, serviceDefault *employee.NightGroup) Resolution {
	res := Resolution{Service: service, Date: date, Group: employee.DefaultNightGroup, Source: SourceSystem}
	switch {
	case override != nil:
		res.Group, res.Source = *override, SourceOverride
	case serviceDefault != nil:
		res.Group, res.Source = *serviceDefault, SourceDefault
	}
	return res
}

// ActiveGroups maps a service name to its active group for one date.
// Services missing from the map run the default group.
type ActiveGroups map[string]employee.NightGroup

func (a ActiveGroups) For(service string) employee.NightGroup {
	if g, ok := a[service]; ok {
		return g
	}
	return employee.DefaultNightGroup
}
