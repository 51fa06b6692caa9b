package employee

import (
	"strings"

	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	LastName           string   `json:"last_name" validate:"required,max=100"`
	FirstName          string   `json:"first_name" validate:"required,max=100"`
	Service            string   `json:"service" validate:"required,max=100"`
	Shift              string   `json:"shift" validate:"required,oneof=Jour Nuit Mixte"`
	ScheduledArrival   string   `json:"scheduled_arrival" validate:"required,timeofday"`
	ScheduledDeparture string   `json:"scheduled_departure" validate:"required,timeofday"`
	NightGroup         string   `json:"night_group" validate:"omitempty,oneof=A B"`
	NightDays          []string `json:"night_days,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	var errs validator.ValidationErrors
	validateNightDays(&errs, r.NightDays)
	return errs.Err()
}

// ToEntity converts a validated request into an Employee.
func (r *CreateEmployeeRequest) ToEntity() Employee {
	group := NightGroup(r.NightGroup)
	if group == "" {
		group = DefaultNightGroup
	}
	return Employee{
		LastName:           strings.TrimSpace(r.LastName),
		FirstName:          strings.TrimSpace(r.FirstName),
		Service:            strings.TrimSpace(r.Service),
		Shift:              ShiftType(r.Shift),
		ScheduledArrival:   timeofday.MustParse(r.ScheduledArrival),
		ScheduledDeparture: timeofday.MustParse(r.ScheduledDeparture),
		NightGroup:         group,
		NightDays:          r.NightDays,
		Active:             true,
	}
}

type UpdateEmployeeRequest struct {
	ID                 string    `json:"-"`
	LastName           *string   `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	FirstName          *string   `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	Service            *string   `json:"service,omitempty" validate:"omitempty,min=1,max=100"`
	Shift              *string   `json:"shift,omitempty" validate:"omitempty,oneof=Jour Nuit Mixte"`
	ScheduledArrival   *string   `json:"scheduled_arrival,omitempty" validate:"omitempty,timeofday"`
	ScheduledDeparture *string   `json:"scheduled_departure,omitempty" validate:"omitempty,timeofday"`
	NightGroup         *string   `json:"night_group,omitempty" validate:"omitempty,oneof=A B"`
	NightDays          *[]string `json:"night_days,omitempty"`
	Active             *bool     `json:"active,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if err := validator.Struct(r); err != nil {
		structErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, structErrs...)
	}
	if r.NightDays != nil {
		validateNightDays(&errs, *r.NightDays)
	}
	return errs.Err()
}

// Apply copies the fields set on r onto e.
func (r *UpdateEmployeeRequest) Apply(e *Employee) {
	if r.LastName != nil {
		e.LastName = strings.TrimSpace(*r.LastName)
	}
	if r.FirstName != nil {
		e.FirstName = strings.TrimSpace(*r.FirstName)
	}
	if r.Service != nil {
		e.Service = strings.TrimSpace(*r.Service)
	}
	if r.Shift != nil {
		e.Shift = ShiftType(*r.Shift)
	}
	if r.ScheduledArrival != nil {
		e.ScheduledArrival = timeofday.MustParse(*r.ScheduledArrival)
	}
	if r.ScheduledDeparture != nil {
		e.ScheduledDeparture = timeofday.MustParse(*r.ScheduledDeparture)
	}
	if r.NightGroup != nil {
		e.NightGroup = NightGroup(*r.NightGroup)
	}
	if r.NightDays != nil {
		e.NightDays = *r.NightDays
	}
	if r.Active != nil {
		e.Active = *r.Active
	}
}

func validateNightDays(errs *validator.ValidationErrors, days []string) {
	for _, day := range days {
		if _, ok := ParseWeekday(day); !ok {
			errs.Add("night_days", "unknown weekday: "+day)
			return
		}
	}
}

type EmployeeFilter struct {
	Search          string
	Service         string
	IncludeInactive bool
}

type EmployeeResponse struct {
	ID                 string   `json:"id"`
	LastName           string   `json:"last_name"`
	FirstName          string   `json:"first_name"`
	FullName           string   `json:"full_name"`
	Service            string   `json:"service"`
	Shift              string   `json:"shift"`
	ScheduledArrival   string   `json:"scheduled_arrival"`
	ScheduledDeparture string   `json:"scheduled_departure"`
	NightGroup         string   `json:"night_group"`
	NightDays          []string `json:"night_days"`
	Active             bool     `json:"active"`
}

func NewEmployeeResponse(e Employee) EmployeeResponse {
	days := e.NightDays
	if days == nil {
		days = []string{}
	}
	return EmployeeResponse{
		ID:                 e.ID,
		LastName:           e.LastName,
		FirstName:          e.FirstName,
		FullName:           e.FullName(),
		Service:            e.Service,
		Shift:              string(e.Shift),
		ScheduledArrival:   e.ScheduledArrival.String(),
		ScheduledDeparture: e.ScheduledDeparture.String(),
		NightGroup:         string(e.NightGroup),
		NightDays:          days,
		Active:             e.Active,
	}
}
