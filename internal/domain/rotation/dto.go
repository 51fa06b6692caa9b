package rotation

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/validator"
)

// HistoryLimit bounds the rotation history listing.
const HistoryLimit = 30

type SetActiveGroupRequest struct {
	Service string `json:"-"`
	Group   string `json:"group" validate:"required,oneof=A B"`
	Date    string `json:"date,omitempty" validate:"omitempty,isodate"`
}

func (r *SetActiveGroupRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Service) {
		errs.Add("service", "service is required")
	}
	if err := validator.Struct(r); err != nil {
		structErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		errs = append(errs, structErrs...)
	}
	r.Service = strings.TrimSpace(r.Service)
	return errs.Err()
}

type ActiveGroupResponse struct {
	Service string `json:"service"`
	Date    string `json:"date"`
	Group   string `json:"group"`
	Source  string `json:"source"`
}

func NewActiveGroupResponse(r Resolution) ActiveGroupResponse {
	return ActiveGroupResponse{
		Service: r.Service,
		Date:    r.Date.Format(time.DateOnly),
		Group:   string(r.Group),
		Source:  string(r.Source),
	}
}

type OverrideResponse struct {
	Date    string `json:"date"`
	Service string `json:"service"`
	Group   string `json:"group"`
}

type NightStaffGroup struct {
	Service   string                      `json:"service"`
	Group     string                      `json:"group"`
	Active    bool                        `json:"active"`
	Employees []employee.EmployeeResponse `json:"employees"`
}
