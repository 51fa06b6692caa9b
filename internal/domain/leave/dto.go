package leave

import (
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required"`
	StartDate  string  `json:"start_date" validate:"required,isodate"`
	EndDate    string  `json:"end_date" validate:"required,isodate"`
	LeaveType  string  `json:"leave_type" validate:"required,max=100"`
	Reason     *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	if err := validator.Struct(r); err != nil {
		return err
	}

	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	if end.Before(start) {
		return validator.ValidationErrors{{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		}}
	}
	return nil
}

type SetAllocationRequest struct {
	EmployeeID string `json:"-"`
	Allocated  int    `json:"allocated" validate:"gte=0"`
}

func (r *SetAllocationRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if r.Allocated < 0 {
		errs.Add("allocated", "allocated must be greater than or equal to 0")
	}
	return errs.Err()
}

type LeaveRequestFilter struct {
	EmployeeID *string
	Status     *LeaveStatus
}

type LeaveRequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Service      *string `json:"service,omitempty"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Days         int     `json:"days"`
	LeaveType    string  `json:"leave_type"`
	Reason       *string `json:"reason,omitempty"`
	Status       string  `json:"status"`
	DecidedBy    *string `json:"decided_by,omitempty"`
}

func NewLeaveRequestResponse(r LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Service:      r.Service,
		StartDate:    r.StartDate.Format(time.DateOnly),
		EndDate:      r.EndDate.Format(time.DateOnly),
		Days:         r.Days(),
		LeaveType:    r.LeaveType,
		Reason:       r.Reason,
		Status:       string(r.Status),
		DecidedBy:    r.DecidedBy,
	}
}

type LeaveQuotaResponse struct {
	EmployeeID string `json:"employee_id"`
	Allocated  int    `json:"allocated"`
	Used       int    `json:"used"`
	Remaining  int    `json:"remaining"`
	Year       int    `json:"year"`
}

func NewLeaveQuotaResponse(q LeaveQuota) LeaveQuotaResponse {
	return LeaveQuotaResponse{
		EmployeeID: q.EmployeeID,
		Allocated:  q.Allocated,
		Used:       q.Used,
		Remaining:  q.Remaining,
		Year:       q.Year,
	}
}
