package attendance

import (
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/validator"
)

// ArrivalRequest registers a clock-in. Date and Time default to the current local date and time.
type ArrivalRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required"`
	Date       string  `json:"date,omitempty" validate:"omitempty,isodate"`
	Time       string  `json:"time,omitempty" validate:"omitempty,timeofday"`
	Reason     *string `json:"reason,omitempty" validate:"omitempty,max=500"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
	MarkAbsent bool    `json:"mark_absent,omitempty"`
}

func (r *ArrivalRequest) Validate() error {
	return validator.Struct(r)
}

// DepartureRequest registers a clock-out. Date and Time default to the current local date and time.
type DepartureRequest struct {
	EmployeeID string  `json:"employee_id" validate:"required"`
	Date       string  `json:"date,omitempty" validate:"omitempty,isodate"`
	Time       string  `json:"time,omitempty" validate:"omitempty,timeofday"`
	Reason     *string `json:"reason,omitempty" validate:"omitempty,max=500"`
	Notes      *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

func (r *DepartureRequest) Validate() error {
	return validator.Struct(r)
}

// CorrectionRequest edits an existing record. Arrival and departure statuses are
// recomputed from the new times; ArrivalStatus overrides the computed value.
type CorrectionRequest struct {
	ID                   string  `json:"-"`
	ArrivalTime          *string `json:"arrival_time,omitempty" validate:"omitempty,timeofday"`
	DepartureTime        *string `json:"departure_time,omitempty" validate:"omitempty,timeofday"`
	ArrivalStatus        *string `json:"arrival_status,omitempty"`
	LateReason           *string `json:"late_reason,omitempty" validate:"omitempty,max=500"`
	EarlyDepartureReason *string `json:"early_departure_reason,omitempty" validate:"omitempty,max=500"`
	Notes                *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

func (r *CorrectionRequest) Validate() error {
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
	if r.ArrivalStatus != nil && !validator.IsInSlice(*r.ArrivalStatus, ArrivalStatuses) {
		errs.Add("arrival_status", "arrival_status is not a known status")
	}
	return errs.Err()
}

type RecordFilter struct {
	Search  string
	Service string
	From    *time.Time
	To      *time.Time
	Status  string
}

type RecordAbsenceRequest struct {
	EmployeeID  string `json:"employee_id" validate:"required"`
	Date        string `json:"date" validate:"required,isodate"`
	Reason      string `json:"reason" validate:"required,max=500"`
	Justified   bool   `json:"justified"`
	Certificate []byte `json:"-"`
}

func (r *RecordAbsenceRequest) Validate() error {
	return validator.Struct(r)
}

type JustifyAbsenceRequest struct {
	ID          string
	Certificate []byte
}

type ClockRecordResponse struct {
	ID                    string  `json:"id"`
	EmployeeID            string  `json:"employee_id"`
	EmployeeName          *string `json:"employee_name,omitempty"`
	Service               *string `json:"service,omitempty"`
	Date                  string  `json:"date"`
	ArrivalTime           *string `json:"arrival_time"`
	DepartureTime         *string `json:"departure_time"`
	ArrivalStatus         *string `json:"arrival_status"`
	DepartureStatus       *string `json:"departure_status"`
	LateMinutes           int     `json:"late_minutes"`
	EarlyDepartureMinutes int     `json:"early_departure_minutes"`
	LateReason            *string `json:"late_reason,omitempty"`
	EarlyDepartureReason  *string `json:"early_departure_reason,omitempty"`
	Notes                 *string `json:"notes,omitempty"`
}

func NewClockRecordResponse(r ClockRecord) ClockRecordResponse {
	resp := ClockRecordResponse{
		ID:                    r.ID,
		EmployeeID:            r.EmployeeID,
		EmployeeName:          r.EmployeeName,
		Service:               r.Service,
		Date:                  r.Date.Format(time.DateOnly),
		LateMinutes:           r.LateMinutes,
		EarlyDepartureMinutes: r.EarlyDepartureMinutes,
		LateReason:            r.LateReason,
		EarlyDepartureReason:  r.EarlyDepartureReason,
		Notes:                 r.Notes,
	}
	if r.ArrivalTime != nil {
		s := r.ArrivalTime.String()
		resp.ArrivalTime = &s
	}
	if r.DepartureTime != nil {
		s := r.DepartureTime.String()
		resp.DepartureTime = &s
	}
	if r.ArrivalStatus != nil {
		s := string(*r.ArrivalStatus)
		resp.ArrivalStatus = &s
	}
	if r.DepartureStatus != nil {
		s := string(*r.DepartureStatus)
		resp.DepartureStatus = &s
	}
	return resp
}

// ArrivalResponse adds the raw engine outcome to the stored record.
type ArrivalResponse struct {
	ClockRecordResponse
	// DeviationMinutes is negative for early arrivals.
	DeviationMinutes int  `json:"deviation_minutes"`
	AutoAbsent       bool `json:"auto_absent"`
}

type LatenessResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Service      *string `json:"service,omitempty"`
	Date         string  `json:"date"`
	Minutes      int     `json:"minutes"`
	Reason       *string `json:"reason,omitempty"`
}

func NewLatenessResponse(r LatenessRecord) LatenessResponse {
	return LatenessResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Service:      r.Service,
		Date:         r.Date.Format(time.DateOnly),
		Minutes:      r.Minutes,
		Reason:       r.Reason,
	}
}

type AbsenceResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	Service         *string `json:"service,omitempty"`
	Date            string  `json:"date"`
	Reason          string  `json:"reason"`
	Justified       bool    `json:"justified"`
	HasCertificate  bool    `json:"has_certificate"`
	CertificateType *string `json:"certificate_type,omitempty"`
}

func NewAbsenceResponse(r AbsenceRecord) AbsenceResponse {
	return AbsenceResponse{
		ID:              r.ID,
		EmployeeID:      r.EmployeeID,
		EmployeeName:    r.EmployeeName,
		Service:         r.Service,
		Date:            r.Date.Format(time.DateOnly),
		Reason:          r.Reason,
		Justified:       r.Justified,
		HasCertificate:  r.HasCertificate || len(r.Certificate) > 0,
		CertificateType: r.CertificateType,
	}
}

type SweepResponse struct {
	Date        string   `json:"date"`
	Candidates  int      `json:"candidates"`
	Created     int      `json:"created"`
	EmployeeIDs []string `json:"employee_ids"`
}

type RosterFilter struct {
	Search  string
	Service string
}

type RosterEntry struct {
	employee.EmployeeResponse
	ArrivalTime *string `json:"arrival_time,omitempty"`
}

type RosterGroup struct {
	Service   string        `json:"service"`
	Employees []RosterEntry `json:"employees"`
}
