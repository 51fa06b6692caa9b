package response

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/rotation"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/user"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/timeofday"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var formatErr *timeofday.FormatError
	if errors.As(err, &formatErr) {
		ValidationError(w, map[string]string{"time": formatErr.Error()})
		return
	}

	var parseErr *time.ParseError
	if errors.As(err, &parseErr) {
		ValidationError(w, map[string]string{"date": "date must be in YYYY-MM-DD format"})
		return
	}

	switch {
	// Auth
	case errors.Is(err, user.ErrInvalidToken):
		Unauthorized(w, err.Error())
	case errors.Is(err, user.ErrUnknownRole), errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Conflict(w, "Employee is inactive")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrEmployeeOnLeave):
		Conflict(w, "Employee is on approved leave for this date")
	case errors.Is(err, attendance.ErrClockRecordNotFound):
		NotFound(w, "Clock record not found")
	case errors.Is(err, attendance.ErrAbsenceNotFound):
		NotFound(w, "Absence record not found")
	case errors.Is(err, attendance.ErrCertificateNotFound):
		NotFound(w, "No certificate attached to this absence")
	case errors.Is(err, attendance.ErrCertificateRequired),
		errors.Is(err, attendance.ErrUnsupportedCertificateType):
		BadRequest(w, err.Error(), nil)

	// Rotation domain errors
	case errors.Is(err, rotation.ErrInvalidGroup):
		ValidationError(w, map[string]string{"group": err.Error()})
	case errors.Is(err, rotation.ErrServiceRequired):
		ValidationError(w, map[string]string{"service": err.Error()})

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveQuotaNotFound):
		NotFound(w, "Leave quota not found")
	case errors.Is(err, leave.ErrInsufficientQuota):
		BadRequest(w, "Insufficient leave quota", nil)
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Leave request overlaps an existing pending or approved request")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
