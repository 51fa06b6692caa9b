package attendance

import "errors"

// Attendance domain errors
var (
	// Clock errors
	ErrEmployeeOnLeave     = errors.New("employee is on approved leave for this date")
	ErrClockRecordNotFound = errors.New("clock record not found")

	// Absence errors
	ErrAbsenceNotFound            = errors.New("absence record not found")
	ErrCertificateRequired        = errors.New("a certificate file is required")
	ErrCertificateNotFound        = errors.New("no certificate attached to this absence")
	ErrUnsupportedCertificateType = errors.New("certificate must be a JPEG, PNG or PDF file")
)
