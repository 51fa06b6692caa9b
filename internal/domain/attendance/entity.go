package attendance

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/timeofday"
)

type ArrivalStatus string

const (
	ArrivalOnTime     ArrivalStatus = "On time"
	ArrivalLate       ArrivalStatus = "Late"
	ArrivalAbsent     ArrivalStatus = "Absent"
	ArrivalEarly      ArrivalStatus = "Early"
	ArrivalNotClocked ArrivalStatus = "Not clocked"
)

var ArrivalStatuses = []string{
	string(ArrivalOnTime),
	string(ArrivalLate),
	string(ArrivalAbsent),
	string(ArrivalEarly),
	string(ArrivalNotClocked),
}

type DepartureStatus string

const (
	DepartureEarly   DepartureStatus = "Early departure"
	DeparturePresent DepartureStatus = "Present"
)

const (
	// LatenessLedgerLimit is the exclusive upper bound, in minutes, for a lateness ledger entry.
	LatenessLedgerLimit = 30

	// AbsenceCutoff is how long after the scheduled arrival an employee who has
	// not clocked in is swept as absent.
	AbsenceCutoff = 30 * time.Minute

	SweepAbsenceReason   = "Unjustified absence (automatic)"
	ManualAbsenceReason  = "Marked absent at clock-in"
	ManualLatenessReason = "Lateness corrected manually"
)

// AutoAbsenceReason is recorded when a late arrival crosses the absence threshold.
func AutoAbsenceReason(lateMinutes int) string {
	return fmt.Sprintf("Automatic absence (%d minutes late)", lateMinutes)
}

// CertificateTypes lists the accepted certificate mime types.
var CertificateTypes = []string{"image/jpeg", "image/png", "application/pdf"}

// ClockRecord is the single attendance row of an employee for a calendar date.
type ClockRecord struct {
	ID                    string
	EmployeeID            string
	Date                  time.Time
	ArrivalTime           *timeofday.TimeOfDay
	DepartureTime         *timeofday.TimeOfDay
	ArrivalStatus         *ArrivalStatus
	DepartureStatus       *DepartureStatus
	LateMinutes           int
	EarlyDepartureMinutes int
	LateReason            *string
	EarlyDepartureReason  *string
	Notes                 *string

	// DTO
	EmployeeName *string
	Service      *string
}

type LatenessRecord struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Minutes    int
	Reason     *string

	// DTO
	EmployeeName *string
	Service      *string
}

type AbsenceRecord struct {
	ID              string
	EmployeeID      string
	Date            time.Time
	Reason          string
	Justified       bool
	Certificate     []byte
	CertificateType *string

	// DTO
	EmployeeName   *string
	Service        *string
	HasCertificate bool
}
