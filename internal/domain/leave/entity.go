package leave

import (
	"time"
)

// LeaveStatus values are stored verbatim in conges.statut.
type LeaveStatus string

const (
	StatusPending  LeaveStatus = "En attente"
	StatusApproved LeaveStatus = "Approuvé"
	StatusRejected LeaveStatus = "Rejeté"
)

func (s LeaveStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// IsActive reports whether a request in this status blocks overlapping requests.
func (s LeaveStatus) IsActive() bool {
	return s == StatusPending || s == StatusApproved
}

type LeaveRequest struct {
	ID         string
	EmployeeID string
	StartDate  time.Time
	EndDate    time.Time
	LeaveType  string
	Reason     *string
	Status     LeaveStatus
	DecidedBy  *string
	CreatedAt  time.Time

	// DTO
	EmployeeName *string
	Service      *string
}

// Days is the inclusive number of calendar days covered by the request.
func (r LeaveRequest) Days() int {
	return DaysBetween(r.StartDate, r.EndDate)
}

// Covers reports whether date falls within [StartDate, EndDate].
func (r LeaveRequest) Covers(date time.Time) bool {
	return !date.Before(r.StartDate) && !date.After(r.EndDate)
}

// Overlaps reports whether [start, end] intersects the request: either endpoint
// falls inside the request, or the range fully contains it.
func (r LeaveRequest) Overlaps(start, end time.Time) bool {
	return r.Covers(start) || r.Covers(end) || (!start.After(r.StartDate) && !end.Before(r.EndDate))
}

// DaysBetween counts calendar days from start to end, both included.
func DaysBetween(start, end time.Time) int {
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()
	from := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	to := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours()/24) + 1
}

// LeaveQuota is the yearly leave ledger of one employee.
type LeaveQuota struct {
	ID         string
	EmployeeID string
	Allocated  int
	Used       int
	Remaining  int
	Year       int
}

// Recompute derives Remaining from Allocated and Used.
func (q *LeaveQuota) Recompute() {
	q.Remaining = q.Allocated - q.Used
}

// Debit records days as taken.
func (q *LeaveQuota) Debit(days int) {
	q.Used += days
	q.Recompute()
}
