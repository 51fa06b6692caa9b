package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/database"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT c.id, c.personnel_id, c.date_debut, c.date_fin, c.type_conge, c.motif, c.statut, c.decide_par, c.created_at,
		p.prenom || ' ' || p.nom, p.service
	FROM conges c
	JOIN personnel p ON p.id = c.personnel_id`

func scanLeaveRequest(row rowScanner) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.StartDate, &lr.EndDate, &lr.LeaveType, &lr.Reason, &lr.Status, &lr.DecidedBy, &lr.CreatedAt,
		&lr.EmployeeName, &lr.Service,
	)
	return lr, err
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, query string, args ...any) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO conges (id, personnel_id, date_debut, date_fin, type_conge, motif, statut)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, request.ID, request.EmployeeID, request.StartDate, request.EndDate, request.LeaveType, request.Reason, request.Status)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to insert leave request: %w", err)
	}
	return r.GetByID(ctx, request.ID)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE c.id = $1`, id))
	if err != nil {
		return leave.LeaveRequest{}, mapNoRows(err, leave.ErrLeaveRequestNotFound)
	}
	return lr, nil
}

// GetByIDForUpdate implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByIDForUpdate(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE c.id = $1 FOR UPDATE OF c`, id))
	if err != nil {
		return leave.LeaveRequest{}, mapNoRows(err, leave.ErrLeaveRequestNotFound)
	}
	return lr, nil
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.LeaveStatus, decidedBy *string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE conges SET statut = $2, decide_par = $3 WHERE id = $1`, id, status, decidedBy)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// HasActiveOverlap implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasActiveOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var overlap bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM conges
			WHERE personnel_id = $1
				AND statut IN ($4, $5)
				AND date_debut <= $3 AND date_fin >= $2
		)
	`, employeeID, start, end, leave.StatusPending, leave.StatusApproved).Scan(&overlap)
	return overlap, err
}

// IsOnApprovedLeave implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) IsOnApprovedLeave(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var onLeave bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM conges
			WHERE personnel_id = $1 AND statut = $3 AND $2 BETWEEN date_debut AND date_fin
		)
	`, employeeID, date, leave.StatusApproved).Scan(&onLeave)
	return onLeave, err
}

// ListApprovedCovering implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListApprovedCovering(ctx context.Context, date time.Time) ([]leave.LeaveRequest, error) {
	return r.list(ctx, leaveRequestSelect+`
		WHERE c.statut = $2 AND $1 BETWEEN c.date_debut AND c.date_fin
		ORDER BY p.service, p.nom, p.prenom
	`, date, leave.StatusApproved)
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("c.personnel_id = $%d", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("c.statut = $%d", len(args)))
	}

	query := leaveRequestSelect
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.created_at DESC"

	return r.list(ctx, query, args...)
}
