package postgresql

import (
	"context"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/leave"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/database"
)

type leaveQuotaRepositoryImpl struct {
	db *database.DB
}

func NewLeaveQuotaRepository(db *database.DB) leave.LeaveQuotaRepository {
	return &leaveQuotaRepositoryImpl{db: db}
}

const leaveQuotaSelect = `
	SELECT id, personnel_id, jours_alloues, jours_pris, jours_restants, annee
	FROM quotas_conges
	WHERE personnel_id = $1`

func scanLeaveQuota(row rowScanner) (leave.LeaveQuota, error) {
	var quota leave.LeaveQuota
	err := row.Scan(&quota.ID, &quota.EmployeeID, &quota.Allocated, &quota.Used, &quota.Remaining, &quota.Year)
	return quota, err
}

// CreateIfAbsent implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) CreateIfAbsent(ctx context.Context, quota leave.LeaveQuota) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO quotas_conges (id, personnel_id, jours_alloues, jours_pris, jours_restants, annee)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (personnel_id) DO NOTHING
	`, quota.ID, quota.EmployeeID, quota.Allocated, quota.Used, quota.Remaining, quota.Year)
	return err
}

// GetByEmployeeID implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) GetByEmployeeID(ctx context.Context, employeeID string) (leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	quota, err := scanLeaveQuota(q.QueryRow(ctx, leaveQuotaSelect, employeeID))
	if err != nil {
		return leave.LeaveQuota{}, mapNoRows(err, leave.ErrLeaveQuotaNotFound)
	}
	return quota, nil
}

// GetByEmployeeIDForUpdate implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) GetByEmployeeIDForUpdate(ctx context.Context, employeeID string) (leave.LeaveQuota, error) {
	q := GetQuerier(ctx, r.db)

	quota, err := scanLeaveQuota(q.QueryRow(ctx, leaveQuotaSelect+` FOR UPDATE`, employeeID))
	if err != nil {
		return leave.LeaveQuota{}, mapNoRows(err, leave.ErrLeaveQuotaNotFound)
	}
	return quota, nil
}

// Update implements leave.LeaveQuotaRepository.
func (r *leaveQuotaRepositoryImpl) Update(ctx context.Context, quota leave.LeaveQuota) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE quotas_conges
		SET jours_alloues = $2, jours_pris = $3, jours_restants = $4, annee = $5
		WHERE personnel_id = $1
	`, quota.EmployeeID, quota.Allocated, quota.Used, quota.Remaining, quota.Year)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveQuotaNotFound
	}
	return nil
}
