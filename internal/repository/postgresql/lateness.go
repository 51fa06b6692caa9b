package postgresql

import (
	"context"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/database"
)

type latenessRepositoryImpl struct {
	db *database.DB
}

func NewLatenessRepository(db *database.DB) attendance.LatenessRepository {
	return &latenessRepositoryImpl{db: db}
}

// Upsert implements attendance.LatenessRepository. The latest write for a day wins.
func (r *latenessRepositoryImpl) Upsert(ctx context.Context, record attendance.LatenessRecord) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `
		INSERT INTO retards (id, personnel_id, date_retard, retard_minutes, motif)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (personnel_id, date_retard) DO UPDATE
		SET retard_minutes = EXCLUDED.retard_minutes, motif = EXCLUDED.motif
	`, record.ID, record.EmployeeID, record.Date, record.Minutes, record.Reason)
	return err
}

// DeleteByEmployeeAndDate implements attendance.LatenessRepository.
func (r *latenessRepositoryImpl) DeleteByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM retards WHERE personnel_id = $1 AND date_retard = $2`, employeeID, date)
	return err
}

// ListByRange implements attendance.LatenessRepository.
func (r *latenessRepositoryImpl) ListByRange(ctx context.Context, from, to time.Time) ([]attendance.LatenessRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT rt.id, rt.personnel_id, rt.date_retard, rt.retard_minutes, rt.motif,
			p.prenom || ' ' || p.nom, p.service
		FROM retards rt
		JOIN personnel p ON p.id = rt.personnel_id
		WHERE rt.date_retard BETWEEN $1 AND $2
		ORDER BY rt.date_retard DESC, p.nom, p.prenom
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.LatenessRecord, 0)
	for rows.Next() {
		var lr attendance.LatenessRecord
		if err := rows.Scan(
			&lr.ID, &lr.EmployeeID, &lr.Date, &lr.Minutes, &lr.Reason,
			&lr.EmployeeName, &lr.Service,
		); err != nil {
			return nil, err
		}
		records = append(records, lr)
	}
	return records, rows.Err()
}
