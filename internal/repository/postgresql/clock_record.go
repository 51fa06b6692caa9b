package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/database"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/timeofday"
)

type clockRecordRepositoryImpl struct {
	db *database.DB
}

func NewClockRecordRepository(db *database.DB) attendance.ClockRecordRepository {
	return &clockRecordRepositoryImpl{db: db}
}

// clockRecordSelect reads pointages aliased pt, joined with the employee's name and service.
const clockRecordSelect = `
	SELECT pt.id, pt.personnel_id, pt.date_pointage, pt.heure_arrivee, pt.heure_depart,
		pt.statut_arrivee, pt.statut_depart, pt.retard_minutes, pt.depart_avance_minutes,
		pt.motif_retard, pt.motif_depart_avance, pt.notes,
		p.prenom || ' ' || p.nom, p.service
	FROM %s pt
	JOIN personnel p ON p.id = pt.personnel_id`

func scanClockRecord(row rowScanner) (attendance.ClockRecord, error) {
	var r attendance.ClockRecord
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.Date, &r.ArrivalTime, &r.DepartureTime,
		&r.ArrivalStatus, &r.DepartureStatus, &r.LateMinutes, &r.EarlyDepartureMinutes,
		&r.LateReason, &r.EarlyDepartureReason, &r.Notes,
		&r.EmployeeName, &r.Service,
	)
	return r, err
}

// GetByID implements attendance.ClockRecordRepository.
func (r *clockRecordRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.ClockRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(clockRecordSelect, "pointages") + ` WHERE pt.id = $1`

	record, err := scanClockRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		return attendance.ClockRecord{}, mapNoRows(err, attendance.ErrClockRecordNotFound)
	}
	return record, nil
}

// GetByEmployeeAndDate implements attendance.ClockRecordRepository.
func (r *clockRecordRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.ClockRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(clockRecordSelect, "pointages") + ` WHERE pt.personnel_id = $1 AND pt.date_pointage = $2`

	record, err := scanClockRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		return attendance.ClockRecord{}, mapNoRows(err, attendance.ErrClockRecordNotFound)
	}
	return record, nil
}

// UpsertArrival implements attendance.ClockRecordRepository. Departure columns are never touched.
func (r *clockRecordRepositoryImpl) UpsertArrival(ctx context.Context, record attendance.ClockRecord) (attendance.ClockRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH saved AS (
			INSERT INTO pointages (id, personnel_id, date_pointage, heure_arrivee, statut_arrivee, retard_minutes, motif_retard, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (personnel_id, date_pointage) DO UPDATE
			SET heure_arrivee = EXCLUDED.heure_arrivee,
				statut_arrivee = EXCLUDED.statut_arrivee,
				retard_minutes = EXCLUDED.retard_minutes,
				motif_retard = COALESCE(EXCLUDED.motif_retard, pointages.motif_retard),
				notes = COALESCE(EXCLUDED.notes, pointages.notes)
			RETURNING *
		)` + fmt.Sprintf(clockRecordSelect, "saved")

	saved, err := scanClockRecord(q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Date, record.ArrivalTime, record.ArrivalStatus,
		record.LateMinutes, record.LateReason, record.Notes,
	))
	if err != nil {
		return attendance.ClockRecord{}, fmt.Errorf("failed to upsert arrival: %w", err)
	}
	return saved, nil
}

// UpsertDeparture implements attendance.ClockRecordRepository. Arrival columns are never touched.
func (r *clockRecordRepositoryImpl) UpsertDeparture(ctx context.Context, record attendance.ClockRecord) (attendance.ClockRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH saved AS (
			INSERT INTO pointages (id, personnel_id, date_pointage, heure_depart, statut_depart, depart_avance_minutes, motif_depart_avance, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (personnel_id, date_pointage) DO UPDATE
			SET heure_depart = EXCLUDED.heure_depart,
				statut_depart = EXCLUDED.statut_depart,
				depart_avance_minutes = EXCLUDED.depart_avance_minutes,
				motif_depart_avance = COALESCE(EXCLUDED.motif_depart_avance, pointages.motif_depart_avance),
				notes = COALESCE(EXCLUDED.notes, pointages.notes)
			RETURNING *
		)` + fmt.Sprintf(clockRecordSelect, "saved")

	saved, err := scanClockRecord(q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Date, record.DepartureTime, record.DepartureStatus,
		record.EarlyDepartureMinutes, record.EarlyDepartureReason, record.Notes,
	))
	if err != nil {
		return attendance.ClockRecord{}, fmt.Errorf("failed to upsert departure: %w", err)
	}
	return saved, nil
}

// Update implements attendance.ClockRecordRepository.
func (r *clockRecordRepositoryImpl) Update(ctx context.Context, record attendance.ClockRecord) (attendance.ClockRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH saved AS (
			UPDATE pointages
			SET heure_arrivee = $2, heure_depart = $3, statut_arrivee = $4, statut_depart = $5,
				retard_minutes = $6, depart_avance_minutes = $7,
				motif_retard = $8, motif_depart_avance = $9, notes = $10
			WHERE id = $1
			RETURNING *
		)` + fmt.Sprintf(clockRecordSelect, "saved")

	saved, err := scanClockRecord(q.QueryRow(ctx, query,
		record.ID, record.ArrivalTime, record.DepartureTime, record.ArrivalStatus, record.DepartureStatus,
		record.LateMinutes, record.EarlyDepartureMinutes,
		record.LateReason, record.EarlyDepartureReason, record.Notes,
	))
	if err != nil {
		return attendance.ClockRecord{}, mapNoRows(err, attendance.ErrClockRecordNotFound)
	}
	return saved, nil
}

// ArrivalsOn implements attendance.ClockRecordRepository.
func (r *clockRecordRepositoryImpl) ArrivalsOn(ctx context.Context, date time.Time) (map[string]timeofday.TimeOfDay, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT personnel_id, heure_arrivee
		FROM pointages
		WHERE date_pointage = $1 AND heure_arrivee IS NOT NULL
	`, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	arrivals := make(map[string]timeofday.TimeOfDay)
	for rows.Next() {
		var (
			employeeID string
			arrival    timeofday.TimeOfDay
		)
		if err := rows.Scan(&employeeID, &arrival); err != nil {
			return nil, err
		}
		arrivals[employeeID] = arrival
	}
	return arrivals, rows.Err()
}

// ListByDate implements attendance.ClockRecordRepository.
func (r *clockRecordRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]attendance.ClockRecord, error) {
	from, to := date, date
	return r.Search(ctx, attendance.RecordFilter{From: &from, To: &to})
}

// Search implements attendance.ClockRecordRepository.
func (r *clockRecordRepositoryImpl) Search(ctx context.Context, filter attendance.RecordFilter) ([]attendance.ClockRecord, error) {
	q := GetQuerier(ctx, r.db)

	var (
		conditions []string
		args       []any
	)
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf(
			"(p.nom ILIKE $%[1]d OR p.prenom ILIKE $%[1]d OR p.prenom || ' ' || p.nom ILIKE $%[1]d)", len(args)))
	}
	if filter.Service != "" {
		args = append(args, filter.Service)
		conditions = append(conditions, fmt.Sprintf("LOWER(p.service) = LOWER($%d)", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("pt.date_pointage >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("pt.date_pointage <= $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conditions = append(conditions, fmt.Sprintf("pt.statut_arrivee = $%d", len(args)))
	}

	query := fmt.Sprintf(clockRecordSelect, "pointages")
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY pt.date_pointage DESC, p.service, p.nom, p.prenom"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.ClockRecord, 0)
	for rows.Next() {
		record, err := scanClockRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
