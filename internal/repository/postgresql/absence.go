package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/database"
)

type absenceRepositoryImpl struct {
	db *database.DB
}

func NewAbsenceRepository(db *database.DB) attendance.AbsenceRepository {
	return &absenceRepositoryImpl{db: db}
}

// CreateIfAbsent implements attendance.AbsenceRepository.
func (r *absenceRepositoryImpl) CreateIfAbsent(ctx context.Context, record attendance.AbsenceRecord) (bool, error) {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		INSERT INTO absences (id, personnel_id, date_absence, motif, justifie)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (personnel_id, date_absence) DO NOTHING
	`, record.ID, record.EmployeeID, record.Date, record.Reason, record.Justified)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// Upsert implements attendance.AbsenceRepository. An existing certificate is kept when none is supplied.
func (r *absenceRepositoryImpl) Upsert(ctx context.Context, record attendance.AbsenceRecord) (attendance.AbsenceRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH saved AS (
			INSERT INTO absences (id, personnel_id, date_absence, motif, justifie, certificat_justificatif, type_certificat)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (personnel_id, date_absence) DO UPDATE
			SET motif = EXCLUDED.motif,
				justifie = EXCLUDED.justifie OR absences.certificat_justificatif IS NOT NULL,
				certificat_justificatif = COALESCE(EXCLUDED.certificat_justificatif, absences.certificat_justificatif),
				type_certificat = COALESCE(EXCLUDED.type_certificat, absences.type_certificat)
			RETURNING *
		)
		SELECT a.id, a.personnel_id, a.date_absence, a.motif, a.justifie, a.type_certificat,
			a.certificat_justificatif IS NOT NULL, p.prenom || ' ' || p.nom, p.service
		FROM saved a
		JOIN personnel p ON p.id = a.personnel_id`

	var certificate []byte
	if len(record.Certificate) > 0 {
		certificate = record.Certificate
	}

	var saved attendance.AbsenceRecord
	err := q.QueryRow(ctx, query,
		record.ID, record.EmployeeID, record.Date, record.Reason, record.Justified, certificate, record.CertificateType,
	).Scan(
		&saved.ID, &saved.EmployeeID, &saved.Date, &saved.Reason, &saved.Justified, &saved.CertificateType,
		&saved.HasCertificate, &saved.EmployeeName, &saved.Service,
	)
	if err != nil {
		return attendance.AbsenceRecord{}, fmt.Errorf("failed to upsert absence: %w", err)
	}
	return saved, nil
}

// GetByID implements attendance.AbsenceRepository. The certificate blob is loaded.
func (r *absenceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.AbsenceRecord, error) {
	q := GetQuerier(ctx, r.db)

	var a attendance.AbsenceRecord
	err := q.QueryRow(ctx, `
		SELECT a.id, a.personnel_id, a.date_absence, a.motif, a.justifie, a.certificat_justificatif, a.type_certificat,
			p.prenom || ' ' || p.nom, p.service
		FROM absences a
		JOIN personnel p ON p.id = a.personnel_id
		WHERE a.id = $1
	`, id).Scan(
		&a.ID, &a.EmployeeID, &a.Date, &a.Reason, &a.Justified, &a.Certificate, &a.CertificateType,
		&a.EmployeeName, &a.Service,
	)
	if err != nil {
		return attendance.AbsenceRecord{}, mapNoRows(err, attendance.ErrAbsenceNotFound)
	}
	a.HasCertificate = len(a.Certificate) > 0
	return a, nil
}

// Justify implements attendance.AbsenceRepository.
func (r *absenceRepositoryImpl) Justify(ctx context.Context, id string, certificate []byte, contentType string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE absences
		SET justifie = TRUE, certificat_justificatif = $2, type_certificat = $3
		WHERE id = $1
	`, id, certificate, contentType)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAbsenceNotFound
	}
	return nil
}

// ListByRange implements attendance.AbsenceRepository. Certificate blobs are not loaded.
func (r *absenceRepositoryImpl) ListByRange(ctx context.Context, from, to time.Time) ([]attendance.AbsenceRecord, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT a.id, a.personnel_id, a.date_absence, a.motif, a.justifie, a.type_certificat,
			a.certificat_justificatif IS NOT NULL, p.prenom || ' ' || p.nom, p.service
		FROM absences a
		JOIN personnel p ON p.id = a.personnel_id
		WHERE a.date_absence BETWEEN $1 AND $2
		ORDER BY a.date_absence DESC, p.nom, p.prenom
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.AbsenceRecord, 0)
	for rows.Next() {
		var a attendance.AbsenceRecord
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.Date, &a.Reason, &a.Justified, &a.CertificateType,
			&a.HasCertificate, &a.EmployeeName, &a.Service,
		); err != nil {
			return nil, err
		}
		records = append(records, a)
	}
	return records, rows.Err()
}
