package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/employee"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/shift-attendance-go/internal/service/roster"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// detectCertificate sniffs the content type of a certificate and rejects anything
// but the accepted image and PDF formats.
func detectCertificate(certificate []byte) (string, error) {
	if len(certificate) == 0 {
		return "", attendance.ErrCertificateRequired
	}
	detected := mimetype.Detect(certificate)
	for _, accepted := range attendance.CertificateTypes {
		if detected.Is(accepted) {
			return accepted, nil
		}
	}
	return "", attendance.ErrUnsupportedCertificateType
}

// RecordAbsence implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) RecordAbsence(ctx context.Context, req attendance.RecordAbsenceRequest) (attendance.AbsenceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AbsenceResponse{}, err
	}
	date, err := clock.ParseDate(req.Date)
	if err != nil {
		return attendance.AbsenceResponse{}, err
	}

	record := attendance.AbsenceRecord{
		ID:         uuid.Must(uuid.NewV7()).String(),
		EmployeeID: req.EmployeeID,
		Date:       date,
		Reason:     req.Reason,
		Justified:  req.Justified,
	}
	if len(req.Certificate) > 0 {
		contentType, err := detectCertificate(req.Certificate)
		if err != nil {
			return attendance.AbsenceResponse{}, err
		}
		record.Certificate = req.Certificate
		record.CertificateType = &contentType
		record.Justified = true
	}

	var saved attendance.AbsenceRecord
	err = a.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := a.employeeRepo.GetByID(txCtx, req.EmployeeID); err != nil {
			return fmt.Errorf("failed to get employee: %w", err)
		}
		saved, err = a.absenceRepo.Upsert(txCtx, record)
		if err != nil {
			return fmt.Errorf("failed to save absence: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AbsenceResponse{}, err
	}

	slog.Info("Absence recorded",
		"employee_id", saved.EmployeeID,
		"date", date.Format(time.DateOnly),
		"justified", saved.Justified)

	return attendance.NewAbsenceResponse(saved), nil
}

// JustifyAbsence implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) JustifyAbsence(ctx context.Context, req attendance.JustifyAbsenceRequest) (attendance.AbsenceResponse, error) {
	contentType, err := detectCertificate(req.Certificate)
	if err != nil {
		return attendance.AbsenceResponse{}, err
	}

	var saved attendance.AbsenceRecord
	err = a.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		if _, err := a.absenceRepo.GetByID(txCtx, req.ID); err != nil {
			return fmt.Errorf("failed to get absence: %w", err)
		}
		if err := a.absenceRepo.Justify(txCtx, req.ID, req.Certificate, contentType); err != nil {
			return fmt.Errorf("failed to justify absence: %w", err)
		}
		saved, err = a.absenceRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return fmt.Errorf("failed to get absence: %w", err)
		}
		return nil
	})
	if err != nil {
		return attendance.AbsenceResponse{}, err
	}

	slog.Info("Absence justified", "absence_id", saved.ID, "employee_id", saved.EmployeeID, "content_type", contentType)

	return attendance.NewAbsenceResponse(saved), nil
}

// GetAbsence implements attendance.AttendanceService. The certificate blob is included.
func (a *AttendanceServiceImpl) GetAbsence(ctx context.Context, id string) (attendance.AbsenceRecord, error) {
	record, err := a.absenceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AbsenceRecord{}, fmt.Errorf("failed to get absence: %w", err)
	}
	return record, nil
}

// ListAbsences implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAbsences(ctx context.Context, from, to time.Time) ([]attendance.AbsenceResponse, error) {
	if err := checkRange(&from, &to); err != nil {
		return nil, err
	}

	records, err := a.absenceRepo.ListByRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}

	responses := make([]attendance.AbsenceResponse, 0, len(records))
	for _, r := range records {
		responses = append(responses, attendance.NewAbsenceResponse(r))
	}
	return responses, nil
}

// overdue reports whether emp, still not clocked in on date, is past the
// absence cutoff at now. Past dates are always overdue and future dates never.
// A cutoff that would fall on the next calendar day is left to the next sweep.
func overdue(emp employee.Employee, date, now time.Time) bool {
	today := clock.DateOf(now)
	switch {
	case date.Before(today):
		return true
	case date.After(today):
		return false
	}

	cutoff := emp.ScheduledArrival.On(date, now.Location()).Add(attendance.AbsenceCutoff)
	if !clock.DateOf(cutoff).Equal(date) {
		return false
	}
	return now.After(cutoff)
}

// SweepAbsences implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) SweepAbsences(ctx context.Context, date time.Time) (attendance.SweepResponse, error) {
	date = clock.DateOf(date)
	now := a.clock.Now()

	resp := attendance.SweepResponse{Date: date.Format(time.DateOnly), EmployeeIDs: []string{}}
	err := a.db.WithinTransaction(ctx, func(txCtx context.Context) error {
		pending, _, err := a.roster.PendingEmployees(txCtx, date, roster.Criteria{})
		if err != nil {
			return err
		}

		for _, emp := range pending {
			if !overdue(emp, date, now) {
				continue
			}
			resp.Candidates++

			created, err := a.absenceRepo.CreateIfAbsent(txCtx, attendance.AbsenceRecord{
				ID:         uuid.Must(uuid.NewV7()).String(),
				EmployeeID: emp.ID,
				Date:       date,
				Reason:     attendance.SweepAbsenceReason,
			})
			if err != nil {
				return fmt.Errorf("failed to record absence: %w", err)
			}
			if created {
				resp.Created++
				resp.EmployeeIDs = append(resp.EmployeeIDs, emp.ID)
			}
		}
		return nil
	})
	if err != nil {
		return attendance.SweepResponse{}, err
	}

	slog.Info("Absence sweep finished",
		"date", resp.Date,
		"candidates", resp.Candidates,
		"created", resp.Created)

	return resp, nil
}
