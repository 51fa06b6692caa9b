package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/attendance"
	"github.com/cmlabs-hris/shift-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/clock"
	"github.com/go-chi/chi/v5"
)

// maxCertificateUpload bounds the multipart body of certificate uploads.
const maxCertificateUpload = 10 << 20

type AttendanceHandler interface {
	RegisterArrival(w http.ResponseWriter, r *http.Request)
	RegisterDeparture(w http.ResponseWriter, r *http.Request)
	CorrectRecord(w http.ResponseWriter, r *http.Request)
	SearchRecords(w http.ResponseWriter, r *http.Request)
	Today(w http.ResponseWriter, r *http.Request)
	Roster(w http.ResponseWriter, r *http.Request)
	Pending(w http.ResponseWriter, r *http.Request)
	DaytimeNightStaff(w http.ResponseWriter, r *http.Request)
	ListLateness(w http.ResponseWriter, r *http.Request)

	RecordAbsence(w http.ResponseWriter, r *http.Request)
	ListAbsences(w http.ResponseWriter, r *http.Request)
	JustifyAbsence(w http.ResponseWriter, r *http.Request)
	DownloadCertificate(w http.ResponseWriter, r *http.Request)
	SweepAbsences(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
	rosterService     attendance.RosterService
	clock             clock.Clock
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService, rosterService attendance.RosterService, clk clock.Clock) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
		rosterService:     rosterService,
		clock:             clk,
	}
}

// RegisterArrival implements AttendanceHandler.
func (h *attendanceHandlerImpl) RegisterArrival(w http.ResponseWriter, r *http.Request) {
	var req attendance.ArrivalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RegisterArrival decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.RegisterArrival(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Arrival registered successfully"
	if result.AutoAbsent {
		message = "Arrival registered, employee marked absent"
	}
	response.SuccessWithMessage(w, message, result)
}

// RegisterDeparture implements AttendanceHandler.
func (h *attendanceHandlerImpl) RegisterDeparture(w http.ResponseWriter, r *http.Request) {
	var req attendance.DepartureRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RegisterDeparture decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.RegisterDeparture(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Departure registered successfully", result)
}

// CorrectRecord implements AttendanceHandler.
func (h *attendanceHandlerImpl) CorrectRecord(w http.ResponseWriter, r *http.Request) {
	var req attendance.CorrectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CorrectRecord decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.attendanceService.CorrectRecord(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock record corrected successfully", result)
}

// SearchRecords implements AttendanceHandler.
func (h *attendanceHandlerImpl) SearchRecords(w http.ResponseWriter, r *http.Request) {
	from, err := queryOptionalDate(r, "from")
	if err != nil {
		response.HandleError(w, err)
		return
	}
	to, err := queryOptionalDate(r, "to")
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := attendance.RecordFilter{
		Search:  r.URL.Query().Get("search"),
		Service: r.URL.Query().Get("service"),
		Status:  r.URL.Query().Get("status"),
		From:    from,
		To:      to,
	}

	records, err := h.attendanceService.SearchRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, &response.Meta{Total: len(records)})
}

// Today implements AttendanceHandler.
func (h *attendanceHandlerImpl) Today(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date", h.clock)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ListDay(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, &response.Meta{Total: len(records), Date: date.Format(time.DateOnly)})
}

func (h *attendanceHandlerImpl) rosterFilter(r *http.Request) attendance.RosterFilter {
	return attendance.RosterFilter{
		Search:  r.URL.Query().Get("search"),
		Service: r.URL.Query().Get("service"),
	}
}

// Roster implements AttendanceHandler.
func (h *attendanceHandlerImpl) Roster(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date", h.clock)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	groups, err := h.rosterService.Eligible(r.Context(), date, h.rosterFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, groups, &response.Meta{Total: countEntries(groups), Date: date.Format(time.DateOnly)})
}

// Pending implements AttendanceHandler.
func (h *attendanceHandlerImpl) Pending(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date", h.clock)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	groups, err := h.rosterService.NotYetClocked(r.Context(), date, h.rosterFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, groups, &response.Meta{Total: countEntries(groups), Date: date.Format(time.DateOnly)})
}

// DaytimeNightStaff implements AttendanceHandler.
func (h *attendanceHandlerImpl) DaytimeNightStaff(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date", h.clock)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	entries, err := h.rosterService.DaytimeNightStaff(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, entries, &response.Meta{Total: len(entries), Date: date.Format(time.DateOnly)})
}

// ListLateness implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListLateness(w http.ResponseWriter, r *http.Request) {
	from, to, err := queryRange(r, h.clock)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ListLateness(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, &response.Meta{
		Total: len(records),
		From:  from.Format(time.DateOnly),
		To:    to.Format(time.DateOnly),
	})
}

// readCertificate returns the "certificate" file of a parsed multipart form, nil when absent.
func readCertificate(r *http.Request) ([]byte, error) {
	file, _, err := r.FormFile("certificate")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// RecordAbsence implements AttendanceHandler. Accepts JSON, or a multipart form
// with the JSON payload in "data" and an optional "certificate" file.
func (h *attendanceHandlerImpl) RecordAbsence(w http.ResponseWriter, r *http.Request) {
	var req attendance.RecordAbsenceRequest

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxCertificateUpload); err != nil {
			slog.Error("Failed to parse multipart form", "error", err)
			response.BadRequest(w, "Failed to parse form data", nil)
			return
		}
		dataJSON := r.FormValue("data")
		if dataJSON == "" {
			response.BadRequest(w, "Field 'data' is required", nil)
			return
		}
		if err := json.Unmarshal([]byte(dataJSON), &req); err != nil {
			slog.Error("RecordAbsence unmarshal error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		certificate, err := readCertificate(r)
		if err != nil {
			slog.Error("Failed to read certificate", "error", err)
			response.BadRequest(w, "Invalid file upload", nil)
			return
		}
		req.Certificate = certificate
	} else if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RecordAbsence decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.attendanceService.RecordAbsence(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Absence recorded successfully", result)
}

// ListAbsences implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListAbsences(w http.ResponseWriter, r *http.Request) {
	from, to, err := queryRange(r, h.clock)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	records, err := h.attendanceService.ListAbsences(r.Context(), from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, records, &response.Meta{
		Total: len(records),
		From:  from.Format(time.DateOnly),
		To:    to.Format(time.DateOnly),
	})
}

// JustifyAbsence implements AttendanceHandler.
func (h *attendanceHandlerImpl) JustifyAbsence(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxCertificateUpload); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	certificate, err := readCertificate(r)
	if err != nil {
		slog.Error("Failed to read certificate", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}

	result, err := h.attendanceService.JustifyAbsence(r.Context(), attendance.JustifyAbsenceRequest{
		ID:          chi.URLParam(r, "id"),
		Certificate: certificate,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence justified successfully", result)
}

// DownloadCertificate implements AttendanceHandler.
func (h *attendanceHandlerImpl) DownloadCertificate(w http.ResponseWriter, r *http.Request) {
	record, err := h.attendanceService.GetAbsence(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if len(record.Certificate) == 0 {
		response.HandleError(w, attendance.ErrCertificateNotFound)
		return
	}

	contentType := "application/octet-stream"
	if record.CertificateType != nil {
		contentType = *record.CertificateType
	}
	filename := fmt.Sprintf("certificate-%s-%s", record.EmployeeID, record.Date.Format(time.DateOnly))
	response.Attachment(w, contentType, filename, record.Certificate)
}

// SweepAbsences implements AttendanceHandler.
func (h *attendanceHandlerImpl) SweepAbsences(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date", h.clock)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.attendanceService.SweepAbsences(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Absence sweep completed", result)
}

func countEntries(groups []attendance.RosterGroup) int {
	n := 0
	for _, g := range groups {
		n += len(g.Employees)
	}
	return n
}
