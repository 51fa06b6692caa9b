package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/shift-attendance-go/internal/domain/rotation"
	"github.com/cmlabs-hris/shift-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/shift-attendance-go/internal/pkg/clock"
	"github.com/go-chi/chi/v5"
)

type RotationHandler interface {
	GetActiveGroup(w http.ResponseWriter, r *http.Request)
	SetActiveGroup(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	NightStaff(w http.ResponseWriter, r *http.Request)
}

type rotationHandlerImpl struct {
	rotationService rotation.RotationService
	clock           clock.Clock
}

func NewRotationHandler(rotationService rotation.RotationService, clk clock.Clock) RotationHandler {
	return &rotationHandlerImpl{
		rotationService: rotationService,
		clock:           clk,
	}
}

// GetActiveGroup implements RotationHandler
func (h *rotationHandlerImpl) GetActiveGroup(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date", h.clock)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.rotationService.GetActiveGroup(r.Context(), chi.URLParam(r, "service"), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SetActiveGroup implements RotationHandler
func (h *rotationHandlerImpl) SetActiveGroup(w http.ResponseWriter, r *http.Request) {
	var req rotation.SetActiveGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SetActiveGroup decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.Service = chi.URLParam(r, "service")

	result, err := h.rotationService.SetActiveGroup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Night group updated successfully", result)
}

// History implements RotationHandler
func (h *rotationHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	history, err := h.rotationService.History(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, history, &response.Meta{Total: len(history)})
}

// NightStaff implements RotationHandler
func (h *rotationHandlerImpl) NightStaff(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r, "date", h.clock)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	groups, err := h.rotationService.NightStaff(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, groups, &response.Meta{Total: len(groups), Date: date.Format(time.DateOnly)})
}
