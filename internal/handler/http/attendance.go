package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/attendance"
	"github.com/damdam-laundry/hris-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	MonthlyStats(w http.ResponseWriter, r *http.Request)
	GetOutletConfig(w http.ResponseWriter, r *http.Request)
	UpdateOutletConfig(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// ClockIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ClockIn decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "id")

	result, err := h.attendanceService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clock in successful", result)
}

// ClockOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	req := attendance.ClockOutRequest{EmployeeID: chi.URLParam(r, "id")}

	result, err := h.attendanceService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clock out successful", result)
}

// History implements AttendanceHandler.
func (h *attendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := attendance.HistoryFilter{EmployeeID: chi.URLParam(r, "id")}
	if v := query.Get("from"); v != "" {
		filter.From = &v
	}
	if v := query.Get("to"); v != "" {
		filter.To = &v
	}

	records, err := h.attendanceService.History(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// MonthlyStats implements AttendanceHandler.
func (h *attendanceHandlerImpl) MonthlyStats(w http.ResponseWriter, r *http.Request) {
	req := attendance.MonthlyStatsRequest{
		EmployeeID: chi.URLParam(r, "id"),
		Month:      r.URL.Query().Get("month"),
	}

	stats, err := h.attendanceService.MonthlyStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// GetOutletConfig implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetOutletConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.attendanceService.GetOutletConfig(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, cfg)
}

// UpdateOutletConfig implements AttendanceHandler.
func (h *attendanceHandlerImpl) UpdateOutletConfig(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateOutletConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateOutletConfig decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	cfg, err := h.attendanceService.UpdateOutletConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Outlet config updated successfully", cfg)
}
