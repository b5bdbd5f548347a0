package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/payroll"
	"github.com/damdam-laundry/hris-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	// Reports
	ListReports(w http.ResponseWriter, r *http.Request)
	GetReport(w http.ResponseWriter, r *http.Request)
	ExportPayouts(w http.ResponseWriter, r *http.Request)

	// Adjustments
	GetAdjustment(w http.ResponseWriter, r *http.Request)
	SetAdjustment(w http.ResponseWriter, r *http.Request)

	// Cash advance
	AdjustCashAdvance(w http.ResponseWriter, r *http.Request)
	ListCashAdvanceEntries(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func periodFromQuery(r *http.Request) payroll.PeriodRequest {
	query := r.URL.Query()
	return payroll.PeriodRequest{
		Start: query.Get("start"),
		End:   query.Get("end"),
	}
}

// ========== REPORTS ==========

func (h *payrollHandlerImpl) ListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := h.payrollService.GetReports(r.Context(), periodFromQuery(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, reports)
}

func (h *payrollHandlerImpl) GetReport(w http.ResponseWriter, r *http.Request) {
	req := payroll.ReportRequest{
		EmployeeID:    chi.URLParam(r, "employeeId"),
		PeriodRequest: periodFromQuery(r),
	}

	report, err := h.payrollService.GetReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// ExportPayouts buffers the sheet so a failure still gets a JSON error.
func (h *payrollHandlerImpl) ExportPayouts(w http.ResponseWriter, r *http.Request) {
	req := periodFromQuery(r)

	var buf bytes.Buffer
	if err := h.payrollService.ExportPayouts(r.Context(), req, &buf); err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("payouts_%s_%s.csv", req.Start, req.End)
	response.Attachment(w, "text/csv", filename, buf.Bytes())
}

// ========== ADJUSTMENTS ==========

func (h *payrollHandlerImpl) GetAdjustment(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.GetAdjustment(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) SetAdjustment(w http.ResponseWriter, r *http.Request) {
	var req payroll.SetAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeId")

	result, err := h.payrollService.SetAdjustment(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll adjustment saved", result)
}

// ========== CASH ADVANCE ==========

func (h *payrollHandlerImpl) AdjustCashAdvance(w http.ResponseWriter, r *http.Request) {
	var req payroll.CashAdvanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeId")

	result, err := h.payrollService.AdjustCashAdvance(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Cash advance recorded", result)
}

func (h *payrollHandlerImpl) ListCashAdvanceEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.payrollService.ListCashAdvanceEntries(r.Context(), chi.URLParam(r, "employeeId"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, entries)
}
