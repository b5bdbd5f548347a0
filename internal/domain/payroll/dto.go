package payroll

import (
	"time"

	"github.com/damdam-laundry/hris-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PERIOD DTOs ==========

type PeriodRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`

	StartDate time.Time `json:"-"`
	EndDate   time.Time `json:"-"`
}

// Validate parses both bounds. A start after the end is accepted and yields an empty period.
func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if d, ok := validator.IsValidDate(r.Start); !ok {
		errs = append(errs, validator.ValidationError{Field: "start", Message: "must be YYYY-MM-DD"})
	} else {
		r.StartDate = d
	}
	if d, ok := validator.IsValidDate(r.End); !ok {
		errs = append(errs, validator.ValidationError{Field: "end", Message: "must be YYYY-MM-DD"})
	} else {
		r.EndDate = d
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReportRequest struct {
	EmployeeID string
	PeriodRequest
}

func (r *ReportRequest) Validate() error {
	if validator.IsEmpty(r.EmployeeID) {
		return validator.ValidationErrors{{Field: "employee_id", Message: "is required"}}
	}
	return r.PeriodRequest.Validate()
}

// ========== ADJUSTMENT DTOs ==========

type SetAdjustmentRequest struct {
	EmployeeID      string          `json:"-"`
	Bonus           decimal.Decimal `json:"bonus"`
	ManualDeduction decimal.Decimal `json:"manual_deduction"`
}

func (r *SetAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.Bonus.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "bonus", Message: "must be non-negative"})
	}
	if r.ManualDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "manual_deduction", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdjustmentResponse struct {
	EmployeeID      string          `json:"employee_id"`
	Bonus           decimal.Decimal `json:"bonus"`
	ManualDeduction decimal.Decimal `json:"manual_deduction"`
}

// ========== CASH ADVANCE DTOs ==========

// CashAdvanceRequest moves the kasbon balance. Positive delta is a new advance, negative a repayment.
type CashAdvanceRequest struct {
	EmployeeID string          `json:"-"`
	Delta      decimal.Decimal `json:"delta"`
	Note       *string         `json:"note,omitempty"`
}

func (r *CashAdvanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.Delta.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "delta", Message: "must not be zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CashAdvanceEntryResponse struct {
	ID            string          `json:"id"`
	EmployeeID    string          `json:"employee_id"`
	Delta         decimal.Decimal `json:"delta"`
	BalanceBefore decimal.Decimal `json:"balance_before"`
	BalanceAfter  decimal.Decimal `json:"balance_after"`
	Note          *string         `json:"note,omitempty"`
	CreatedAt     string          `json:"created_at"`
}

// ========== EXPORT DTOs ==========

// PayoutRow is one line of the payout CSV.
type PayoutRow struct {
	EmployeeID         string `csv:"employee_id"`
	EmployeeName       string `csv:"employee_name"`
	PeriodStart        string `csv:"period_start"`
	PeriodEnd          string `csv:"period_end"`
	PresentDays        int    `csv:"present_days"`
	LeaveDays          int    `csv:"leave_days"`
	GrossSalary        string `csv:"gross_salary"`
	Bonus              string `csv:"bonus"`
	TotalDeductions    string `csv:"total_deductions"`
	NetSalary          string `csv:"net_salary"`
	CashAdvanceBalance string `csv:"cash_advance_balance"`
}
