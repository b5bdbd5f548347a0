package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report is the result of one payroll computation. It is never persisted.
type Report struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`

	PresentCount         int `json:"present_count"`
	OnTimeCount          int `json:"on_time_count"`
	LateCount            int `json:"late_count"`
	LeaveCount           int `json:"leave_count"`
	MonthlyLeaveCount    int `json:"monthly_leave_count"`
	ExcessLeaveDaysCount int `json:"excess_leave_days_count"`

	GrossPeriodSalary      decimal.Decimal `json:"gross_period_salary"`
	Bonus                  decimal.Decimal `json:"bonus"`
	ManualDeduction        decimal.Decimal `json:"manual_deduction"`
	AttendanceDeduction    decimal.Decimal `json:"attendance_deduction"`
	TotalDeductions        decimal.Decimal `json:"total_deductions"`
	NetSalary              decimal.Decimal `json:"net_salary"`
	DailyDeductionRateUsed decimal.Decimal `json:"daily_deduction_rate_used"`
	MethodLabel            string          `json:"method_label"`

	CashAdvanceBalance decimal.Decimal `json:"cash_advance_balance"`
}

// Adjustment holds the owner-entered values for the current pay cycle.
type Adjustment struct {
	EmployeeID      string
	Bonus           decimal.Decimal
	ManualDeduction decimal.Decimal
	UpdatedAt       time.Time
}

// CashAdvanceEntry is one append-only movement of the kasbon balance.
type CashAdvanceEntry struct {
	ID            string
	EmployeeID    string
	Delta         decimal.Decimal
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	Note          *string
	CreatedAt     time.Time
}
