package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrollMethod selects how the monthly salary converts into a pay-period base.
type PayrollMethod string

const (
	// PayrollMethodDailyOverThirty pays (base + meal) / 30 for every calendar day of the period.
	PayrollMethodDailyOverThirty PayrollMethod = "DAILY_30"
	// PayrollMethodFixedWeeklyQuarter pays a quarter of (base + meal) per period.
	PayrollMethodFixedWeeklyQuarter PayrollMethod = "FIXED_4"
)

func (m PayrollMethod) IsValid() bool {
	return m == PayrollMethodDailyOverThirty || m == PayrollMethodFixedWeeklyQuarter
}

// PayOverride is a per-employee exception to the standard pay rules.
// Nil fields fall back to the standard formula.
type PayOverride struct {
	FlatPeriodBase       *decimal.Decimal `json:"flat_period_base,omitempty"`
	WithinQuotaDeduction *decimal.Decimal `json:"within_quota_deduction,omitempty"`
	OverQuotaDeduction   *decimal.Decimal `json:"over_quota_deduction,omitempty"`
	Label                string           `json:"label,omitempty"`
}

// IsZero reports whether the override changes nothing.
func (o *PayOverride) IsZero() bool {
	return o == nil || (o.FlatPeriodBase == nil && o.WithinQuotaDeduction == nil && o.OverQuotaDeduction == nil)
}

type Employee struct {
	ID                   string
	Name                 string
	Username             string
	IsActive             bool
	BaseMonthlySalary    decimal.Decimal // gapok
	MonthlyMealAllowance decimal.Decimal // uang makan
	DailyDeductionRate   *decimal.Decimal
	PayrollMethod        PayrollMethod
	FreeLeaveQuota       *int
	PayOverride          *PayOverride
	CashAdvanceBalance   decimal.Decimal // kasbon
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
