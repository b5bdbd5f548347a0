package employee

import (
	"regexp"

	"github.com/damdam-laundry/hris-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var usernameRegex = regexp.MustCompile(`^[a-z0-9._-]{3,30}$`)

type CreateEmployeeRequest struct {
	Name                 string           `json:"name"`
	Username             string           `json:"username"`
	BaseMonthlySalary    decimal.Decimal  `json:"base_monthly_salary"`
	MonthlyMealAllowance decimal.Decimal  `json:"monthly_meal_allowance"`
	DailyDeductionRate   *decimal.Decimal `json:"daily_deduction_rate,omitempty"`
	PayrollMethod        string           `json:"payroll_method"`
	FreeLeaveQuota       *int             `json:"free_leave_quota,omitempty"`
	PayOverride          *PayOverride     `json:"pay_override,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if !usernameRegex.MatchString(r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "must be 3-30 chars of a-z, 0-9, '.', '_' or '-'"})
	}
	if r.PayrollMethod == "" {
		r.PayrollMethod = string(PayrollMethodDailyOverThirty)
	}
	errs = append(errs, validatePolicy(r.PayrollMethod, r.BaseMonthlySalary, r.MonthlyMealAllowance, r.DailyDeductionRate, r.FreeLeaveQuota, r.PayOverride)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID                   string           `json:"-"`
	Name                 *string          `json:"name,omitempty"`
	Username             *string          `json:"username,omitempty"`
	BaseMonthlySalary    *decimal.Decimal `json:"base_monthly_salary,omitempty"`
	MonthlyMealAllowance *decimal.Decimal `json:"monthly_meal_allowance,omitempty"`
	DailyDeductionRate   *decimal.Decimal `json:"daily_deduction_rate,omitempty"`
	PayrollMethod        *string          `json:"payroll_method,omitempty"`
	FreeLeaveQuota       *int             `json:"free_leave_quota,omitempty"`
	PayOverride          *PayOverride     `json:"pay_override,omitempty"`
	ClearPayOverride     bool             `json:"clear_pay_override,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "cannot be empty"})
	}
	if r.Username != nil && !usernameRegex.MatchString(*r.Username) {
		errs = append(errs, validator.ValidationError{Field: "username", Message: "must be 3-30 chars of a-z, 0-9, '.', '_' or '-'"})
	}

	method := string(PayrollMethodDailyOverThirty)
	if r.PayrollMethod != nil {
		method = *r.PayrollMethod
	}
	base, meal := decimal.Zero, decimal.Zero
	if r.BaseMonthlySalary != nil {
		base = *r.BaseMonthlySalary
	}
	if r.MonthlyMealAllowance != nil {
		meal = *r.MonthlyMealAllowance
	}
	errs = append(errs, validatePolicy(method, base, meal, r.DailyDeductionRate, r.FreeLeaveQuota, r.PayOverride)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePolicy(method string, base, meal decimal.Decimal, rate *decimal.Decimal, quota *int, override *PayOverride) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if !PayrollMethod(method).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "payroll_method", Message: "must be DAILY_30 or FIXED_4"})
	}
	if base.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_monthly_salary", Message: "must be non-negative"})
	}
	if meal.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "monthly_meal_allowance", Message: "must be non-negative"})
	}
	if rate != nil && rate.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "daily_deduction_rate", Message: "must be non-negative"})
	}
	if quota != nil && *quota < 0 {
		errs = append(errs, validator.ValidationError{Field: "free_leave_quota", Message: "must be non-negative"})
	}
	if override != nil {
		for field, v := range map[string]*decimal.Decimal{
			"pay_override.flat_period_base":       override.FlatPeriodBase,
			"pay_override.within_quota_deduction": override.WithinQuotaDeduction,
			"pay_override.over_quota_deduction":   override.OverQuotaDeduction,
		} {
			if v != nil && v.IsNegative() {
				errs = append(errs, validator.ValidationError{Field: field, Message: "must be non-negative"})
			}
		}
	}
	return errs
}

type EmployeeResponse struct {
	ID                   string           `json:"id"`
	Name                 string           `json:"name"`
	Username             string           `json:"username"`
	IsActive             bool             `json:"is_active"`
	BaseMonthlySalary    decimal.Decimal  `json:"base_monthly_salary"`
	MonthlyMealAllowance decimal.Decimal  `json:"monthly_meal_allowance"`
	DailyDeductionRate   *decimal.Decimal `json:"daily_deduction_rate,omitempty"`
	PayrollMethod        string           `json:"payroll_method"`
	FreeLeaveQuota       *int             `json:"free_leave_quota,omitempty"`
	PayOverride          *PayOverride     `json:"pay_override,omitempty"`
	CashAdvanceBalance   decimal.Decimal  `json:"cash_advance_balance"`
}

func ToResponse(e Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                   e.ID,
		Name:                 e.Name,
		Username:             e.Username,
		IsActive:             e.IsActive,
		BaseMonthlySalary:    e.BaseMonthlySalary,
		MonthlyMealAllowance: e.MonthlyMealAllowance,
		DailyDeductionRate:   e.DailyDeductionRate,
		PayrollMethod:        string(e.PayrollMethod),
		FreeLeaveQuota:       e.FreeLeaveQuota,
		PayOverride:          e.PayOverride,
		CashAdvanceBalance:   e.CashAdvanceBalance,
	}
}
