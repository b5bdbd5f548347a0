package payroll

import (
	"fmt"
	"time"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/attendance"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/employee"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

const (
	// DaysInMonth is the fixed divisor turning a monthly amount into a daily one.
	DaysInMonth = 30
	// DefaultFreeLeaveQuota is the number of LEAVE/ABSENT days per calendar month without deduction.
	DefaultFreeLeaveQuota = 3

	moneyPlaces = 2
)

var (
	daysInMonth     = decimal.NewFromInt(DaysInMonth)
	periodsPerMonth = decimal.NewFromInt(4)
)

// CalculatorOptions configures the leave quota and absence handling of a Calculator.
type CalculatorOptions struct {
	FreeLeaveQuota int

	// ImplicitAbsence treats a day inside the pay period with no record at all as ABSENT.
	// Off by default: such days are neither paid for separately nor charged.
	ImplicitAbsence bool
}

// DefaultCalculatorOptions returns a monthly free leave quota of DefaultFreeLeaveQuota days and no implicit absences.
func DefaultCalculatorOptions() CalculatorOptions {
	return CalculatorOptions{FreeLeaveQuota: DefaultFreeLeaveQuota}
}

// Calculator is the payroll engine. It holds configuration only and is safe for concurrent use.
type Calculator struct {
	freeLeaveQuota  int
	implicitAbsence bool
}

func NewCalculator(opts CalculatorOptions) *Calculator {
	return &Calculator{
		freeLeaveQuota:  opts.FreeLeaveQuota,
		implicitAbsence: opts.ImplicitAbsence,
	}
}

// payBasis is the resolved compensation policy for one employee and one period.
type payBasis struct {
	periodBase        decimal.Decimal
	dailyRate         decimal.Decimal
	withinQuotaCharge decimal.Decimal
	overQuotaCharge   decimal.Decimal
	label             string
}

func (c *Calculator) resolveBasis(emp employee.Employee, periodDays int) payBasis {
	monthly := emp.BaseMonthlySalary.Add(emp.MonthlyMealAllowance)

	rate := monthly.Div(daysInMonth)
	if emp.DailyDeductionRate != nil && emp.DailyDeductionRate.IsPositive() {
		rate = *emp.DailyDeductionRate
	}

	basis := payBasis{
		dailyRate:         rate,
		withinQuotaCharge: decimal.Zero,
		overQuotaCharge:   rate,
	}

	switch emp.PayrollMethod {
	case employee.PayrollMethodFixedWeeklyQuarter:
		basis.periodBase = monthly.Div(periodsPerMonth)
		basis.label = "Fixed weekly: (base + meal) / 4"
	default:
		// (base/30 + meal/30) x days, multiplied before dividing to keep whole-day sums exact
		basis.periodBase = monthly.Mul(decimal.NewFromInt(int64(periodDays))).Div(daysInMonth)
		basis.label = fmt.Sprintf("Daily: (base + meal) / %d x %d days", DaysInMonth, periodDays)
	}

	if o := emp.PayOverride; !o.IsZero() {
		if o.FlatPeriodBase != nil {
			basis.periodBase = *o.FlatPeriodBase
			basis.label = "Flat period base"
		}
		if o.WithinQuotaDeduction != nil {
			basis.withinQuotaCharge = *o.WithinQuotaDeduction
		}
		if o.OverQuotaDeduction != nil {
			basis.overQuotaCharge = *o.OverQuotaDeduction
			basis.dailyRate = *o.OverQuotaDeduction
		}
		if o.Label != "" {
			basis.label = o.Label
		}
	}

	return basis
}

func (c *Calculator) freeQuotaFor(emp employee.Employee) int {
	if emp.FreeLeaveQuota != nil {
		return *emp.FreeLeaveQuota
	}
	return c.freeLeaveQuota
}

// dayBook answers "what happened on day d" over the deduplicated history.
type dayBook struct {
	byDate          map[string]attendance.Record
	start, end      time.Time
	implicitAbsence bool
}

func (b dayBook) on(d time.Time) (attendance.Record, bool) {
	if r, ok := b.byDate[attendance.DateKey(d)]; ok {
		return r, true
	}
	if b.implicitAbsence && !d.Before(b.start) && !d.After(b.end) {
		return attendance.Record{Date: d, Status: attendance.StatusAbsent}, true
	}
	return attendance.Record{}, false
}

// leaveDaysSoFar counts LEAVE, ABSENT and LEAVE_PENDING days from the 1st of d's month through d.
// Recomputed on every call so that retroactive approvals are always reflected.
func (b dayBook) leaveDaysSoFar(d time.Time) int {
	count := 0
	for x := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC); !x.After(d); x = x.AddDate(0, 0, 1) {
		if r, ok := b.on(x); ok && r.Status.CountsAsLeave() {
			count++
		}
	}
	return count
}

// ComputeWeeklyPayroll computes the payroll report for one employee over the inclusive
// period [start, end]. records must hold the employee's full history, at least from the
// first day of start's month. bonus and manualDeduction are expected to be non-negative.
func (c *Calculator) ComputeWeeklyPayroll(
	emp employee.Employee,
	records []attendance.Record,
	start, end time.Time,
	bonus, manualDeduction decimal.Decimal,
) payroll.Report {
	start, end = attendance.DateOf(start), attendance.DateOf(end)

	periodDays := 0
	if !start.After(end) {
		periodDays = int(end.Sub(start).Hours()/24) + 1
	}

	basis := c.resolveBasis(emp, periodDays)
	freeQuota := c.freeQuotaFor(emp)
	book := dayBook{
		byDate:          attendance.Deduplicate(records),
		start:           start,
		end:             end,
		implicitAbsence: c.implicitAbsence,
	}

	report := payroll.Report{
		EmployeeID:         emp.ID,
		EmployeeName:       emp.Name,
		PeriodStart:        attendance.DateKey(start),
		PeriodEnd:          attendance.DateKey(end),
		CashAdvanceBalance: emp.CashAdvanceBalance,
		MethodLabel:        basis.label,
	}

	charges := decimal.Zero
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		monthQuotaSoFar := book.leaveDaysSoFar(d)
		if d.Year() == end.Year() && d.Month() == end.Month() {
			report.MonthlyLeaveCount = monthQuotaSoFar
		}

		record, ok := book.on(d)
		if !ok {
			continue
		}

		switch {
		case record.Status.CountsAsLeave():
			report.LeaveCount++
			if !record.Status.IsFinalizedAbsence() {
				continue
			}
			if monthQuotaSoFar <= freeQuota {
				charges = charges.Add(basis.withinQuotaCharge)
			} else {
				charges = charges.Add(basis.overQuotaCharge)
				report.ExcessLeaveDaysCount++
			}
		case record.Status == attendance.StatusPresent:
			report.PresentCount++
			if record.IsLate {
				report.LateCount++
			} else {
				report.OnTimeCount++
			}
		}
	}

	total := charges.Add(manualDeduction)
	net := basis.periodBase.Add(bonus).Sub(total)
	if net.IsNegative() {
		net = decimal.Zero
	}

	report.GrossPeriodSalary = basis.periodBase.Round(moneyPlaces)
	report.Bonus = bonus
	report.ManualDeduction = manualDeduction
	report.AttendanceDeduction = charges.Round(moneyPlaces)
	report.TotalDeductions = total.Round(moneyPlaces)
	report.NetSalary = net.Round(moneyPlaces)
	report.DailyDeductionRateUsed = basis.dailyRate.Round(moneyPlaces)

	return report
}

// ApplyCashAdvance returns the kasbon balance after delta, floored at zero.
func ApplyCashAdvance(balance, delta decimal.Decimal) decimal.Decimal {
	next := balance.Add(delta)
	if next.IsNegative() {
		return decimal.Zero
	}
	return next
}
