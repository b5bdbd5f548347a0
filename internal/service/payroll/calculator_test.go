package payroll

import (
	"testing"
	"time"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/attendance"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func rp(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func assertMoney(t *testing.T, want int64, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, rp(want).Equal(got), append([]interface{}{"want %d, got %s", want, got.String()}, msgAndArgs...)...)
}

func standardEmployee() employee.Employee {
	return employee.Employee{
		ID:                 "emp-1",
		Name:               "Siti",
		Username:           "siti",
		IsActive:           true,
		BaseMonthlySalary:  rp(3_000_000),
		PayrollMethod:      employee.PayrollMethodDailyOverThirty,
		CashAdvanceBalance: rp(250_000),
	}
}

func rec(d time.Time, status attendance.Status) attendance.Record {
	return attendance.Record{EmployeeID: "emp-1", Date: d, Status: status}
}

func presentWeek(start time.Time) []attendance.Record {
	var records []attendance.Record
	for i := 0; i < 7; i++ {
		records = append(records, rec(start.AddDate(0, 0, i), attendance.StatusPresent))
	}
	return records
}

func newTestCalculator() *Calculator {
	return NewCalculator(DefaultCalculatorOptions())
}

func TestComputeWeeklyPayroll_Scenarios(t *testing.T) {
	calc := newTestCalculator()
	emp := standardEmployee()
	start, end := day(2024, 5, 6), day(2024, 5, 12)

	t.Run("full week present", func(t *testing.T) {
		report := calc.ComputeWeeklyPayroll(emp, presentWeek(start), start, end, decimal.Zero, decimal.Zero)

		assert.Equal(t, "emp-1", report.EmployeeID)
		assert.Equal(t, "Siti", report.EmployeeName)
		assert.Equal(t, "2024-05-06", report.PeriodStart)
		assert.Equal(t, "2024-05-12", report.PeriodEnd)
		assert.Equal(t, 7, report.PresentCount)
		assert.Equal(t, 7, report.OnTimeCount)
		assert.Equal(t, 0, report.LateCount)
		assert.Equal(t, 0, report.LeaveCount)
		assertMoney(t, 700_000, report.GrossPeriodSalary)
		assertMoney(t, 0, report.TotalDeductions)
		assertMoney(t, 700_000, report.NetSalary)
		assertMoney(t, 100_000, report.DailyDeductionRateUsed)
		assertMoney(t, 250_000, report.CashAdvanceBalance)
	})

	t.Run("fourth leave of the month is charged", func(t *testing.T) {
		records := []attendance.Record{
			rec(day(2024, 5, 1), attendance.StatusLeave),
			rec(day(2024, 5, 2), attendance.StatusLeave),
			rec(day(2024, 5, 3), attendance.StatusLeave),
		}
		for _, r := range presentWeek(start) {
			if r.Date.Equal(day(2024, 5, 8)) {
				r.Status = attendance.StatusLeave
			}
			records = append(records, r)
		}

		report := calc.ComputeWeeklyPayroll(emp, records, start, end, decimal.Zero, decimal.Zero)

		assert.Equal(t, 6, report.PresentCount)
		assert.Equal(t, 1, report.LeaveCount)
		assert.Equal(t, 1, report.ExcessLeaveDaysCount)
		assert.Equal(t, 4, report.MonthlyLeaveCount)
		assertMoney(t, 100_000, report.AttendanceDeduction)
		assertMoney(t, 100_000, report.TotalDeductions)
		assertMoney(t, 600_000, report.NetSalary)
	})

	t.Run("bonus and manual deduction", func(t *testing.T) {
		report := calc.ComputeWeeklyPayroll(emp, presentWeek(start), start, end, rp(50_000), rp(20_000))

		assertMoney(t, 50_000, report.Bonus)
		assertMoney(t, 20_000, report.ManualDeduction)
		assertMoney(t, 20_000, report.TotalDeductions)
		assertMoney(t, 730_000, report.NetSalary)
	})

	t.Run("pending leave wins over present on the same date", func(t *testing.T) {
		records := append(presentWeek(start), rec(day(2024, 5, 9), attendance.StatusLeavePending))

		report := calc.ComputeWeeklyPayroll(emp, records, start, end, decimal.Zero, decimal.Zero)

		assert.Equal(t, 6, report.PresentCount)
		assert.Equal(t, 1, report.LeaveCount)
		assert.Equal(t, 0, report.ExcessLeaveDaysCount)
		assertMoney(t, 0, report.TotalDeductions)
	})

	t.Run("start after end", func(t *testing.T) {
		records := presentWeek(start)

		daily := calc.ComputeWeeklyPayroll(emp, records, end, start, decimal.Zero, decimal.Zero)
		assert.Equal(t, 0, daily.PresentCount)
		assert.Equal(t, 0, daily.LeaveCount)
		assert.Equal(t, 0, daily.MonthlyLeaveCount)
		assertMoney(t, 0, daily.GrossPeriodSalary)
		assertMoney(t, 0, daily.TotalDeductions)
		assertMoney(t, 0, daily.NetSalary)

		fixed := emp
		fixed.PayrollMethod = employee.PayrollMethodFixedWeeklyQuarter
		quarter := calc.ComputeWeeklyPayroll(fixed, records, end, start, decimal.Zero, decimal.Zero)
		assert.Equal(t, 0, quarter.PresentCount)
		assertMoney(t, 750_000, quarter.GrossPeriodSalary)
		assertMoney(t, 750_000, quarter.NetSalary)
	})
}

func TestComputeWeeklyPayroll_PayBasis(t *testing.T) {
	calc := newTestCalculator()
	start, end := day(2024, 5, 6), day(2024, 5, 12)

	t.Run("meal allowance is part of the daily base", func(t *testing.T) {
		emp := standardEmployee()
		emp.MonthlyMealAllowance = rp(600_000)

		report := calc.ComputeWeeklyPayroll(emp, nil, start, end, decimal.Zero, decimal.Zero)

		assertMoney(t, 840_000, report.GrossPeriodSalary)
		assertMoney(t, 120_000, report.DailyDeductionRateUsed)
	})

	t.Run("fixed weekly quarter ignores period length", func(t *testing.T) {
		emp := standardEmployee()
		emp.PayrollMethod = employee.PayrollMethodFixedWeeklyQuarter
		emp.MonthlyMealAllowance = rp(200_000)

		week := calc.ComputeWeeklyPayroll(emp, nil, start, end, decimal.Zero, decimal.Zero)
		twoWeeks := calc.ComputeWeeklyPayroll(emp, nil, start, day(2024, 5, 19), decimal.Zero, decimal.Zero)

		assertMoney(t, 800_000, week.GrossPeriodSalary)
		assertMoney(t, 800_000, twoWeeks.GrossPeriodSalary)
		assert.Contains(t, week.MethodLabel, "Fixed weekly")
	})

	t.Run("explicit daily rate", func(t *testing.T) {
		emp := standardEmployee()
		emp.DailyDeductionRate = decPtr(75_000)

		report := calc.ComputeWeeklyPayroll(emp, nil, start, end, decimal.Zero, decimal.Zero)

		assertMoney(t, 75_000, report.DailyDeductionRateUsed)
		assertMoney(t, 700_000, report.GrossPeriodSalary)
	})

	t.Run("zero explicit rate falls back to derived rate", func(t *testing.T) {
		emp := standardEmployee()
		emp.DailyDeductionRate = decPtr(0)

		report := calc.ComputeWeeklyPayroll(emp, nil, start, end, decimal.Zero, decimal.Zero)

		assertMoney(t, 100_000, report.DailyDeductionRateUsed)
	})

	t.Run("sparse profile computes zeros", func(t *testing.T) {
		report := calc.ComputeWeeklyPayroll(employee.Employee{ID: "x"}, presentWeek(start), start, end, decimal.Zero, decimal.Zero)

		assert.Equal(t, 7, report.PresentCount)
		assertMoney(t, 0, report.GrossPeriodSalary)
		assertMoney(t, 0, report.NetSalary)
	})

	t.Run("override table", func(t *testing.T) {
		emp := standardEmployee()
		emp.PayOverride = &employee.PayOverride{
			FlatPeriodBase:       decPtr(500_000),
			WithinQuotaDeduction: decPtr(10_000),
			OverQuotaDeduction:   decPtr(50_000),
			Label:                "Part-time ironing",
		}
		var records []attendance.Record
		for d := 6; d <= 10; d++ {
			records = append(records, rec(day(2024, 5, d), attendance.StatusAbsent))
		}

		report := calc.ComputeWeeklyPayroll(emp, records, start, end, decimal.Zero, decimal.Zero)

		assertMoney(t, 500_000, report.GrossPeriodSalary)
		assert.Equal(t, 5, report.LeaveCount)
		assert.Equal(t, 2, report.ExcessLeaveDaysCount)
		assertMoney(t, 3*10_000+2*50_000, report.AttendanceDeduction)
		assertMoney(t, 50_000, report.DailyDeductionRateUsed)
		assertMoney(t, 370_000, report.NetSalary)
		assert.Equal(t, "Part-time ironing", report.MethodLabel)
	})

	t.Run("empty override changes nothing", func(t *testing.T) {
		emp := standardEmployee()
		plain := calc.ComputeWeeklyPayroll(emp, presentWeek(start), start, end, decimal.Zero, decimal.Zero)

		emp.PayOverride = &employee.PayOverride{}
		withEmpty := calc.ComputeWeeklyPayroll(emp, presentWeek(start), start, end, decimal.Zero, decimal.Zero)

		assert.Equal(t, plain, withEmpty)
	})
}

func TestComputeWeeklyPayroll_Quota(t *testing.T) {
	start, end := day(2024, 5, 1), day(2024, 5, 7)

	t.Run("pending leave consumes quota but is never charged", func(t *testing.T) {
		records := []attendance.Record{
			rec(day(2024, 5, 1), attendance.StatusLeavePending),
			rec(day(2024, 5, 2), attendance.StatusLeavePending),
			rec(day(2024, 5, 3), attendance.StatusLeavePending),
			rec(day(2024, 5, 4), attendance.StatusLeavePending),
			rec(day(2024, 5, 5), attendance.StatusLeave),
		}

		report := newTestCalculator().ComputeWeeklyPayroll(standardEmployee(), records, start, end, decimal.Zero, decimal.Zero)

		assert.Equal(t, 5, report.LeaveCount)
		assert.Equal(t, 5, report.MonthlyLeaveCount)
		assert.Equal(t, 1, report.ExcessLeaveDaysCount)
		assertMoney(t, 100_000, report.AttendanceDeduction)
	})

	t.Run("employee quota override", func(t *testing.T) {
		emp := standardEmployee()
		zero := 0
		emp.FreeLeaveQuota = &zero
		records := []attendance.Record{rec(day(2024, 5, 2), attendance.StatusAbsent)}

		report := newTestCalculator().ComputeWeeklyPayroll(emp, records, start, end, decimal.Zero, decimal.Zero)

		assert.Equal(t, 1, report.ExcessLeaveDaysCount)
		assertMoney(t, 100_000, report.AttendanceDeduction)
	})

	t.Run("configured default quota", func(t *testing.T) {
		calc := NewCalculator(CalculatorOptions{FreeLeaveQuota: 1})
		records := []attendance.Record{
			rec(day(2024, 5, 2), attendance.StatusAbsent),
			rec(day(2024, 5, 3), attendance.StatusAbsent),
		}

		report := calc.ComputeWeeklyPayroll(standardEmployee(), records, start, end, decimal.Zero, decimal.Zero)

		assert.Equal(t, 1, report.ExcessLeaveDaysCount)
	})

	t.Run("period spanning a month boundary", func(t *testing.T) {
		records := []attendance.Record{
			rec(day(2024, 4, 27), attendance.StatusLeave),
			rec(day(2024, 4, 28), attendance.StatusLeave),
			rec(day(2024, 4, 29), attendance.StatusLeave),
			rec(day(2024, 4, 30), attendance.StatusLeave),
			rec(day(2024, 5, 1), attendance.StatusLeave),
		}

		report := newTestCalculator().ComputeWeeklyPayroll(standardEmployee(), records, day(2024, 4, 29), day(2024, 5, 5), decimal.Zero, decimal.Zero)

		assert.Equal(t, 3, report.LeaveCount)
		assert.Equal(t, 1, report.ExcessLeaveDaysCount) // only Apr 30
		assert.Equal(t, 1, report.MonthlyLeaveCount)    // May so far
		assertMoney(t, 100_000, report.AttendanceDeduction)
	})
}

func TestComputeWeeklyPayroll_ImplicitAbsence(t *testing.T) {
	start, end := day(2024, 5, 6), day(2024, 5, 12)
	records := []attendance.Record{
		rec(day(2024, 5, 6), attendance.StatusPresent),
		rec(day(2024, 5, 7), attendance.StatusPresent),
	}

	skipped := newTestCalculator().ComputeWeeklyPayroll(standardEmployee(), records, start, end, decimal.Zero, decimal.Zero)
	assert.Equal(t, 2, skipped.PresentCount)
	assert.Equal(t, 0, skipped.LeaveCount)
	assertMoney(t, 0, skipped.TotalDeductions)

	calc := NewCalculator(CalculatorOptions{FreeLeaveQuota: DefaultFreeLeaveQuota, ImplicitAbsence: true})
	charged := calc.ComputeWeeklyPayroll(standardEmployee(), records, start, end, decimal.Zero, decimal.Zero)
	assert.Equal(t, 2, charged.PresentCount)
	assert.Equal(t, 5, charged.LeaveCount)
	assert.Equal(t, 5, charged.MonthlyLeaveCount)
	assert.Equal(t, 2, charged.ExcessLeaveDaysCount)
	assertMoney(t, 200_000, charged.TotalDeductions)
	assertMoney(t, 500_000, charged.NetSalary)
}

func TestComputeWeeklyPayroll_Properties(t *testing.T) {
	calc := newTestCalculator()
	emp := standardEmployee()
	start, end := day(2024, 5, 6), day(2024, 5, 12)

	mixed := []attendance.Record{
		rec(day(2024, 5, 1), attendance.StatusAbsent),
		rec(day(2024, 5, 2), attendance.StatusLeave),
		rec(day(2024, 5, 6), attendance.StatusPresent),
		{EmployeeID: "emp-1", Date: day(2024, 5, 7), Status: attendance.StatusPresent, IsLate: true},
		rec(day(2024, 5, 8), attendance.StatusLeave),
		rec(day(2024, 5, 9), attendance.StatusAbsent),
		rec(day(2024, 5, 10), attendance.StatusLeavePending),
	}

	t.Run("deterministic", func(t *testing.T) {
		first := calc.ComputeWeeklyPayroll(emp, mixed, start, end, rp(10_000), rp(5_000))
		second := calc.ComputeWeeklyPayroll(emp, mixed, start, end, rp(10_000), rp(5_000))
		assert.Equal(t, first, second)
	})

	t.Run("input order does not matter", func(t *testing.T) {
		reversed := make([]attendance.Record, len(mixed))
		for i, r := range mixed {
			reversed[len(mixed)-1-i] = r
		}
		assert.Equal(t,
			calc.ComputeWeeklyPayroll(emp, mixed, start, end, decimal.Zero, decimal.Zero),
			calc.ComputeWeeklyPayroll(emp, reversed, start, end, decimal.Zero, decimal.Zero))
	})

	t.Run("net never negative", func(t *testing.T) {
		report := calc.ComputeWeeklyPayroll(emp, mixed, start, end, decimal.Zero, rp(10_000_000))
		assertMoney(t, 0, report.NetSalary)
		assert.False(t, report.NetSalary.IsNegative())
	})

	t.Run("lower precedence duplicate changes nothing", func(t *testing.T) {
		base := calc.ComputeWeeklyPayroll(emp, mixed, start, end, decimal.Zero, decimal.Zero)

		withDupes := append(append([]attendance.Record{}, mixed...),
			rec(day(2024, 5, 8), attendance.StatusAbsent),
			rec(day(2024, 5, 6), attendance.StatusAbsent),
			rec(day(2024, 5, 2), attendance.StatusPresent),
		)
		assert.Equal(t, base, calc.ComputeWeeklyPayroll(emp, withDupes, start, end, decimal.Zero, decimal.Zero))
	})

	t.Run("quota monotonic", func(t *testing.T) {
		var records []attendance.Record
		prevMonthly := 0
		for d := 1; d <= 7; d++ {
			records = append(records, rec(day(2024, 5, d), attendance.StatusLeave))
			report := calc.ComputeWeeklyPayroll(emp, records, day(2024, 5, 1), day(2024, 5, 7), decimal.Zero, decimal.Zero)

			assert.GreaterOrEqual(t, report.MonthlyLeaveCount, prevMonthly)
			prevMonthly = report.MonthlyLeaveCount

			wantExcess := d - DefaultFreeLeaveQuota
			if wantExcess < 0 {
				wantExcess = 0
			}
			assert.Equal(t, wantExcess, report.ExcessLeaveDaysCount, "after %d leave days", d)
		}
	})

	t.Run("records outside the period", func(t *testing.T) {
		outside := []attendance.Record{
			rec(day(2024, 4, 30), attendance.StatusLeave),
			rec(day(2024, 5, 3), attendance.StatusPresent),
			rec(day(2024, 5, 4), attendance.StatusLeave),
			rec(day(2024, 5, 13), attendance.StatusLeave),
			rec(day(2024, 5, 14), attendance.StatusPresent),
		}

		report := calc.ComputeWeeklyPayroll(emp, outside, start, end, decimal.Zero, decimal.Zero)

		assert.Equal(t, 0, report.PresentCount)
		assert.Equal(t, 0, report.OnTimeCount)
		assert.Equal(t, 0, report.LateCount)
		assert.Equal(t, 0, report.LeaveCount)
		assert.Equal(t, 1, report.MonthlyLeaveCount) // May 4 only
		assertMoney(t, 0, report.TotalDeductions)
	})

	t.Run("late and on-time split", func(t *testing.T) {
		report := calc.ComputeWeeklyPayroll(emp, mixed, start, end, decimal.Zero, decimal.Zero)
		assert.Equal(t, 2, report.PresentCount)
		assert.Equal(t, 1, report.OnTimeCount)
		assert.Equal(t, 1, report.LateCount)
		assert.Equal(t, 3, report.LeaveCount)
		require.Equal(t, 5, report.MonthlyLeaveCount)
		// May 8 is the 3rd, May 9 the 4th leave day
		assert.Equal(t, 1, report.ExcessLeaveDaysCount)
	})
}

func TestApplyCashAdvance(t *testing.T) {
	cases := []struct {
		name    string
		balance int64
		delta   int64
		want    int64
	}{
		{"new advance", 0, 200_000, 200_000},
		{"partial repayment", 200_000, -50_000, 150_000},
		{"exact repayment", 150_000, -150_000, 0},
		{"over repayment floors at zero", 100_000, -300_000, 0},
		{"repayment on zero balance", 0, -10_000, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assertMoney(t, c.want, ApplyCashAdvance(rp(c.balance), rp(c.delta)))
		})
	}
}
