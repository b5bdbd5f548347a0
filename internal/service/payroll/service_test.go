package payroll

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/attendance"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/employee"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/payroll"
	"github.com/damdam-laundry/hris-backend-go/internal/pkg/validator"
	"github.com/damdam-laundry/hris-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payrollFixture struct {
	svc            payroll.PayrollService
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
}

func newPayrollFixture(t *testing.T) payrollFixture {
	t.Helper()
	employeeRepo := memory.NewEmployeeRepository()
	attendanceRepo := memory.NewAttendanceRepository()
	return payrollFixture{
		svc: NewPayrollService(
			memory.NewTransactor(),
			memory.NewPayrollRepository(),
			employeeRepo,
			attendanceRepo,
			newTestCalculator(),
		),
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (f payrollFixture) createEmployee(t *testing.T, ctx context.Context, name, username string) employee.Employee {
	t.Helper()
	emp, err := f.employeeRepo.Create(ctx, employee.Employee{
		Name:              name,
		Username:          username,
		IsActive:          true,
		BaseMonthlySalary: rp(3_000_000),
		PayrollMethod:     employee.PayrollMethodDailyOverThirty,
	})
	require.NoError(t, err)
	return emp
}

func (f payrollFixture) seed(t *testing.T, ctx context.Context, records ...attendance.Record) {
	t.Helper()
	for _, r := range records {
		_, err := f.attendanceRepo.Create(ctx, r)
		require.NoError(t, err)
	}
}

func week() payroll.PeriodRequest {
	return payroll.PeriodRequest{Start: "2024-05-06", End: "2024-05-12"}
}

func TestPayrollService_GetReport_UsesFullHistoryAndAdjustment(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture(t)
	emp := f.createEmployee(t, ctx, "Siti", "siti")

	// three free leave days before the period
	for d := 1; d <= 3; d++ {
		f.seed(t, ctx, attendance.Record{EmployeeID: emp.ID, Date: day(2024, 5, d), Status: attendance.StatusLeave})
	}
	f.seed(t, ctx, attendance.Record{EmployeeID: emp.ID, Date: day(2024, 5, 8), Status: attendance.StatusAbsent})

	_, err := f.svc.SetAdjustment(ctx, payroll.SetAdjustmentRequest{EmployeeID: emp.ID, Bonus: rp(50_000), ManualDeduction: rp(20_000)})
	require.NoError(t, err)

	// Act
	report, err := f.svc.GetReport(ctx, payroll.ReportRequest{EmployeeID: emp.ID, PeriodRequest: week()})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 1, report.LeaveCount)
	assert.Equal(t, 4, report.MonthlyLeaveCount)
	assert.Equal(t, 1, report.ExcessLeaveDaysCount)
	assertMoney(t, 700_000, report.GrossPeriodSalary)
	assertMoney(t, 120_000, report.TotalDeductions)
	assertMoney(t, 630_000, report.NetSalary)
}

func TestPayrollService_GetReport_Errors(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture(t)

	_, err := f.svc.GetReport(ctx, payroll.ReportRequest{EmployeeID: "missing", PeriodRequest: week()})
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)

	_, err = f.svc.GetReport(ctx, payroll.ReportRequest{EmployeeID: "x", PeriodRequest: payroll.PeriodRequest{Start: "2024-5-6", End: "2024-05-12"}})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "start")
}

func TestPayrollService_GetReports_ActiveEmployeesOnly(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture(t)
	a := f.createEmployee(t, ctx, "Andi", "andi")
	b := f.createEmployee(t, ctx, "Budi", "budi")
	c := f.createEmployee(t, ctx, "Citra", "citra")
	require.NoError(t, f.employeeRepo.SetActive(ctx, c.ID, false))

	for d := 6; d <= 12; d++ {
		f.seed(t, ctx, attendance.Record{EmployeeID: a.ID, Date: day(2024, 5, d), Status: attendance.StatusPresent})
	}

	reports, err := f.svc.GetReports(ctx, week())

	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, a.ID, reports[0].EmployeeID)
	assert.Equal(t, 7, reports[0].PresentCount)
	assert.Equal(t, b.ID, reports[1].EmployeeID)
	assert.Equal(t, 0, reports[1].PresentCount)
}

func TestPayrollService_ExportPayouts(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture(t)
	emp, err := f.employeeRepo.Create(ctx, employee.Employee{
		Name:              "Siti",
		Username:          "siti",
		IsActive:          true,
		BaseMonthlySalary: rp(3_100_000),
		PayrollMethod:     employee.PayrollMethodDailyOverThirty,
	})
	require.NoError(t, err)
	f.seed(t, ctx, attendance.Record{EmployeeID: emp.ID, Date: day(2024, 5, 6), Status: attendance.StatusPresent})

	var buf bytes.Buffer
	require.NoError(t, f.svc.ExportPayouts(ctx, week(), &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{
		"employee_id", "employee_name", "period_start", "period_end", "present_days", "leave_days",
		"gross_salary", "bonus", "total_deductions", "net_salary", "cash_advance_balance",
	}, rows[0])
	// 3,100,000 / 30 x 7 = 723,333.33
	assert.Equal(t, []string{emp.ID, "Siti", "2024-05-06", "2024-05-12", "1", "0", "723333", "0", "0", "723333", "0"}, rows[1])
}

func TestPayrollService_Adjustment(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture(t)
	emp := f.createEmployee(t, ctx, "Siti", "siti")

	adj, err := f.svc.GetAdjustment(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, adj.Bonus.IsZero())
	assert.True(t, adj.ManualDeduction.IsZero())

	_, err = f.svc.SetAdjustment(ctx, payroll.SetAdjustmentRequest{EmployeeID: emp.ID, Bonus: rp(-1)})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs.ToMap(), "bonus")

	_, err = f.svc.SetAdjustment(ctx, payroll.SetAdjustmentRequest{EmployeeID: emp.ID, Bonus: rp(10_000), ManualDeduction: rp(5_000)})
	require.NoError(t, err)
	saved, err := f.svc.SetAdjustment(ctx, payroll.SetAdjustmentRequest{EmployeeID: emp.ID, Bonus: rp(25_000)})
	require.NoError(t, err)
	assertMoney(t, 25_000, saved.Bonus)

	adj, err = f.svc.GetAdjustment(ctx, emp.ID)
	require.NoError(t, err)
	assertMoney(t, 25_000, adj.Bonus)
	assertMoney(t, 0, adj.ManualDeduction)

	_, err = f.svc.GetAdjustment(ctx, "missing")
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)
}

func TestPayrollService_CashAdvanceLedger(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture(t)
	emp := f.createEmployee(t, ctx, "Siti", "siti")
	note := "repaid from week 19"

	first, err := f.svc.AdjustCashAdvance(ctx, payroll.CashAdvanceRequest{EmployeeID: emp.ID, Delta: rp(200_000)})
	require.NoError(t, err)
	assertMoney(t, 0, first.BalanceBefore)
	assertMoney(t, 200_000, first.BalanceAfter)

	second, err := f.svc.AdjustCashAdvance(ctx, payroll.CashAdvanceRequest{EmployeeID: emp.ID, Delta: rp(-300_000), Note: &note})
	require.NoError(t, err)
	assertMoney(t, 200_000, second.BalanceBefore)
	assertMoney(t, 0, second.BalanceAfter)
	assert.Equal(t, &note, second.Note)

	stored, err := f.employeeRepo.GetByID(ctx, emp.ID)
	require.NoError(t, err)
	assertMoney(t, 0, stored.CashAdvanceBalance)

	entries, err := f.svc.ListCashAdvanceEntries(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first.ID, entries[0].ID)
	assert.Equal(t, second.ID, entries[1].ID)

	_, err = f.svc.AdjustCashAdvance(ctx, payroll.CashAdvanceRequest{EmployeeID: emp.ID, Delta: decimal.Zero})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)

	_, err = f.svc.AdjustCashAdvance(ctx, payroll.CashAdvanceRequest{EmployeeID: "missing", Delta: rp(1)})
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)
}

func TestPayrollService_ReportEchoesCashAdvance(t *testing.T) {
	ctx := context.Background()
	f := newPayrollFixture(t)
	emp := f.createEmployee(t, ctx, "Siti", "siti")

	_, err := f.svc.AdjustCashAdvance(ctx, payroll.CashAdvanceRequest{EmployeeID: emp.ID, Delta: rp(150_000)})
	require.NoError(t, err)

	report, err := f.svc.GetReport(ctx, payroll.ReportRequest{EmployeeID: emp.ID, PeriodRequest: week()})
	require.NoError(t, err)
	assertMoney(t, 150_000, report.CashAdvanceBalance)
	assertMoney(t, 700_000, report.NetSalary)
}
