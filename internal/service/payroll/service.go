package payroll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/attendance"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/employee"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/payroll"
	"github.com/damdam-laundry/hris-backend-go/internal/pkg/database"
	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentReports bounds the fan-out of GetReports.
const maxConcurrentReports = 8

type PayrollServiceImpl struct {
	tx             database.Transactor
	payrollRepo    payroll.PayrollRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	calculator     *Calculator
	now            func() time.Time
}

func NewPayrollService(
	tx database.Transactor,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	calculator *Calculator,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		tx:             tx,
		payrollRepo:    payrollRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		calculator:     calculator,
		now:            time.Now,
	}
}

// ========== REPORTS ==========

func (s *PayrollServiceImpl) GetReport(ctx context.Context, req payroll.ReportRequest) (payroll.Report, error) {
	if err := req.Validate(); err != nil {
		return payroll.Report{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.Report{}, payroll.ErrEmployeeNotFound
		}
		return payroll.Report{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return s.reportFor(ctx, emp, req.StartDate, req.EndDate)
}

func (s *PayrollServiceImpl) GetReports(ctx context.Context, req payroll.PeriodRequest) ([]payroll.Report, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	reports := make([]payroll.Report, len(employees))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReports)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			report, err := s.reportFor(gCtx, emp, req.StartDate, req.EndDate)
			if err != nil {
				return fmt.Errorf("employee %s: %w", emp.ID, err)
			}
			reports[i] = report
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}

// reportFor loads the employee's full record history and adjustment and runs the engine.
func (s *PayrollServiceImpl) reportFor(ctx context.Context, emp employee.Employee, start, end time.Time) (payroll.Report, error) {
	records, err := s.attendanceRepo.ListByEmployee(ctx, emp.ID, nil, nil)
	if err != nil {
		return payroll.Report{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	bonus, manual := decimal.Zero, decimal.Zero
	adj, err := s.payrollRepo.GetAdjustment(ctx, emp.ID)
	switch {
	case err == nil:
		bonus, manual = adj.Bonus, adj.ManualDeduction
	case errors.Is(err, payroll.ErrAdjustmentNotFound):
	default:
		return payroll.Report{}, fmt.Errorf("failed to get adjustment: %w", err)
	}

	return s.calculator.ComputeWeeklyPayroll(emp, records, start, end, bonus, manual), nil
}

// ExportPayouts writes one CSV row per active employee. Amounts are rounded to whole Rupiah.
func (s *PayrollServiceImpl) ExportPayouts(ctx context.Context, req payroll.PeriodRequest, w io.Writer) error {
	reports, err := s.GetReports(ctx, req)
	if err != nil {
		return err
	}

	rows := make([]*payroll.PayoutRow, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, &payroll.PayoutRow{
			EmployeeID:         r.EmployeeID,
			EmployeeName:       r.EmployeeName,
			PeriodStart:        r.PeriodStart,
			PeriodEnd:          r.PeriodEnd,
			PresentDays:        r.PresentCount,
			LeaveDays:          r.LeaveCount,
			GrossSalary:        rupiah(r.GrossPeriodSalary),
			Bonus:              rupiah(r.Bonus),
			TotalDeductions:    rupiah(r.TotalDeductions),
			NetSalary:          rupiah(r.NetSalary),
			CashAdvanceBalance: rupiah(r.CashAdvanceBalance),
		})
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write payout csv: %w", err)
	}
	return nil
}

func rupiah(d decimal.Decimal) string {
	return d.Round(0).StringFixed(0)
}

// ========== ADJUSTMENTS ==========

func (s *PayrollServiceImpl) GetAdjustment(ctx context.Context, employeeID string) (payroll.AdjustmentResponse, error) {
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return payroll.AdjustmentResponse{}, err
	}

	adj, err := s.payrollRepo.GetAdjustment(ctx, employeeID)
	if err != nil {
		if errors.Is(err, payroll.ErrAdjustmentNotFound) {
			return payroll.AdjustmentResponse{
				EmployeeID:      employeeID,
				Bonus:           decimal.Zero,
				ManualDeduction: decimal.Zero,
			}, nil
		}
		return payroll.AdjustmentResponse{}, fmt.Errorf("failed to get adjustment: %w", err)
	}

	return toAdjustmentResponse(adj), nil
}

func (s *PayrollServiceImpl) SetAdjustment(ctx context.Context, req payroll.SetAdjustmentRequest) (payroll.AdjustmentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.AdjustmentResponse{}, err
	}
	if _, err := s.getEmployee(ctx, req.EmployeeID); err != nil {
		return payroll.AdjustmentResponse{}, err
	}

	adj, err := s.payrollRepo.UpsertAdjustment(ctx, payroll.Adjustment{
		EmployeeID:      req.EmployeeID,
		Bonus:           req.Bonus,
		ManualDeduction: req.ManualDeduction,
		UpdatedAt:       s.now(),
	})
	if err != nil {
		return payroll.AdjustmentResponse{}, fmt.Errorf("failed to save adjustment: %w", err)
	}

	slog.Info("payroll adjustment saved",
		"employee_id", adj.EmployeeID,
		"bonus", adj.Bonus.String(),
		"manual_deduction", adj.ManualDeduction.String())

	return toAdjustmentResponse(adj), nil
}

func toAdjustmentResponse(adj payroll.Adjustment) payroll.AdjustmentResponse {
	return payroll.AdjustmentResponse{
		EmployeeID:      adj.EmployeeID,
		Bonus:           adj.Bonus,
		ManualDeduction: adj.ManualDeduction,
	}
}

// ========== CASH ADVANCE ==========

// AdjustCashAdvance moves the kasbon balance and records the movement in one transaction.
func (s *PayrollServiceImpl) AdjustCashAdvance(ctx context.Context, req payroll.CashAdvanceRequest) (payroll.CashAdvanceEntryResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.CashAdvanceEntryResponse{}, err
	}

	var entry payroll.CashAdvanceEntry
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		emp, err := s.getEmployee(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}

		next := ApplyCashAdvance(emp.CashAdvanceBalance, req.Delta)
		if err := s.employeeRepo.UpdateCashAdvanceBalance(txCtx, emp.ID, next); err != nil {
			return fmt.Errorf("failed to update cash advance balance: %w", err)
		}

		entry, err = s.payrollRepo.AppendCashAdvanceEntry(txCtx, payroll.CashAdvanceEntry{
			EmployeeID:    emp.ID,
			Delta:         req.Delta,
			BalanceBefore: emp.CashAdvanceBalance,
			BalanceAfter:  next,
			Note:          req.Note,
			CreatedAt:     s.now(),
		})
		if err != nil {
			return fmt.Errorf("failed to append cash advance entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.CashAdvanceEntryResponse{}, err
	}

	slog.Info("cash advance adjusted",
		"employee_id", entry.EmployeeID,
		"delta", entry.Delta.String(),
		"balance", entry.BalanceAfter.String())

	return toCashAdvanceEntryResponse(entry), nil
}

func (s *PayrollServiceImpl) ListCashAdvanceEntries(ctx context.Context, employeeID string) ([]payroll.CashAdvanceEntryResponse, error) {
	if _, err := s.getEmployee(ctx, employeeID); err != nil {
		return nil, err
	}

	entries, err := s.payrollRepo.ListCashAdvanceEntries(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash advance entries: %w", err)
	}

	responses := make([]payroll.CashAdvanceEntryResponse, 0, len(entries))
	for _, e := range entries {
		responses = append(responses, toCashAdvanceEntryResponse(e))
	}
	return responses, nil
}

func toCashAdvanceEntryResponse(e payroll.CashAdvanceEntry) payroll.CashAdvanceEntryResponse {
	return payroll.CashAdvanceEntryResponse{
		ID:            e.ID,
		EmployeeID:    e.EmployeeID,
		Delta:         e.Delta,
		BalanceBefore: e.BalanceBefore,
		BalanceAfter:  e.BalanceAfter,
		Note:          e.Note,
		CreatedAt:     e.CreatedAt.Format(time.RFC3339),
	}
}

func (s *PayrollServiceImpl) getEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, payroll.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}
