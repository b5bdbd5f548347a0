package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/payroll"
	"github.com/damdam-laundry/hris-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

// GetAdjustment implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetAdjustment(ctx context.Context, employeeID string) (payroll.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, bonus, manual_deduction, updated_at
		FROM payroll_adjustments
		WHERE employee_id = $1
	`

	var adj payroll.Adjustment
	err := q.QueryRow(ctx, query, employeeID).Scan(&adj.EmployeeID, &adj.Bonus, &adj.ManualDeduction, &adj.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return payroll.Adjustment{}, payroll.ErrAdjustmentNotFound
		}
		return payroll.Adjustment{}, fmt.Errorf("failed to get payroll adjustment: %w", err)
	}
	return adj, nil
}

// UpsertAdjustment implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) UpsertAdjustment(ctx context.Context, adj payroll.Adjustment) (payroll.Adjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_adjustments (employee_id, bonus, manual_deduction, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (employee_id) DO UPDATE SET
			bonus = EXCLUDED.bonus,
			manual_deduction = EXCLUDED.manual_deduction,
			updated_at = NOW()
		RETURNING updated_at
	`

	if err := q.QueryRow(ctx, query, adj.EmployeeID, adj.Bonus, adj.ManualDeduction).Scan(&adj.UpdatedAt); err != nil {
		return payroll.Adjustment{}, fmt.Errorf("failed to save payroll adjustment: %w", err)
	}
	return adj, nil
}

// AppendCashAdvanceEntry implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) AppendCashAdvanceEntry(ctx context.Context, entry payroll.CashAdvanceEntry) (payroll.CashAdvanceEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO cash_advance_entries (employee_id, delta, balance_before, balance_after, note)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		entry.EmployeeID, entry.Delta, entry.BalanceBefore, entry.BalanceAfter, entry.Note,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return payroll.CashAdvanceEntry{}, fmt.Errorf("failed to append cash advance entry: %w", err)
	}
	return entry, nil
}

// ListCashAdvanceEntries implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListCashAdvanceEntries(ctx context.Context, employeeID string) ([]payroll.CashAdvanceEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, delta, balance_before, balance_after, note, created_at
		FROM cash_advance_entries
		WHERE employee_id = $1
		ORDER BY created_at ASC, id ASC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cash advance entries: %w", err)
	}
	defer rows.Close()

	var entries []payroll.CashAdvanceEntry
	for rows.Next() {
		var e payroll.CashAdvanceEntry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.Delta, &e.BalanceBefore, &e.BalanceAfter, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cash advance entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
