package payroll

import "context"

// PayrollRepository stores the owner inputs that feed a payroll run.
type PayrollRepository interface {
	// Adjustments
	GetAdjustment(ctx context.Context, employeeID string) (Adjustment, error)
	UpsertAdjustment(ctx context.Context, adj Adjustment) (Adjustment, error)

	// Cash advance ledger, append-only
	AppendCashAdvanceEntry(ctx context.Context, entry CashAdvanceEntry) (CashAdvanceEntry, error)
	ListCashAdvanceEntries(ctx context.Context, employeeID string) ([]CashAdvanceEntry, error)
}
