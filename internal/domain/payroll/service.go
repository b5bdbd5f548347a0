package payroll

import (
	"context"
	"io"
)

type PayrollService interface {
	// Reports
	GetReport(ctx context.Context, req ReportRequest) (Report, error)
	GetReports(ctx context.Context, req PeriodRequest) ([]Report, error)
	ExportPayouts(ctx context.Context, req PeriodRequest, w io.Writer) error

	// Adjustments
	GetAdjustment(ctx context.Context, employeeID string) (AdjustmentResponse, error)
	SetAdjustment(ctx context.Context, req SetAdjustmentRequest) (AdjustmentResponse, error)

	// Cash advance (kasbon)
	AdjustCashAdvance(ctx context.Context, req CashAdvanceRequest) (CashAdvanceEntryResponse, error)
	ListCashAdvanceEntries(ctx context.Context, employeeID string) ([]CashAdvanceEntryResponse, error)
}
