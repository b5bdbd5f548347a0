package memory

import (
	"context"
	"sync"
	"time"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/payroll"
	"github.com/google/uuid"
)

type payrollRepositoryImpl struct {
	mu          sync.RWMutex
	adjustments map[string]payroll.Adjustment
	entries     []payroll.CashAdvanceEntry
}

func NewPayrollRepository() payroll.PayrollRepository {
	return &payrollRepositoryImpl{adjustments: make(map[string]payroll.Adjustment)}
}

func (r *payrollRepositoryImpl) GetAdjustment(ctx context.Context, employeeID string) (payroll.Adjustment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	adj, ok := r.adjustments[employeeID]
	if !ok {
		return payroll.Adjustment{}, payroll.ErrAdjustmentNotFound
	}
	return adj, nil
}

func (r *payrollRepositoryImpl) UpsertAdjustment(ctx context.Context, adj payroll.Adjustment) (payroll.Adjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if adj.UpdatedAt.IsZero() {
		adj.UpdatedAt = time.Now()
	}
	r.adjustments[adj.EmployeeID] = adj
	return adj, nil
}

func (r *payrollRepositoryImpl) AppendCashAdvanceEntry(ctx context.Context, entry payroll.CashAdvanceEntry) (payroll.CashAdvanceEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry.ID = uuid.NewString()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, entry)
	return entry, nil
}

// ListCashAdvanceEntries returns the employee's ledger oldest first.
func (r *payrollRepositoryImpl) ListCashAdvanceEntries(ctx context.Context, employeeID string) ([]payroll.CashAdvanceEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []payroll.CashAdvanceEntry
	for _, e := range r.entries {
		if e.EmployeeID == employeeID {
			result = append(result, e)
		}
	}
	return result, nil
}
