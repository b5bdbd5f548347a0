package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, activeOnly bool) ([]Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	ExistsByUsername(ctx context.Context, username string, excludeID *string) (bool, error)
	Update(ctx context.Context, emp Employee) error
	SetActive(ctx context.Context, id string, active bool) error

	// UpdateCashAdvanceBalance persists the kasbon balance. Callers compute the new value.
	UpdateCashAdvanceBalance(ctx context.Context, id string, balance decimal.Decimal) error
}
