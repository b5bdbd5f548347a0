package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/employee"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type employeeRepositoryImpl struct {
	mu        sync.RWMutex
	employees map[string]employee.Employee
}

func NewEmployeeRepository() employee.EmployeeRepository {
	return &employeeRepositoryImpl{employees: make(map[string]employee.Employee)}
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	emp, ok := r.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

// List orders by name, like the SQL implementation.
func (r *employeeRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]employee.Employee, 0, len(r.employees))
	for _, emp := range r.employees {
		if activeOnly && !emp.IsActive {
			continue
		}
		result = append(result, emp)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Name == result[j].Name {
			return result[i].ID < result[j].ID
		}
		return result[i].Name < result[j].Name
	})
	return result, nil
}

func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if newEmployee.ID == "" {
		newEmployee.ID = uuid.NewString()
	}
	now := time.Now()
	newEmployee.CreatedAt, newEmployee.UpdatedAt = now, now
	r.employees[newEmployee.ID] = newEmployee
	return newEmployee, nil
}

func (r *employeeRepositoryImpl) ExistsByUsername(ctx context.Context, username string, excludeID *string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, emp := range r.employees {
		if emp.Username != username {
			continue
		}
		if excludeID != nil && emp.ID == *excludeID {
			continue
		}
		return true, nil
	}
	return false, nil
}

func (r *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.employees[emp.ID]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.CreatedAt = current.CreatedAt
	emp.CashAdvanceBalance = current.CashAdvanceBalance
	emp.UpdatedAt = time.Now()
	r.employees[emp.ID] = emp
	return nil
}

func (r *employeeRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.IsActive = active
	emp.UpdatedAt = time.Now()
	r.employees[id] = emp
	return nil
}

func (r *employeeRepositoryImpl) UpdateCashAdvanceBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	emp, ok := r.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.CashAdvanceBalance = balance
	emp.UpdatedAt = time.Now()
	r.employees[id] = emp
	return nil
}
