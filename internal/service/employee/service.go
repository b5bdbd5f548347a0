package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	exists, err := s.employeeRepo.ExistsByUsername(ctx, req.Username, nil)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrUsernameExists
	}

	created, err := s.employeeRepo.Create(ctx, employee.Employee{
		Name:                 strings.TrimSpace(req.Name),
		Username:             req.Username,
		IsActive:             true,
		BaseMonthlySalary:    req.BaseMonthlySalary,
		MonthlyMealAllowance: req.MonthlyMealAllowance,
		DailyDeductionRate:   req.DailyDeductionRate,
		PayrollMethod:        employee.PayrollMethod(req.PayrollMethod),
		FreeLeaveQuota:       req.FreeLeaveQuota,
		PayOverride:          normalizeOverride(req.PayOverride),
		CashAdvanceBalance:   decimal.Zero,
	})
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("employee created", "employee_id", created.ID, "username", created.Username)
	return employee.ToResponse(created), nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.get(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(emp), nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.ToResponse(emp))
	}
	return responses, nil
}

// UpdateEmployee implements employee.EmployeeService.
// The cash advance balance is not editable here; it only moves through the ledger.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp, err := s.get(ctx, req.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.Username != nil && *req.Username != emp.Username {
		exists, err := s.employeeRepo.ExistsByUsername(ctx, *req.Username, &emp.ID)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to check username: %w", err)
		}
		if exists {
			return employee.EmployeeResponse{}, employee.ErrUsernameExists
		}
		emp.Username = *req.Username
	}

	if req.Name != nil {
		emp.Name = strings.TrimSpace(*req.Name)
	}
	if req.BaseMonthlySalary != nil {
		emp.BaseMonthlySalary = *req.BaseMonthlySalary
	}
	if req.MonthlyMealAllowance != nil {
		emp.MonthlyMealAllowance = *req.MonthlyMealAllowance
	}
	if req.DailyDeductionRate != nil {
		emp.DailyDeductionRate = req.DailyDeductionRate
	}
	if req.PayrollMethod != nil {
		emp.PayrollMethod = employee.PayrollMethod(*req.PayrollMethod)
	}
	if req.FreeLeaveQuota != nil {
		emp.FreeLeaveQuota = req.FreeLeaveQuota
	}
	switch {
	case req.ClearPayOverride:
		emp.PayOverride = nil
	case req.PayOverride != nil:
		emp.PayOverride = normalizeOverride(req.PayOverride)
	}

	if err := s.employeeRepo.Update(ctx, emp); err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	updated, err := s.get(ctx, emp.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(updated), nil
}

// DeactivateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeactivateEmployee(ctx context.Context, id string) error {
	emp, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if !emp.IsActive {
		return employee.ErrEmployeeAlreadyInactive
	}

	if err := s.employeeRepo.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}

	slog.Info("employee deactivated", "employee_id", id)
	return nil
}

func (s *EmployeeServiceImpl) get(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// normalizeOverride stores nil for an override that changes nothing.
func normalizeOverride(o *employee.PayOverride) *employee.PayOverride {
	if o.IsZero() {
		return nil
	}
	return o
}
