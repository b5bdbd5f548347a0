package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/employee"
	"github.com/damdam-laundry/hris-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, name, username, is_active,
	base_monthly_salary, monthly_meal_allowance, daily_deduction_rate,
	payroll_method, free_leave_quota, pay_override, cash_advance_balance,
	created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var (
		emp      employee.Employee
		override []byte
	)
	err := row.Scan(
		&emp.ID, &emp.Name, &emp.Username, &emp.IsActive,
		&emp.BaseMonthlySalary, &emp.MonthlyMealAllowance, &emp.DailyDeductionRate,
		&emp.PayrollMethod, &emp.FreeLeaveQuota, &override, &emp.CashAdvanceBalance,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}
	if len(override) > 0 {
		var o employee.PayOverride
		if err := json.Unmarshal(override, &o); err != nil {
			return employee.Employee{}, fmt.Errorf("failed to decode pay_override: %w", err)
		}
		emp.PayOverride = &o
	}
	return emp, nil
}

func encodeOverride(o *employee.PayOverride) ([]byte, error) {
	if o.IsZero() {
		return nil, nil
	}
	return json.Marshal(o)
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		WHERE ($1 = FALSE OR is_active = TRUE)
		ORDER BY name ASC, id ASC
	`

	rows, err := q.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	override, err := encodeOverride(newEmployee.PayOverride)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to encode pay_override: %w", err)
	}

	query := `
		INSERT INTO employees (
			name, username, is_active,
			base_monthly_salary, monthly_meal_allowance, daily_deduction_rate,
			payroll_method, free_leave_quota, pay_override, cash_advance_balance
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
		) RETURNING id, created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		newEmployee.Name, newEmployee.Username, newEmployee.IsActive,
		newEmployee.BaseMonthlySalary, newEmployee.MonthlyMealAllowance, newEmployee.DailyDeductionRate,
		newEmployee.PayrollMethod, newEmployee.FreeLeaveQuota, override, newEmployee.CashAdvanceBalance,
	).Scan(&newEmployee.ID, &newEmployee.CreatedAt, &newEmployee.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.Employee{}, employee.ErrUsernameExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return newEmployee, nil
}

// ExistsByUsername implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ExistsByUsername(ctx context.Context, username string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM employees WHERE username = $1 AND ($2::uuid IS NULL OR id <> $2::uuid))`

	var exists bool
	if err := q.QueryRow(ctx, query, username, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return exists, nil
}

// Update implements employee.EmployeeRepository. The cash advance balance is left untouched.
func (r *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	override, err := encodeOverride(emp.PayOverride)
	if err != nil {
		return fmt.Errorf("failed to encode pay_override: %w", err)
	}

	query := `
		UPDATE employees SET
			name = $2, username = $3, is_active = $4,
			base_monthly_salary = $5, monthly_meal_allowance = $6, daily_deduction_rate = $7,
			payroll_method = $8, free_leave_quota = $9, pay_override = $10,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		emp.ID, emp.Name, emp.Username, emp.IsActive,
		emp.BaseMonthlySalary, emp.MonthlyMealAllowance, emp.DailyDeductionRate,
		emp.PayrollMethod, emp.FreeLeaveQuota, override,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return employee.ErrUsernameExists
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// SetActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetActive(ctx context.Context, id string, active bool) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET is_active = $2, updated_at = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("failed to set employee active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// UpdateCashAdvanceBalance implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) UpdateCashAdvanceBalance(ctx context.Context, id string, balance decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE employees SET cash_advance_balance = $2, updated_at = NOW() WHERE id = $1`, id, balance)
	if err != nil {
		return fmt.Errorf("failed to update cash advance balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isInvalidUUID treats a malformed id like an unknown one.
func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
