package employee

import (
	"context"
	"testing"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/employee"
	"github.com/damdam-laundry/hris-backend-go/internal/pkg/validator"
	"github.com/damdam-laundry/hris-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest(username string) employee.CreateEmployeeRequest {
	return employee.CreateEmployeeRequest{
		Name:                 "Siti Aminah",
		Username:             username,
		BaseMonthlySalary:    decimal.NewFromInt(3_000_000),
		MonthlyMealAllowance: decimal.NewFromInt(300_000),
	}
}

func TestEmployeeService_Create_Success(t *testing.T) {
	ctx := context.Background()
	svc := NewEmployeeService(memory.NewEmployeeRepository())

	// Act
	resp, err := svc.CreateEmployee(ctx, validCreateRequest("siti"))

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.True(t, resp.IsActive)
	assert.Equal(t, string(employee.PayrollMethodDailyOverThirty), resp.PayrollMethod)
	assert.True(t, resp.CashAdvanceBalance.IsZero())
	assert.Nil(t, resp.PayOverride)
}

func TestEmployeeService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewEmployeeService(memory.NewEmployeeRepository())

	req := validCreateRequest("Bad Name!")
	req.PayrollMethod = "MONTHLY"
	req.BaseMonthlySalary = decimal.NewFromInt(-1)
	req.PayOverride = &employee.PayOverride{OverQuotaDeduction: func() *decimal.Decimal { d := decimal.NewFromInt(-5); return &d }()}

	_, err := svc.CreateEmployee(ctx, req)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "username")
	assert.Contains(t, fields, "payroll_method")
	assert.Contains(t, fields, "base_monthly_salary")
	assert.Contains(t, fields, "pay_override.over_quota_deduction")
}

func TestEmployeeService_Create_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	svc := NewEmployeeService(memory.NewEmployeeRepository())

	_, err := svc.CreateEmployee(ctx, validCreateRequest("siti"))
	require.NoError(t, err)

	_, err = svc.CreateEmployee(ctx, validCreateRequest("siti"))
	assert.ErrorIs(t, err, employee.ErrUsernameExists)
}

func TestEmployeeService_Update(t *testing.T) {
	ctx := context.Background()
	svc := NewEmployeeService(memory.NewEmployeeRepository())

	created, err := svc.CreateEmployee(ctx, validCreateRequest("siti"))
	require.NoError(t, err)
	_, err = svc.CreateEmployee(ctx, validCreateRequest("budi"))
	require.NoError(t, err)

	method := string(employee.PayrollMethodFixedWeeklyQuarter)
	quota := 2
	flat := decimal.NewFromInt(500_000)
	updated, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{
		ID:             created.ID,
		PayrollMethod:  &method,
		FreeLeaveQuota: &quota,
		PayOverride:    &employee.PayOverride{FlatPeriodBase: &flat, Label: "Flat"},
	})
	require.NoError(t, err)
	assert.Equal(t, method, updated.PayrollMethod)
	require.NotNil(t, updated.FreeLeaveQuota)
	assert.Equal(t, 2, *updated.FreeLeaveQuota)
	require.NotNil(t, updated.PayOverride)
	assert.True(t, flat.Equal(*updated.PayOverride.FlatPeriodBase))
	assert.Equal(t, "Siti Aminah", updated.Name)

	cleared, err := svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: created.ID, ClearPayOverride: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.PayOverride)

	taken := "budi"
	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: created.ID, Username: &taken})
	assert.ErrorIs(t, err, employee.ErrUsernameExists)

	_, err = svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: "missing"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeService_Deactivate(t *testing.T) {
	ctx := context.Background()
	svc := NewEmployeeService(memory.NewEmployeeRepository())

	a, err := svc.CreateEmployee(ctx, validCreateRequest("siti"))
	require.NoError(t, err)
	_, err = svc.CreateEmployee(ctx, validCreateRequest("budi"))
	require.NoError(t, err)

	require.NoError(t, svc.DeactivateEmployee(ctx, a.ID))
	assert.ErrorIs(t, svc.DeactivateEmployee(ctx, a.ID), employee.ErrEmployeeAlreadyInactive)
	assert.ErrorIs(t, svc.DeactivateEmployee(ctx, "missing"), employee.ErrEmployeeNotFound)

	active, err := svc.ListEmployees(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "budi", active[0].Username)

	all, err := svc.ListEmployees(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	got, err := svc.GetEmployee(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}
