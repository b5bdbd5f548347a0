package employee

import "errors"

var (
	ErrEmployeeNotFound        = errors.New("employee not found")
	ErrUsernameExists          = errors.New("username already exists")
	ErrInvalidPayrollMethod    = errors.New("payroll method must be DAILY_30 or FIXED_4")
	ErrEmployeeAlreadyInactive = errors.New("employee is already inactive")
	ErrEmployeeInactive        = errors.New("employee is inactive")
)
