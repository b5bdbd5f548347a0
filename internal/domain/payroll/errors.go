package payroll

import "errors"

var (
	ErrAdjustmentNotFound = errors.New("payroll adjustment not found")
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrZeroCashAdvance    = errors.New("cash advance delta must not be zero")
)
