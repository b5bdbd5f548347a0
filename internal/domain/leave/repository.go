package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// GetOpenByEmployeeAndDate returns PENDING or APPROVED requests for that date.
	GetOpenByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]LeaveRequest, error)

	ListByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
	ListByStatus(ctx context.Context, status RequestStatus) ([]LeaveRequest, error)
	UpdateStatus(ctx context.Context, id string, status RequestStatus, decidedAt time.Time) error
}
