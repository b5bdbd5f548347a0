package attendance

import (
	"context"
	"time"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// Create creates a new attendance record
	Create(ctx context.Context, record Record) (Record, error)

	GetByID(ctx context.Context, id string) (Record, error)

	// GetByEmployeeAndDate returns every record on that date. More than one can exist.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]Record, error)

	GetByLeaveRequestID(ctx context.Context, leaveRequestID string) (Record, error)

	// ListByEmployee returns records in ascending date order. Nil bounds are open.
	ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]Record, error)

	Update(ctx context.Context, record Record) error

	// GetStaleOpenSessions returns PRESENT records dated before the given day without a clock-out.
	GetStaleOpenSessions(ctx context.Context, before time.Time) ([]Record, error)
}

type OutletConfigRepository interface {
	// Get returns DefaultOutletConfig when nothing was saved yet.
	Get(ctx context.Context) (OutletConfig, error)
	Upsert(ctx context.Context, cfg OutletConfig) (OutletConfig, error)
}
