package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn records a PRESENT day after the geofence check
	ClockIn(ctx context.Context, req ClockInRequest) (AttendanceResponse, error)

	// ClockOut closes today's session
	ClockOut(ctx context.Context, req ClockOutRequest) (AttendanceResponse, error)

	History(ctx context.Context, filter HistoryFilter) ([]AttendanceResponse, error)

	// MonthlyStats summarises one calendar month for the owner dashboard
	MonthlyStats(ctx context.Context, req MonthlyStatsRequest) (MonthlyStatsResponse, error)

	GetOutletConfig(ctx context.Context) (OutletConfigResponse, error)
	UpdateOutletConfig(ctx context.Context, req UpdateOutletConfigRequest) (OutletConfigResponse, error)
}
