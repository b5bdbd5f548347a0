package attendance

import (
	"time"
)

// Status of one attendance observation.
type Status string

const (
	StatusPresent      Status = "PRESENT"
	StatusLeave        Status = "LEAVE"
	StatusAbsent       Status = "ABSENT"
	StatusLeavePending Status = "LEAVE_PENDING"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusLeave, StatusAbsent, StatusLeavePending:
		return true
	}
	return false
}

// CountsAsLeave reports whether the day consumes the monthly free-leave quota.
func (s Status) CountsAsLeave() bool {
	return s == StatusLeave || s == StatusAbsent || s == StatusLeavePending
}

// IsFinalizedAbsence reports whether the day can be charged.
// LEAVE_PENDING never is until the owner decides.
func (s Status) IsFinalizedAbsence() bool {
	return s == StatusLeave || s == StatusAbsent
}

// Record is one attendance observation for one employee on one calendar date.
type Record struct {
	ID             string
	EmployeeID     string
	Date           time.Time // calendar date, time component is zero
	ClockIn        *time.Time
	ClockOut       *time.Time
	Latitude       *float64
	Longitude      *float64
	IsLate         bool
	Status         Status
	LeaveRequestID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO
	EmployeeName *string
}

// OutletConfig is the geofence and working hours of the outlet.
type OutletConfig struct {
	Latitude     float64
	Longitude    float64
	RadiusMeters float64
	ClockInTime  string // HH:MM, local time
	ClockOutTime string // HH:MM, local time
	UpdatedAt    time.Time
}

// DefaultOutletConfig is used until the owner saves one.
var DefaultOutletConfig = OutletConfig{
	Latitude:     -6.200000,
	Longitude:    106.816666,
	RadiusMeters: 100,
	ClockInTime:  "08:00",
	ClockOutTime: "17:00",
}

// DateOf truncates t to its calendar date in t's own location and returns it as UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey is the YYYY-MM-DD form used to key records by day.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
