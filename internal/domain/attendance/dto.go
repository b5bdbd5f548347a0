package attendance

import (
	"time"

	"github.com/damdam-laundry/hris-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ClockInRequest struct {
	EmployeeID string    `json:"-"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Now        time.Time `json:"-"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}

	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ClockOutRequest struct {
	EmployeeID string    `json:"-"`
	Now        time.Time `json:"-"`
}

func (r *ClockOutRequest) Validate() error {
	if validator.IsEmpty(r.EmployeeID) {
		return validator.ValidationErrors{{Field: "employee_id", Message: "employee_id is required"}}
	}
	return nil
}

type HistoryFilter struct {
	EmployeeID string
	From       *string `json:"from,omitempty"`
	To         *string `json:"to,omitempty"`
}

// Parse validates the optional YYYY-MM-DD bounds.
func (f *HistoryFilter) Parse() (from, to *time.Time, err error) {
	var errs validator.ValidationErrors

	if f.From != nil && *f.From != "" {
		d, ok := validator.IsValidDate(*f.From)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "from", Message: "must be YYYY-MM-DD"})
		} else {
			from = &d
		}
	}
	if f.To != nil && *f.To != "" {
		d, ok := validator.IsValidDate(*f.To)
		if !ok {
			errs = append(errs, validator.ValidationError{Field: "to", Message: "must be YYYY-MM-DD"})
		} else {
			to = &d
		}
	}
	if len(errs) > 0 {
		return nil, nil, errs
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, ErrInvalidDateRange
	}
	return from, to, nil
}

type AttendanceResponse struct {
	ID             string   `json:"id"`
	EmployeeID     string   `json:"employee_id"`
	EmployeeName   *string  `json:"employee_name,omitempty"`
	Date           string   `json:"date"`
	ClockInTime    *string  `json:"clock_in_time,omitempty"`
	ClockOutTime   *string  `json:"clock_out_time,omitempty"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	IsLate         bool     `json:"is_late"`
	Status         string   `json:"status"`
	LeaveRequestID *string  `json:"leave_request_id,omitempty"`
}

type MonthlyStatsRequest struct {
	EmployeeID string
	Month      string // YYYY-MM, empty means the current month
	Now        time.Time
}

type MonthlyStatsResponse struct {
	EmployeeID          string `json:"employee_id"`
	Month               string `json:"month"`
	OnTimeCount         int    `json:"on_time_count"`
	LateCount           int    `json:"late_count"`
	LeaveCount          int    `json:"leave_count"`
	PendingLeaveCount   int    `json:"pending_leave_count"`
	FreeLeaveQuota      int    `json:"free_leave_quota"`
	RemainingLeaveQuota int    `json:"remaining_leave_quota"`
}

// ========================================
// OUTLET CONFIG DTOs
// ========================================

type OutletConfigResponse struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radius_meters"`
	ClockInTime  string  `json:"clock_in_time"`
	ClockOutTime string  `json:"clock_out_time"`
}

type UpdateOutletConfigRequest struct {
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	RadiusMeters *float64 `json:"radius_meters,omitempty"`
	ClockInTime  *string  `json:"clock_in_time,omitempty"`
	ClockOutTime *string  `json:"clock_out_time,omitempty"`
}

func (r *UpdateOutletConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{Field: "latitude", Message: "latitude must be between -90 and 90"})
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{Field: "longitude", Message: "longitude must be between -180 and 180"})
	}
	if r.RadiusMeters != nil && *r.RadiusMeters <= 0 {
		errs = append(errs, validator.ValidationError{Field: "radius_meters", Message: "must be positive"})
	}
	if r.ClockInTime != nil && !validator.IsValidClockTime(*r.ClockInTime) {
		errs = append(errs, validator.ValidationError{Field: "clock_in_time", Message: "must be HH:MM"})
	}
	if r.ClockOutTime != nil && !validator.IsValidClockTime(*r.ClockOutTime) {
		errs = append(errs, validator.ValidationError{Field: "clock_out_time", Message: "must be HH:MM"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
