package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/attendance"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/employee"
	"github.com/damdam-laundry/hris-backend-go/internal/pkg/geo"
	"github.com/damdam-laundry/hris-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	outletRepo     attendance.OutletConfigRepository
	employeeRepo   employee.EmployeeRepository
	freeLeaveQuota int
	loc            *time.Location
	now            func() time.Time
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	outletRepo attendance.OutletConfigRepository,
	employeeRepo employee.EmployeeRepository,
	freeLeaveQuota int,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		outletRepo:     outletRepo,
		employeeRepo:   employeeRepo,
		freeLeaveQuota: freeLeaveQuota,
		loc:            loc,
		now:            time.Now,
	}
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockInRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.activeEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock(req.Now)
	local := now.In(a.loc)
	today := attendance.DateOf(local)

	existing, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	for _, r := range existing {
		switch r.Status {
		case attendance.StatusPresent:
			return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedIn
		case attendance.StatusLeave, attendance.StatusLeavePending:
			return attendance.AttendanceResponse{}, attendance.ErrOnLeaveToday
		}
	}

	outlet, err := a.outletRepo.Get(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to get outlet config: %w", err)
	}

	center := geo.Point{Latitude: outlet.Latitude, Longitude: outlet.Longitude}
	position := geo.Point{Latitude: req.Latitude, Longitude: req.Longitude}
	if !geo.Within(center, position, outlet.RadiusMeters) {
		slog.Info("clock-in rejected outside radius",
			"employee_id", emp.ID,
			"distance_m", int(geo.Distance(center, position)),
			"radius_m", outlet.RadiusMeters)
		return attendance.AttendanceResponse{}, attendance.ErrOutsideAllowedRadius
	}

	clockIn := now.UTC()
	lat, lng := req.Latitude, req.Longitude
	record, err := a.attendanceRepo.Create(ctx, attendance.Record{
		EmployeeID: emp.ID,
		Date:       today,
		ClockIn:    &clockIn,
		Latitude:   &lat,
		Longitude:  &lng,
		// HH:MM strings compare in clock order
		IsLate: local.Format("15:04") > outlet.ClockInTime,
		Status: attendance.StatusPresent,
	})
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	record.EmployeeName = &emp.Name
	return a.toResponse(record), nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockOutRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	emp, err := a.activeEmployee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	now := a.clock(req.Now)
	today := attendance.DateOf(now.In(a.loc))

	existing, err := a.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}

	var session *attendance.Record
	for i := range existing {
		if existing[i].Status == attendance.StatusPresent {
			session = &existing[i]
			break
		}
	}
	if session == nil {
		return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
	}
	if session.ClockOut != nil {
		return attendance.AttendanceResponse{}, attendance.ErrAlreadyCheckedOut
	}

	clockOut := now.UTC()
	session.ClockOut = &clockOut
	if err := a.attendanceRepo.Update(ctx, *session); err != nil {
		return attendance.AttendanceResponse{}, fmt.Errorf("failed to update attendance: %w", err)
	}

	session.EmployeeName = &emp.Name
	return a.toResponse(*session), nil
}

// History implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) History(ctx context.Context, filter attendance.HistoryFilter) ([]attendance.AttendanceResponse, error) {
	from, to, err := filter.Parse()
	if err != nil {
		return nil, err
	}

	emp, err := a.employee(ctx, filter.EmployeeID)
	if err != nil {
		return nil, err
	}

	records, err := a.attendanceRepo.ListByEmployee(ctx, emp.ID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, r := range records {
		r.EmployeeName = &emp.Name
		responses = append(responses, a.toResponse(r))
	}
	return responses, nil
}

// MonthlyStats implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MonthlyStats(ctx context.Context, req attendance.MonthlyStatsRequest) (attendance.MonthlyStatsResponse, error) {
	var monthStart time.Time
	if req.Month == "" {
		local := a.clock(req.Now).In(a.loc)
		monthStart = time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, time.UTC)
	} else {
		m, ok := validator.ParseMonth(req.Month)
		if !ok {
			return attendance.MonthlyStatsResponse{}, validator.ValidationErrors{{Field: "month", Message: "must be YYYY-MM"}}
		}
		monthStart = m
	}
	monthEnd := monthStart.AddDate(0, 1, -1)

	emp, err := a.employee(ctx, req.EmployeeID)
	if err != nil {
		return attendance.MonthlyStatsResponse{}, err
	}

	records, err := a.attendanceRepo.ListByEmployee(ctx, emp.ID, &monthStart, &monthEnd)
	if err != nil {
		return attendance.MonthlyStatsResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	quota := a.freeLeaveQuota
	if emp.FreeLeaveQuota != nil {
		quota = *emp.FreeLeaveQuota
	}

	stats := attendance.MonthlyStatsResponse{
		EmployeeID:     emp.ID,
		Month:          monthStart.Format("2006-01"),
		FreeLeaveQuota: quota,
	}
	for _, r := range attendance.Deduplicate(records) {
		switch {
		case r.Status == attendance.StatusPresent && r.IsLate:
			stats.LateCount++
		case r.Status == attendance.StatusPresent:
			stats.OnTimeCount++
		case r.Status.CountsAsLeave():
			stats.LeaveCount++
			if r.Status == attendance.StatusLeavePending {
				stats.PendingLeaveCount++
			}
		}
	}
	stats.RemainingLeaveQuota = max(0, quota-stats.LeaveCount)

	return stats, nil
}

// GetOutletConfig implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetOutletConfig(ctx context.Context) (attendance.OutletConfigResponse, error) {
	cfg, err := a.outletRepo.Get(ctx)
	if err != nil {
		return attendance.OutletConfigResponse{}, fmt.Errorf("failed to get outlet config: %w", err)
	}
	return toOutletConfigResponse(cfg), nil
}

// UpdateOutletConfig implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateOutletConfig(ctx context.Context, req attendance.UpdateOutletConfigRequest) (attendance.OutletConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.OutletConfigResponse{}, err
	}

	cfg, err := a.outletRepo.Get(ctx)
	if err != nil {
		return attendance.OutletConfigResponse{}, fmt.Errorf("failed to get outlet config: %w", err)
	}

	if req.Latitude != nil {
		cfg.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		cfg.Longitude = *req.Longitude
	}
	if req.RadiusMeters != nil {
		cfg.RadiusMeters = *req.RadiusMeters
	}
	if req.ClockInTime != nil {
		cfg.ClockInTime = *req.ClockInTime
	}
	if req.ClockOutTime != nil {
		cfg.ClockOutTime = *req.ClockOutTime
	}

	saved, err := a.outletRepo.Upsert(ctx, cfg)
	if err != nil {
		return attendance.OutletConfigResponse{}, fmt.Errorf("failed to save outlet config: %w", err)
	}

	slog.Info("outlet config updated",
		"latitude", saved.Latitude,
		"longitude", saved.Longitude,
		"radius_m", saved.RadiusMeters,
		"clock_in", saved.ClockInTime,
		"clock_out", saved.ClockOutTime)

	return toOutletConfigResponse(saved), nil
}

func (a *AttendanceServiceImpl) clock(t time.Time) time.Time {
	if t.IsZero() {
		return a.now()
	}
	return t
}

func (a *AttendanceServiceImpl) employee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := a.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return emp, nil
}

func (a *AttendanceServiceImpl) activeEmployee(ctx context.Context, id string) (employee.Employee, error) {
	emp, err := a.employee(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}
	if !emp.IsActive {
		return employee.Employee{}, employee.ErrEmployeeInactive
	}
	return emp, nil
}

func (a *AttendanceServiceImpl) toResponse(r attendance.Record) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		Date:           attendance.DateKey(r.Date),
		ClockInTime:    a.formatClock(r.ClockIn),
		ClockOutTime:   a.formatClock(r.ClockOut),
		Latitude:       r.Latitude,
		Longitude:      r.Longitude,
		IsLate:         r.IsLate,
		Status:         string(r.Status),
		LeaveRequestID: r.LeaveRequestID,
	}
}

func (a *AttendanceServiceImpl) formatClock(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.In(a.loc).Format(time.RFC3339)
	return &s
}

func toOutletConfigResponse(cfg attendance.OutletConfig) attendance.OutletConfigResponse {
	return attendance.OutletConfigResponse{
		Latitude:     cfg.Latitude,
		Longitude:    cfg.Longitude,
		RadiusMeters: cfg.RadiusMeters,
		ClockInTime:  cfg.ClockInTime,
		ClockOutTime: cfg.ClockOutTime,
	}
}
