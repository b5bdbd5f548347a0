package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/attendance"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/employee"
)

type AttendanceJobs struct {
	attendanceRepo attendance.AttendanceRepository
	outletRepo     attendance.OutletConfigRepository
	employeeRepo   employee.EmployeeRepository
	loc            *time.Location
	markAbsent     bool
	now            func() time.Time
}

func NewAttendanceJobs(
	attendanceRepo attendance.AttendanceRepository,
	outletRepo attendance.OutletConfigRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
	markAbsent bool,
) *AttendanceJobs {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceJobs{
		attendanceRepo: attendanceRepo,
		outletRepo:     outletRepo,
		employeeRepo:   employeeRepo,
		loc:            loc,
		markAbsent:     markAbsent,
		now:            time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_attendances", 1*time.Hour, j.AutoCloseStaleAttendances)
	if j.markAbsent {
		scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
	}
}

// AutoCloseStaleAttendances sets the clock-out of every PRESENT record dated before today
// that was never closed, using the outlet's clock-out time on the record's own date.
func (j *AttendanceJobs) AutoCloseStaleAttendances(ctx context.Context) error {
	today := attendance.DateOf(j.now().In(j.loc))

	staleSessions, err := j.attendanceRepo.GetStaleOpenSessions(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to get stale sessions: %w", err)
	}
	if len(staleSessions) == 0 {
		return nil
	}

	outlet, err := j.outletRepo.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to get outlet config: %w", err)
	}
	clockOut, err := time.Parse("15:04", outlet.ClockOutTime)
	if err != nil {
		return fmt.Errorf("invalid outlet clock-out time %q: %w", outlet.ClockOutTime, err)
	}

	closedCount := 0
	for _, session := range staleSessions {
		out := time.Date(
			session.Date.Year(), session.Date.Month(), session.Date.Day(),
			clockOut.Hour(), clockOut.Minute(), 0, 0,
			j.loc,
		).UTC()
		if session.ClockIn != nil && out.Before(*session.ClockIn) {
			out = *session.ClockIn
		}
		session.ClockOut = &out

		if err := j.attendanceRepo.Update(ctx, session); err != nil {
			slog.Error("Cron: Failed to auto-close attendance",
				"attendance_id", session.ID,
				"employee_id", session.EmployeeID,
				"error", err)
			continue
		}
		closedCount++
	}

	slog.Info("Cron: Auto-closed stale attendances", "count", closedCount)
	return nil
}

// MarkAbsentEmployees writes an ABSENT record for yesterday for every active employee
// who has no record at all on that date. Running it twice is harmless.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	yesterday := attendance.DateOf(j.now().In(j.loc)).AddDate(0, 0, -1)

	employees, err := j.employeeRepo.List(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to list employees: %w", err)
	}

	marked := 0
	for _, emp := range employees {
		existing, err := j.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, yesterday)
		if err != nil {
			slog.Error("Cron: Failed to read attendance", "employee_id", emp.ID, "error", err)
			continue
		}
		if len(existing) > 0 {
			continue
		}

		if _, err := j.attendanceRepo.Create(ctx, attendance.Record{
			EmployeeID: emp.ID,
			Date:       yesterday,
			Status:     attendance.StatusAbsent,
		}); err != nil {
			slog.Error("Cron: Failed to mark absent", "employee_id", emp.ID, "error", err)
			continue
		}
		marked++
	}

	slog.Info("Cron: Marked absent employees", "date", attendance.DateKey(yesterday), "count", marked)
	return nil
}
