package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/attendance"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/employee"
	"github.com/damdam-laundry/hris-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*60*60)

type jobFixture struct {
	jobs           *AttendanceJobs
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func newJobFixture(t *testing.T, now time.Time, markAbsent bool) jobFixture {
	t.Helper()
	attendanceRepo := memory.NewAttendanceRepository()
	employeeRepo := memory.NewEmployeeRepository()
	jobs := NewAttendanceJobs(attendanceRepo, memory.NewOutletConfigRepository(), employeeRepo, wib, markAbsent)
	jobs.now = func() time.Time { return now }
	return jobFixture{jobs: jobs, attendanceRepo: attendanceRepo, employeeRepo: employeeRepo}
}

func (f jobFixture) employee(t *testing.T, username string, active bool) employee.Employee {
	t.Helper()
	emp, err := f.employeeRepo.Create(context.Background(), employee.Employee{
		Name:          username,
		Username:      username,
		IsActive:      active,
		PayrollMethod: employee.PayrollMethodDailyOverThirty,
	})
	require.NoError(t, err)
	return emp
}

func TestAutoCloseStaleAttendances(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 6, 9, 0, 0, 0, wib)
	f := newJobFixture(t, now, false)
	emp := f.employee(t, "sari", true)

	staleIn := time.Date(2024, 3, 4, 8, 0, 0, 0, wib)
	lateIn := time.Date(2024, 3, 5, 18, 0, 0, 0, wib) // after the 17:00 outlet clock-out
	todayIn := time.Date(2024, 3, 6, 8, 0, 0, 0, wib)

	stale, err := f.attendanceRepo.Create(ctx, attendance.Record{EmployeeID: emp.ID, Date: staleIn, ClockIn: &staleIn, Status: attendance.StatusPresent})
	require.NoError(t, err)
	late, err := f.attendanceRepo.Create(ctx, attendance.Record{EmployeeID: emp.ID, Date: lateIn, ClockIn: &lateIn, Status: attendance.StatusPresent})
	require.NoError(t, err)
	today, err := f.attendanceRepo.Create(ctx, attendance.Record{EmployeeID: emp.ID, Date: todayIn, ClockIn: &todayIn, Status: attendance.StatusPresent})
	require.NoError(t, err)

	require.NoError(t, f.jobs.AutoCloseStaleAttendances(ctx))

	got, err := f.attendanceRepo.GetByID(ctx, stale.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ClockOut)
	assert.True(t, got.ClockOut.Equal(time.Date(2024, 3, 4, 17, 0, 0, 0, wib)), got.ClockOut.String())

	got, err = f.attendanceRepo.GetByID(ctx, late.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ClockOut)
	assert.True(t, got.ClockOut.Equal(lateIn), "clock-out never precedes clock-in")

	got, err = f.attendanceRepo.GetByID(ctx, today.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ClockOut, "today's session stays open")
}

func TestMarkAbsentEmployees(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 6, 0, 30, 0, 0, wib)
	f := newJobFixture(t, now, true)

	present := f.employee(t, "present", true)
	missing := f.employee(t, "missing", true)
	inactive := f.employee(t, "inactive", false)

	yesterday := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	_, err := f.attendanceRepo.Create(ctx, attendance.Record{EmployeeID: present.ID, Date: yesterday, Status: attendance.StatusPresent})
	require.NoError(t, err)

	require.NoError(t, f.jobs.MarkAbsentEmployees(ctx))
	require.NoError(t, f.jobs.MarkAbsentEmployees(ctx))

	records, err := f.attendanceRepo.GetByEmployeeAndDate(ctx, missing.ID, yesterday)
	require.NoError(t, err)
	require.Len(t, records, 1, "second run must not duplicate")
	assert.Equal(t, attendance.StatusAbsent, records[0].Status)

	records, err = f.attendanceRepo.GetByEmployeeAndDate(ctx, present.ID, yesterday)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, attendance.StatusPresent, records[0].Status)

	records, err = f.attendanceRepo.GetByEmployeeAndDate(ctx, inactive.ID, yesterday)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestRegisterJobs(t *testing.T) {
	t.Run("mark absent disabled", func(t *testing.T) {
		s := NewScheduler(nil)
		newJobFixture(t, time.Now(), false).jobs.RegisterJobs(s)

		jobs := s.Jobs()
		require.Len(t, jobs, 1)
		assert.Equal(t, "auto_close_stale_attendances", jobs[0].Name)
	})

	t.Run("mark absent enabled", func(t *testing.T) {
		s := NewScheduler(nil)
		newJobFixture(t, time.Now(), true).jobs.RegisterJobs(s)
		assert.Len(t, s.Jobs(), 2)
	})
}

func TestScheduler(t *testing.T) {
	ctx := context.Background()
	s := NewScheduler(nil)

	var calls []string
	boom := errors.New("boom")
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		calls = append(calls, "first")
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		calls = append(calls, "second")
		return boom
	})

	s.RunOnce(ctx)
	assert.Equal(t, []string{"first", "second"}, calls)

	assert.ErrorIs(t, s.RunJob(ctx, "second"), boom)
	assert.NoError(t, s.RunJob(ctx, "first"))
	assert.Error(t, s.RunJob(ctx, "missing"))
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(nil)

	ran := make(chan struct{}, 1)
	s.AddJob("tick", time.Hour, func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	})

	s.Start()
	select {
	case <-ran:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()
}
