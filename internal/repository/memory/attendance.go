package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/attendance"
	"github.com/google/uuid"
)

type attendanceRepositoryImpl struct {
	mu      sync.RWMutex
	records []attendance.Record // insertion order
}

func NewAttendanceRepository() attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{}
}

func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	record.Date = attendance.DateOf(record.Date)
	now := time.Now()
	record.CreatedAt, record.UpdatedAt = now, now
	r.records = append(r.records, record)
	return record, nil
}

func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.ID == id {
			return rec, nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := attendance.DateOf(date)
	var result []attendance.Record
	for _, rec := range r.records {
		if rec.EmployeeID == employeeID && rec.Date.Equal(day) {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (r *attendanceRepositoryImpl) GetByLeaveRequestID(ctx context.Context, leaveRequestID string) (attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		if rec.LeaveRequestID != nil && *rec.LeaveRequestID == leaveRequestID {
			return rec, nil
		}
	}
	return attendance.Record{}, attendance.ErrAttendanceNotFound
}

func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, from, to *time.Time) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []attendance.Record
	for _, rec := range r.records {
		if rec.EmployeeID != employeeID {
			continue
		}
		if from != nil && rec.Date.Before(attendance.DateOf(*from)) {
			continue
		}
		if to != nil && rec.Date.After(attendance.DateOf(*to)) {
			continue
		}
		result = append(result, rec)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result, nil
}

func (r *attendanceRepositoryImpl) Update(ctx context.Context, record attendance.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, rec := range r.records {
		if rec.ID == record.ID {
			record.CreatedAt = rec.CreatedAt
			record.Date = attendance.DateOf(record.Date)
			record.UpdatedAt = time.Now()
			r.records[i] = record
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

func (r *attendanceRepositoryImpl) GetStaleOpenSessions(ctx context.Context, before time.Time) ([]attendance.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := attendance.DateOf(before)
	var result []attendance.Record
	for _, rec := range r.records {
		if rec.Status == attendance.StatusPresent && rec.ClockIn != nil && rec.ClockOut == nil && rec.Date.Before(day) {
			result = append(result, rec)
		}
	}
	return result, nil
}

type outletConfigRepositoryImpl struct {
	mu  sync.RWMutex
	cfg *attendance.OutletConfig
}

func NewOutletConfigRepository() attendance.OutletConfigRepository {
	return &outletConfigRepositoryImpl{}
}

func (r *outletConfigRepositoryImpl) Get(ctx context.Context) (attendance.OutletConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.cfg == nil {
		return attendance.DefaultOutletConfig, nil
	}
	return *r.cfg, nil
}

func (r *outletConfigRepositoryImpl) Upsert(ctx context.Context, cfg attendance.OutletConfig) (attendance.OutletConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg.UpdatedAt = time.Now()
	r.cfg = &cfg
	return cfg, nil
}
