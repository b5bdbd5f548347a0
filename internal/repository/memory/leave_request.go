package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/attendance"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/leave"
	"github.com/google/uuid"
)

type leaveRequestRepositoryImpl struct {
	mu       sync.RWMutex
	requests []leave.LeaveRequest
}

func NewLeaveRequestRepository() leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{}
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	request.Date = attendance.DateOf(request.Date)
	now := time.Now()
	request.CreatedAt, request.UpdatedAt = now, now
	r.requests = append(r.requests, request)
	return request, nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, req := range r.requests {
		if req.ID == id {
			return req, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

func (r *leaveRequestRepositoryImpl) GetOpenByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	day := attendance.DateOf(date)
	var result []leave.LeaveRequest
	for _, req := range r.requests {
		if req.EmployeeID == employeeID && req.Date.Equal(day) && req.Status != leave.RequestStatusRejected {
			result = append(result, req)
		}
	}
	return result, nil
}

// ListByEmployee returns the newest submissions first.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []leave.LeaveRequest
	for _, req := range r.requests {
		if req.EmployeeID == employeeID {
			result = append(result, req)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// ListByStatus returns the oldest submissions first.
func (r *leaveRequestRepositoryImpl) ListByStatus(ctx context.Context, status leave.RequestStatus) ([]leave.LeaveRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []leave.LeaveRequest
	for _, req := range r.requests {
		if req.Status == status {
			result = append(result, req)
		}
	}
	return result, nil
}

func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status leave.RequestStatus, decidedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, req := range r.requests {
		if req.ID == id {
			r.requests[i].Status = status
			r.requests[i].DecidedAt = &decidedAt
			r.requests[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return leave.ErrLeaveRequestNotFound
}
