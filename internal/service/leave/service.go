package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/damdam-laundry/hris-backend-go/internal/domain/attendance"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/employee"
	"github.com/damdam-laundry/hris-backend-go/internal/domain/leave"
	"github.com/damdam-laundry/hris-backend-go/internal/pkg/database"
)

type LeaveServiceImpl struct {
	tx             database.Transactor
	leaveRepo      leave.LeaveRequestRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	now            func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	leaveRepo leave.LeaveRequestRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		tx:             tx,
		leaveRepo:      leaveRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		now:            time.Now,
	}
}

// SubmitLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) SubmitLeave(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	emp, err := l.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return leave.LeaveRequestResponse{}, employee.ErrEmployeeNotFound
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive {
		return leave.LeaveRequestResponse{}, employee.ErrEmployeeInactive
	}

	var created leave.LeaveRequest
	err = l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		open, err := l.leaveRepo.GetOpenByEmployeeAndDate(txCtx, emp.ID, req.ParsedDate)
		if err != nil {
			return fmt.Errorf("failed to check existing leave requests: %w", err)
		}
		if len(open) > 0 {
			return leave.ErrDuplicateLeaveRequest
		}

		created, err = l.leaveRepo.Create(txCtx, leave.LeaveRequest{
			EmployeeID:  emp.ID,
			Date:        req.ParsedDate,
			Reason:      req.Reason,
			EvidenceURL: req.EvidenceURL,
			Status:      leave.RequestStatusPending,
		})
		if err != nil {
			return fmt.Errorf("failed to create leave request: %w", err)
		}

		requestID := created.ID
		if _, err := l.attendanceRepo.Create(txCtx, attendance.Record{
			EmployeeID:     emp.ID,
			Date:           req.ParsedDate,
			Status:         attendance.StatusLeavePending,
			LeaveRequestID: &requestID,
		}); err != nil {
			return fmt.Errorf("failed to create pending attendance: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("leave request submitted",
		"leave_request_id", created.ID,
		"employee_id", emp.ID,
		"date", attendance.DateKey(created.Date))

	created.EmployeeName = &emp.Name
	return leave.ToResponse(created), nil
}

// DecideLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) DecideLeave(ctx context.Context, req leave.DecideLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	decision := leave.RequestStatus(req.Decision)
	recordStatus := attendance.StatusAbsent
	if decision == leave.RequestStatusApproved {
		recordStatus = attendance.StatusLeave
	}

	decidedAt := req.Now
	if decidedAt.IsZero() {
		decidedAt = l.now()
	}

	var decided leave.LeaveRequest
	err := l.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		request, err := l.leaveRepo.GetByID(txCtx, req.RequestID)
		if err != nil {
			return err
		}
		if request.Status != leave.RequestStatusPending {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		if err := l.leaveRepo.UpdateStatus(txCtx, request.ID, decision, decidedAt); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}

		record, err := l.attendanceRepo.GetByLeaveRequestID(txCtx, request.ID)
		switch {
		case err == nil:
			record.Status = recordStatus
			if err := l.attendanceRepo.Update(txCtx, record); err != nil {
				return fmt.Errorf("failed to update linked attendance: %w", err)
			}
		case errors.Is(err, attendance.ErrAttendanceNotFound):
			requestID := request.ID
			if _, err := l.attendanceRepo.Create(txCtx, attendance.Record{
				EmployeeID:     request.EmployeeID,
				Date:           request.Date,
				Status:         recordStatus,
				LeaveRequestID: &requestID,
			}); err != nil {
				return fmt.Errorf("failed to create attendance for leave: %w", err)
			}
		default:
			return fmt.Errorf("failed to get linked attendance: %w", err)
		}

		request.Status = decision
		request.DecidedAt = &decidedAt
		decided = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("leave request decided",
		"leave_request_id", decided.ID,
		"employee_id", decided.EmployeeID,
		"decision", decided.Status,
		"attendance_status", recordStatus)

	return leave.ToResponse(l.withEmployeeName(ctx, decided)), nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	request, err := l.leaveRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.ToResponse(l.withEmployeeName(ctx, request)), nil
}

// ListEmployeeLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListEmployeeLeaveRequests(ctx context.Context, employeeID string) ([]leave.LeaveRequestResponse, error) {
	if _, err := l.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	requests, err := l.leaveRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return l.toResponses(ctx, requests), nil
}

// ListPendingLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListPendingLeaveRequests(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.leaveRepo.ListByStatus(ctx, leave.RequestStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leave requests: %w", err)
	}
	return l.toResponses(ctx, requests), nil
}

func (l *LeaveServiceImpl) toResponses(ctx context.Context, requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, leave.ToResponse(l.withEmployeeName(ctx, r)))
	}
	return responses
}

// withEmployeeName fills the name when the repository did not join it.
func (l *LeaveServiceImpl) withEmployeeName(ctx context.Context, r leave.LeaveRequest) leave.LeaveRequest {
	if r.EmployeeName != nil {
		return r
	}
	if emp, err := l.employeeRepo.GetByID(ctx, r.EmployeeID); err == nil {
		r.EmployeeName = &emp.Name
	}
	return r
}
