package leave

import "context"

type LeaveService interface {
	// SubmitLeave creates a PENDING request and its LEAVE_PENDING attendance record
	SubmitLeave(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)

	// DecideLeave approves or rejects a PENDING request and finalizes the linked attendance record
	DecideLeave(ctx context.Context, req DecideLeaveRequest) (LeaveRequestResponse, error)

	GetLeaveRequest(ctx context.Context, id string) (LeaveRequestResponse, error)
	ListEmployeeLeaveRequests(ctx context.Context, employeeID string) ([]LeaveRequestResponse, error)
	ListPendingLeaveRequests(ctx context.Context) ([]LeaveRequestResponse, error)
}
