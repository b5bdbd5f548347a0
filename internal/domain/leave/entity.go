package leave

import (
	"time"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// IsTerminal reports whether no further decision is possible.
func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected
}

// LeaveRequest is an employee's request to be absent on one date.
type LeaveRequest struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	Reason      string
	EvidenceURL *string
	Status      RequestStatus
	DecidedAt   *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships (for responses)
	EmployeeName *string
}
