package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrDuplicateLeaveRequest        = errors.New("a leave request already exists for this date")
	ErrInvalidDecision              = errors.New("decision must be APPROVED or REJECTED")
)
