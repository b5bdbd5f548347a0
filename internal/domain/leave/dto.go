package leave

import (
	"time"

	"github.com/damdam-laundry/hris-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	EmployeeID  string  `json:"-"`
	Date        string  `json:"date"`
	Reason      string  `json:"reason"`
	EvidenceURL *string `json:"evidence_url,omitempty"`

	ParsedDate time.Time `json:"-"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if d, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be YYYY-MM-DD"})
	} else {
		r.ParsedDate = d
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DecideLeaveRequest struct {
	RequestID string    `json:"-"`
	Decision  string    `json:"decision"`
	Now       time.Time `json:"-"`
}

func (r *DecideLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.RequestID) {
		errs = append(errs, validator.ValidationError{Field: "request_id", Message: "is required"})
	}
	if RequestStatus(r.Decision) != RequestStatusApproved && RequestStatus(r.Decision) != RequestStatusRejected {
		errs = append(errs, validator.ValidationError{Field: "decision", Message: "must be APPROVED or REJECTED"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Date         string  `json:"date"`
	Reason       string  `json:"reason"`
	EvidenceURL  *string `json:"evidence_url,omitempty"`
	Status       string  `json:"status"`
	DecidedAt    *string `json:"decided_at,omitempty"`
	SubmittedAt  string  `json:"submitted_at"`
}

func ToResponse(r LeaveRequest) LeaveRequestResponse {
	var decidedAt *string
	if r.DecidedAt != nil {
		s := r.DecidedAt.Format(time.RFC3339)
		decidedAt = &s
	}
	return LeaveRequestResponse{
		ID:           r.ID,
		EmployeeID:   r.EmployeeID,
		EmployeeName: r.EmployeeName,
		Date:         r.Date.Format("2006-01-02"),
		Reason:       r.Reason,
		EvidenceURL:  r.EvidenceURL,
		Status:       string(r.Status),
		DecidedAt:    decidedAt,
		SubmittedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}
