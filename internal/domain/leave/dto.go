package leave

import (
	"time"

	"github.com/ems-labs/ems-backend-go/internal/pkg/validator"
)

// ApplyLeaveRequest carries a new leave application. EmployeeID is optional
// and only honored for admins filing on behalf of another employee; everyone
// else applies for the employee bound to their token.
type ApplyLeaveRequest struct {
	EmployeeID int     `json:"employee_id,omitempty"`
	LeaveType  string  `json:"leave_type"`
	StartDate  string  `json:"start_date"` // YYYY-MM-DD
	EndDate    string  `json:"end_date"`   // YYYY-MM-DD
	Remarks    *string `json:"remarks,omitempty"`
}

func (r *ApplyLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	validTypes := []string{string(TypeAnnual), string(TypeSick), string(TypeCasual)}
	if !validator.IsInSlice(r.LeaveType, validTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type",
			Message: "leave_type must be one of: Annual Leave, Sick Leave, Casual Leave",
		})
	}

	startDate, startValid := validator.IsValidDate(r.StartDate)
	if !startValid {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be in YYYY-MM-DD format",
		})
	}

	endDate, endValid := validator.IsValidDate(r.EndDate)
	if !endValid {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be in YYYY-MM-DD format",
		})
	}

	if startValid && endValid && endDate.Before(startDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RejectLeaveRequest struct {
	LeaveID int    `json:"-"`
	Reason  string `json:"reason"`
}

func (r *RejectLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "rejection reason is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ApproveLeaveRequest struct {
	LeaveID int     `json:"-"`
	Remarks *string `json:"remarks,omitempty"`
}

// RequestFilter narrows the admin listing. Nil fields match everything.
type RequestFilter struct {
	Status     *RequestStatus
	EmployeeID *int
}

type LeaveRequestResponse struct {
	ID             int     `json:"id"`
	EmployeeID     int     `json:"employee_id"`
	EmployeeName   string  `json:"employee_name"`
	LeaveType      string  `json:"leave_type"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date"`
	Duration       int     `json:"duration"`
	Status         string  `json:"status"`
	Remarks        *string `json:"remarks,omitempty"`
	RequestDate    string  `json:"request_date"`
	ApprovedBy     *int    `json:"approved_by,omitempty"`
	ApprovedByName *string `json:"approved_by_name,omitempty"`
	AdminRemarks   *string `json:"admin_remarks,omitempty"`
}

func ToResponse(lr LeaveRequest) LeaveRequestResponse {
	return LeaveRequestResponse{
		ID:             lr.ID,
		EmployeeID:     lr.EmployeeID,
		EmployeeName:   lr.EmployeeName,
		LeaveType:      string(lr.LeaveType),
		StartDate:      lr.StartDate.Format("2006-01-02"),
		EndDate:        lr.EndDate.Format("2006-01-02"),
		Duration:       lr.Duration,
		Status:         string(lr.Status),
		Remarks:        lr.Remarks,
		RequestDate:    lr.RequestDate.Format(time.RFC3339),
		ApprovedBy:     lr.ApprovedBy,
		ApprovedByName: lr.ApprovedByName,
		AdminRemarks:   lr.AdminRemarks,
	}
}

type BalanceResponse struct {
	EmployeeID  int    `json:"employee_id"`
	LeaveType   string `json:"leave_type"`
	TotalLeaves int    `json:"total_leaves"`
	UsedLeaves  int    `json:"used_leaves"`
	Remaining   int    `json:"remaining"`
}

func ToBalanceResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		EmployeeID:  b.EmployeeID,
		LeaveType:   string(b.LeaveType),
		TotalLeaves: b.TotalLeaves,
		UsedLeaves:  b.UsedLeaves,
		Remaining:   b.Remaining(),
	}
}
