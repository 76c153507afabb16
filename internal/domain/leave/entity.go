package leave

import (
	"time"
)

type LeaveType string

const (
	TypeAnnual LeaveType = "Annual Leave"
	TypeSick   LeaveType = "Sick Leave"
	TypeCasual LeaveType = "Casual Leave"
)

// DefaultBalance is the allotment a balance row is initialized with the first
// time it is queried. Unknown leave types get 0.
func DefaultBalance(leaveType LeaveType) int {
	switch leaveType {
	case TypeAnnual:
		return 10
	case TypeSick:
		return 5
	case TypeCasual:
		return 7
	default:
		return 0
	}
}

type RequestStatus string

const (
	StatusPending  RequestStatus = "Pending"
	StatusApproved RequestStatus = "Approved"
	StatusRejected RequestStatus = "Rejected"
)

// LeaveRequest transitions exactly once from Pending to Approved or Rejected
// and never reverts.
type LeaveRequest struct {
	ID             int
	EmployeeID     int
	EmployeeName   string
	LeaveType      LeaveType
	StartDate      time.Time
	EndDate        time.Time
	Duration       int
	Status         RequestStatus
	Remarks        *string
	RequestDate    time.Time
	ApprovedBy     *int
	ApprovedByName *string
	AdminRemarks   *string
}

// LeaveBalance is keyed by (employee, leave type).
type LeaveBalance struct {
	EmployeeID  int
	LeaveType   LeaveType
	TotalLeaves int
	UsedLeaves  int
}

// Remaining is the derived balance surfaced to callers.
func (b LeaveBalance) Remaining() int {
	return b.TotalLeaves - b.UsedLeaves
}
