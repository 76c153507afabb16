package leave

import (
	"context"
	"time"
)

// LeaveRequestRepository defines data access methods for leave requests.
type LeaveRequestRepository interface {
	// Create inserts a Pending request and returns it with its assigned ID
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)

	// GetByID retrieves a single request with employee and approver names
	GetByID(ctx context.Context, id int) (LeaveRequest, error)

	// CheckOverlapping reports whether the employee already has a pending or
	// approved request sharing at least one day with [startDate, endDate]
	CheckOverlapping(ctx context.Context, employeeID int, startDate, endDate time.Time) (bool, error)

	// ListPending retrieves all Pending requests, oldest first
	ListPending(ctx context.Context) ([]LeaveRequest, error)

	// List retrieves requests with optional status and employee filters
	List(ctx context.Context, filter RequestFilter) ([]LeaveRequest, error)

	// ListByEmployee retrieves one employee's full request history, newest first
	ListByEmployee(ctx context.Context, employeeID int) ([]LeaveRequest, error)

	// UpdateStatus records the terminal transition of a request. The write is
	// conditional on the row still being Pending; a request that was already
	// processed (or does not exist) yields ErrAlreadyProcessed, so concurrent
	// approvals cannot both transition the same request.
	UpdateStatus(ctx context.Context, id int, status RequestStatus, actorID int, adminRemarks *string) error
}

// LeaveBalanceRepository defines data access methods for per-type balances.
type LeaveBalanceRepository interface {
	// Get retrieves the balance row for (employee, leave type), nil when the
	// row has never been initialized
	Get(ctx context.Context, employeeID int, leaveType LeaveType) (*LeaveBalance, error)

	// Init inserts the default balance row if absent. The insert is a single
	// conflict-do-nothing statement so concurrent first access cannot
	// double-insert.
	Init(ctx context.Context, employeeID int, leaveType LeaveType, totalLeaves int) error

	// AddUsed increments the used counter after an approval
	AddUsed(ctx context.Context, employeeID int, leaveType LeaveType, days int) error
}
