package leave

import (
	"context"
)

// LeaveService defines business logic for leave requests and balances
type LeaveService interface {
	// Apply submits a leave request after checking for overlaps with pending
	// or approved requests. Admins may file for another employee via
	// req.EmployeeID; everyone else applies for themselves
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveRequestResponse, error)

	// GetPending retrieves all pending requests, oldest first (admin)
	GetPending(ctx context.Context) ([]LeaveRequestResponse, error)

	// List retrieves requests matching the filter (admin)
	List(ctx context.Context, filter RequestFilter) ([]LeaveRequestResponse, error)

	// GetHistory retrieves the authenticated employee's requests, newest first
	GetHistory(ctx context.Context) ([]LeaveRequestResponse, error)

	// Approve approves a pending request and deducts the balance atomically
	Approve(ctx context.Context, id int, req ApproveLeaveRequest) (LeaveRequestResponse, error)

	// Reject rejects a pending request with a mandatory reason
	Reject(ctx context.Context, id int, req RejectLeaveRequest) (LeaveRequestResponse, error)

	// GetBalance retrieves the authenticated employee's balance for one leave
	// type, initializing it with the default entitlement on first access
	GetBalance(ctx context.Context, leaveType LeaveType) (BalanceResponse, error)

	// GetBalances retrieves the authenticated employee's balances for every
	// known leave type
	GetBalances(ctx context.Context) ([]BalanceResponse, error)
}
