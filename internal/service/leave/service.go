package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/ems-labs/ems-backend-go/internal/domain/leave"
	"github.com/ems-labs/ems-backend-go/internal/domain/user"
	"github.com/ems-labs/ems-backend-go/internal/pkg/database"
	"github.com/ems-labs/ems-backend-go/internal/pkg/jwt"
	"github.com/ems-labs/ems-backend-go/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

type LeaveServiceImpl struct {
	runInTx func(ctx context.Context, fn func(tx pgx.Tx) error) error
	leave.LeaveRequestRepository
	leave.LeaveBalanceRepository
}

// CalculateDuration counts the days a leave spans, inclusive of both ends.
// A single-day leave has duration 1.
func CalculateDuration(startDate, endDate time.Time) int {
	days := int(endDate.Sub(startDate).Hours() / 24)
	return days + 1
}

// Apply implements leave.LeaveService.
func (l *LeaveServiceImpl) Apply(ctx context.Context, req leave.ApplyLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	employeeID, err := l.resolveApplicant(ctx, req.EmployeeID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	overlapping, err := l.LeaveRequestRepository.CheckOverlapping(ctx, employeeID, startDate, endDate)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if overlapping {
		return leave.LeaveRequestResponse{}, leave.ErrOverlappingLeave
	}

	request := leave.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leave.LeaveType(req.LeaveType),
		StartDate:  startDate,
		EndDate:    endDate,
		Duration:   CalculateDuration(startDate, endDate),
		Status:     leave.StatusPending,
		Remarks:    req.Remarks,
	}

	created, err := l.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	// The insert does not go through the joined select, so fetch the full row.
	full, err := l.LeaveRequestRepository.GetByID(ctx, created.ID)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to load created leave request: %w", err)
	}

	return leave.ToResponse(full), nil
}

// resolveApplicant decides whose request is being filed. Requests for another
// employee require the Admin role; everyone else applies for themselves.
func (l *LeaveServiceImpl) resolveApplicant(ctx context.Context, requested int) (int, error) {
	if requested > 0 {
		role, err := jwt.RoleFromContext(ctx)
		if err != nil {
			return 0, err
		}
		if role == user.RoleAdmin {
			return requested, nil
		}

		own, err := jwt.EmployeeIDFromContext(ctx)
		if err != nil {
			return 0, err
		}
		if requested != own {
			return 0, user.ErrAdminPrivilegeRequired
		}
		return own, nil
	}

	return jwt.EmployeeIDFromContext(ctx)
}

// GetPending implements leave.LeaveService.
func (l *LeaveServiceImpl) GetPending(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.LeaveRequestRepository.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}

	return toResponses(requests), nil
}

// List implements leave.LeaveService.
func (l *LeaveServiceImpl) List(ctx context.Context, filter leave.RequestFilter) ([]leave.LeaveRequestResponse, error) {
	requests, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return toResponses(requests), nil
}

// GetHistory implements leave.LeaveService.
func (l *LeaveServiceImpl) GetHistory(ctx context.Context) ([]leave.LeaveRequestResponse, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	requests, err := l.LeaveRequestRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave history: %w", err)
	}

	return toResponses(requests), nil
}

// Approve implements leave.LeaveService. The status transition and the
// balance deduction commit or roll back together.
func (l *LeaveServiceImpl) Approve(ctx context.Context, id int, req leave.ApproveLeaveRequest) (leave.LeaveRequestResponse, error) {
	actorID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	err = l.runInTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		request, err := l.LeaveRequestRepository.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if request.Status != leave.StatusPending {
			return leave.ErrAlreadyProcessed
		}

		if err := l.LeaveRequestRepository.UpdateStatus(txCtx, id, leave.StatusApproved, actorID, req.Remarks); err != nil {
			return err
		}

		defaultTotal := leave.DefaultBalance(request.LeaveType)
		if err := l.LeaveBalanceRepository.Init(txCtx, request.EmployeeID, request.LeaveType, defaultTotal); err != nil {
			return err
		}

		return l.LeaveBalanceRepository.AddUsed(txCtx, request.EmployeeID, request.LeaveType, request.Duration)
	})
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to load approved leave request: %w", err)
	}

	return leave.ToResponse(request), nil
}

// Reject implements leave.LeaveService.
func (l *LeaveServiceImpl) Reject(ctx context.Context, id int, req leave.RejectLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	actorID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	if request.Status != leave.StatusPending {
		return leave.LeaveRequestResponse{}, leave.ErrAlreadyProcessed
	}

	if err := l.LeaveRequestRepository.UpdateStatus(ctx, id, leave.StatusRejected, actorID, &req.Reason); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err = l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to load rejected leave request: %w", err)
	}

	return leave.ToResponse(request), nil
}

// GetBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) GetBalance(ctx context.Context, leaveType leave.LeaveType) (leave.BalanceResponse, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	balance, err := l.getOrInitBalance(ctx, employeeID, leaveType)
	if err != nil {
		return leave.BalanceResponse{}, err
	}

	return leave.ToBalanceResponse(*balance), nil
}

// GetBalances implements leave.LeaveService.
func (l *LeaveServiceImpl) GetBalances(ctx context.Context) ([]leave.BalanceResponse, error) {
	employeeID, err := jwt.EmployeeIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	types := []leave.LeaveType{leave.TypeAnnual, leave.TypeSick, leave.TypeCasual}
	responses := make([]leave.BalanceResponse, 0, len(types))

	for _, leaveType := range types {
		balance, err := l.getOrInitBalance(ctx, employeeID, leaveType)
		if err != nil {
			return nil, err
		}
		responses = append(responses, leave.ToBalanceResponse(*balance))
	}

	return responses, nil
}

// getOrInitBalance lazily creates the balance row with the default
// entitlement. The conflict-free insert makes concurrent first reads converge
// on a single row.
func (l *LeaveServiceImpl) getOrInitBalance(ctx context.Context, employeeID int, leaveType leave.LeaveType) (*leave.LeaveBalance, error) {
	balance, err := l.LeaveBalanceRepository.Get(ctx, employeeID, leaveType)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave balance: %w", err)
	}
	if balance != nil {
		return balance, nil
	}

	if err := l.LeaveBalanceRepository.Init(ctx, employeeID, leaveType, leave.DefaultBalance(leaveType)); err != nil {
		return nil, fmt.Errorf("failed to initialize leave balance: %w", err)
	}

	balance, err = l.LeaveBalanceRepository.Get(ctx, employeeID, leaveType)
	if err != nil {
		return nil, fmt.Errorf("failed to get leave balance: %w", err)
	}
	if balance == nil {
		return nil, fmt.Errorf("leave balance missing after initialization")
	}

	return balance, nil
}

func toResponses(requests []leave.LeaveRequest) []leave.LeaveRequestResponse {
	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		responses = append(responses, leave.ToResponse(request))
	}
	return responses
}

func NewLeaveService(
	db *database.DB,
	requestRepo leave.LeaveRequestRepository,
	balanceRepo leave.LeaveBalanceRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		runInTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
		LeaveRequestRepository: requestRepo,
		LeaveBalanceRepository: balanceRepo,
	}
}
