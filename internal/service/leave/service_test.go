package leave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ems-labs/ems-backend-go/internal/domain/leave"
	"github.com/ems-labs/ems-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsContext(t *testing.T, userID, employeeID int, role user.Role) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret-key-for-jwt"), nil)
	tok, _, err := ja.Encode(map[string]interface{}{
		"user_id":     userID,
		"username":    "tester",
		"employee_id": employeeID,
		"role":        string(role),
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func authedContext(t *testing.T, userID, employeeID int) context.Context {
	t.Helper()
	return claimsContext(t, userID, employeeID, user.RoleEmployee)
}

type fakeRequestRepo struct {
	requests map[int]leave.LeaveRequest
	nextID   int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{requests: make(map[int]leave.LeaveRequest), nextID: 1}
}

func (f *fakeRequestRepo) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	request.ID = f.nextID
	request.RequestDate = time.Now()
	f.nextID++
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id int) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
	}
	return request, nil
}

func (f *fakeRequestRepo) CheckOverlapping(ctx context.Context, employeeID int, startDate, endDate time.Time) (bool, error) {
	for _, request := range f.requests {
		if request.EmployeeID != employeeID {
			continue
		}
		if request.Status == leave.StatusRejected {
			continue
		}
		if !request.StartDate.After(endDate) && !request.EndDate.Before(startDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) ListPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if request.Status == leave.StatusPending {
			out = append(out, request)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) List(ctx context.Context, filter leave.RequestFilter) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if filter.Status != nil && request.Status != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && request.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, request)
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByEmployee(ctx context.Context, employeeID int) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if request.EmployeeID == employeeID {
			out = append(out, request)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) UpdateStatus(ctx context.Context, id int, status leave.RequestStatus, actorID int, adminRemarks *string) error {
	request, ok := f.requests[id]
	if !ok || request.Status != leave.StatusPending {
		return leave.ErrAlreadyProcessed
	}
	request.Status = status
	request.ApprovedBy = &actorID
	request.AdminRemarks = adminRemarks
	f.requests[id] = request
	return nil
}

type fakeBalanceRepo struct {
	balances   map[leave.LeaveType]*leave.LeaveBalance
	addUsedErr error
}

func newFakeBalanceRepo() *fakeBalanceRepo {
	return &fakeBalanceRepo{balances: make(map[leave.LeaveType]*leave.LeaveBalance)}
}

func (f *fakeBalanceRepo) Get(ctx context.Context, employeeID int, leaveType leave.LeaveType) (*leave.LeaveBalance, error) {
	balance, ok := f.balances[leaveType]
	if !ok {
		return nil, nil
	}
	copied := *balance
	return &copied, nil
}

func (f *fakeBalanceRepo) Init(ctx context.Context, employeeID int, leaveType leave.LeaveType, totalLeaves int) error {
	if _, ok := f.balances[leaveType]; ok {
		return nil
	}
	f.balances[leaveType] = &leave.LeaveBalance{
		EmployeeID:  employeeID,
		LeaveType:   leaveType,
		TotalLeaves: totalLeaves,
	}
	return nil
}

func (f *fakeBalanceRepo) AddUsed(ctx context.Context, employeeID int, leaveType leave.LeaveType, days int) error {
	if f.addUsedErr != nil {
		return f.addUsedErr
	}
	balance, ok := f.balances[leaveType]
	if !ok {
		return leave.ErrLeaveRequestNotFound
	}
	balance.UsedLeaves += days
	return nil
}

func newTestService() (*fakeRequestRepo, *fakeBalanceRepo, leave.LeaveService) {
	requestRepo := newFakeRequestRepo()
	balanceRepo := newFakeBalanceRepo()
	return requestRepo, balanceRepo, newServiceWith(requestRepo, balanceRepo)
}

func newServiceWith(requestRepo leave.LeaveRequestRepository, balanceRepo leave.LeaveBalanceRepository) leave.LeaveService {
	return &LeaveServiceImpl{
		runInTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return fn(nil)
		},
		LeaveRequestRepository: requestRepo,
		LeaveBalanceRepository: balanceRepo,
	}
}

func TestCalculateDuration(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{"single day", day(2), day(2), 1},
		{"working week", day(2), day(6), 5},
		{"spanning a month boundary", day(30), time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateDuration(tt.start, tt.end))
		})
	}
}

func TestDefaultBalance(t *testing.T) {
	assert.Equal(t, 10, leave.DefaultBalance(leave.TypeAnnual))
	assert.Equal(t, 5, leave.DefaultBalance(leave.TypeSick))
	assert.Equal(t, 7, leave.DefaultBalance(leave.TypeCasual))
	assert.Equal(t, 0, leave.DefaultBalance(leave.LeaveType("Sabbatical")))
}

func TestLeaveService_Apply_Success(t *testing.T) {
	_, _, svc := newTestService()
	ctx := authedContext(t, 1, 7)

	resp, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		LeaveType: string(leave.TypeAnnual),
		StartDate: "2026-03-02",
		EndDate:   "2026-03-06",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, resp.EmployeeID)
	assert.Equal(t, 5, resp.Duration)
	assert.Equal(t, string(leave.StatusPending), resp.Status)
}

func TestLeaveService_Apply_Overlapping(t *testing.T) {
	_, _, svc := newTestService()
	ctx := authedContext(t, 1, 7)

	_, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		LeaveType: string(leave.TypeAnnual),
		StartDate: "2026-03-02",
		EndDate:   "2026-03-06",
	})
	require.NoError(t, err)

	// Shares one day with the pending request above.
	_, err = svc.Apply(ctx, leave.ApplyLeaveRequest{
		LeaveType: string(leave.TypeSick),
		StartDate: "2026-03-06",
		EndDate:   "2026-03-09",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingLeave)
}

func TestLeaveService_Apply_AdjacentRangesAllowed(t *testing.T) {
	_, _, svc := newTestService()
	ctx := authedContext(t, 1, 7)

	_, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		LeaveType: string(leave.TypeAnnual),
		StartDate: "2026-03-02",
		EndDate:   "2026-03-06",
	})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, leave.ApplyLeaveRequest{
		LeaveType: string(leave.TypeAnnual),
		StartDate: "2026-03-09",
		EndDate:   "2026-03-10",
	})
	assert.NoError(t, err)
}

func TestLeaveService_Apply_OtherEmployeeUnaffected(t *testing.T) {
	_, _, svc := newTestService()

	_, err := svc.Apply(authedContext(t, 1, 7), leave.ApplyLeaveRequest{
		LeaveType: string(leave.TypeAnnual),
		StartDate: "2026-03-02",
		EndDate:   "2026-03-06",
	})
	require.NoError(t, err)

	// Same dates, different employee.
	_, err = svc.Apply(authedContext(t, 2, 8), leave.ApplyLeaveRequest{
		LeaveType: string(leave.TypeAnnual),
		StartDate: "2026-03-02",
		EndDate:   "2026-03-06",
	})
	assert.NoError(t, err)
}

func TestLeaveService_Apply_RejectedRequestDoesNotBlock(t *testing.T) {
	requestRepo, _, svc := newTestService()
	requestRepo.requests[1] = leave.LeaveRequest{
		ID:         1,
		EmployeeID: 7,
		Status:     leave.StatusRejected,
		StartDate:  time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC),
	}
	requestRepo.nextID = 2

	_, err := svc.Apply(authedContext(t, 1, 7), leave.ApplyLeaveRequest{
		LeaveType: string(leave.TypeAnnual),
		StartDate: "2026-03-04",
		EndDate:   "2026-03-05",
	})
	assert.NoError(t, err)
}

func TestLeaveService_Apply_InvalidDates(t *testing.T) {
	_, _, svc := newTestService()
	ctx := authedContext(t, 1, 7)

	_, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		LeaveType: string(leave.TypeAnnual),
		StartDate: "2026-03-06",
		EndDate:   "2026-03-02",
	})
	assert.Error(t, err)
}

func TestLeaveService_Apply_AdminAppliesOnBehalf(t *testing.T) {
	_, _, svc := newTestService()
	ctx := claimsContext(t, 1, 3, user.RoleAdmin)

	resp, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		EmployeeID: 99,
		LeaveType:  string(leave.TypeAnnual),
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-06",
	})
	require.NoError(t, err)

	assert.Equal(t, 99, resp.EmployeeID)
}

func TestLeaveService_Apply_OnBehalfRequiresAdmin(t *testing.T) {
	requestRepo, _, svc := newTestService()
	ctx := authedContext(t, 1, 7)

	_, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		EmployeeID: 99,
		LeaveType:  string(leave.TypeAnnual),
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-06",
	})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
	assert.Empty(t, requestRepo.requests)
}

func TestLeaveService_Apply_OwnEmployeeIDAllowed(t *testing.T) {
	_, _, svc := newTestService()
	ctx := authedContext(t, 1, 7)

	resp, err := svc.Apply(ctx, leave.ApplyLeaveRequest{
		EmployeeID: 7,
		LeaveType:  string(leave.TypeAnnual),
		StartDate:  "2026-03-02",
		EndDate:    "2026-03-06",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, resp.EmployeeID)
}

func TestLeaveService_Reject_RequiresReason(t *testing.T) {
	requestRepo, _, svc := newTestService()
	requestRepo.requests[1] = leave.LeaveRequest{ID: 1, EmployeeID: 7, Status: leave.StatusPending}
	requestRepo.nextID = 2

	ctx := authedContext(t, 1, 7)
	_, err := svc.Reject(ctx, 1, leave.RejectLeaveRequest{})
	assert.Error(t, err)
}

func TestLeaveService_Reject_AlreadyProcessed(t *testing.T) {
	requestRepo, _, svc := newTestService()
	requestRepo.requests[1] = leave.LeaveRequest{ID: 1, EmployeeID: 7, Status: leave.StatusApproved}
	requestRepo.nextID = 2

	ctx := authedContext(t, 1, 7)
	_, err := svc.Reject(ctx, 1, leave.RejectLeaveRequest{Reason: "Team is short-staffed"})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
}

func TestLeaveService_Reject_Success(t *testing.T) {
	requestRepo, _, svc := newTestService()
	requestRepo.requests[1] = leave.LeaveRequest{ID: 1, EmployeeID: 7, Status: leave.StatusPending}
	requestRepo.nextID = 2

	ctx := authedContext(t, 42, 7)
	resp, err := svc.Reject(ctx, 1, leave.RejectLeaveRequest{Reason: "Team is short-staffed"})
	require.NoError(t, err)

	assert.Equal(t, string(leave.StatusRejected), resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, 42, *resp.ApprovedBy)
	require.NotNil(t, resp.AdminRemarks)
	assert.Equal(t, "Team is short-staffed", *resp.AdminRemarks)
}

// pendingSnapshotRepo serves GetByID from a snapshot in which the request is
// still Pending, simulating two admins who each read the request before
// either decision lands.
type pendingSnapshotRepo struct {
	*fakeRequestRepo
}

func (f *pendingSnapshotRepo) GetByID(ctx context.Context, id int) (leave.LeaveRequest, error) {
	request, err := f.fakeRequestRepo.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	request.Status = leave.StatusPending
	return request, nil
}

func TestLeaveService_Reject_ConcurrentDecisionsOnlyOneWins(t *testing.T) {
	requestRepo := newFakeRequestRepo()
	requestRepo.requests[1] = leave.LeaveRequest{ID: 1, EmployeeID: 7, Status: leave.StatusPending}
	requestRepo.nextID = 2

	svc := newServiceWith(&pendingSnapshotRepo{requestRepo}, newFakeBalanceRepo())
	ctx := authedContext(t, 42, 7)

	_, firstErr := svc.Reject(ctx, 1, leave.RejectLeaveRequest{Reason: "Team is short-staffed"})
	_, secondErr := svc.Reject(ctx, 1, leave.RejectLeaveRequest{Reason: "Project deadline"})

	assert.NoError(t, firstErr)
	assert.ErrorIs(t, secondErr, leave.ErrAlreadyProcessed)

	stored := requestRepo.requests[1]
	assert.Equal(t, leave.StatusRejected, stored.Status)
	require.NotNil(t, stored.AdminRemarks)
	assert.Equal(t, "Team is short-staffed", *stored.AdminRemarks)
}

func TestLeaveService_Approve_Success(t *testing.T) {
	requestRepo, balanceRepo, svc := newTestService()
	requestRepo.requests[1] = leave.LeaveRequest{
		ID:         1,
		EmployeeID: 7,
		LeaveType:  leave.TypeAnnual,
		Duration:   5,
		Status:     leave.StatusPending,
	}
	requestRepo.nextID = 2

	ctx := authedContext(t, 42, 7)
	resp, err := svc.Approve(ctx, 1, leave.ApproveLeaveRequest{})
	require.NoError(t, err)

	assert.Equal(t, string(leave.StatusApproved), resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, 42, *resp.ApprovedBy)

	balance := balanceRepo.balances[leave.TypeAnnual]
	require.NotNil(t, balance)
	assert.Equal(t, 10, balance.TotalLeaves)
	assert.Equal(t, 5, balance.UsedLeaves)
}

func TestLeaveService_Approve_AlreadyProcessed(t *testing.T) {
	requestRepo, balanceRepo, svc := newTestService()
	requestRepo.requests[1] = leave.LeaveRequest{
		ID:         1,
		EmployeeID: 7,
		LeaveType:  leave.TypeAnnual,
		Duration:   5,
		Status:     leave.StatusApproved,
	}
	requestRepo.nextID = 2

	ctx := authedContext(t, 42, 7)
	_, err := svc.Approve(ctx, 1, leave.ApproveLeaveRequest{})
	assert.ErrorIs(t, err, leave.ErrAlreadyProcessed)
	assert.Empty(t, balanceRepo.balances)
}

func TestLeaveService_Approve_BalanceFailureAbortsTransaction(t *testing.T) {
	requestRepo := newFakeRequestRepo()
	requestRepo.requests[1] = leave.LeaveRequest{
		ID:         1,
		EmployeeID: 7,
		LeaveType:  leave.TypeAnnual,
		Duration:   5,
		Status:     leave.StatusPending,
	}
	requestRepo.nextID = 2

	balanceRepo := newFakeBalanceRepo()
	balanceRepo.addUsedErr = errors.New("deduction failed")

	var txErr error
	svc := &LeaveServiceImpl{
		runInTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			txErr = fn(nil)
			return txErr
		},
		LeaveRequestRepository: requestRepo,
		LeaveBalanceRepository: balanceRepo,
	}

	ctx := authedContext(t, 42, 7)
	_, err := svc.Approve(ctx, 1, leave.ApproveLeaveRequest{})

	// The failed deduction must surface from inside the transaction so the
	// runner rolls the status transition back with it.
	require.Error(t, err)
	assert.Equal(t, txErr, err)
}

func TestLeaveService_GetBalance_InitializesDefault(t *testing.T) {
	_, balanceRepo, svc := newTestService()
	ctx := authedContext(t, 1, 7)

	resp, err := svc.GetBalance(ctx, leave.TypeSick)
	require.NoError(t, err)

	assert.Equal(t, 5, resp.TotalLeaves)
	assert.Equal(t, 0, resp.UsedLeaves)
	assert.Equal(t, 5, resp.Remaining)

	// A second read must not reset the row.
	balanceRepo.balances[leave.TypeSick].UsedLeaves = 2
	resp, err = svc.GetBalance(ctx, leave.TypeSick)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Remaining)
}

func TestLeaveService_GetBalances_CoversAllTypes(t *testing.T) {
	_, _, svc := newTestService()
	ctx := authedContext(t, 1, 7)

	balances, err := svc.GetBalances(ctx)
	require.NoError(t, err)
	require.Len(t, balances, 3)

	totals := map[string]int{}
	for _, balance := range balances {
		totals[balance.LeaveType] = balance.TotalLeaves
	}
	assert.Equal(t, 10, totals[string(leave.TypeAnnual)])
	assert.Equal(t, 5, totals[string(leave.TypeSick)])
	assert.Equal(t, 7, totals[string(leave.TypeCasual)])
}
