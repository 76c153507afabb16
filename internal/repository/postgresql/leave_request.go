package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/ems-labs/ems-backend-go/internal/domain/leave"
	"github.com/ems-labs/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepository struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepository{db: db}
}

const leaveRequestSelect = `
	SELECT lr.id, lr.employee_id,
	       e.first_name || ' ' || e.last_name AS employee_name,
	       lr.leave_type, lr.start_date, lr.end_date, lr.duration,
	       lr.status, lr.remarks, lr.request_date,
	       lr.approved_by,
	       CASE WHEN a.id IS NULL THEN NULL ELSE a.first_name || ' ' || a.last_name END AS approved_by_name,
	       lr.admin_remarks
	FROM leave_requests lr
	INNER JOIN employees e ON e.id = lr.employee_id
	LEFT JOIN users u ON u.id = lr.approved_by
	LEFT JOIN employees a ON a.id = u.employee_id
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.EmployeeName,
		&lr.LeaveType, &lr.StartDate, &lr.EndDate, &lr.Duration,
		&lr.Status, &lr.Remarks, &lr.RequestDate,
		&lr.ApprovedBy, &lr.ApprovedByName, &lr.AdminRemarks,
	)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (
			employee_id, leave_type, start_date, end_date, duration, status, remarks, request_date
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, NOW()
		) RETURNING id, request_date
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID,
		request.LeaveType,
		request.StartDate,
		request.EndDate,
		request.Duration,
		request.Status,
		request.Remarks,
	).Scan(&request.ID, &request.RequestDate)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) GetByID(ctx context.Context, id int) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveRequestSelect + ` WHERE lr.id = $1`

	lr, err := scanLeaveRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, fmt.Errorf("failed to get leave request by ID: %w", err)
	}

	return lr, nil
}

// CheckOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) CheckOverlapping(
	ctx context.Context,
	employeeID int,
	startDate, endDate time.Time,
) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM leave_requests
			WHERE employee_id = $1
			AND status IN ('Pending', 'Approved')
			AND start_date <= $3
			AND end_date >= $2
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, startDate, endDate).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check overlapping leave requests: %w", err)
	}

	return exists, nil
}

// ListPending implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListPending(ctx context.Context) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveRequestSelect + ` WHERE lr.status = 'Pending' ORDER BY lr.request_date ASC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending leave requests: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) List(ctx context.Context, filter leave.RequestFilter) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Status != nil {
		baseWhere += fmt.Sprintf(" AND lr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.EmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND lr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	query := leaveRequestSelect + ` WHERE ` + baseWhere + ` ORDER BY lr.request_date DESC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepository) ListByEmployee(ctx context.Context, employeeID int) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := leaveRequestSelect + ` WHERE lr.employee_id = $1 ORDER BY lr.request_date DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave history: %w", err)
	}
	defer rows.Close()

	return collectLeaveRequests(rows)
}

// UpdateStatus implements leave.LeaveRequestRepository. The status predicate
// makes the transition atomic: of two concurrent approvals or rejections only
// one row write wins, the loser sees zero rows and gets ErrAlreadyProcessed.
func (r *leaveRequestRepository) UpdateStatus(ctx context.Context, id int, status leave.RequestStatus, actorID int, adminRemarks *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, approved_by = $2, admin_remarks = $3
		WHERE id = $4 AND status = 'Pending'
	`

	commandTag, err := q.Exec(ctx, query, status, actorID, adminRemarks, id)
	if err != nil {
		return fmt.Errorf("failed to update leave request status: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return leave.ErrAlreadyProcessed
	}

	return nil
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return requests, nil
}
