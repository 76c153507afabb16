package postgresql

import (
	"context"
	"fmt"

	"github.com/ems-labs/ems-backend-go/internal/domain/leave"
	"github.com/ems-labs/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveBalanceRepository struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepository{db: db}
}

// Get implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepository) Get(ctx context.Context, employeeID int, leaveType leave.LeaveType) (*leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT employee_id, leave_type, total_leaves, used_leaves
		FROM leave_balances
		WHERE employee_id = $1 AND leave_type = $2
	`

	var balance leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID, leaveType).Scan(
		&balance.EmployeeID, &balance.LeaveType, &balance.TotalLeaves, &balance.UsedLeaves,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // Never initialized
		}
		return nil, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return &balance, nil
}

// Init implements leave.LeaveBalanceRepository. The primary key on
// (employee_id, leave_type) plus DO NOTHING makes concurrent first access safe.
func (r *leaveBalanceRepository) Init(ctx context.Context, employeeID int, leaveType leave.LeaveType, totalLeaves int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_balances (employee_id, leave_type, total_leaves, used_leaves)
		VALUES ($1, $2, $3, 0)
		ON CONFLICT (employee_id, leave_type) DO NOTHING
	`

	if _, err := q.Exec(ctx, query, employeeID, leaveType, totalLeaves); err != nil {
		return fmt.Errorf("failed to initialize leave balance: %w", err)
	}

	return nil
}

// AddUsed implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepository) AddUsed(ctx context.Context, employeeID int, leaveType leave.LeaveType, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_balances
		SET used_leaves = used_leaves + $1
		WHERE employee_id = $2 AND leave_type = $3
	`

	commandTag, err := q.Exec(ctx, query, days, employeeID, leaveType)
	if err != nil {
		return fmt.Errorf("failed to update used leaves: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return fmt.Errorf("leave balance for employee %d and type %s not found", employeeID, leaveType)
	}

	return nil
}
