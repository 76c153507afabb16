package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ems-labs/ems-backend-go/internal/domain/attendance"
	"github.com/ems-labs/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

// CreateCheckIn implements attendance.AttendanceRepository. A unique violation
// on (employee_id, date) means another check-in won the day and surfaces as
// ErrAlreadyCheckedIn.
func (r *attendanceRepository) CreateCheckIn(ctx context.Context, employeeID int, checkIn time.Time) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, check_in, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	date := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, checkIn.Location())
	att := attendance.Attendance{
		EmployeeID: employeeID,
		Date:       date,
		CheckIn:    &checkIn,
		Status:     attendance.StatusPresent,
	}

	err := q.QueryRow(ctx, query, employeeID, date, checkIn, attendance.StatusPresent).
		Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create check-in: %w", err)
	}

	return att, nil
}

// SetCheckOut implements attendance.AttendanceRepository.
func (r *attendanceRepository) SetCheckOut(ctx context.Context, id int, checkOut time.Time, totalHours decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendances
		SET check_out = $1, total_hours = $2, updated_at = $3
		WHERE id = $4
	`

	commandTag, err := q.Exec(ctx, query, checkOut, totalHours, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to set check-out: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// Upsert implements attendance.AttendanceRepository. The unique constraint on
// (employee_id, date) makes a repeated manual entry overwrite the earlier row.
func (r *attendanceRepository) Upsert(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (employee_id, date, check_in, check_out, total_hours, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id, date) DO UPDATE
		SET check_in = EXCLUDED.check_in,
		    check_out = EXCLUDED.check_out,
		    total_hours = EXCLUDED.total_hours,
		    status = EXCLUDED.status,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		att.EmployeeID, att.Date, att.CheckIn, att.CheckOut, att.TotalHours, att.Status,
	).Scan(&att.ID, &att.CreatedAt, &att.UpdatedAt)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to upsert attendance: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID int, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, check_in, check_out, total_hours, status, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date = $2
		LIMIT 1
	`

	var att attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
		&att.TotalHours, &att.Status, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil // No existing attendance found
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}

	return &att, nil
}

// List implements attendance.AttendanceRepository.
func (r *attendanceRepository) List(ctx context.Context, filter attendance.ReportFilter) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "a.date >= $1 AND a.date <= $2"
	args := []interface{}{filter.StartDate, filter.EndDate}
	argIdx := 3

	if filter.EmployeeID != nil {
		baseWhere += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	if filter.Department != nil && *filter.Department != "" {
		baseWhere += fmt.Sprintf(" AND e.department = $%d", argIdx)
		args = append(args, *filter.Department)
		argIdx++
	}

	query := fmt.Sprintf(`
		SELECT a.id, a.employee_id, a.date, a.check_in, a.check_out, a.total_hours,
		       a.status, a.created_at, a.updated_at,
		       e.first_name || ' ' || e.last_name AS employee_name,
		       e.department
		FROM attendances a
		INNER JOIN employees e ON e.id = a.employee_id
		WHERE %s
		ORDER BY a.date, e.last_name, e.first_name
	`, baseWhere)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
			&att.TotalHours, &att.Status, &att.CreatedAt, &att.UpdatedAt,
			&att.EmployeeName, &att.Department,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return attendances, nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID int, startDate, endDate time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, check_in, check_out, total_hours, status, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date DESC
	`

	rows, err := q.Query(ctx, query, employeeID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		var att attendance.Attendance
		err := rows.Scan(
			&att.ID, &att.EmployeeID, &att.Date, &att.CheckIn, &att.CheckOut,
			&att.TotalHours, &att.Status, &att.CreatedAt, &att.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return attendances, nil
}
