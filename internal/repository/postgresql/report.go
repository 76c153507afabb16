package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/ems-labs/ems-backend-go/internal/domain/report"
	"github.com/ems-labs/ems-backend-go/internal/pkg/database"
)

type reportRepository struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepository{db: db}
}

// GetMonthlyAttendance implements report.ReportRepository. Late check-in means
// after 09:15 local time.
func (r *reportRepository) GetMonthlyAttendance(ctx context.Context, month, year int, employeeID *int) ([]report.MonthlyAttendanceReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.id,
		       e.first_name || ' ' || e.last_name AS employee_name,
		       e.department,
		       e.designation,
		       COUNT(*) FILTER (WHERE a.status = 'Present') AS total_present_days,
		       COUNT(*) FILTER (WHERE a.status = 'Absent') AS total_absent_days,
		       COUNT(*) FILTER (WHERE a.status = 'Half-day') AS total_half_days,
		       COUNT(*) FILTER (WHERE a.check_in IS NOT NULL AND a.check_in::time > '09:15') AS late_check_ins,
		       COALESCE(ROUND(AVG(a.total_hours), 2), 0) AS average_working_hours,
		       COUNT(a.id) AS total_records
		FROM employees e
		INNER JOIN attendances a ON a.employee_id = e.id
		WHERE EXTRACT(MONTH FROM a.date) = $1
		  AND EXTRACT(YEAR FROM a.date) = $2
		  AND ($3::int IS NULL OR e.id = $3)
		GROUP BY e.id, e.first_name, e.last_name, e.department, e.designation
		ORDER BY e.last_name, e.first_name
	`

	rows, err := q.Query(ctx, query, month, year, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly attendance report: %w", err)
	}
	defer rows.Close()

	var reports []report.MonthlyAttendanceReport
	for rows.Next() {
		var row report.MonthlyAttendanceReport
		err := rows.Scan(
			&row.EmployeeID, &row.EmployeeName, &row.Department, &row.Designation,
			&row.TotalPresentDays, &row.TotalAbsentDays, &row.TotalHalfDays,
			&row.LateCheckIns, &row.AverageWorkingHours, &row.TotalRecords,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly attendance row: %w", err)
		}
		reports = append(reports, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return reports, nil
}

// GetLeaveSummaryByDepartment implements report.ReportRepository.
func (r *reportRepository) GetLeaveSummaryByDepartment(ctx context.Context, startDate, endDate *time.Time, department *string) ([]report.LeaveSummaryReport, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT e.department,
		       COUNT(*) AS total_leave_requests,
		       COUNT(*) FILTER (WHERE lr.status = 'Approved') AS approved_leaves,
		       COUNT(*) FILTER (WHERE lr.status = 'Rejected') AS rejected_leaves,
		       COUNT(*) FILTER (WHERE lr.status = 'Pending') AS pending_leaves,
		       COALESCE(MODE() WITHIN GROUP (ORDER BY lr.leave_type), 'N/A') AS most_common_leave_type,
		       COALESCE(SUM(lr.duration) FILTER (WHERE lr.status = 'Approved'), 0) AS total_leave_days
		FROM leave_requests lr
		INNER JOIN employees e ON e.id = lr.employee_id
		WHERE ($1::date IS NULL OR lr.start_date >= $1)
		  AND ($2::date IS NULL OR lr.end_date <= $2)
		  AND ($3::text IS NULL OR e.department = $3)
		GROUP BY e.department
		ORDER BY e.department
	`

	rows, err := q.Query(ctx, query, startDate, endDate, department)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave summary report: %w", err)
	}
	defer rows.Close()

	var reports []report.LeaveSummaryReport
	for rows.Next() {
		var row report.LeaveSummaryReport
		err := rows.Scan(
			&row.Department, &row.TotalLeaveRequests, &row.ApprovedLeaves,
			&row.RejectedLeaves, &row.PendingLeaves, &row.MostCommonLeaveType,
			&row.TotalLeaveDays,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave summary row: %w", err)
		}
		reports = append(reports, row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return reports, nil
}
