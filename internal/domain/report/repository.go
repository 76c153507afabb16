package report

import (
	"context"
	"time"
)

// ReportRepository computes both aggregations in SQL; the service layer only
// marshals parameters and maps rows.
type ReportRepository interface {
	GetMonthlyAttendance(ctx context.Context, month, year int, employeeID *int) ([]MonthlyAttendanceReport, error)
	GetLeaveSummaryByDepartment(ctx context.Context, startDate, endDate *time.Time, department *string) ([]LeaveSummaryReport, error)
}
