package report

import (
	"context"
)

// ReportService defines business logic for management reports
type ReportService interface {
	// GetMonthlyAttendance aggregates per-employee attendance for one month
	GetMonthlyAttendance(ctx context.Context, req MonthlyAttendanceRequest) ([]MonthlyAttendanceReport, error)

	// GetLeaveSummary aggregates leave requests per department
	GetLeaveSummary(ctx context.Context, req LeaveSummaryRequest) ([]LeaveSummaryReport, error)
}
