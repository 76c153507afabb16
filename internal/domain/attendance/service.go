package attendance

import (
	"context"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn records a check-in for the authenticated employee, once per day
	CheckIn(ctx context.Context) (AttendanceResponse, error)

	// CheckOut closes the authenticated employee's open attendance for today
	CheckOut(ctx context.Context) (AttendanceResponse, error)

	// ManualEntry creates or overwrites an attendance record (admin)
	ManualEntry(ctx context.Context, req ManualEntryRequest) (AttendanceResponse, error)

	// GetToday retrieves today's attendance for the authenticated employee,
	// nil when none exists yet
	GetToday(ctx context.Context) (*AttendanceResponse, error)

	// GetMyAttendance retrieves attendance records for the authenticated
	// employee within a date range
	GetMyAttendance(ctx context.Context, startDate, endDate string) ([]AttendanceResponse, error)

	// GetReport retrieves attendance records with filters (admin)
	GetReport(ctx context.Context, filter ReportFilter) ([]AttendanceResponse, error)
}
