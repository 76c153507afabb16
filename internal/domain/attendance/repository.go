package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRepository defines data access methods for attendance records.
// The store keeps at most one row per (employee, date); Upsert overwrites an
// existing row rather than duplicating it.
type AttendanceRepository interface {
	// CreateCheckIn inserts today's record with the check-in timestamp
	CreateCheckIn(ctx context.Context, employeeID int, checkIn time.Time) (Attendance, error)

	// SetCheckOut stamps the check-out time and total hours on an existing record
	SetCheckOut(ctx context.Context, id int, checkOut time.Time, totalHours decimal.Decimal) error

	// Upsert writes an attendance row for an arbitrary date, replacing any
	// existing row for the same employee and date
	Upsert(ctx context.Context, att Attendance) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one date,
	// nil when none exists
	GetByEmployeeAndDate(ctx context.Context, employeeID int, date time.Time) (*Attendance, error)

	// List retrieves attendance records joined with employee names, filtered
	// by date range and optional employee/department
	List(ctx context.Context, filter ReportFilter) ([]Attendance, error)

	// ListByEmployee retrieves one employee's records in a date range
	ListByEmployee(ctx context.Context, employeeID int, startDate, endDate time.Time) ([]Attendance, error)
}
