package report

import (
	"time"

	"github.com/ems-labs/ems-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// MonthlyAttendanceReport is a read-side aggregate materialized per query.
type MonthlyAttendanceReport struct {
	EmployeeID          int             `json:"employee_id"`
	EmployeeName        string          `json:"employee_name"`
	Department          string          `json:"department"`
	Designation         string          `json:"designation"`
	TotalPresentDays    int             `json:"total_present_days"`
	TotalAbsentDays     int             `json:"total_absent_days"`
	TotalHalfDays       int             `json:"total_half_days"`
	LateCheckIns        int             `json:"late_check_ins"`
	AverageWorkingHours decimal.Decimal `json:"average_working_hours"`
	TotalRecords        int             `json:"total_records"`
}

// LeaveSummaryReport aggregates leave requests per department.
type LeaveSummaryReport struct {
	Department          string `json:"department"`
	TotalLeaveRequests  int    `json:"total_leave_requests"`
	ApprovedLeaves      int    `json:"approved_leaves"`
	RejectedLeaves      int    `json:"rejected_leaves"`
	PendingLeaves       int    `json:"pending_leaves"`
	MostCommonLeaveType string `json:"most_common_leave_type"`
	TotalLeaveDays      int    `json:"total_leave_days"`
}

type MonthlyAttendanceRequest struct {
	Month      int  `json:"month"`
	Year       int  `json:"year"`
	EmployeeID *int `json:"employee_id,omitempty"`
}

func (r *MonthlyAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if r.Year < 2000 || r.Year > time.Now().Year()+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year is out of range",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveSummaryRequest struct {
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Department *string `json:"department,omitempty"`
}

func (r *LeaveSummaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.StartDate != nil && *r.StartDate != "" {
		if _, valid := validator.IsValidDate(*r.StartDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date must be in YYYY-MM-DD format",
			})
		}
	}

	if r.EndDate != nil && *r.EndDate != "" {
		if _, valid := validator.IsValidDate(*r.EndDate); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "end_date",
				Message: "end_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
