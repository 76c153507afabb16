package attendance

import (
	"time"

	"github.com/ems-labs/ems-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type ManualEntryRequest struct {
	EmployeeID int     `json:"employee_id"`
	Date       string  `json:"date"`                // YYYY-MM-DD
	CheckIn    *string `json:"check_in,omitempty"`  // RFC3339
	CheckOut   *string `json:"check_out,omitempty"` // RFC3339
	Status     string  `json:"status"`
}

func (r *ManualEntryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	validStatuses := []string{string(StatusPresent), string(StatusAbsent), string(StatusHalfDay)}
	if !validator.IsInSlice(r.Status, validStatuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Present, Absent, Half-day",
		})
	}

	if r.CheckIn != nil && *r.CheckIn != "" {
		if _, valid := validator.IsValidDateTime(*r.CheckIn); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_in",
				Message: "check_in must be an ISO8601 timestamp",
			})
		}
	}

	if r.CheckOut != nil && *r.CheckOut != "" {
		if _, valid := validator.IsValidDateTime(*r.CheckOut); !valid {
			errs = append(errs, validator.ValidationError{
				Field:   "check_out",
				Message: "check_out must be an ISO8601 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ReportFilter selects attendance rows for the report listing. A nil
// EmployeeID means all employees; a nil Department means all departments.
type ReportFilter struct {
	EmployeeID *int
	Department *string
	StartDate  time.Time
	EndDate    time.Time
}

type AttendanceResponse struct {
	ID           int     `json:"id"`
	EmployeeID   int     `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Department   *string `json:"department,omitempty"`
	Date         string  `json:"date"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	TotalHours   string  `json:"total_hours"`
	Status       string  `json:"status"`
}

func ToResponse(a Attendance) AttendanceResponse {
	resp := AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Department:   a.Department,
		Date:         a.Date.Format("2006-01-02"),
		TotalHours:   a.TotalHours.StringFixed(2),
		Status:       string(a.Status),
	}
	if a.CheckIn != nil {
		checkIn := a.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &checkIn
	}
	if a.CheckOut != nil {
		checkOut := a.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &checkOut
	}
	return resp
}
