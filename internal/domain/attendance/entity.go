package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Attendance struct {
	ID         int
	EmployeeID int
	Date       time.Time
	CheckIn    *time.Time
	CheckOut   *time.Time
	TotalHours decimal.Decimal
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
	Department   *string
}

type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
	StatusHalfDay Status = "Half-day"
)
