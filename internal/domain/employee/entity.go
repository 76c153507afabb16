package employee

import (
	"time"
)

type Employee struct {
	ID          int
	FirstName   string
	LastName    string
	Department  string
	Designation string
	JoinDate    *time.Time
	Status      Status
	Email       string
	Phone       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FullName is the display name derived from first and last name.
func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)
