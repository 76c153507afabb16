package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("Attendance record not found")
	ErrAlreadyCheckedIn   = errors.New("Employee has already checked in today")
	ErrNotCheckedIn       = errors.New("Employee has not checked in today")
	ErrAlreadyCheckedOut  = errors.New("Employee has already checked out today")
)
