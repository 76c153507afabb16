package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("Leave request not found")
	ErrOverlappingLeave     = errors.New("Leave request overlaps an existing request")
	ErrAlreadyProcessed     = errors.New("Leave request already processed")
	ErrInvalidDateRange     = errors.New("End date must not be before start date")
)
