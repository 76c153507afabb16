package employee

import (
	"context"
)

// EmployeeService defines business logic for the employee directory
type EmployeeService interface {
	// List retrieves employees, optionally restricted to active ones
	List(ctx context.Context, activeOnly bool) ([]EmployeeResponse, error)

	// Get retrieves a single employee by ID
	Get(ctx context.Context, id int) (EmployeeResponse, error)

	// Create registers a new employee
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// Update modifies an existing employee record
	Update(ctx context.Context, id int, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// Delete marks an employee as Inactive
	Delete(ctx context.Context, id int) error

	// Search finds employees matching a keyword across name, department,
	// designation and email
	Search(ctx context.Context, keyword string) ([]EmployeeResponse, error)

	// ListDepartments returns the distinct department names
	ListDepartments(ctx context.Context) ([]string, error)
}
