package employee

import (
	"context"
)

// EmployeeRepository defines data access methods for employee records.
// Delete is a soft delete: it flips the status to Inactive, rows are never
// physically removed.
type EmployeeRepository interface {
	// List retrieves employees, optionally restricted to active ones
	List(ctx context.Context, activeOnly bool) ([]Employee, error)

	// GetByID retrieves a single employee
	GetByID(ctx context.Context, id int) (Employee, error)

	// Create inserts a new employee and returns it with its assigned ID
	Create(ctx context.Context, emp Employee) (Employee, error)

	// Update replaces the mutable fields of an existing employee
	Update(ctx context.Context, emp Employee) error

	// Delete marks the employee Inactive
	Delete(ctx context.Context, id int) error

	// Search returns every employee whose name, department or designation
	// matches the keyword
	Search(ctx context.Context, keyword string) ([]Employee, error)

	// ListDepartments returns the distinct department names
	ListDepartments(ctx context.Context) ([]string, error)
}
