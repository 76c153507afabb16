package user

import (
	"context"
)

// UserRepository owns login identities. Read-mostly: the services consume the
// acting user's identity and role, they never mutate it outside AddUser.
type UserRepository interface {
	// GetByUsername retrieves an active user for credential validation
	GetByUsername(ctx context.Context, username string) (User, error)

	// GetByID retrieves a user by primary key
	GetByID(ctx context.Context, id int) (User, error)

	// Create inserts a login identity linked to an employee
	Create(ctx context.Context, u User) (User, error)
}
