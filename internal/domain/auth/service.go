package auth

import (
	"context"
)

// AuthService defines authentication business logic
type AuthService interface {
	// Login verifies credentials and issues a token pair
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Refresh rotates a refresh token into a fresh token pair
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)

	// Logout revokes a refresh token
	Logout(ctx context.Context, refreshToken string) error

	// AddUser creates a login account, optionally linked to an employee (admin)
	AddUser(ctx context.Context, req AddUserRequest) (UserResponse, error)

	// GetUserDetails returns the authenticated user's account details
	GetUserDetails(ctx context.Context) (UserResponse, error)
}
