package jwt

import (
	"context"
	"fmt"

	"github.com/ems-labs/ems-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// claimInt reads a numeric claim. Numbers round-trip through JSON, so a
// decoded token carries float64 where the encoder put an int.
func claimInt(claims map[string]interface{}, key string) (int, bool) {
	switch v := claims[key].(type) {
	case float64:
		return int(v), true
	case int64:
		return int(v), true
	case int:
		return v, true
	}
	return 0, false
}

// UserIDFromContext extracts the authenticated user's ID from the JWT claims.
func UserIDFromContext(ctx context.Context) (int, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claimInt(claims, "user_id")
	if !ok {
		return 0, fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// EmployeeIDFromContext extracts the linked employee ID from the JWT claims.
// Accounts without an employee record (pure admin logins) get
// user.ErrNoLinkedEmployee.
func EmployeeIDFromContext(ctx context.Context) (int, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claimInt(claims, "employee_id")
	if !ok {
		return 0, user.ErrNoLinkedEmployee
	}

	return employeeID, nil
}

// RoleFromContext extracts the role claim.
func RoleFromContext(ctx context.Context) (user.Role, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	role, ok := claims["role"].(string)
	if !ok || role == "" {
		return "", fmt.Errorf("role claim is missing or invalid")
	}

	return user.Role(role), nil
}
