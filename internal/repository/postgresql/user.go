package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/ems-labs/ems-backend-go/internal/domain/user"
	"github.com/ems-labs/ems-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepository{db: db}
}

// GetByUsername implements user.UserRepository.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, username, password_hash, role, employee_id, is_active
		FROM users
		WHERE username = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.EmployeeID, &u.IsActive,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return u, nil
}

// GetByID implements user.UserRepository.
func (r *userRepository) GetByID(ctx context.Context, id int) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, username, password_hash, role, employee_id, is_active
		FROM users
		WHERE id = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.EmployeeID, &u.IsActive,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (username, password_hash, role, employee_id, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := q.QueryRow(ctx, query, u.Username, u.PasswordHash, u.Role, u.EmployeeID, u.IsActive).Scan(&u.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, user.ErrUsernameExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}
