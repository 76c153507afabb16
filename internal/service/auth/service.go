package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/ems-labs/ems-backend-go/internal/domain/auth"
	"github.com/ems-labs/ems-backend-go/internal/domain/employee"
	"github.com/ems-labs/ems-backend-go/internal/domain/user"
	"github.com/ems-labs/ems-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	user.UserRepository
	employee.EmployeeRepository
	jwtService jwt.Service
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	account, err := a.UserRepository.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if !account.IsActive {
		return auth.TokenResponse{}, auth.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, accessExp, err := a.jwtService.GenerateAccessToken(account.ID, account.Username, account.EmployeeID, account.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, refreshExp, err := a.jwtService.GenerateRefreshToken(account.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExp,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExp,
	}, nil
}

// Refresh implements auth.AuthService. The old refresh token is revoked so
// each token can only be rotated once.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	userID, err := a.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	account, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidToken
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to look up user: %w", err)
	}

	if !account.IsActive {
		return auth.TokenResponse{}, auth.ErrUserInactive
	}

	accessToken, accessExp, err := a.jwtService.GenerateAccessToken(account.ID, account.Username, account.EmployeeID, account.Role)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	newRefreshToken, refreshExp, err := a.jwtService.GenerateRefreshToken(account.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	a.jwtService.RevokeToken(refreshToken)

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExp,
		RefreshToken:          newRefreshToken,
		RefreshTokenExpiresIn: refreshExp,
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	a.jwtService.RevokeToken(refreshToken)
	return nil
}

// AddUser implements auth.AuthService.
func (a *AuthServiceImpl) AddUser(ctx context.Context, req auth.AddUserRequest) (auth.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.UserResponse{}, err
	}

	if _, err := a.EmployeeRepository.GetByID(ctx, req.EmployeeID); err != nil {
		return auth.UserResponse{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	employeeID := req.EmployeeID
	created, err := a.UserRepository.Create(ctx, user.User{
		Username:     req.Username,
		PasswordHash: string(hashed),
		Role:         user.Role(req.Role),
		EmployeeID:   &employeeID,
		IsActive:     true,
	})
	if err != nil {
		return auth.UserResponse{}, err
	}

	return toUserResponse(created), nil
}

// GetUserDetails implements auth.AuthService.
func (a *AuthServiceImpl) GetUserDetails(ctx context.Context) (auth.UserResponse, error) {
	userID, err := jwt.UserIDFromContext(ctx)
	if err != nil {
		return auth.UserResponse{}, err
	}

	account, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.UserResponse{}, err
	}

	return toUserResponse(account), nil
}

func toUserResponse(u user.User) auth.UserResponse {
	return auth.UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Role:       string(u.Role),
		EmployeeID: u.EmployeeID,
		IsActive:   u.IsActive,
	}
}

func NewAuthService(
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository:     userRepo,
		EmployeeRepository: employeeRepo,
		jwtService:         jwtService,
	}
}
