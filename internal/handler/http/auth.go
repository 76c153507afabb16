package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ems-labs/ems-backend-go/internal/domain/auth"
	"github.com/ems-labs/ems-backend-go/internal/handler/http/response"
	"github.com/ems-labs/ems-backend-go/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Refresh(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	AddUser(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
	jwtService  jwt.Service
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tokens, err := a.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresIn))
	response.Success(w, tokens)
}

// Refresh implements AuthHandler.
func (a *AuthHandlerImpl) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err != nil {
		response.HandleError(w, auth.ErrInvalidToken)
		return
	}

	tokens, err := a.authService.Refresh(r.Context(), cookie.Value)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie(tokens.RefreshToken, tokens.RefreshTokenExpiresIn))
	response.Success(w, tokens)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie("refresh_token")
	if err == nil {
		if err := a.authService.Logout(r.Context(), cookie.Value); err != nil {
			response.HandleError(w, err)
			return
		}
	}

	http.SetCookie(w, a.jwtService.RefreshTokenCookie("", 0))
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	details, err := a.authService.GetUserDetails(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, details)
}

// AddUser implements AuthHandler.
func (a *AuthHandlerImpl) AddUser(w http.ResponseWriter, r *http.Request) {
	var req auth.AddUserRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("AddUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := a.authService.AddUser(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "User created successfully", created)
}

func NewAuthHandler(authService auth.AuthService, jwtService jwt.Service) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
		jwtService:  jwtService,
	}
}
