package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/auth"
	"github.com/cmlabs-hris/employee-management-go/internal/handler/http/response"
)

type AuthHandler interface {
	LoginAdmin(w http.ResponseWriter, r *http.Request)
	LoginEmployee(w http.ResponseWriter, r *http.Request)
	LoginManager(w http.ResponseWriter, r *http.Request)
	SetupPassword(w http.ResponseWriter, r *http.Request)
	RefreshToken(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{authService: authService}
}

// LoginAdmin implements AuthHandler.
func (a *AuthHandlerImpl) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.AdminLoginRequest
	if !decodeJSON(w, r, &loginReq) {
		return
	}

	tokenResponse, err := a.authService.LoginAdmin(r.Context(), loginReq)
	if err != nil {
		slog.Debug("Admin login failed", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged in successfully", tokenResponse)
}

func (a *AuthHandlerImpl) loginWithCode(w http.ResponseWriter, r *http.Request, role account.Role) {
	var loginReq auth.CodeLoginRequest
	if !decodeJSON(w, r, &loginReq) {
		return
	}
	loginReq.Role = role

	tokenResponse, err := a.authService.LoginWithCode(r.Context(), loginReq)
	if err != nil {
		slog.Debug("Code login failed", "role", role, "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged in successfully", tokenResponse)
}

// LoginEmployee implements AuthHandler.
func (a *AuthHandlerImpl) LoginEmployee(w http.ResponseWriter, r *http.Request) {
	a.loginWithCode(w, r, account.RoleEmployee)
}

// LoginManager implements AuthHandler.
func (a *AuthHandlerImpl) LoginManager(w http.ResponseWriter, r *http.Request) {
	a.loginWithCode(w, r, account.RoleManager)
}

// SetupPassword implements AuthHandler.
func (a *AuthHandlerImpl) SetupPassword(w http.ResponseWriter, r *http.Request) {
	var req auth.SetupPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := a.authService.SetupPassword(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Password has been set up", nil)
}

// RefreshToken implements AuthHandler.
func (a *AuthHandlerImpl) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req auth.RefreshTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tokenResponse, err := a.authService.RefreshToken(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, tokenResponse)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	actor, ok := currentActor(w, r)
	if !ok {
		return
	}

	if err := a.authService.Logout(r.Context(), actor.Token, actor.ExpiresAt); err != nil {
		slog.Error("Logout service error", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Account logged out", "code", actor.Code)
	response.SuccessWithMessage(w, "Logged out successfully", nil)
}
