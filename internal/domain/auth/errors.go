package auth

import (
	"errors"

	"github.com/cmlabs-hris/employee-management-go/internal/pkg/apperr"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrAccountInactive    = apperr.Authorization("AccountInactive", "account is inactive")
	ErrPasswordAlreadySet = apperr.Conflict("PasswordAlreadySet", "password has already been set up")
	ErrAdminLoginRequired = apperr.Authorization("AdminLoginRequired", "admin accounts sign in with email and password")
)
