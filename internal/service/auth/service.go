package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/auth"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/credential"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	account.AccountRepository
	jwt.Service
	hasher *credential.Hasher
}

func NewAuthService(accountRepository account.AccountRepository, jwtService jwt.Service, hasher *credential.Hasher) auth.AuthService {
	return &AuthServiceImpl{
		AccountRepository: accountRepository,
		Service:           jwtService,
		hasher:            hasher,
	}
}

func (a *AuthServiceImpl) issueTokens(acct account.Account) (auth.TokenResponse, error) {
	var (
		tokenResponse auth.TokenResponse
		err           error
	)

	tokenResponse.AccessToken, tokenResponse.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(jwt.Claims{
		AccountID: acct.ID,
		Role:      acct.Role,
		Code:      acct.Code,
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	tokenResponse.RefreshToken, tokenResponse.RefreshTokenExpiresIn, err = a.Service.GenerateRefreshToken(acct.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	tokenResponse.Account = auth.AccountSummary{
		ID:        acct.ID,
		Code:      acct.Code,
		Role:      acct.Role,
		Firstname: acct.Firstname,
		Lastname:  acct.Lastname,
	}
	return tokenResponse, nil
}

// LoginAdmin implements auth.AuthService.
func (a *AuthServiceImpl) LoginAdmin(ctx context.Context, req auth.AdminLoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	acct, err := a.AccountRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if !acct.Role.IsAdmin() || !a.hasher.Matches(acct.CredentialHash, req.Password) {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if !acct.IsActive() {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	slog.Info("admin signed in", "code", acct.Code, "role", acct.Role)
	return a.issueTokens(acct)
}

// LoginWithCode implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithCode(ctx context.Context, req auth.CodeLoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	acct, err := a.AccountRepository.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if acct.Role.IsAdmin() {
		return auth.TokenResponse{}, auth.ErrAdminLoginRequired
	}
	if acct.Role != req.Role || !a.hasher.Matches(acct.CredentialHash, req.Secret) {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if !acct.IsActive() {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	slog.Info("staff signed in", "code", acct.Code, "role", acct.Role, "password_set", acct.PasswordSet)
	return a.issueTokens(acct)
}

// SetupPassword implements auth.AuthService.
func (a *AuthServiceImpl) SetupPassword(ctx context.Context, req auth.SetupPasswordRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	acct, err := a.AccountRepository.GetByCode(ctx, req.Code)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return auth.ErrInvalidCredentials
		}
		return err
	}

	if acct.PasswordSet {
		return auth.ErrPasswordAlreadySet
	}
	if !a.hasher.Matches(acct.CredentialHash, req.AccessCode) {
		return auth.ErrInvalidCredentials
	}
	if !acct.IsActive() {
		return auth.ErrAccountInactive
	}

	hash, err := a.hasher.Hash(req.NewPassword)
	if err != nil {
		return err
	}

	if err := a.AccountRepository.UpdateCredential(ctx, acct.ID, hash, true); err != nil {
		return err
	}

	slog.Info("password set up", "code", acct.Code)
	return nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.AccessTokenResponse{}, err
	}

	revoked, err := a.Service.IsTokenRevoked(ctx, req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, err
	}
	if revoked {
		return auth.AccessTokenResponse{}, auth.ErrTokenRevoked
	}

	accountID, err := a.Service.ParseRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	acct, err := a.AccountRepository.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, account.ErrAccountNotFound) {
			return auth.AccessTokenResponse{}, auth.ErrInvalidToken
		}
		return auth.AccessTokenResponse{}, err
	}
	if !acct.IsActive() {
		return auth.AccessTokenResponse{}, auth.ErrAccountInactive
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.Service.GenerateAccessToken(jwt.Claims{
		AccountID: acct.ID,
		Role:      acct.Role,
		Code:      acct.Code,
	})
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return resp, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, accessToken string, expiresAt time.Time) error {
	if accessToken == "" {
		return auth.ErrInvalidToken
	}
	return a.Service.RevokeToken(ctx, accessToken, expiresAt)
}
