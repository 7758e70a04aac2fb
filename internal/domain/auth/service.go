package auth

import (
	"context"
	"time"
)

type AuthService interface {
	LoginAdmin(ctx context.Context, req AdminLoginRequest) (TokenResponse, error)
	LoginWithCode(ctx context.Context, req CodeLoginRequest) (TokenResponse, error)
	SetupPassword(ctx context.Context, req SetupPasswordRequest) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, accessToken string, expiresAt time.Time) error
}
