package auth

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/auth"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/credential"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/employee-management-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const accessCode = "a1b2c3d4"

type fixture struct {
	svc   *AuthServiceImpl
	store *memory.Store
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	return fixture{
		store: store,
		svc: &AuthServiceImpl{
			AccountRepository: store.Accounts(),
			Service:           jwt.NewJWTService("test-secret", time.Hour, 24*time.Hour, nil),
			hasher:            credential.NewHasher(4),
		},
	}
}

func (f fixture) seed(t *testing.T, a account.Account, secret string) account.Account {
	t.Helper()
	hash, err := f.svc.hasher.Hash(secret)
	require.NoError(t, err)
	a.CredentialHash = hash
	if a.Status == "" {
		a.Status = account.StatusActive
	}
	created, err := f.store.Accounts().Create(context.Background(), a)
	require.NoError(t, err)
	return created
}

func strPtr(s string) *string { return &s }

func TestAuthService_LoginAdmin(t *testing.T) {
	f := newFixture(t)
	f.seed(t, account.Account{Role: account.RoleAdmin, Code: "ADM-AAAAAA", Email: strPtr("ops@example.com"), Firstname: "Ops", PasswordSet: true}, "password1")
	f.seed(t, account.Account{Role: account.RoleAdmin, Code: "ADM-BBBBBB", Email: strPtr("gone@example.com"), Status: account.StatusInactive, PasswordSet: true}, "password1")
	f.seed(t, account.Account{Role: account.RoleEmployee, Code: "EMP-CCCCCC", Email: strPtr("emp@example.com")}, "password1")

	tests := []struct {
		name    string
		req     auth.AdminLoginRequest
		wantErr error
	}{
		{name: "valid", req: auth.AdminLoginRequest{Email: " OPS@example.com", Password: "password1"}},
		{name: "wrong password", req: auth.AdminLoginRequest{Email: "ops@example.com", Password: "nope"}, wantErr: auth.ErrInvalidCredentials},
		{name: "unknown email", req: auth.AdminLoginRequest{Email: "who@example.com", Password: "password1"}, wantErr: auth.ErrInvalidCredentials},
		{name: "staff account", req: auth.AdminLoginRequest{Email: "emp@example.com", Password: "password1"}, wantErr: auth.ErrInvalidCredentials},
		{name: "inactive", req: auth.AdminLoginRequest{Email: "gone@example.com", Password: "password1"}, wantErr: auth.ErrAccountInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.LoginAdmin(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, got.AccessToken)
			assert.NotEmpty(t, got.RefreshToken)
			assert.Equal(t, "ADM-AAAAAA", got.Account.Code)
			assert.Equal(t, account.RoleAdmin, got.Account.Role)
		})
	}
}

func TestAuthService_LoginWithCode(t *testing.T) {
	f := newFixture(t)
	f.seed(t, account.Account{Role: account.RoleEmployee, Code: "EMP-AAAAAA", Firstname: "Budi"}, accessCode)
	f.seed(t, account.Account{Role: account.RoleEmployee, Code: "EMP-BBBBBB", Status: account.StatusInactive}, accessCode)
	f.seed(t, account.Account{Role: account.RoleAdmin, Code: "ADM-CCCCCC", Email: strPtr("a@example.com")}, accessCode)

	tests := []struct {
		name    string
		req     auth.CodeLoginRequest
		wantErr error
	}{
		{name: "valid", req: auth.CodeLoginRequest{Code: "emp-aaaaaa", Secret: accessCode, Role: account.RoleEmployee}},
		{name: "wrong secret", req: auth.CodeLoginRequest{Code: "EMP-AAAAAA", Secret: "deadbeef", Role: account.RoleEmployee}, wantErr: auth.ErrInvalidCredentials},
		{name: "wrong portal", req: auth.CodeLoginRequest{Code: "EMP-AAAAAA", Secret: accessCode, Role: account.RoleManager}, wantErr: auth.ErrInvalidCredentials},
		{name: "unknown code", req: auth.CodeLoginRequest{Code: "EMP-ZZZZZZ", Secret: accessCode, Role: account.RoleEmployee}, wantErr: auth.ErrInvalidCredentials},
		{name: "inactive", req: auth.CodeLoginRequest{Code: "EMP-BBBBBB", Secret: accessCode, Role: account.RoleEmployee}, wantErr: auth.ErrAccountInactive},
		{name: "admin code", req: auth.CodeLoginRequest{Code: "ADM-CCCCCC", Secret: accessCode, Role: account.RoleEmployee}, wantErr: auth.ErrAdminLoginRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := f.svc.LoginWithCode(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Budi", got.Account.Firstname)
		})
	}
}

func TestAuthService_SetupPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, account.Account{Role: account.RoleManager, Code: "MGR-AAAAAA"}, accessCode)

	req := auth.SetupPasswordRequest{Code: "MGR-AAAAAA", AccessCode: "ffffffff", NewPassword: "correct-horse", ConfirmPassword: "correct-horse"}
	assert.ErrorIs(t, f.svc.SetupPassword(ctx, req), auth.ErrInvalidCredentials)

	req.AccessCode = accessCode
	require.NoError(t, f.svc.SetupPassword(ctx, req))
	assert.ErrorIs(t, f.svc.SetupPassword(ctx, req), auth.ErrPasswordAlreadySet)

	_, err := f.svc.LoginWithCode(ctx, auth.CodeLoginRequest{Code: "MGR-AAAAAA", Secret: accessCode, Role: account.RoleManager})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	_, err = f.svc.LoginWithCode(ctx, auth.CodeLoginRequest{Code: "MGR-AAAAAA", Secret: "correct-horse", Role: account.RoleManager})
	require.NoError(t, err)

	req.ConfirmPassword = "different"
	assert.Error(t, f.svc.SetupPassword(ctx, req))
}

func TestAuthService_RefreshAndLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.seed(t, account.Account{Role: account.RoleEmployee, Code: "EMP-AAAAAA"}, accessCode)

	tokens, err := f.svc.LoginWithCode(ctx, auth.CodeLoginRequest{Code: "EMP-AAAAAA", Secret: accessCode, Role: account.RoleEmployee})
	require.NoError(t, err)

	refreshed, err := f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	require.NoError(t, f.svc.RevokeToken(ctx, tokens.RefreshToken, time.Now().Add(time.Hour)))
	_, err = f.svc.RefreshToken(ctx, auth.RefreshTokenRequest{RefreshToken: tokens.RefreshToken})
	assert.ErrorIs(t, err, auth.ErrTokenRevoked)

	assert.ErrorIs(t, f.svc.Logout(ctx, "", time.Now()), auth.ErrInvalidToken)
	require.NoError(t, f.svc.Logout(ctx, tokens.AccessToken, time.Unix(tokens.AccessTokenExpiresIn, 0)))
	revoked, err := f.svc.IsTokenRevoked(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.True(t, revoked)
}
