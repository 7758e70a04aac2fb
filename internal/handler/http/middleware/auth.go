package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/account"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/auth"
	"github.com/cmlabs-hris/employee-management-go/internal/handler/http/response"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

type actorKey struct{}

// Actor is the authenticated caller of a request.
type Actor struct {
	AccountID string
	Role      account.Role
	Code      string
	Token     string
	ExpiresAt time.Time
}

func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

func ActorFromContext(ctx context.Context) (Actor, bool) {
	actor, ok := ctx.Value(actorKey{}).(Actor)
	return actor, ok
}

// AuthRequired accepts only verified, unrevoked access tokens and puts the Actor on the context.
// It must run after jwtauth.Verifier.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if !ok || tokenType != jwt.TokenTypeAccess {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			accountID, _ := claims["account_id"].(string)
			role, _ := claims["role"].(string)
			code, _ := claims["code"].(string)
			if accountID == "" || !account.Role(role).IsValid() {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			// Verifier also accepts the jwt cookie.
			raw := jwtauth.TokenFromHeader(r)
			if raw == "" {
				raw = jwtauth.TokenFromCookie(r)
			}
			revoked, err := jwtService.IsTokenRevoked(r.Context(), raw)
			if err != nil {
				slog.Error("token revocation check failed", "error", err)
				response.ServiceUnavailable(w, "token store unavailable")
				return
			}
			if revoked {
				response.HandleError(w, auth.ErrTokenRevoked)
				return
			}

			ctx := WithActor(r.Context(), Actor{
				AccountID: accountID,
				Role:      account.Role(role),
				Code:      code,
				Token:     raw,
				ExpiresAt: token.Expiration(),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}
