package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strings"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/audit"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// Audit records successful mutating requests of authenticated callers. The sink
// must not block; production wires a queued writer.
func Audit(sink audit.Sink) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutating(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			actor, ok := ActorFromContext(r.Context())
			if !ok || status >= http.StatusBadRequest {
				return
			}

			event := audit.Event{
				ActorID:   actor.AccountID,
				ActorRole: string(actor.Role),
				Action:    r.Method + " " + routePattern(r),
				IPAddress: clientIP(r),
				UserAgent: r.UserAgent(),
			}
			if entity, id := routeEntity(r); entity != "" {
				event.Entity = &entity
				if id != "" {
					event.EntityID = &id
				}
			}

			if err := sink.Log(r.Context(), event); err != nil {
				slog.Warn("audit event dropped", "action", event.Action, "error", err)
			}
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// routeEntity names the resource a request touched: the path segment before the
// first URL parameter, or the first segment below the role prefix.
func routeEntity(r *http.Request) (string, string) {
	path := strings.TrimPrefix(routePattern(r), "/api/v1")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return "", ""
	}

	for i, part := range parts {
		if strings.HasPrefix(part, "{") && i > 0 {
			var id string
			if rctx := chi.RouteContext(r.Context()); rctx != nil && len(rctx.URLParams.Values) > 0 {
				id = rctx.URLParams.Values[len(rctx.URLParams.Values)-1]
			}
			return parts[i-1], id
		}
	}

	if (parts[0] == "admin" || parts[0] == "manager") && len(parts) > 1 {
		return parts[1], ""
	}
	return parts[0], ""
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
