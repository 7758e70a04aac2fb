package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/employee-management-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/employee-management-go/internal/handler/http/response"
	"github.com/goccy/go-json"
)

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return false
	}
	return true
}

// currentActor writes 401 when the request carries no authenticated caller.
func currentActor(w http.ResponseWriter, r *http.Request) (middleware.Actor, bool) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
	}
	return actor, ok
}

func queryLimit(r *http.Request) (int, bool) {
	l := r.URL.Query().Get("limit")
	if l == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(l)
	if err != nil {
		return 0, false
	}
	return limit, true
}

func optionalQuery(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}
