package api

import (
	"context"
	"net/http"

	"github.com/switchgames/site/store"
)

// adminTokenHeader carries the opaque session token on admin requests.
const adminTokenHeader = "X-Admin-Token"

type contextKey int

const sessionContextKey contextKey = iota

// requireSession authenticates the admin token header and stores the
// session on the request context.
func (a *API) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get(adminTokenHeader)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing admin token")
			return
		}
		session, ok := a.sessions.Get(token)
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid or expired session")
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireRole gates a route on a minimum role. It must be mounted
// inside requireSession.
func (a *API) requireRole(min store.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := sessionFromContext(r.Context())
			if !session.Role.AtLeast(min) {
				writeError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func sessionFromContext(ctx context.Context) Session {
	session, _ := ctx.Value(sessionContextKey).(Session)
	return session
}
