package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"payroll.service/internal/identity"
)

// SessionCookie carries the identity-provider access token between
// requests.
const SessionCookie = "session_token"

type contextKey string

const userKey contextKey = "currentUser"

// UserFromContext returns the authenticated user, or nil on anonymous
// requests that the policy let through.
func UserFromContext(ctx context.Context) *identity.User {
	user, _ := ctx.Value(userKey).(*identity.User)
	return user
}

// ContextWithUser attaches a session user to the context.
func ContextWithUser(ctx context.Context, user *identity.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// Middleware resolves the session and enforces the access policy before
// any handler runs. An unexpected identity-provider failure redirects to
// the generic error page rather than crashing the request.
func Middleware(ident identity.Client) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var user *identity.User
			if token := sessionToken(r); token != "" {
				var err error
				user, err = ident.GetCurrentUser(ctx, token)
				if err != nil {
					log.Ctx(ctx).Error().Err(err).Msg("Identity lookup failed")
					http.Redirect(w, r, "/error", http.StatusSeeOther)
					return
				}
			}

			req := AccessRequest{Path: r.URL.Path}
			if user != nil {
				req.Authenticated = true
				req.Role = user.Role
				req.UserID = user.ID
				ctx = ContextWithUser(ctx, user)
			}

			if decision := Authorize(req); !decision.Allow {
				http.Redirect(w, r, decision.RedirectTo, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// sessionToken pulls the access token from the session cookie, falling
// back to a bearer Authorization header for API callers.
func sessionToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(strings.ToLower(authz), "bearer ") {
		return strings.TrimSpace(authz[len("bearer "):])
	}
	return ""
}
