package web

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"foundly/internal/auth"
	"foundly/internal/model"
	"foundly/internal/store"
)

type webContextKey string

const sessionKey webContextKey = "session"

// sessionCookieName is the cookie carrying the signed session token.
const sessionCookieName = "session"

// requireRole validates the session cookie, checks token revocation and
// the principal's role, and redirects to loginPath on any failure. The
// gate never mutates session state; redirect is control flow, not error.
func requireRole(secret string, db *sql.DB, role, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			claims, err := auth.ValidateToken(secret, cookie.Value)
			if err != nil || claims.Role != role {
				clearSessionCookie(w)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}

			if claims.ID != "" {
				revoked, err := store.IsTokenRevoked(r.Context(), db, claims.ID)
				if err != nil {
					slog.Error("failed to check token revocation", "error", err)
					clearSessionCookie(w)
					http.Redirect(w, r, loginPath, http.StatusSeeOther)
					return
				}
				if revoked {
					clearSessionCookie(w)
					http.Redirect(w, r, loginPath, http.StatusSeeOther)
					return
				}
			}

			ctx := context.WithValue(r.Context(), sessionKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser gates a route on a user session, redirecting to /login.
func RequireUser(secret string, db *sql.DB) func(http.Handler) http.Handler {
	return requireRole(secret, db, model.RoleUser, "/login")
}

// RequireAdmin gates a route on an admin session, redirecting to /login/admin.
func RequireAdmin(secret string, db *sql.DB) func(http.Handler) http.Handler {
	return requireRole(secret, db, model.RoleAdmin, "/login/admin")
}

// GetSession retrieves the session claims from the request context, or nil
// for an unauthenticated request.
func GetSession(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(sessionKey).(*auth.Claims)
	return claims
}

// setSessionCookie writes the session cookie for a freshly issued token.
func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(auth.TokenExpiry / time.Second),
	})
}

// clearSessionCookie clears the session cookie with consistent attributes.
func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
}

// TimeoutMiddleware bounds each request with a deadline so a stuck query
// cannot hold a connection forever.
func TimeoutMiddleware(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
