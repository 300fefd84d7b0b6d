package api

import (
	"database/sql"
	"net/http"

	"foundly/internal/model"
)

// NewRouter creates the JSON API router under /api.
func NewRouter(db *sql.DB, sessionSecret string) http.Handler {
	authHandler := &AuthHandler{DB: db, SessionSecret: sessionSecret}
	itemHandler := &ItemHandler{DB: db}
	claimHandler := &ClaimHandler{DB: db}
	dashboardHandler := &DashboardHandler{DB: db}

	authed := AuthMiddleware(sessionSecret, db)
	userOnly := RequireRole(model.RoleUser)
	adminOnly := RequireRole(model.RoleAdmin)

	mux := http.NewServeMux()

	// Public.
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("POST /api/auth/login/admin", authHandler.AdminLogin)

	// Authenticated.
	mux.Handle("POST /api/auth/logout", authed(http.HandlerFunc(authHandler.Logout)))

	mux.Handle("GET /api/items", authed(userOnly(http.HandlerFunc(itemHandler.List))))
	mux.Handle("GET /api/items/{id}", authed(userOnly(http.HandlerFunc(itemHandler.Get))))
	mux.Handle("POST /api/items", authed(userOnly(http.HandlerFunc(itemHandler.Create))))
	mux.Handle("POST /api/items/{id}/found", authed(userOnly(http.HandlerFunc(itemHandler.ReportFound))))

	mux.Handle("GET /api/claims", authed(userOnly(http.HandlerFunc(claimHandler.List))))
	mux.Handle("POST /api/claims", authed(userOnly(http.HandlerFunc(claimHandler.Create))))

	mux.Handle("GET /api/admin/dashboard", authed(adminOnly(http.HandlerFunc(dashboardHandler.Get))))

	return mux
}
