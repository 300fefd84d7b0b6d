package web

import (
	"database/sql"
	"net/http"

	webembed "foundly/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, sessionSecret string) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		DB:            db,
		Templates:     templates,
		SessionSecret: sessionSecret,
	}

	mux := http.NewServeMux()
	userAuth := RequireUser(sessionSecret, db)
	adminAuth := RequireAdmin(sessionSecret, db)

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("GET /signup", s.SignupPage)
	mux.HandleFunc("POST /signup", s.SignupSubmit)
	mux.HandleFunc("GET /login/admin", s.AdminLoginPage)
	mux.HandleFunc("POST /login/admin", s.AdminLoginSubmit)

	// User routes.
	mux.Handle("GET /{$}", userAuth(http.HandlerFunc(s.HomePage)))
	mux.Handle("GET /logout", userAuth(http.HandlerFunc(s.Logout)))

	mux.Handle("GET /browser", userAuth(http.HandlerFunc(s.BrowserPage)))
	mux.Handle("GET /browse/{id}", userAuth(http.HandlerFunc(s.ItemDetailPage)))
	mux.Handle("GET /browse/{id}/image", userAuth(http.HandlerFunc(s.ItemImageGet)))
	mux.Handle("POST /browse/{id}/claim", userAuth(http.HandlerFunc(s.ClaimSubmit)))

	mux.Handle("GET /report", userAuth(http.HandlerFunc(s.ReportPage)))
	mux.Handle("POST /report", userAuth(http.HandlerFunc(s.ReportSubmit)))
	mux.Handle("GET /reportfnd", userAuth(http.HandlerFunc(s.ReportFoundPage)))
	mux.Handle("POST /reportfnd", userAuth(http.HandlerFunc(s.ReportFoundSubmit)))

	mux.Handle("GET /profile/{user_id}", userAuth(http.HandlerFunc(s.ProfilePage)))

	mux.Handle("GET /claims", userAuth(http.HandlerFunc(s.ClaimsPage)))
	mux.Handle("GET /claims/{id}", userAuth(http.HandlerFunc(s.ClaimDetailPage)))
	mux.Handle("POST /claims/{id}/messages", userAuth(http.HandlerFunc(s.MessageSubmit)))

	// Admin routes.
	mux.Handle("GET /logout/admin", adminAuth(http.HandlerFunc(s.AdminLogout)))
	mux.Handle("GET /admin/dashboard", adminAuth(http.HandlerFunc(s.AdminDashboard)))
	mux.Handle("GET /admin/claims", adminAuth(http.HandlerFunc(s.AdminClaimsPage)))
	mux.Handle("POST /admin/claims/{id}/status", adminAuth(http.HandlerFunc(s.AdminClaimStatusSubmit)))

	return mux, nil
}
