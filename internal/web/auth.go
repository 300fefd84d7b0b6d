package web

import (
	"log/slog"
	"net/http"
	"net/mail"
	"time"

	"golang.org/x/crypto/bcrypt"

	"foundly/internal/apperr"
	"foundly/internal/auth"
	"foundly/internal/model"
	"foundly/internal/store"
)

// SignupPage handles GET /signup.
func (s *Server) SignupPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "signup.html", &PageData{Title: "Sign up"})
}

// SignupSubmit handles POST /signup.
func (s *Server) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	name := r.FormValue("name")
	email := r.FormValue("email")
	phone := r.FormValue("phone")
	password := r.FormValue("password")

	if name == "" || email == "" || password == "" {
		s.Templates.RenderStatus(w, http.StatusBadRequest, "signup.html", &PageData{
			Title: "Sign up",
			Error: "Name, email and password are required.",
		})
		return
	}
	if _, err := mail.ParseAddress(email); err != nil {
		s.Templates.RenderStatus(w, http.StatusBadRequest, "signup.html", &PageData{
			Title: "Sign up",
			Error: "Enter a valid email address.",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}

	if _, err := store.CreateUser(r.Context(), s.DB, name, email, phone, string(hash)); err != nil {
		if apperr.KindOf(err) == apperr.Conflict {
			s.Templates.RenderStatus(w, http.StatusConflict, "signup.html", &PageData{
				Title: "Sign up",
				Error: "Email already registered.",
			})
			return
		}
		slog.Error("failed to create user", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}

	slog.Info("user signed up", "email", email)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// LoginPage handles GET /login.
func (s *Server) LoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "login.html", &PageData{Title: "Log in"})
}

// LoginSubmit handles POST /login.
func (s *Server) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.Templates.RenderStatus(w, http.StatusBadRequest, "login.html", &PageData{
			Title: "Log in",
			Error: "Enter your email and password.",
		})
		return
	}

	user, err := store.GetUserByEmail(r.Context(), s.DB, email)
	if err != nil {
		slog.Error("failed to look up user", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		slog.Warn("login failed", "email", email, "remote", r.RemoteAddr)
		s.Templates.RenderStatus(w, http.StatusUnauthorized, "login.html", &PageData{
			Title: "Log in",
			Error: "Invalid email or password.",
		})
		return
	}

	token, err := auth.GenerateToken(s.SessionSecret, user.ID, user.Name, user.Email, model.RoleUser)
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}

	setSessionCookie(w, token)
	slog.Info("user logged in", "email", user.Email)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles GET /logout.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.logout(w, r, "/login")
}

// AdminLoginPage handles GET /login/admin.
func (s *Server) AdminLoginPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "admin_login.html", &PageData{Title: "Admin log in"})
}

// AdminLoginSubmit handles POST /login/admin.
func (s *Server) AdminLoginSubmit(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		s.Templates.RenderStatus(w, http.StatusBadRequest, "admin_login.html", &PageData{
			Title: "Admin log in",
			Error: "Enter your email and password.",
		})
		return
	}

	admin, err := store.GetAdminByEmail(r.Context(), s.DB, email)
	if err != nil {
		slog.Error("failed to look up admin", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}
	if admin == nil || bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		slog.Warn("admin login failed", "email", email, "remote", r.RemoteAddr)
		s.Templates.RenderStatus(w, http.StatusUnauthorized, "admin_login.html", &PageData{
			Title: "Admin log in",
			Error: "Invalid email or password.",
		})
		return
	}

	token, err := auth.GenerateToken(s.SessionSecret, admin.ID, "", admin.Email, model.RoleAdmin)
	if err != nil {
		slog.Error("failed to generate session token", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}

	setSessionCookie(w, token)
	slog.Info("admin logged in", "email", admin.Email)
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// AdminLogout handles GET /logout/admin.
func (s *Server) AdminLogout(w http.ResponseWriter, r *http.Request) {
	s.logout(w, r, "/login/admin")
}

// logout revokes the current session token, clears the cookie and
// redirects to the given login page.
func (s *Server) logout(w http.ResponseWriter, r *http.Request, loginPath string) {
	if claims := GetSession(r.Context()); claims != nil && claims.ID != "" {
		expiry := time.Now().Add(auth.TokenExpiry)
		if claims.ExpiresAt != nil {
			expiry = claims.ExpiresAt.Time
		}
		if err := store.RevokeToken(r.Context(), s.DB, claims.ID, expiry); err != nil {
			slog.Error("failed to revoke session token", "error", err)
		}
	}
	clearSessionCookie(w)
	http.Redirect(w, r, loginPath, http.StatusSeeOther)
}
