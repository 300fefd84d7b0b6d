package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"foundly/internal/auth"
	"foundly/internal/model"
	"foundly/internal/store"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	DB            *sql.DB
	SessionSecret string
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, model.RoleUser)
}

// AdminLogin handles POST /api/auth/login/admin.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.login(w, r, model.RoleAdmin)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request, role string) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		jsonError(w, http.StatusBadRequest, "email and password required")
		return
	}

	var id int64
	var name, hash string
	switch role {
	case model.RoleUser:
		user, err := store.GetUserByEmail(r.Context(), h.DB, req.Email)
		if err != nil {
			jsonAppError(w, err)
			return
		}
		if user != nil {
			id, name, hash = user.ID, user.Name, user.PasswordHash
		}
	case model.RoleAdmin:
		admin, err := store.GetAdminByEmail(r.Context(), h.DB, req.Email)
		if err != nil {
			jsonAppError(w, err)
			return
		}
		if admin != nil {
			id, hash = admin.ID, admin.PasswordHash
		}
	}

	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		slog.Warn("api login failed", "email", req.Email, "remote", r.RemoteAddr)
		jsonError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := auth.GenerateToken(h.SessionSecret, id, name, req.Email, role)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	slog.Info("api login", "email", req.Email, "role", role)
	jsonResponse(w, http.StatusOK, loginResponse{Token: token})
}

// Logout handles POST /api/auth/logout: revokes the current token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if claims == nil || claims.ID == "" {
		jsonError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	if err := store.RevokeToken(r.Context(), h.DB, claims.ID, claims.ExpiresAt.Time); err != nil {
		slog.Error("failed to revoke token", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "logged out"})
}
