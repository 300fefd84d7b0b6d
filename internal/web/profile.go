package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"foundly/internal/apperr"
	"foundly/internal/model"
	"foundly/internal/store"
)

// ProfilePage handles GET /profile/{user_id}: the user row plus their
// combined report history (lost items and found reports they filed).
func (s *Server) ProfilePage(w http.ResponseWriter, r *http.Request) {
	claims := GetSession(r.Context())
	userID, err := strconv.ParseInt(r.PathValue("user_id"), 10, 64)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "invalid user id")
		return
	}

	user, err := store.GetUser(r.Context(), s.DB, userID)
	if err != nil {
		slog.Error("failed to get user", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}
	if user == nil {
		s.renderError(w, r, http.StatusNotFound, "user not found")
		return
	}

	lost, err := store.ListItemsByUser(r.Context(), s.DB, userID)
	if err != nil {
		slog.Error("failed to list user items", "error", err)
	}
	found, err := store.ListFoundReportsByUser(r.Context(), s.DB, userID)
	if err != nil {
		slog.Error("failed to list user found reports", "error", err)
	}

	s.Templates.Render(w, "profile.html", &struct {
		PageData
		Profile      *model.User
		LostItems    []model.Item
		FoundReports []model.FoundReport
	}{
		PageData:     PageData{Title: user.Name, Session: claims},
		Profile:      user,
		LostItems:    lost,
		FoundReports: found,
	})
}
