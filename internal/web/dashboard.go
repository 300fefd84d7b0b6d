package web

import (
	"log/slog"
	"net/http"
	"strconv"

	"foundly/internal/apperr"
	"foundly/internal/model"
	"foundly/internal/store"
)

// AdminDashboard handles GET /admin/dashboard. The four aggregates are
// independent reads fetched concurrently by the store.
func (s *Server) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())

	stats, err := store.GetDashboardStats(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to gather dashboard stats", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}

	s.Templates.Render(w, "admin_dashboard.html", &struct {
		PageData
		Stats *store.DashboardStats
	}{
		PageData: PageData{Title: "Dashboard", Session: session},
		Stats:    stats,
	})
}

// AdminClaimsPage handles GET /admin/claims.
func (s *Server) AdminClaimsPage(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())

	list, err := store.ListClaims(r.Context(), s.DB)
	if err != nil {
		slog.Error("failed to list claims", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}

	s.Templates.Render(w, "admin_claims.html", &struct {
		PageData
		Claims []model.Claim
	}{
		PageData: PageData{Title: "Claims", Session: session},
		Claims:   list,
	})
}

// AdminClaimStatusSubmit handles POST /admin/claims/{id}/status.
func (s *Server) AdminClaimStatusSubmit(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "invalid claim id")
		return
	}

	status := r.FormValue("status")
	if status != model.ClaimStatusApproved && status != model.ClaimStatusRejected {
		s.renderError(w, r, http.StatusBadRequest, "status must be approved or rejected")
		return
	}

	if err := store.UpdateClaimStatus(r.Context(), s.DB, id, status); err != nil {
		slog.Error("failed to update claim status", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}

	slog.Info("claim settled", "admin", session.Email, "claim", id, "status", status)
	http.Redirect(w, r, "/admin/claims", http.StatusSeeOther)
}
