package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"foundly/internal/apperr"
	"foundly/internal/model"
	"foundly/internal/store"
)

// ClaimSubmit handles POST /browse/{id}/claim.
func (s *Server) ClaimSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetSession(r.Context())
	itemID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, itemID)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}
	if item == nil {
		s.renderError(w, r, http.StatusNotFound, "item not found")
		return
	}

	message := r.FormValue("message")
	if message == "" {
		s.renderError(w, r, http.StatusBadRequest, "a claim needs a message")
		return
	}

	claim, err := store.CreateClaim(r.Context(), s.DB, itemID, claims.SubjectID, message)
	if err != nil {
		slog.Error("failed to create claim", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}

	slog.Info("claim filed", "user", claims.Email, "item", item.Title)
	http.Redirect(w, r, fmt.Sprintf("/claims/%d", claim.ID), http.StatusSeeOther)
}

// ClaimsPage handles GET /claims: the session user's claims.
func (s *Server) ClaimsPage(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())

	list, err := store.ListClaimsByUser(r.Context(), s.DB, session.SubjectID)
	if err != nil {
		slog.Error("failed to list claims", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}

	s.Templates.Render(w, "claims.html", &struct {
		PageData
		Claims []model.Claim
	}{
		PageData: PageData{Title: "My claims", Session: session},
		Claims:   list,
	})
}

// ClaimDetailPage handles GET /claims/{id}: the claim and its message
// thread, visible to the claimant and the item's reporter only.
func (s *Server) ClaimDetailPage(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())
	claim, ok := s.loadClaimForParticipant(w, r)
	if !ok {
		return
	}

	messages, err := store.ListMessages(r.Context(), s.DB, claim.ID)
	if err != nil {
		slog.Error("failed to list messages", "error", err)
	}

	s.Templates.Render(w, "claim_detail.html", &struct {
		PageData
		Claim    *model.Claim
		Messages []model.Message
	}{
		PageData: PageData{Title: "Claim on " + claim.ItemTitle, Session: session},
		Claim:    claim,
		Messages: messages,
	})
}

// MessageSubmit handles POST /claims/{id}/messages.
func (s *Server) MessageSubmit(w http.ResponseWriter, r *http.Request) {
	session := GetSession(r.Context())
	claim, ok := s.loadClaimForParticipant(w, r)
	if !ok {
		return
	}

	body := r.FormValue("body")
	if body == "" {
		s.renderError(w, r, http.StatusBadRequest, "message body is required")
		return
	}

	if _, err := store.CreateMessage(r.Context(), s.DB, claim.ID, session.SubjectID, body); err != nil {
		slog.Error("failed to create message", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/claims/%d", claim.ID), http.StatusSeeOther)
}

// loadClaimForParticipant fetches the claim in the path and checks the
// session user is the claimant or the claimed item's reporter.
func (s *Server) loadClaimForParticipant(w http.ResponseWriter, r *http.Request) (*model.Claim, bool) {
	session := GetSession(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "invalid claim id")
		return nil, false
	}

	claim, err := store.GetClaim(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get claim", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return nil, false
	}
	if claim == nil {
		s.renderError(w, r, http.StatusNotFound, "claim not found")
		return nil, false
	}

	if claim.ClaimantID != session.SubjectID {
		item, err := store.GetItem(r.Context(), s.DB, claim.ItemID)
		if err != nil || item == nil || item.UserID != session.SubjectID {
			s.renderError(w, r, http.StatusForbidden, "you are not part of this claim")
			return nil, false
		}
	}

	return claim, true
}
