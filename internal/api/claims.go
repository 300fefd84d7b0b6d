package api

import (
	"database/sql"
	"net/http"

	"foundly/internal/store"
)

// ClaimHandler handles claim endpoints.
type ClaimHandler struct {
	DB *sql.DB
}

type createClaimRequest struct {
	ItemID  int64  `json:"item_id"`
	Message string `json:"message"`
}

// List handles GET /api/claims: the token user's claims.
func (h *ClaimHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	list, err := store.ListClaimsByUser(r.Context(), h.DB, claims.SubjectID)
	if err != nil {
		jsonAppError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, list)
}

// Create handles POST /api/claims.
func (h *ClaimHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req createClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemID == 0 || req.Message == "" {
		jsonError(w, http.StatusBadRequest, "item_id and message required")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, req.ItemID)
	if err != nil {
		jsonAppError(w, err)
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	claim, err := store.CreateClaim(r.Context(), h.DB, req.ItemID, claims.SubjectID, req.Message)
	if err != nil {
		jsonAppError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, claim)
}

// DashboardHandler handles the admin dashboard endpoint.
type DashboardHandler struct {
	DB *sql.DB
}

// Get handles GET /api/admin/dashboard.
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := store.GetDashboardStats(r.Context(), h.DB)
	if err != nil {
		jsonAppError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}
