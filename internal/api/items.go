package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"foundly/internal/model"
	"foundly/internal/store"
)

// ItemHandler handles item endpoints.
type ItemHandler struct {
	DB *sql.DB
}

type createItemRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Location     string `json:"location"`
	ImageURL     string `json:"image_url"`
	DateReported string `json:"date_reported"`
}

type foundReportRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	ImageURL    string `json:"image_url"`
}

// List handles GET /api/items.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := store.ListItems(r.Context(), h.DB, r.URL.Query().Get("status"))
	if err != nil {
		jsonAppError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/items/{id}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonAppError(w, err)
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Create handles POST /api/items: file a lost report as the token's user.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}

	item := model.Item{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		UserID:      claims.SubjectID,
	}
	if req.DateReported != "" {
		d, err := time.Parse("2006-01-02", req.DateReported)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid date_reported, expected YYYY-MM-DD")
			return
		}
		item.DateReported = d
	}

	created, err := store.CreateItem(r.Context(), h.DB, item)
	if err != nil {
		jsonAppError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, created)
}

// ReportFound handles POST /api/items/{id}/found: file a found report
// resolving the item.
func (h *ItemHandler) ReportFound(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonAppError(w, err)
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	var req foundReportRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		req.Title = item.Title
	}

	report, err := store.CreateFoundReport(r.Context(), h.DB, model.FoundReport{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		ImageURL:    req.ImageURL,
		ItemID:      &id,
		FoundBy:     claims.SubjectID,
	})
	if err != nil {
		jsonAppError(w, err)
		return
	}
	jsonResponse(w, http.StatusCreated, report)
}
