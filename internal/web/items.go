package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"foundly/internal/apperr"
	"foundly/internal/imaging"
	"foundly/internal/model"
	"foundly/internal/store"
)

// HomePage handles GET /.
func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	claims := GetSession(r.Context())

	items, err := store.ListItems(r.Context(), s.DB, "")
	if err != nil {
		slog.Error("failed to list items for home", "error", err)
	}
	if len(items) > 8 {
		items = items[:8]
	}

	s.Templates.Render(w, "home.html", &struct {
		PageData
		RecentItems []model.Item
	}{
		PageData:    PageData{Title: "Home", Session: claims},
		RecentItems: items,
	})
}

// BrowserPage handles GET /browser. An unknown status value disables the
// filter instead of failing.
func (s *Server) BrowserPage(w http.ResponseWriter, r *http.Request) {
	claims := GetSession(r.Context())
	status := r.URL.Query().Get("status")

	items, err := store.ListItems(r.Context(), s.DB, status)
	if err != nil {
		slog.Error("failed to list items", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}

	filter := ""
	if model.ValidItemStatus(status) {
		filter = status
	}

	s.Templates.Render(w, "browser.html", &struct {
		PageData
		Items  []model.Item
		Filter string
	}{
		PageData: PageData{Title: "Browse items", Session: claims},
		Items:    items,
		Filter:   filter,
	})
}

// ItemDetailPage handles GET /browse/{id}.
func (s *Server) ItemDetailPage(w http.ResponseWriter, r *http.Request) {
	claims := GetSession(r.Context())
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		s.renderError(w, r, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}
	if item == nil {
		s.renderError(w, r, http.StatusNotFound, "item not found")
		return
	}

	s.Templates.Render(w, "item_detail.html", &struct {
		PageData
		Item *model.Item
	}{
		PageData: PageData{Title: item.Title, Session: claims},
		Item:     item,
	})
}

// ItemImageGet handles GET /browse/{id}/image.
func (s *Server) ItemImageGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	data, mime, err := store.GetItemImage(r.Context(), s.DB, id)
	if err != nil {
		slog.Error("failed to get item image", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if data == nil {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write image response", "error", err)
	}
}

// ReportPage handles GET /report.
func (s *Server) ReportPage(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, "report.html", &PageData{
		Title:   "Report a lost item",
		Session: GetSession(r.Context()),
	})
}

// ReportSubmit handles POST /report. The reporter is the session identity;
// a user id in the form would not be trusted anyway.
func (s *Server) ReportSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetSession(r.Context())

	item, photo, ok := s.parseItemForm(w, r, "report.html", "Report a lost item")
	if !ok {
		return
	}
	item.UserID = claims.SubjectID

	created, err := store.CreateItem(r.Context(), s.DB, item)
	if err != nil {
		slog.Error("failed to create item", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}
	if photo != nil {
		if err := store.SetItemImage(r.Context(), s.DB, created.ID, photo.Data, photo.MIME); err != nil {
			slog.Error("failed to save item photo", "error", err)
		}
	}

	slog.Info("lost item reported", "user", claims.Email, "item", created.Title)
	http.Redirect(w, r, "/browser", http.StatusSeeOther)
}

// ReportFoundPage handles GET /reportfnd.
func (s *Server) ReportFoundPage(w http.ResponseWriter, r *http.Request) {
	claims := GetSession(r.Context())

	// Offer the reporter's still-lost items for linking.
	lost, err := store.ListItems(r.Context(), s.DB, model.ItemStatusLost)
	if err != nil {
		slog.Error("failed to list lost items", "error", err)
	}

	s.Templates.Render(w, "report_found.html", &struct {
		PageData
		LostItems []model.Item
	}{
		PageData:  PageData{Title: "Report a found item", Session: claims},
		LostItems: lost,
	})
}

// ReportFoundSubmit handles POST /reportfnd. The insert and the lost-item
// status flip are a single transaction in the store.
func (s *Server) ReportFoundSubmit(w http.ResponseWriter, r *http.Request) {
	claims := GetSession(r.Context())

	title := r.FormValue("title")
	if title == "" {
		s.Templates.RenderStatus(w, http.StatusBadRequest, "report_found.html", &struct {
			PageData
			LostItems []model.Item
		}{
			PageData: PageData{
				Title:   "Report a found item",
				Session: claims,
				Error:   "Title is required.",
			},
		})
		return
	}

	report := model.FoundReport{
		Title:       title,
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		ImageURL:    r.FormValue("image_url"),
		Location:    r.FormValue("location"),
		FoundBy:     claims.SubjectID,
	}
	if v := r.FormValue("item_id"); v != "" {
		itemID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			s.renderError(w, r, http.StatusBadRequest, "invalid item id")
			return
		}
		report.ItemID = &itemID
	}
	if v := r.FormValue("date_reported"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			s.renderError(w, r, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
			return
		}
		report.DateReported = d
	}

	created, err := store.CreateFoundReport(r.Context(), s.DB, report)
	if err != nil {
		slog.Error("failed to create found report", "error", err)
		s.renderError(w, r, http.StatusInternalServerError, apperr.Message(err))
		return
	}

	slog.Info("found item reported", "user", claims.Email, "report", created.Title)
	http.Redirect(w, r, "/browser", http.StatusSeeOther)
}

// parseItemForm reads the shared lost-report form fields and the optional
// photo upload. On validation failure it renders page with an error and
// returns ok=false.
func (s *Server) parseItemForm(w http.ResponseWriter, r *http.Request, page, title string) (model.Item, *imaging.Photo, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)
	// Multipart when a photo is attached, urlencoded otherwise.
	if err := r.ParseMultipartForm(5 << 20); err != nil && err != http.ErrNotMultipart {
		s.Templates.RenderStatus(w, http.StatusBadRequest, page, &PageData{
			Title:   title,
			Session: GetSession(r.Context()),
			Error:   "Form too large or malformed.",
		})
		return model.Item{}, nil, false
	}

	item := model.Item{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		ImageURL:    r.FormValue("image_url"),
		Location:    r.FormValue("location"),
	}
	if item.Title == "" {
		s.Templates.RenderStatus(w, http.StatusBadRequest, page, &PageData{
			Title:   title,
			Session: GetSession(r.Context()),
			Error:   "Title is required.",
		})
		return model.Item{}, nil, false
	}
	if v := r.FormValue("date_reported"); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			s.Templates.RenderStatus(w, http.StatusBadRequest, page, &PageData{
				Title:   title,
				Session: GetSession(r.Context()),
				Error:   "Invalid date, expected YYYY-MM-DD.",
			})
			return model.Item{}, nil, false
		}
		item.DateReported = d
	}

	var photo *imaging.Photo
	if file, _, err := r.FormFile("photo"); err == nil {
		defer file.Close()
		photo, err = imaging.Process(file)
		if err != nil {
			s.Templates.RenderStatus(w, http.StatusBadRequest, page, &PageData{
				Title:   title,
				Session: GetSession(r.Context()),
				Error:   fmt.Sprintf("Photo rejected: %v.", err),
			})
			return model.Item{}, nil, false
		}
	}

	return item, photo, true
}
