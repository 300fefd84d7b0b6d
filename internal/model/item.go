package model

import "time"

// Item is a lost-item report filed by a user. Its status flips to found
// exactly once, when a matching found report is filed; there is no
// transition back.
type Item struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	Status       string    `json:"status"`
	DateReported time.Time `json:"date_reported"`
	ImageURL     string    `json:"image_url,omitempty"`
	ImageMime    string    `json:"image_mime,omitempty"`
	Location     string    `json:"location,omitempty"`
	UserID       int64     `json:"user_id"`
}

// Item statuses.
const (
	ItemStatusLost  = "lost"
	ItemStatusFound = "found"
)

// ValidItemStatus reports whether s is one of the enumerated item statuses.
// Any other value in a browse filter is ignored, not rejected.
func ValidItemStatus(s string) bool {
	return s == ItemStatusLost || s == ItemStatusFound
}

// FoundReport records a found item handed in by a user. ItemID links the
// report to the lost item it resolves, when the finder knows it; FoundBy is
// always the reporting user.
type FoundReport struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Category     string    `json:"category,omitempty"`
	Status       string    `json:"status"`
	DateReported time.Time `json:"date_reported"`
	ImageURL     string    `json:"image_url,omitempty"`
	Location     string    `json:"location,omitempty"`
	ItemID       *int64    `json:"item_id,omitempty"`
	FoundBy      int64     `json:"found_by"`
}
