package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"foundly/internal/model"
)

const itemColumns = `id, title, description, category, status, date_reported,
                     image_url, image_mime, location, user_id`

// CreateItem files a lost-item report. The reporting user comes from the
// session identity, never from client input.
func CreateItem(ctx context.Context, db *sql.DB, item model.Item) (*model.Item, error) {
	if item.DateReported.IsZero() {
		item.DateReported = time.Now()
	}
	result, err := db.ExecContext(ctx,
		`INSERT INTO items (title, description, category, status, date_reported, image_url, location, user_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Title, item.Description, item.Category, model.ItemStatusLost,
		item.DateReported, item.ImageURL, item.Location, item.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if no such item exists.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	item := &model.Item{}
	var description, category, imageURL, imageMime, location sql.NullString
	err := readRetry(ctx, func() error {
		return db.QueryRowContext(ctx,
			`SELECT `+itemColumns+` FROM items WHERE id = ?`, id,
		).Scan(&item.ID, &item.Title, &description, &category, &item.Status,
			&item.DateReported, &imageURL, &imageMime, &location, &item.UserID)
	})
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	item.Description = description.String
	item.Category = category.String
	item.ImageURL = imageURL.String
	item.ImageMime = imageMime.String
	item.Location = location.String
	return item, nil
}

// ListItems returns items most recent first, optionally filtered by status.
// Values outside the enumerated statuses disable the filter.
func ListItems(ctx context.Context, db *sql.DB, status string) ([]model.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items`
	var args []any

	if model.ValidItemStatus(status) {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY date_reported DESC, id DESC`

	var items []model.Item
	err := readRetry(ctx, func() error {
		rows, err := db.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		items, err = scanItems(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return items, nil
}

// ListItemsByUser returns all items reported by a user, most recent first.
func ListItemsByUser(ctx context.Context, db *sql.DB, userID int64) ([]model.Item, error) {
	var items []model.Item
	err := readRetry(ctx, func() error {
		rows, err := db.QueryContext(ctx,
			`SELECT `+itemColumns+` FROM items WHERE user_id = ?
			 ORDER BY date_reported DESC, id DESC`, userID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		items, err = scanItems(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing items by user: %w", err)
	}
	return items, nil
}

func scanItems(rows *sql.Rows) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		var item model.Item
		var description, category, imageURL, imageMime, location sql.NullString
		if err := rows.Scan(&item.ID, &item.Title, &description, &category, &item.Status,
			&item.DateReported, &imageURL, &imageMime, &location, &item.UserID); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.Description = description.String
		item.Category = category.String
		item.ImageURL = imageURL.String
		item.ImageMime = imageMime.String
		item.Location = location.String
		items = append(items, item)
	}
	return items, rows.Err()
}

// SetItemImage stores an item's processed photo.
func SetItemImage(ctx context.Context, db *sql.DB, id int64, image []byte, mime string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE items SET image = ?, image_mime = ? WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	return nil
}

// GetItemImage returns an item's photo data and MIME type.
func GetItemImage(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := readRetry(ctx, func() error {
		return db.QueryRowContext(ctx,
			`SELECT image, image_mime FROM items WHERE id = ?`, id,
		).Scan(&image, &mime)
	})
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("getting item image: %w", err)
	}
	return image, mime.String, nil
}
