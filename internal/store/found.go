package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"foundly/internal/model"
)

const foundColumns = `id, title, description, category, status, date_reported,
                      image_url, location, item_id, found_by`

// CreateFoundReport files a found report and, when the report names the
// lost item it resolves, flips that item to found. Both writes happen in
// one transaction: a failure on either side leaves no partial state.
func CreateFoundReport(ctx context.Context, db *sql.DB, report model.FoundReport) (*model.FoundReport, error) {
	if report.DateReported.IsZero() {
		report.DateReported = time.Now()
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO found_reports (title, description, category, status, date_reported, image_url, location, item_id, found_by)
		 VALUES (?, ?, ?, 'found', ?, ?, ?, ?, ?)`,
		report.Title, report.Description, report.Category,
		report.DateReported, report.ImageURL, report.Location, report.ItemID, report.FoundBy,
	)
	if err != nil {
		return nil, fmt.Errorf("creating found report: %w", err)
	}

	if report.ItemID != nil {
		// Idempotent flip; a missing or already-found item is not an error.
		if _, err := tx.ExecContext(ctx,
			`UPDATE items SET status = ? WHERE id = ?`,
			model.ItemStatusFound, *report.ItemID,
		); err != nil {
			return nil, fmt.Errorf("marking item found: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing found report: %w", err)
	}

	id, _ := result.LastInsertId()
	return GetFoundReport(ctx, db, id)
}

// GetFoundReport returns a found report by ID.
func GetFoundReport(ctx context.Context, db *sql.DB, id int64) (*model.FoundReport, error) {
	report := &model.FoundReport{}
	var description, category, imageURL, location sql.NullString
	var itemID sql.NullInt64
	err := readRetry(ctx, func() error {
		return db.QueryRowContext(ctx,
			`SELECT `+foundColumns+` FROM found_reports WHERE id = ?`, id,
		).Scan(&report.ID, &report.Title, &description, &category, &report.Status,
			&report.DateReported, &imageURL, &location, &itemID, &report.FoundBy)
	})
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting found report: %w", err)
	}
	report.Description = description.String
	report.Category = category.String
	report.ImageURL = imageURL.String
	report.Location = location.String
	if itemID.Valid {
		report.ItemID = &itemID.Int64
	}
	return report, nil
}

// ListFoundReports returns all found reports, most recent first.
func ListFoundReports(ctx context.Context, db *sql.DB) ([]model.FoundReport, error) {
	var reports []model.FoundReport
	err := readRetry(ctx, func() error {
		rows, err := db.QueryContext(ctx,
			`SELECT `+foundColumns+` FROM found_reports ORDER BY date_reported DESC, id DESC`,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		reports, err = scanFoundReports(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing found reports: %w", err)
	}
	return reports, nil
}

// ListFoundReportsByUser returns the found reports filed by a user,
// most recent first.
func ListFoundReportsByUser(ctx context.Context, db *sql.DB, userID int64) ([]model.FoundReport, error) {
	var reports []model.FoundReport
	err := readRetry(ctx, func() error {
		rows, err := db.QueryContext(ctx,
			`SELECT `+foundColumns+` FROM found_reports WHERE found_by = ?
			 ORDER BY date_reported DESC, id DESC`, userID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		reports, err = scanFoundReports(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing found reports by user: %w", err)
	}
	return reports, nil
}

// CountFoundReports returns the total number of found reports.
func CountFoundReports(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	err := readRetry(ctx, func() error {
		return db.QueryRowContext(ctx, `SELECT COUNT(*) FROM found_reports`).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("counting found reports: %w", err)
	}
	return count, nil
}

func scanFoundReports(rows *sql.Rows) ([]model.FoundReport, error) {
	var reports []model.FoundReport
	for rows.Next() {
		var report model.FoundReport
		var description, category, imageURL, location sql.NullString
		var itemID sql.NullInt64
		if err := rows.Scan(&report.ID, &report.Title, &description, &category, &report.Status,
			&report.DateReported, &imageURL, &location, &itemID, &report.FoundBy); err != nil {
			return nil, fmt.Errorf("scanning found report: %w", err)
		}
		report.Description = description.String
		report.Category = category.String
		report.ImageURL = imageURL.String
		report.Location = location.String
		if itemID.Valid {
			report.ItemID = &itemID.Int64
		}
		reports = append(reports, report)
	}
	return reports, rows.Err()
}
