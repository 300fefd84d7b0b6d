package store

import (
	"context"
	"database/sql"
	"fmt"

	"foundly/internal/model"
)

const claimColumns = `c.id, c.item_id, c.claimant_id, c.message, c.status, c.claim_date,
                      i.title AS item_title, u.name AS claimant_name`

const claimJoins = `FROM claims c
                    JOIN items i ON i.id = c.item_id
                    JOIN users u ON u.id = c.claimant_id`

// CreateClaim files an ownership claim on an item.
func CreateClaim(ctx context.Context, db *sql.DB, itemID, claimantID int64, message string) (*model.Claim, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO claims (item_id, claimant_id, message) VALUES (?, ?, ?)`,
		itemID, claimantID, message,
	)
	if err != nil {
		return nil, fmt.Errorf("creating claim: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting claim id: %w", err)
	}

	return GetClaim(ctx, db, id)
}

// GetClaim returns a claim by ID with item and claimant names joined.
func GetClaim(ctx context.Context, db *sql.DB, id int64) (*model.Claim, error) {
	c := &model.Claim{}
	var message sql.NullString
	err := readRetry(ctx, func() error {
		return db.QueryRowContext(ctx,
			`SELECT `+claimColumns+` `+claimJoins+` WHERE c.id = ?`, id,
		).Scan(&c.ID, &c.ItemID, &c.ClaimantID, &message, &c.Status, &c.ClaimDate,
			&c.ItemTitle, &c.ClaimantName)
	})
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting claim: %w", err)
	}
	c.Message = message.String
	return c, nil
}

// ListClaimsByUser returns the claims filed by a user, most recent first.
func ListClaimsByUser(ctx context.Context, db *sql.DB, claimantID int64) ([]model.Claim, error) {
	var claims []model.Claim
	err := readRetry(ctx, func() error {
		rows, err := db.QueryContext(ctx,
			`SELECT `+claimColumns+` `+claimJoins+`
			 WHERE c.claimant_id = ? ORDER BY c.claim_date DESC, c.id DESC`, claimantID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		claims, err = scanClaims(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing claims by user: %w", err)
	}
	return claims, nil
}

// ListClaims returns all claims, most recent first.
func ListClaims(ctx context.Context, db *sql.DB) ([]model.Claim, error) {
	var claims []model.Claim
	err := readRetry(ctx, func() error {
		rows, err := db.QueryContext(ctx,
			`SELECT `+claimColumns+` `+claimJoins+` ORDER BY c.claim_date DESC, c.id DESC`,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		claims, err = scanClaims(rows)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}
	return claims, nil
}

// UpdateClaimStatus sets a pending claim to approved or rejected.
func UpdateClaimStatus(ctx context.Context, db *sql.DB, id int64, status string) error {
	if status != model.ClaimStatusApproved && status != model.ClaimStatusRejected {
		return fmt.Errorf("invalid claim status %q", status)
	}
	_, err := db.ExecContext(ctx,
		`UPDATE claims SET status = ? WHERE id = ? AND status = ?`,
		status, id, model.ClaimStatusPending,
	)
	if err != nil {
		return fmt.Errorf("updating claim status: %w", err)
	}
	return nil
}

// CountPendingClaims returns the number of claims awaiting review.
func CountPendingClaims(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	err := readRetry(ctx, func() error {
		return db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM claims WHERE status = ?`, model.ClaimStatusPending,
		).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("counting pending claims: %w", err)
	}
	return count, nil
}

func scanClaims(rows *sql.Rows) ([]model.Claim, error) {
	var claims []model.Claim
	for rows.Next() {
		var c model.Claim
		var message sql.NullString
		if err := rows.Scan(&c.ID, &c.ItemID, &c.ClaimantID, &message, &c.Status, &c.ClaimDate,
			&c.ItemTitle, &c.ClaimantName); err != nil {
			return nil, fmt.Errorf("scanning claim: %w", err)
		}
		c.Message = message.String
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
