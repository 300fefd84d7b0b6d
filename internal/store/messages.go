package store

import (
	"context"
	"database/sql"
	"fmt"

	"foundly/internal/model"
)

// CreateMessage appends a chat message to a claim thread.
func CreateMessage(ctx context.Context, db *sql.DB, claimID, senderID int64, body string) (*model.Message, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO messages (claim_id, sender_id, body) VALUES (?, ?, ?)`,
		claimID, senderID, body,
	)
	if err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting message id: %w", err)
	}

	m := &model.Message{}
	err = db.QueryRowContext(ctx,
		`SELECT m.id, m.claim_id, m.sender_id, m.body, m.sent_at, u.name
		 FROM messages m JOIN users u ON u.id = m.sender_id
		 WHERE m.id = ?`, id,
	).Scan(&m.ID, &m.ClaimID, &m.SenderID, &m.Body, &m.SentAt, &m.SenderName)
	if err != nil {
		return nil, fmt.Errorf("getting message: %w", err)
	}
	return m, nil
}

// ListMessages returns a claim's messages in chronological order.
func ListMessages(ctx context.Context, db *sql.DB, claimID int64) ([]model.Message, error) {
	var messages []model.Message
	err := readRetry(ctx, func() error {
		rows, err := db.QueryContext(ctx,
			`SELECT m.id, m.claim_id, m.sender_id, m.body, m.sent_at, u.name
			 FROM messages m JOIN users u ON u.id = m.sender_id
			 WHERE m.claim_id = ? ORDER BY m.sent_at, m.id`, claimID,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		messages = nil
		for rows.Next() {
			var m model.Message
			if err := rows.Scan(&m.ID, &m.ClaimID, &m.SenderID, &m.Body, &m.SentAt, &m.SenderName); err != nil {
				return fmt.Errorf("scanning message: %w", err)
			}
			messages = append(messages, m)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	return messages, nil
}
