package store

import (
	"context"
	"database/sql"
	"fmt"

	"foundly/internal/apperr"
	"foundly/internal/model"
)

// CreateUser creates a new user account. A duplicate email is reported as
// a Conflict error rather than surfacing the constraint violation.
func CreateUser(ctx context.Context, db *sql.DB, name, email, phone, passwordHash string) (*model.User, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO users (name, email, phone, password_hash) VALUES (?, ?, ?, ?)`,
		name, email, phone, passwordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.Conflict, "email already registered", err)
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	u := &model.User{}
	var phone sql.NullString
	err := readRetry(ctx, func() error {
		return db.QueryRowContext(ctx,
			`SELECT id, name, email, phone, password_hash, created_at
			 FROM users WHERE id = ?`, id,
		).Scan(&u.ID, &u.Name, &u.Email, &phone, &u.PasswordHash, &u.CreatedAt)
	})
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	u.Phone = phone.String
	return u, nil
}

// GetUserByEmail returns a user by email.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	u := &model.User{}
	var phone sql.NullString
	err := readRetry(ctx, func() error {
		return db.QueryRowContext(ctx,
			`SELECT id, name, email, phone, password_hash, created_at
			 FROM users WHERE email = ?`, email,
		).Scan(&u.ID, &u.Name, &u.Email, &phone, &u.PasswordHash, &u.CreatedAt)
	})
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	u.Phone = phone.String
	return u, nil
}

// CountUsers returns the total number of registered users.
func CountUsers(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	err := readRetry(ctx, func() error {
		return db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	})
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}
