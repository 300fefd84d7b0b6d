package store

import (
	"context"
	"database/sql"
	"fmt"

	"foundly/internal/apperr"
	"foundly/internal/model"
)

// CreateAdmin creates a new administrator account.
func CreateAdmin(ctx context.Context, db *sql.DB, email, passwordHash string) (*model.Admin, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO admins (email, password_hash) VALUES (?, ?)`,
		email, passwordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Wrap(apperr.Conflict, "admin email already registered", err)
		}
		return nil, fmt.Errorf("creating admin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting admin id: %w", err)
	}

	return GetAdmin(ctx, db, id)
}

// GetAdmin returns an admin by ID.
func GetAdmin(ctx context.Context, db *sql.DB, id int64) (*model.Admin, error) {
	a := &model.Admin{}
	err := readRetry(ctx, func() error {
		return db.QueryRowContext(ctx,
			`SELECT id, email, password_hash FROM admins WHERE id = ?`, id,
		).Scan(&a.ID, &a.Email, &a.PasswordHash)
	})
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting admin: %w", err)
	}
	return a, nil
}

// GetAdminByEmail returns an admin by email.
func GetAdminByEmail(ctx context.Context, db *sql.DB, email string) (*model.Admin, error) {
	a := &model.Admin{}
	err := readRetry(ctx, func() error {
		return db.QueryRowContext(ctx,
			`SELECT id, email, password_hash FROM admins WHERE email = ?`, email,
		).Scan(&a.ID, &a.Email, &a.PasswordHash)
	})
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting admin by email: %w", err)
	}
	return a, nil
}
