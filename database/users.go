package database

import (
	"context"
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// EnsureUser creates the user, or resets its password if it already exists.
func EnsureUser(ctx context.Context, db *sql.DB, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ensure_user.hash: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO user (username, password_hash) VALUES (?, ?)
		ON CONFLICT (username) DO UPDATE SET password_hash = excluded.password_hash`,
		username,
		hash,
	)
	if err != nil {
		return fmt.Errorf("ensure_user: %w", err)
	}
	return nil
}
