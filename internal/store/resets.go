package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ResetTokenTTL is how long a password reset token stays valid.
const ResetTokenTTL = time.Hour

// CreatePasswordReset issues a single-use reset token for the user.
// Delivery is out of band; the caller decides what to do with the
// token (the server logs it in lieu of a mailer).
func CreatePasswordReset(ctx context.Context, db *sql.DB, userID string) (string, error) {
	token := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO password_resets (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, time.Now().Add(ResetTokenTTL),
	)
	if err != nil {
		return "", fmt.Errorf("creating password reset: %w", err)
	}
	return token, nil
}

// ConsumePasswordReset validates and marks a reset token as used,
// returning the user it belongs to. Returns "" for an unknown,
// expired, or already-used token.
func ConsumePasswordReset(ctx context.Context, db *sql.DB, token string) (string, error) {
	var userID string
	var expiresAt time.Time
	var usedAt *time.Time
	err := db.QueryRowContext(ctx,
		`SELECT user_id, expires_at, used_at FROM password_resets WHERE token = ?`, token,
	).Scan(&userID, &expiresAt, &usedAt)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("getting password reset: %w", err)
	}

	if usedAt != nil || time.Now().After(expiresAt) {
		return "", nil
	}

	_, err = db.ExecContext(ctx,
		`UPDATE password_resets SET used_at = CURRENT_TIMESTAMP WHERE token = ?`, token,
	)
	if err != nil {
		return "", fmt.Errorf("marking password reset used: %w", err)
	}

	return userID, nil
}
