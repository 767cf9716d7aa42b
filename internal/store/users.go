package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"campusfind/internal/model"
)

// CreateUser creates a new user account with an empty profile apart
// from the full name.
func CreateUser(ctx context.Context, db *sql.DB, email, passwordHash, fullName string) (*model.User, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, full_name) VALUES (?, ?, ?, ?)`,
		id, email, passwordHash, fullName,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db *sql.DB, id string) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, full_name, phone, avatar_url, created_at, updated_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}

// GetUserByEmail returns a user by email.
func GetUserByEmail(ctx context.Context, db *sql.DB, email string) (*model.User, error) {
	u := &model.User{}
	err := db.QueryRowContext(ctx,
		`SELECT id, email, password_hash, full_name, phone, avatar_url, created_at, updated_at
		 FROM users WHERE email = ?`, email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by email: %w", err)
	}
	return u, nil
}

// UpdateProfile replaces the full name and phone unconditionally
// (no partial-field diffing, last write wins). An empty phone clears
// the stored value.
func UpdateProfile(ctx context.Context, db *sql.DB, id, fullName, phone string) error {
	var phoneVal any
	if phone != "" {
		phoneVal = phone
	}
	_, err := db.ExecContext(ctx,
		`UPDATE users SET full_name = ?, phone = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		fullName, phoneVal, id,
	)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	return nil
}

// UpdateUserPassword updates a user's password hash.
func UpdateUserPassword(ctx context.Context, db *sql.DB, id, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	return nil
}

// SetUserAvatar sets the avatar URL on a user's profile.
func SetUserAvatar(ctx context.Context, db *sql.DB, id, avatarURL string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET avatar_url = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		avatarURL, id,
	)
	if err != nil {
		return fmt.Errorf("setting user avatar: %w", err)
	}
	return nil
}
