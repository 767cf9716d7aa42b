package model

import (
	"fmt"
	"time"
)

// User is an authenticated account and its public profile. The account
// identity and the profile share the same ID, so there is a single row
// per user.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        *string   `json:"phone"`
	AvatarURL    *string   `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MinPasswordLength is the minimum accepted password length for
// sign-up and password reset.
const MinPasswordLength = 8

// ValidatePassword checks that a password meets the minimum length.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

// PreferredContact returns the contact string pre-filled into report
// forms: the profile phone if set, otherwise the account email.
func (u *User) PreferredContact() string {
	if u.Phone != nil && *u.Phone != "" {
		return *u.Phone
	}
	return u.Email
}
