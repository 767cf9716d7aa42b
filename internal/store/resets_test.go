package store

import (
	"context"
	"testing"
	"time"

	"campusfind/internal/db"
)

func TestPasswordResetRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	u := createTestUser(t, database, "reset@campus.edu")

	token, err := CreatePasswordReset(ctx, database, u.ID)
	if err != nil {
		t.Fatalf("CreatePasswordReset: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}

	userID, err := ConsumePasswordReset(ctx, database, token)
	if err != nil {
		t.Fatalf("ConsumePasswordReset: %v", err)
	}
	if userID != u.ID {
		t.Errorf("expected user %q, got %q", u.ID, userID)
	}

	// Single use: a second consume must fail.
	userID, err = ConsumePasswordReset(ctx, database, token)
	if err != nil {
		t.Fatalf("ConsumePasswordReset: %v", err)
	}
	if userID != "" {
		t.Error("expected reused token to be rejected")
	}
}

func TestPasswordResetUnknownToken(t *testing.T) {
	database := db.NewTestDB(t)

	userID, err := ConsumePasswordReset(context.Background(), database, "nope")
	if err != nil {
		t.Fatalf("ConsumePasswordReset: %v", err)
	}
	if userID != "" {
		t.Error("expected unknown token to be rejected")
	}
}

func TestPasswordResetExpired(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	u := createTestUser(t, database, "expired@campus.edu")
	token, _ := CreatePasswordReset(ctx, database, u.ID)

	_, err := database.Exec(
		`UPDATE password_resets SET expires_at = ? WHERE token = ?`,
		time.Now().Add(-time.Minute), token,
	)
	if err != nil {
		t.Fatalf("expiring token: %v", err)
	}

	userID, err := ConsumePasswordReset(ctx, database, token)
	if err != nil {
		t.Fatalf("ConsumePasswordReset: %v", err)
	}
	if userID != "" {
		t.Error("expected expired token to be rejected")
	}
}
