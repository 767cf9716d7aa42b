package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"campusfind/internal/model"
)

// CreateFoundItem inserts a new found item report owned by userID.
// Status defaults to "available". imageURL may be nil.
func CreateFoundItem(ctx context.Context, db *sql.DB, userID string, r model.Report, imageURL *string) (*model.FoundItem, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO found_items (id, user_id, title, description, category, found_date, location, contact_info, image_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, r.Title, r.Description, r.Category, r.Date, r.Location, r.ContactInfo, imageURL,
	)
	if err != nil {
		return nil, fmt.Errorf("creating found item: %w", err)
	}

	return GetFoundItem(ctx, db, id)
}

// GetFoundItem returns a found item by ID, or nil if it doesn't exist.
func GetFoundItem(ctx context.Context, db *sql.DB, id string) (*model.FoundItem, error) {
	item := &model.FoundItem{}
	err := db.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, category, found_date, location, contact_info, image_url, status, created_at, updated_at
		 FROM found_items WHERE id = ?`, id,
	).Scan(&item.ID, &item.UserID, &item.Title, &item.Description, &item.Category, &item.FoundDate,
		&item.Location, &item.ContactInfo, &item.ImageURL, &item.Status, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting found item: %w", err)
	}
	return item, nil
}

// ListFoundItems returns found items ordered newest first. A limit of
// 0 returns the entire collection.
func ListFoundItems(ctx context.Context, db *sql.DB, limit int) ([]model.FoundItem, error) {
	query := `SELECT id, user_id, title, description, category, found_date, location, contact_info, image_url, status, created_at, updated_at
	          FROM found_items ORDER BY created_at DESC`

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = db.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("listing found items: %w", err)
	}
	defer rows.Close()

	return scanFoundItems(rows)
}

// ListFoundItemsByUser returns a user's own found items, newest first.
func ListFoundItemsByUser(ctx context.Context, db *sql.DB, userID string) ([]model.FoundItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, title, description, category, found_date, location, contact_info, image_url, status, created_at, updated_at
		 FROM found_items WHERE user_id = ? ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing found items by user: %w", err)
	}
	defer rows.Close()

	return scanFoundItems(rows)
}

// DeleteFoundItem deletes a found item scoped to its owner. Returns
// false if no row matched.
func DeleteFoundItem(ctx context.Context, db *sql.DB, id, userID string) (bool, error) {
	result, err := db.ExecContext(ctx,
		`DELETE FROM found_items WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("deleting found item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting found item: %w", err)
	}
	return affected > 0, nil
}

func scanFoundItems(rows *sql.Rows) ([]model.FoundItem, error) {
	var items []model.FoundItem
	for rows.Next() {
		var item model.FoundItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Description, &item.Category, &item.FoundDate,
			&item.Location, &item.ContactInfo, &item.ImageURL, &item.Status, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning found item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
