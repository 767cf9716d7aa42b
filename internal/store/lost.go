package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"campusfind/internal/model"
)

// CreateLostItem inserts a new lost item report owned by userID.
// Status defaults to "lost". imageURL may be nil.
func CreateLostItem(ctx context.Context, db *sql.DB, userID string, r model.Report, imageURL *string) (*model.LostItem, error) {
	id := uuid.NewString()
	_, err := db.ExecContext(ctx,
		`INSERT INTO lost_items (id, user_id, title, description, category, lost_date, location, contact_info, image_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, r.Title, r.Description, r.Category, r.Date, r.Location, r.ContactInfo, imageURL,
	)
	if err != nil {
		return nil, fmt.Errorf("creating lost item: %w", err)
	}

	return GetLostItem(ctx, db, id)
}

// GetLostItem returns a lost item by ID, or nil if it doesn't exist.
func GetLostItem(ctx context.Context, db *sql.DB, id string) (*model.LostItem, error) {
	item := &model.LostItem{}
	err := db.QueryRowContext(ctx,
		`SELECT id, user_id, title, description, category, lost_date, location, contact_info, image_url, status, created_at, updated_at
		 FROM lost_items WHERE id = ?`, id,
	).Scan(&item.ID, &item.UserID, &item.Title, &item.Description, &item.Category, &item.LostDate,
		&item.Location, &item.ContactInfo, &item.ImageURL, &item.Status, &item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting lost item: %w", err)
	}
	return item, nil
}

// ListLostItems returns lost items ordered newest first. A limit of 0
// returns the entire collection.
func ListLostItems(ctx context.Context, db *sql.DB, limit int) ([]model.LostItem, error) {
	query := `SELECT id, user_id, title, description, category, lost_date, location, contact_info, image_url, status, created_at, updated_at
	          FROM lost_items ORDER BY created_at DESC`

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = db.QueryContext(ctx, query+` LIMIT ?`, limit)
	} else {
		rows, err = db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("listing lost items: %w", err)
	}
	defer rows.Close()

	return scanLostItems(rows)
}

// ListLostItemsByUser returns a user's own lost items, newest first.
func ListLostItemsByUser(ctx context.Context, db *sql.DB, userID string) ([]model.LostItem, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, user_id, title, description, category, lost_date, location, contact_info, image_url, status, created_at, updated_at
		 FROM lost_items WHERE user_id = ? ORDER BY created_at DESC`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing lost items by user: %w", err)
	}
	defer rows.Close()

	return scanLostItems(rows)
}

// DeleteLostItem deletes a lost item scoped to its owner. Returns
// false if no row matched, which covers both a missing item and an
// attempt to delete someone else's report.
func DeleteLostItem(ctx context.Context, db *sql.DB, id, userID string) (bool, error) {
	result, err := db.ExecContext(ctx,
		`DELETE FROM lost_items WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return false, fmt.Errorf("deleting lost item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("deleting lost item: %w", err)
	}
	return affected > 0, nil
}

func scanLostItems(rows *sql.Rows) ([]model.LostItem, error) {
	var items []model.LostItem
	for rows.Next() {
		var item model.LostItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Description, &item.Category, &item.LostDate,
			&item.Location, &item.ContactInfo, &item.ImageURL, &item.Status, &item.CreatedAt, &item.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning lost item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
