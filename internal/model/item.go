package model

import (
	"strings"
	"time"
)

// LostItem is a report about an item someone lost on campus.
type LostItem struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	LostDate    string    `json:"lost_date"`
	Location    string    `json:"location"`
	ContactInfo string    `json:"contact_info"`
	ImageURL    *string   `json:"image_url"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FoundItem is a report about an item someone found on campus.
// Identical in shape to LostItem apart from the date field and the
// status enumeration.
type FoundItem struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	FoundDate   string    `json:"found_date"`
	Location    string    `json:"location"`
	ContactInfo string    `json:"contact_info"`
	ImageURL    *string   `json:"image_url"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Categories is the closed set of item categories.
var Categories = []string{
	"Electronics",
	"Books",
	"ID Cards",
	"Clothing",
	"Others",
}

// Lost item statuses.
const (
	LostStatusLost   = "lost"
	LostStatusFound  = "found"
	LostStatusClosed = "closed"
)

// Found item statuses.
const (
	FoundStatusAvailable = "available"
	FoundStatusReturned  = "returned"
	FoundStatusClosed    = "closed"
)

// ValidCategory reports whether c is one of the enumerated categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ContactIsEmail reports whether a contact string looks like an email
// address. Display heuristic only (mailto: vs tel: links); contact info
// is stored as opaque text and never validated as either.
func ContactIsEmail(contact string) bool {
	return strings.Contains(contact, "@")
}
