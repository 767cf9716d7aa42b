package model

import (
	"strings"
	"time"
)

// Report holds the fields of a lost/found item report form before it
// becomes a LostItem or FoundItem row. Date is the lost date or the
// found date depending on which form submitted it.
type Report struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Location    string `json:"location"`
	ContactInfo string `json:"contact_info"`
}

// ReportErrors maps field names to validation messages. Empty map
// means the report is valid.
type ReportErrors map[string]string

// Validate checks every field independently and collects all errors,
// so a form can show them inline at once. Submission must be blocked
// if any are present.
func (r *Report) Validate() ReportErrors {
	errs := ReportErrors{}

	if strings.TrimSpace(r.Title) == "" {
		errs["title"] = "Title is required"
	}
	if r.Category == "" {
		errs["category"] = "Category is required"
	} else if !ValidCategory(r.Category) {
		errs["category"] = "Unknown category"
	}
	if strings.TrimSpace(r.Description) == "" {
		errs["description"] = "Description is required"
	}
	if r.Date == "" {
		errs["date"] = "Date is required"
	} else if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		errs["date"] = "Date must be a valid calendar date"
	}
	if strings.TrimSpace(r.Location) == "" {
		errs["location"] = "Location is required"
	}
	if strings.TrimSpace(r.ContactInfo) == "" {
		errs["contact_info"] = "Contact info is required"
	}

	return errs
}

// MaxImageSize is the upload limit for report images (5 MiB). Larger
// files are rejected before anything is written to the blob store.
const MaxImageSize = 5 << 20
