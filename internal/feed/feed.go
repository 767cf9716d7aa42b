// Package feed merges lost and found item reports into the single
// ordered listing shown on the home and search pages.
package feed

import (
	"sort"
	"strings"
	"time"

	"campusfind/internal/model"
)

// Kind discriminates the two report collections in a merged feed.
type Kind string

const (
	KindLost  Kind = "lost"
	KindFound Kind = "found"
)

// Item is a tagged union over the two report types. Exactly one of
// Lost and Found is set, matching Kind. The two collections do not
// share an identity space, so (Kind, ID) is the feed key.
type Item struct {
	Kind  Kind             `json:"kind"`
	Lost  *model.LostItem  `json:"lost,omitempty"`
	Found *model.FoundItem `json:"found,omitempty"`
}

func (it Item) ID() string {
	if it.Kind == KindLost {
		return it.Lost.ID
	}
	return it.Found.ID
}

func (it Item) Title() string {
	if it.Kind == KindLost {
		return it.Lost.Title
	}
	return it.Found.Title
}

func (it Item) Description() string {
	if it.Kind == KindLost {
		return it.Lost.Description
	}
	return it.Found.Description
}

func (it Item) Category() string {
	if it.Kind == KindLost {
		return it.Lost.Category
	}
	return it.Found.Category
}

// Date returns the lost date or the found date depending on the kind.
func (it Item) Date() string {
	if it.Kind == KindLost {
		return it.Lost.LostDate
	}
	return it.Found.FoundDate
}

func (it Item) Location() string {
	if it.Kind == KindLost {
		return it.Lost.Location
	}
	return it.Found.Location
}

func (it Item) ContactInfo() string {
	if it.Kind == KindLost {
		return it.Lost.ContactInfo
	}
	return it.Found.ContactInfo
}

func (it Item) ImageURL() *string {
	if it.Kind == KindLost {
		return it.Lost.ImageURL
	}
	return it.Found.ImageURL
}

func (it Item) CreatedAt() time.Time {
	if it.Kind == KindLost {
		return it.Lost.CreatedAt
	}
	return it.Found.CreatedAt
}

// Merge tags and concatenates the two collections, lost first. No
// ordering is implied; callers sort afterwards.
func Merge(lost []model.LostItem, found []model.FoundItem) []Item {
	items := make([]Item, 0, len(lost)+len(found))
	for i := range lost {
		items = append(items, Item{Kind: KindLost, Lost: &lost[i]})
	}
	for i := range found {
		items = append(items, Item{Kind: KindFound, Found: &found[i]})
	}
	return items
}

// SortDesc orders items newest first by creation time, in place.
// Ties keep their input order (stable, no defined tie-break).
func SortDesc(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt().After(items[j].CreatedAt())
	})
}

// Query is a feed filter. Empty fields are always-true clauses; all
// non-empty clauses must hold.
type Query struct {
	Text     string // case-insensitive substring of title or description
	Category string // exact category match
	Status   string // kind tag ("lost" or "found"), not the record's status field
	Location string // case-insensitive substring of location
}

// IsZero reports whether the query filters nothing.
func (q Query) IsZero() bool {
	return q.Text == "" && q.Category == "" && q.Status == "" && q.Location == ""
}

// Match reports whether an item satisfies every clause of the query.
func (q Query) Match(it Item) bool {
	if q.Text != "" {
		text := strings.ToLower(q.Text)
		if !strings.Contains(strings.ToLower(it.Title()), text) &&
			!strings.Contains(strings.ToLower(it.Description()), text) {
			return false
		}
	}
	if q.Category != "" && it.Category() != q.Category {
		return false
	}
	if q.Status != "" && string(it.Kind) != q.Status {
		return false
	}
	if q.Location != "" &&
		!strings.Contains(strings.ToLower(it.Location()), strings.ToLower(q.Location)) {
		return false
	}
	return true
}

// Filter returns the items matching q, preserving input order.
func Filter(items []Item, q Query) []Item {
	if q.IsZero() {
		return items
	}
	var out []Item
	for _, it := range items {
		if q.Match(it) {
			out = append(out, it)
		}
	}
	return out
}
