package feed

import (
	"context"
	"database/sql"
	"log/slog"
	"sync"

	"campusfind/internal/model"
	"campusfind/internal/store"
)

// Home feed sizing: each collection is pre-limited to its newest
// HomePerKind rows before merging, then the union is cut to HomeSize.
// The result is top-4-lost ∪ top-4-found re-sorted, which is NOT
// always the global top 8. Kept as the observed product behavior.
const (
	HomePerKind = 4
	HomeSize    = 8
)

// fetchBoth loads the two collections concurrently. A failing side is
// logged and degraded to an empty slice so the other still renders;
// complete is false when either fetch failed.
func fetchBoth(ctx context.Context, db *sql.DB, limit int) (lost []model.LostItem, found []model.FoundItem, complete bool) {
	complete = true

	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		items, err := store.ListLostItems(ctx, db, limit)
		if err != nil {
			slog.Warn("lost items unavailable, rendering partial feed", "error", err)
			mu.Lock()
			complete = false
			mu.Unlock()
			return
		}
		lost = items
	}()

	go func() {
		defer wg.Done()
		items, err := store.ListFoundItems(ctx, db, limit)
		if err != nil {
			slog.Warn("found items unavailable, rendering partial feed", "error", err)
			mu.Lock()
			complete = false
			mu.Unlock()
			return
		}
		found = items
	}()

	wg.Wait()
	return lost, found, complete
}

// Load fetches both full collections, merges, and sorts newest first.
func Load(ctx context.Context, db *sql.DB) ([]Item, bool) {
	lost, found, complete := fetchBoth(ctx, db, 0)
	items := Merge(lost, found)
	SortDesc(items)
	return items, complete
}

// Search loads the full feed and applies the filter.
func Search(ctx context.Context, db *sql.DB, q Query) ([]Item, bool) {
	items, complete := Load(ctx, db)
	return Filter(items, q), complete
}

// Home builds the home page feed from the newest few rows of each
// collection.
func Home(ctx context.Context, db *sql.DB) ([]Item, bool) {
	lost, found, complete := fetchBoth(ctx, db, HomePerKind)
	items := Merge(lost, found)
	SortDesc(items)
	if len(items) > HomeSize {
		items = items[:HomeSize]
	}
	return items, complete
}
