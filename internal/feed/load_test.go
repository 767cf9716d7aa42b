package feed

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"campusfind/internal/db"
	"campusfind/internal/model"
	"campusfind/internal/store"
)

func seedUser(t *testing.T, database *sql.DB) *model.User {
	t.Helper()
	u, err := store.CreateUser(context.Background(), database, "feeder@campus.edu", "hash", "Feeder")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return u
}

func seedReport(title string) model.Report {
	return model.Report{
		Title:       title,
		Category:    "Others",
		Description: "seeded report",
		Date:        "2025-02-01",
		Location:    "Campus",
		ContactInfo: "feeder@campus.edu",
	}
}

// stamp gives each row a distinct, lexicographically ordered creation
// time; higher n is newer.
func stamp(t *testing.T, database *sql.DB, table, id string, n int) {
	t.Helper()
	created := fmt.Sprintf("2025-01-01 10:%02d:00", n)
	if _, err := database.Exec(
		fmt.Sprintf("UPDATE %s SET created_at = ? WHERE id = ?", table), created, id,
	); err != nil {
		t.Fatalf("stamping %s row: %v", table, err)
	}
}

func TestLoadReturnsFullSortedFeed(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	u := seedUser(t, database)

	for i := 0; i < 3; i++ {
		item, err := store.CreateLostItem(ctx, database, u.ID, seedReport(fmt.Sprintf("Lost %d", i)), nil)
		if err != nil {
			t.Fatalf("CreateLostItem: %v", err)
		}
		stamp(t, database, "lost_items", item.ID, i*2) // 0, 2, 4
	}
	for i := 0; i < 2; i++ {
		item, err := store.CreateFoundItem(ctx, database, u.ID, seedReport(fmt.Sprintf("Found %d", i)), nil)
		if err != nil {
			t.Fatalf("CreateFoundItem: %v", err)
		}
		stamp(t, database, "found_items", item.ID, i*2+1) // 1, 3
	}

	items, complete := Load(ctx, database)
	if !complete {
		t.Error("expected complete feed")
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 items, got %d", len(items))
	}

	want := []string{"Lost 2", "Found 1", "Lost 1", "Found 0", "Lost 0"}
	for i, title := range want {
		if items[i].Title() != title {
			t.Errorf("position %d: expected %q, got %q", i, title, items[i].Title())
		}
	}
}

func TestHomeFeedIsPerKindTopFour(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	u := seedUser(t, database)

	// 6 lost and 6 found with distinct timestamps, arranged so the 5
	// newest rows overall are all lost (stamps 20-24). A naive global
	// top-8 would include 5 lost items; the home feed must not.
	for i := 0; i < 6; i++ {
		item, err := store.CreateLostItem(ctx, database, u.ID, seedReport(fmt.Sprintf("Lost %d", i)), nil)
		if err != nil {
			t.Fatalf("CreateLostItem: %v", err)
		}
		stamp(t, database, "lost_items", item.ID, 19+i) // 19..24
	}
	for i := 0; i < 6; i++ {
		item, err := store.CreateFoundItem(ctx, database, u.ID, seedReport(fmt.Sprintf("Found %d", i)), nil)
		if err != nil {
			t.Fatalf("CreateFoundItem: %v", err)
		}
		stamp(t, database, "found_items", item.ID, 2+i) // 2..7
	}

	items, complete := Home(ctx, database)
	if !complete {
		t.Error("expected complete feed")
	}
	if len(items) != HomeSize {
		t.Fatalf("expected %d items, got %d", HomeSize, len(items))
	}

	// Exactly 4 of each kind: the 4 newest lost and the 4 newest found,
	// re-sorted descending across kinds.
	want := []string{
		"Lost 5", "Lost 4", "Lost 3", "Lost 2",
		"Found 5", "Found 4", "Found 3", "Found 2",
	}
	for i, title := range want {
		if items[i].Title() != title {
			t.Errorf("position %d: expected %q, got %q", i, title, items[i].Title())
		}
	}
}

func TestSearchAppliesFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	u := seedUser(t, database)

	r := seedReport("Graphing Calculator")
	r.Category = "Electronics"
	r.Location = "Math Building"
	if _, err := store.CreateLostItem(ctx, database, u.ID, r, nil); err != nil {
		t.Fatalf("CreateLostItem: %v", err)
	}
	if _, err := store.CreateFoundItem(ctx, database, u.ID, seedReport("Scarf"), nil); err != nil {
		t.Fatalf("CreateFoundItem: %v", err)
	}

	items, _ := Search(ctx, database, Query{Text: "calculator"})
	if len(items) != 1 || items[0].Title() != "Graphing Calculator" {
		t.Errorf("expected the calculator, got %+v", items)
	}

	items, _ = Search(ctx, database, Query{Status: "found"})
	if len(items) != 1 || items[0].Kind != KindFound {
		t.Errorf("expected only found items, got %+v", items)
	}
}

func TestLoadToleratesMissingCollection(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	u := seedUser(t, database)

	if _, err := store.CreateLostItem(ctx, database, u.ID, seedReport("Survivor"), nil); err != nil {
		t.Fatalf("CreateLostItem: %v", err)
	}

	// Break one side only: the other must still render.
	if _, err := database.Exec(`DROP TABLE found_items`); err != nil {
		t.Fatalf("dropping table: %v", err)
	}

	items, complete := Load(ctx, database)
	if complete {
		t.Error("expected feed to be flagged incomplete")
	}
	if len(items) != 1 || items[0].Title() != "Survivor" {
		t.Errorf("expected the surviving lost item, got %+v", items)
	}
}
