package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"foundly/internal/db"
	"foundly/internal/model"
)

func createTestUser(t *testing.T, database *sql.DB, email string) int64 {
	t.Helper()
	user, err := CreateUser(context.Background(), database, "Test User", email, "", "hash")
	if err != nil {
		t.Fatalf("creating test user: %v", err)
	}
	return user.ID
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t, database, "reporter@example.com")

	item, err := CreateItem(ctx, database, model.Item{
		Title:       "Black Wallet",
		Description: "Leather wallet with ID cards",
		Category:    "Accessories",
		Location:    "Central Station",
		UserID:      userID,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Status != model.ItemStatusLost {
		t.Errorf("expected status 'lost', got %q", item.Status)
	}
	if item.UserID != userID {
		t.Errorf("expected reporter %d, got %d", userID, item.UserID)
	}

	missing, err := GetItem(ctx, database, item.ID+100)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing item")
	}
}

func TestListItemsStatusFilter(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t, database, "reporter@example.com")

	lost, _ := CreateItem(ctx, database, model.Item{Title: "Keys", UserID: userID})
	CreateItem(ctx, database, model.Item{Title: "Phone", UserID: userID})

	// Flip one item to found via a found report.
	if _, err := CreateFoundReport(ctx, database, model.FoundReport{
		Title: "Keys", ItemID: &lost.ID, FoundBy: userID,
	}); err != nil {
		t.Fatalf("CreateFoundReport: %v", err)
	}

	for _, tc := range []struct {
		status string
		want   int
	}{
		{model.ItemStatusLost, 1},
		{model.ItemStatusFound, 1},
		{"", 2},
		{"stolen", 2}, // unknown filter values are ignored
	} {
		items, err := ListItems(ctx, database, tc.status)
		if err != nil {
			t.Fatalf("ListItems(%q): %v", tc.status, err)
		}
		if len(items) != tc.want {
			t.Errorf("ListItems(%q): expected %d items, got %d", tc.status, tc.want, len(items))
		}
		if model.ValidItemStatus(tc.status) {
			for _, it := range items {
				if it.Status != tc.status {
					t.Errorf("ListItems(%q) returned item with status %q", tc.status, it.Status)
				}
			}
		}
	}
}

func TestListItemsOrdering(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t, database, "reporter@example.com")

	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	CreateItem(ctx, database, model.Item{Title: "Old", DateReported: older, UserID: userID})
	CreateItem(ctx, database, model.Item{Title: "New", DateReported: newer, UserID: userID})

	items, err := ListItems(ctx, database, "")
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "New" {
		t.Errorf("expected most recent item first, got %q", items[0].Title)
	}
}

func TestItemImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	userID := createTestUser(t, database, "reporter@example.com")

	item, _ := CreateItem(ctx, database, model.Item{Title: "Photo Item", UserID: userID})
	if err := SetItemImage(ctx, database, item.ID, []byte("fake image data"), "image/jpeg"); err != nil {
		t.Fatalf("SetItemImage: %v", err)
	}

	data, mime, err := GetItemImage(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItemImage: %v", err)
	}
	if string(data) != "fake image data" {
		t.Errorf("expected image data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}
}
