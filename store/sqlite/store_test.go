package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"listsync/store"
)

// Helper to create a test store backed by a temp database
func createTestStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNewCreatesSchema(t *testing.T) {
	s := createTestStore(t)

	lists, err := s.LoadLists(context.Background())
	if err != nil {
		t.Fatalf("LoadLists on fresh store failed: %v", err)
	}
	if len(lists) != 0 {
		t.Errorf("Expected empty store, got %d lists", len(lists))
	}
}

func TestCreateListAndAddItem(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	l, err := s.CreateList(ctx, "groceries")
	if err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}
	if l.ID == 0 {
		t.Error("Expected assigned list id")
	}
	if l.UpdatedAt.IsZero() {
		t.Error("Expected UpdatedAt to be set on creation")
	}

	it, err := s.AddItem(ctx, l.ID, "milk")
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if it.ListID != l.ID {
		t.Errorf("Expected item in list %d, got %d", l.ID, it.ListID)
	}

	lists, err := s.LoadLists(ctx)
	if err != nil {
		t.Fatalf("LoadLists failed: %v", err)
	}
	if len(lists) != 1 || len(lists[0].Items) != 1 {
		t.Fatalf("Expected 1 list with 1 item, got %d lists", len(lists))
	}
	if lists[0].Items[0].Name != "milk" {
		t.Errorf("Expected item name milk, got %q", lists[0].Items[0].Name)
	}
	if lists[0].Version == "" {
		t.Error("Expected a version token on the list")
	}
}

func TestAddItemToMissingListFails(t *testing.T) {
	s := createTestStore(t)

	_, err := s.AddItem(context.Background(), 999, "orphan")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestDeleteListTombstonesListAndItems(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	l, _ := s.CreateList(ctx, "chores")
	if _, err := s.AddItem(ctx, l.ID, "vacuum"); err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}

	if err := s.DeleteList(ctx, l.ID); err != nil {
		t.Fatalf("DeleteList failed: %v", err)
	}

	lists, err := s.LoadLists(ctx)
	if err != nil {
		t.Fatalf("LoadLists failed: %v", err)
	}
	if len(lists) != 1 {
		t.Fatalf("Tombstoned list should still load, got %d lists", len(lists))
	}
	if !lists[0].Deleted() {
		t.Error("Expected list tombstone")
	}
	if !lists[0].Items[0].Deleted() {
		t.Error("Expected item tombstone alongside its list")
	}

	// a second delete of the same list is a not-found
	if err := s.DeleteList(ctx, l.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound on double delete, got %v", err)
	}
}

func TestSetItemDoneAndRename(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	l, _ := s.CreateList(ctx, "todo")
	it, _ := s.AddItem(ctx, l.ID, "write report")

	if err := s.SetItemDone(ctx, it.ID, true); err != nil {
		t.Fatalf("SetItemDone failed: %v", err)
	}
	if err := s.RenameItem(ctx, it.ID, "write quarterly report"); err != nil {
		t.Fatalf("RenameItem failed: %v", err)
	}
	if err := s.RenameList(ctx, l.ID, "work"); err != nil {
		t.Fatalf("RenameList failed: %v", err)
	}

	lists, _ := s.LoadLists(ctx)
	if lists[0].Name != "work" {
		t.Errorf("Expected renamed list, got %q", lists[0].Name)
	}
	got := lists[0].Items[0]
	if !got.Done || got.Name != "write quarterly report" {
		t.Errorf("Unexpected item state: done=%v name=%q", got.Done, got.Name)
	}
}

func TestCommitCycleInsertsAndUpdates(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	l, _ := s.CreateList(ctx, "before")
	it, _ := s.AddItem(ctx, l.ID, "old")

	now := time.Now().UTC().Truncate(time.Second)
	lists, _ := s.LoadLists(ctx)
	lists[0].Name = "after"
	lists[0].RemoteID = "r1"
	lists[0].UpdatedAt = now
	lists[0].Items[0].Name = "new"
	lists[0].Items[0].RemoteID = "ri1"

	// an imported list arrives with zero ids and gets them assigned on commit
	lists = append(lists, &store.List{
		Name:      "imported",
		RemoteID:  "r2",
		CreatedAt: now,
		UpdatedAt: now,
		Items: []*store.Item{
			{Name: "imported item", RemoteID: "ri2", CreatedAt: now, UpdatedAt: now},
		},
	})

	if err := s.CommitCycle(ctx, lists); err != nil {
		t.Fatalf("CommitCycle failed: %v", err)
	}
	if lists[1].ID == 0 || lists[1].Items[0].ID == 0 {
		t.Error("Expected storage-assigned ids after commit")
	}

	reloaded, err := s.LoadLists(ctx)
	if err != nil {
		t.Fatalf("LoadLists failed: %v", err)
	}
	if len(reloaded) != 2 {
		t.Fatalf("Expected 2 lists, got %d", len(reloaded))
	}
	if reloaded[0].Name != "after" || reloaded[0].RemoteID != "r1" {
		t.Errorf("List update not persisted: %+v", reloaded[0])
	}
	if !reloaded[0].UpdatedAt.Equal(now) {
		t.Errorf("Expected UpdatedAt %v, got %v", now, reloaded[0].UpdatedAt)
	}
	if reloaded[0].Items[0].Name != "new" || reloaded[0].Items[0].ID != it.ID {
		t.Errorf("Item update not persisted: %+v", reloaded[0].Items[0])
	}
	if reloaded[1].Name != "imported" || len(reloaded[1].Items) != 1 {
		t.Errorf("Imported list not persisted: %+v", reloaded[1])
	}
}

func TestCommitCycleIsAtomic(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateList(ctx, "stable"); err != nil {
		t.Fatalf("CreateList failed: %v", err)
	}

	lists, _ := s.LoadLists(ctx)
	lists[0].Name = "changed"

	// a cancelled context fails the transaction; nothing may be persisted
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := s.CommitCycle(cancelled, lists); err == nil {
		t.Fatal("Expected commit failure on cancelled context")
	}

	reloaded, _ := s.LoadLists(ctx)
	if reloaded[0].Name != "stable" {
		t.Errorf("Rollback failed: got %q", reloaded[0].Name)
	}
}
