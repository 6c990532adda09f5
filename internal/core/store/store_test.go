package store

import (
	"reflect"
	"testing"
	"time"

	"github.com/jmolenaar/pharmvault/internal/core/domain"
)

func TestCreateAssignsSequentialIDs(t *testing.T) {
	s := New()

	u1 := s.CreateUser(domain.User{Username: "alice"})
	u2 := s.CreateUser(domain.User{Username: "bob"})

	if u1.ID != 1 || u2.ID != 2 {
		t.Errorf("expected ids 1 and 2, got %d and %d", u1.ID, u2.ID)
	}

	c1 := s.CreateCategory(domain.Category{Name: "antibiotics"})
	if c1.ID != 1 {
		t.Errorf("category counter should be independent, got id %d", c1.ID)
	}
}

func TestUpdateUserPassword(t *testing.T) {
	s := New()
	u := s.CreateUser(domain.User{Username: "alice", PasswordHash: "old"})

	if !s.UpdateUserPassword(u.ID, "new") {
		t.Fatal("update of existing user should succeed")
	}
	updated, _ := s.GetUser(u.ID)
	if updated.PasswordHash != "new" {
		t.Errorf("hash not updated: %s", updated.PasswordHash)
	}

	if s.UpdateUserPassword(42, "x") {
		t.Error("update of unknown user should return false")
	}
}

func TestDeleteUnknownReturnsFalse(t *testing.T) {
	s := New()

	if s.DeleteUser(42) {
		t.Error("deleting unknown user should return false")
	}
	if s.DeleteCategory(42) {
		t.Error("deleting unknown category should return false")
	}
	if s.DeleteExpense(42) {
		t.Error("deleting unknown expense should return false")
	}
}

func TestListOrderedByID(t *testing.T) {
	s := New()
	for _, name := range []string{"c", "a", "b"} {
		s.CreateCategory(domain.Category{Name: name})
	}

	categories := s.ListCategories()
	if len(categories) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(categories))
	}
	for i, c := range categories {
		if c.ID != int64(i+1) {
			t.Errorf("categories not ordered by id: index %d has id %d", i, c.ID)
		}
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	s := New()
	s.CreateUser(domain.User{Username: "alice"})
	s.CreateExpense(domain.Expense{Description: "gloves", Amount: 12.50, CategoryID: 1, Date: time.Now()})

	archive := s.Snapshot()

	// Mutating the store after the snapshot must not change the archive.
	s.CreateUser(domain.User{Username: "bob"})
	s.DeleteExpense(1)

	if len(archive.Users) != 1 {
		t.Errorf("snapshot users changed after store mutation: %d", len(archive.Users))
	}
	if len(archive.Expenses) != 1 {
		t.Errorf("snapshot expenses changed after store mutation: %d", len(archive.Expenses))
	}
}

func TestReplaceSwapsStateAndRecomputesCounters(t *testing.T) {
	s := New()
	s.CreateUser(domain.User{Username: "old"})

	archive := domain.Archive{
		Users: []domain.User{
			{ID: 3, Username: "alice"},
			{ID: 7, Username: "bob"},
		},
		Categories: []domain.Category{
			{ID: 2, Name: "antibiotics"},
		},
		Expenses: []domain.Expense{
			{ID: 5, Description: "gloves", Amount: 12.50, CategoryID: 2},
		},
	}

	s.Replace(archive)

	users, categories, expenses := s.Counts()
	if users != 2 || categories != 1 || expenses != 1 {
		t.Fatalf("unexpected counts after replace: %d/%d/%d", users, categories, expenses)
	}

	if _, ok := s.GetUser(1); ok {
		t.Error("pre-replace user should be gone")
	}

	// New entities must not collide with any restored id.
	newUser := s.CreateUser(domain.User{Username: "carol"})
	if newUser.ID != 8 {
		t.Errorf("expected next user id 8, got %d", newUser.ID)
	}
	newCategory := s.CreateCategory(domain.Category{Name: "bandages"})
	if newCategory.ID != 3 {
		t.Errorf("expected next category id 3, got %d", newCategory.ID)
	}
	newExpense := s.CreateExpense(domain.Expense{Description: "masks"})
	if newExpense.ID != 6 {
		t.Errorf("expected next expense id 6, got %d", newExpense.ID)
	}
}

func TestReplaceEmptyArchiveResetsCounters(t *testing.T) {
	s := New()
	s.CreateUser(domain.User{Username: "alice"})
	s.CreateUser(domain.User{Username: "bob"})

	s.Replace(domain.Archive{})

	users, _, _ := s.Counts()
	if users != 0 {
		t.Fatalf("expected empty store, got %d users", users)
	}

	u := s.CreateUser(domain.User{Username: "carol"})
	if u.ID != 1 {
		t.Errorf("expected counter reset to 1, got %d", u.ID)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := New()
	s.CreateUser(domain.User{Username: "alice", Role: "admin"})
	s.CreateCategory(domain.Category{Name: "antibiotics"})
	s.CreateExpense(domain.Expense{Description: "gloves", Amount: 12.50, CategoryID: 1})

	archive := s.Snapshot()

	other := New()
	other.Replace(archive)

	if !reflect.DeepEqual(other.Snapshot(), archive) {
		t.Error("replayed snapshot does not match original")
	}
}

func TestClear(t *testing.T) {
	s := New()
	s.CreateUser(domain.User{Username: "alice"})
	s.CreateCategory(domain.Category{Name: "antibiotics"})

	s.Clear()

	users, categories, expenses := s.Counts()
	if users != 0 || categories != 0 || expenses != 0 {
		t.Errorf("expected empty store, got %d/%d/%d", users, categories, expenses)
	}
}
