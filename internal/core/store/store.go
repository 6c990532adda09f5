package store

import (
	"sort"
	"sync"

	"github.com/jmolenaar/pharmvault/internal/core/domain"
)

// Store owns the in-memory pharmacy collections. It is the single shared
// mutable resource of the backup subsystem: every access goes through the
// RWMutex, and Snapshot/Replace operate on whole collections so a restore
// can never be observed half-applied.
type Store struct {
	mu             sync.RWMutex
	users          map[int64]domain.User
	categories     map[int64]domain.Category
	expenses       map[int64]domain.Expense
	nextUserID     int64
	nextCategoryID int64
	nextExpenseID  int64
}

func New() *Store {
	return &Store{
		users:          make(map[int64]domain.User),
		categories:     make(map[int64]domain.Category),
		expenses:       make(map[int64]domain.Expense),
		nextUserID:     1,
		nextCategoryID: 1,
		nextExpenseID:  1,
	}
}

func (s *Store) CreateUser(u domain.User) domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	u.ID = s.nextUserID
	s.nextUserID++
	s.users[u.ID] = u
	return u
}

func (s *Store) GetUser(id int64) (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	return u, ok
}

func (s *Store) ListUsers() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users
}

// UpdateUserPassword replaces the user's password hash. Returns false
// when the user does not exist.
func (s *Store) UpdateUserPassword(id int64, passwordHash string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return false
	}
	u.PasswordHash = passwordHash
	s.users[id] = u
	return true
}

func (s *Store) DeleteUser(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	return true
}

func (s *Store) CreateCategory(c domain.Category) domain.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextCategoryID
	s.nextCategoryID++
	s.categories[c.ID] = c
	return c
}

func (s *Store) GetCategory(id int64) (domain.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	return c, ok
}

func (s *Store) ListCategories() []domain.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()

	categories := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories
}

func (s *Store) DeleteCategory(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.categories[id]; !ok {
		return false
	}
	delete(s.categories, id)
	return true
}

func (s *Store) CreateExpense(e domain.Expense) domain.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = s.nextExpenseID
	s.nextExpenseID++
	s.expenses[e.ID] = e
	return e
}

func (s *Store) GetExpense(id int64) (domain.Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.expenses[id]
	return e, ok
}

func (s *Store) ListExpenses() []domain.Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()

	expenses := make([]domain.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		expenses = append(expenses, e)
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].ID < expenses[j].ID })
	return expenses
}

func (s *Store) DeleteExpense(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.expenses[id]; !ok {
		return false
	}
	delete(s.expenses, id)
	return true
}

// Snapshot returns a deep copy of all collections taken under a single
// read lock, so a backup always captures a consistent state. The caller
// fills in Archive.Timestamp.
func (s *Store) Snapshot() domain.Archive {
	s.mu.RLock()
	defer s.mu.RUnlock()

	archive := domain.Archive{
		Users:      make([]domain.User, 0, len(s.users)),
		Categories: make([]domain.Category, 0, len(s.categories)),
		Expenses:   make([]domain.Expense, 0, len(s.expenses)),
	}
	for _, u := range s.users {
		archive.Users = append(archive.Users, u)
	}
	for _, c := range s.categories {
		archive.Categories = append(archive.Categories, c)
	}
	for _, e := range s.expenses {
		archive.Expenses = append(archive.Expenses, e)
	}
	sort.Slice(archive.Users, func(i, j int) bool { return archive.Users[i].ID < archive.Users[j].ID })
	sort.Slice(archive.Categories, func(i, j int) bool { return archive.Categories[i].ID < archive.Categories[j].ID })
	sort.Slice(archive.Expenses, func(i, j int) bool { return archive.Expenses[i].ID < archive.Expenses[j].ID })
	return archive
}

// Replace swaps in the archive contents wholesale. The replacement maps
// are built before the write lock is taken, so other goroutines see either
// the old state or the new state, never a partially repopulated one.
// ID counters are recomputed so the next create cannot collide with a
// restored id.
func (s *Store) Replace(archive domain.Archive) {
	users := make(map[int64]domain.User, len(archive.Users))
	var maxUserID int64
	for _, u := range archive.Users {
		users[u.ID] = u
		if u.ID > maxUserID {
			maxUserID = u.ID
		}
	}

	categories := make(map[int64]domain.Category, len(archive.Categories))
	var maxCategoryID int64
	for _, c := range archive.Categories {
		categories[c.ID] = c
		if c.ID > maxCategoryID {
			maxCategoryID = c.ID
		}
	}

	expenses := make(map[int64]domain.Expense, len(archive.Expenses))
	var maxExpenseID int64
	for _, e := range archive.Expenses {
		expenses[e.ID] = e
		if e.ID > maxExpenseID {
			maxExpenseID = e.ID
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = users
	s.categories = categories
	s.expenses = expenses
	s.nextUserID = maxUserID + 1
	s.nextCategoryID = maxCategoryID + 1
	s.nextExpenseID = maxExpenseID + 1
}

// Clear empties all collections and resets the ID counters.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users = make(map[int64]domain.User)
	s.categories = make(map[int64]domain.Category)
	s.expenses = make(map[int64]domain.Expense)
	s.nextUserID = 1
	s.nextCategoryID = 1
	s.nextExpenseID = 1
}

// Counts reports the number of entities per collection.
func (s *Store) Counts() (users, categories, expenses int) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.users), len(s.categories), len(s.expenses)
}
