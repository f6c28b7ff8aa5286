package service_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	dom "github.com/hasbenyek/perpus-sahroni/internal/domain"
	"github.com/hasbenyek/perpus-sahroni/internal/repo"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// memStore is an in-memory stand-in for Postgres. The repo wrappers below
// follow the real repo contracts: pgx.ErrNoRows for missing rows, a 23505
// PgError for duplicate usernames, repo.ErrNoStock for empty stock, and
// borrow/return mutating stock and ledger atomically under one lock.
type memStore struct {
	mu     sync.Mutex
	users  map[string]dom.User
	books  map[int64]*dom.Book
	loans  map[int64]*dom.Loan
	nextID int64
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[string]dom.User),
		books: make(map[int64]*dom.Book),
		loans: make(map[int64]*dom.Loan),
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) userCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

func (m *memStore) stock(id int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.books[id].Stock
}

func (m *memStore) loanCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.loans)
}

type memUserRepo struct{ s *memStore }

func (r memUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[username]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r memUserRepo) Create(_ context.Context, username, passwordHash, role string) (dom.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[username]; ok {
		return dom.User{}, &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
	}
	u := dom.User{
		ID:           r.s.id(),
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	r.s.users[username] = u
	return u, nil
}

type memBookRepo struct{ s *memStore }

func (r memBookRepo) Create(_ context.Context, b dom.Book) (dom.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b.ID = r.s.id()
	b.CreatedAt = time.Now().UTC()
	r.s.books[b.ID] = &b
	return b, nil
}

func (r memBookRepo) GetByID(_ context.Context, id int64) (dom.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.books[id]
	if !ok {
		return dom.Book{}, pgx.ErrNoRows
	}
	return *b, nil
}

func (r memBookRepo) List(_ context.Context) ([]dom.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.sortedBooks(func(dom.Book) bool { return true }), nil
}

func (r memBookRepo) Search(_ context.Context, q string) ([]dom.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q = strings.ToLower(q)
	return r.s.sortedBooks(func(b dom.Book) bool {
		return strings.Contains(strings.ToLower(b.Title), q) ||
			strings.Contains(strings.ToLower(b.Author), q)
	}), nil
}

func (m *memStore) sortedBooks(match func(dom.Book) bool) []dom.Book {
	var list []dom.Book
	for _, b := range m.books {
		if match(*b) {
			list = append(list, *b)
		}
	}
	// newest first; IDs are monotonic so they break created_at ties
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list
}

func (r memBookRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.books)), nil
}

type memLoanRepo struct{ s *memStore }

func (r memLoanRepo) Borrow(_ context.Context, bookID int64, borrowerName string) (dom.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.books[bookID]
	if !ok {
		return dom.Loan{}, pgx.ErrNoRows
	}
	if b.Stock == 0 {
		return dom.Loan{}, repo.ErrNoStock
	}
	b.Stock--
	l := &dom.Loan{
		ID:           r.s.id(),
		BorrowerName: borrowerName,
		LoanDate:     time.Now().UTC(),
		BookID:       bookID,
		BookTitle:    b.Title,
	}
	r.s.loans[l.ID] = l
	return *l, nil
}

func (r memLoanRepo) Return(_ context.Context, loanID int64) (dom.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	l, ok := r.s.loans[loanID]
	if !ok {
		return dom.Loan{}, pgx.ErrNoRows
	}
	if l.ReturnDate != nil {
		return *l, nil
	}
	now := time.Now().UTC()
	l.ReturnDate = &now
	r.s.books[l.BookID].Stock++
	return *l, nil
}

func (r memLoanRepo) List(_ context.Context) ([]dom.Loan, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []dom.Loan
	for _, l := range r.s.loans {
		list = append(list, *l)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (r memLoanRepo) CountActive(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, l := range r.s.loans {
		if l.ReturnDate == nil {
			n++
		}
	}
	return n, nil
}
