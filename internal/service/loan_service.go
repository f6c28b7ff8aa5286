package service

import (
	"context"
	"errors"
	"strings"

	dom "github.com/hasbenyek/perpus-sahroni/internal/domain"
	"github.com/hasbenyek/perpus-sahroni/internal/repo"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/singleflight"

	"github.com/hasbenyek/perpus-sahroni/internal/cache"
)

var (
	ErrOutOfStock      = errors.New("book is out of stock")
	ErrInvalidBorrower = errors.New("borrower name is required")
)

// LoanService handles borrowing and returning. Stock adjustments happen
// inside the repo's transactions; this layer validates input, maps errors
// and keeps the dashboard stats cache honest.
type LoanService struct {
	loans repo.LoanRepo
	books repo.BookRepo
	stats *cache.StatsCache
	sf    singleflight.Group
}

// NewLoanService creates a LoanService. If c is nil, stats caching is disabled.
func NewLoanService(loans repo.LoanRepo, books repo.BookRepo, c *cache.StatsCache) *LoanService {
	return &LoanService{loans: loans, books: books, stats: c}
}

func (s *LoanService) Borrow(ctx context.Context, bookID int64, borrowerName string) (dom.Loan, error) {
	borrowerName = strings.TrimSpace(borrowerName)
	if borrowerName == "" {
		return dom.Loan{}, ErrInvalidBorrower
	}
	l, err := s.loans.Borrow(ctx, bookID, borrowerName)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Loan{}, ErrNotFound
		}
		if errors.Is(err, repo.ErrNoStock) {
			return dom.Loan{}, ErrOutOfStock
		}
		return dom.Loan{}, err
	}
	s.invalidateStats(ctx)
	return l, nil
}

func (s *LoanService) Return(ctx context.Context, loanID int64) (dom.Loan, error) {
	l, err := s.loans.Return(ctx, loanID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Loan{}, ErrNotFound
		}
		return dom.Loan{}, err
	}
	s.invalidateStats(ctx)
	return l, nil
}

func (s *LoanService) List(ctx context.Context) ([]dom.Loan, error) {
	return s.loans.List(ctx)
}

// Stats returns the dashboard counters, cached in Redis with singleflight
// so a cold cache hits the database once.
func (s *LoanService) Stats(ctx context.Context) (cache.Stats, error) {
	if s.stats == nil {
		return s.queryStats(ctx)
	}
	v, err, _ := s.sf.Do("stats", func() (interface{}, error) {
		if st, err := s.stats.Get(ctx); err == nil && st != nil {
			return *st, nil
		}
		st, err := s.queryStats(ctx)
		if err != nil {
			return nil, err
		}
		_ = s.stats.Set(ctx, st)
		return st, nil
	})
	if err != nil {
		return cache.Stats{}, err
	}
	return v.(cache.Stats), nil
}

func (s *LoanService) queryStats(ctx context.Context) (cache.Stats, error) {
	total, err := s.books.Count(ctx)
	if err != nil {
		return cache.Stats{}, err
	}
	active, err := s.loans.CountActive(ctx)
	if err != nil {
		return cache.Stats{}, err
	}
	return cache.Stats{TotalBooks: total, ActiveLoans: active}, nil
}

func (s *LoanService) invalidateStats(ctx context.Context) {
	if s.stats != nil {
		_ = s.stats.Invalidate(ctx)
	}
}
