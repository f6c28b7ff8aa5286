package service

import (
	"context"
	"errors"
	"strings"

	"github.com/hasbenyek/perpus-sahroni/internal/cache"
	dom "github.com/hasbenyek/perpus-sahroni/internal/domain"
	"github.com/hasbenyek/perpus-sahroni/internal/repo"

	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrInvalidBook = errors.New("title and author are required and stock must not be negative")
)

// BookService handles the catalog.
type BookService struct {
	repo  repo.BookRepo
	stats *cache.StatsCache
}

// NewBookService creates a BookService. If c is nil, stats caching is disabled.
func NewBookService(r repo.BookRepo, c *cache.StatsCache) *BookService {
	return &BookService{repo: r, stats: c}
}

func (s *BookService) Add(ctx context.Context, title, author string, stock int) (dom.Book, error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)
	if title == "" || author == "" || stock < 0 {
		return dom.Book{}, ErrInvalidBook
	}
	b, err := s.repo.Create(ctx, dom.Book{Title: title, Author: author, Stock: stock})
	if err != nil {
		return dom.Book{}, err
	}
	if s.stats != nil {
		_ = s.stats.Invalidate(ctx)
	}
	return b, nil
}

// List returns all books newest first; a non-empty q narrows to books whose
// title or author contains q, case-insensitively. Always reads current state.
func (s *BookService) List(ctx context.Context, q string) ([]dom.Book, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, q)
}

func (s *BookService) GetByID(ctx context.Context, id int64) (dom.Book, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Book{}, ErrNotFound
		}
		return dom.Book{}, err
	}
	return b, nil
}
