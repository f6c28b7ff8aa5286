package repo

import (
	"context"

	dom "github.com/hasbenyek/perpus-sahroni/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// BookRepo provides catalog persistence. Stock is only written through
// LoanRepo's borrow/return transactions, never here.
type BookRepo interface {
	Create(ctx context.Context, b dom.Book) (dom.Book, error)
	GetByID(ctx context.Context, id int64) (dom.Book, error)
	List(ctx context.Context) ([]dom.Book, error)
	Search(ctx context.Context, q string) ([]dom.Book, error)
	Count(ctx context.Context) (int64, error)
}

type PGBookRepo struct {
	db *pgxpool.Pool
}

func NewPGBookRepo(db *pgxpool.Pool) *PGBookRepo {
	return &PGBookRepo{db: db}
}

func (r *PGBookRepo) Create(ctx context.Context, b dom.Book) (dom.Book, error) {
	query := `
		INSERT INTO books (title, author, stock)
		VALUES ($1, $2, $3)
		RETURNING id, title, author, stock, created_at`
	var out dom.Book
	err := r.db.QueryRow(ctx, query, b.Title, b.Author, b.Stock).Scan(
		&out.ID, &out.Title, &out.Author, &out.Stock, &out.CreatedAt,
	)
	return out, err
}

func (r *PGBookRepo) GetByID(ctx context.Context, id int64) (dom.Book, error) {
	query := `SELECT id, title, author, stock, created_at FROM books WHERE id = $1`
	var b dom.Book
	err := r.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.Title, &b.Author, &b.Stock, &b.CreatedAt)
	return b, err
}

func (r *PGBookRepo) List(ctx context.Context) ([]dom.Book, error) {
	query := `
		SELECT id, title, author, stock, created_at
		FROM books ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Book
	for rows.Next() {
		var b dom.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Stock, &b.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *PGBookRepo) Search(ctx context.Context, q string) ([]dom.Book, error) {
	pattern := "%" + q + "%"
	query := `
		SELECT id, title, author, stock, created_at
		FROM books WHERE title ILIKE $1 OR author ILIKE $1
		ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Book
	for rows.Next() {
		var b dom.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Stock, &b.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func (r *PGBookRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&n)
	return n, err
}
