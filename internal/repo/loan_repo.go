package repo

import (
	"context"
	"errors"

	dom "github.com/hasbenyek/perpus-sahroni/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoStock is returned by Borrow when the book exists but has no
// available copies. Missing rows come back as pgx.ErrNoRows.
var ErrNoStock = errors.New("no copies in stock")

// LoanRepo provides the loan ledger. Borrow and Return each run as one
// transaction so the ledger row and the stock adjustment commit together.
type LoanRepo interface {
	Borrow(ctx context.Context, bookID int64, borrowerName string) (dom.Loan, error)
	Return(ctx context.Context, loanID int64) (dom.Loan, error)
	List(ctx context.Context) ([]dom.Loan, error)
	CountActive(ctx context.Context) (int64, error)
}

type PGLoanRepo struct {
	db *pgxpool.Pool
}

func NewPGLoanRepo(db *pgxpool.Pool) *PGLoanRepo {
	return &PGLoanRepo{db: db}
}

// Borrow locks the book row, checks stock, then decrements it and inserts
// the loan in the same transaction. The row lock serializes concurrent
// borrows of the same book, so stock can never go below zero.
func (r *PGLoanRepo) Borrow(ctx context.Context, bookID int64, borrowerName string) (dom.Loan, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return dom.Loan{}, err
	}
	defer tx.Rollback(ctx)

	var stock int
	var title string
	err = tx.QueryRow(ctx,
		`SELECT stock, title FROM books WHERE id = $1 FOR UPDATE`, bookID,
	).Scan(&stock, &title)
	if err != nil {
		return dom.Loan{}, err
	}
	if stock == 0 {
		return dom.Loan{}, ErrNoStock
	}

	if _, err := tx.Exec(ctx,
		`UPDATE books SET stock = stock - 1 WHERE id = $1`, bookID,
	); err != nil {
		return dom.Loan{}, err
	}

	var l dom.Loan
	err = tx.QueryRow(ctx, `
		INSERT INTO loans (borrower_name, book_id)
		VALUES ($1, $2)
		RETURNING id, borrower_name, loan_date, return_date, book_id`,
		borrowerName, bookID,
	).Scan(&l.ID, &l.BorrowerName, &l.LoanDate, &l.ReturnDate, &l.BookID)
	if err != nil {
		return dom.Loan{}, err
	}
	l.BookTitle = title

	if err := tx.Commit(ctx); err != nil {
		return dom.Loan{}, err
	}
	return l, nil
}

// Return closes out a loan and restores one unit of stock in the same
// transaction. A loan that is already returned is handed back unchanged,
// so calling Return twice never increments stock twice.
func (r *PGLoanRepo) Return(ctx context.Context, loanID int64) (dom.Loan, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return dom.Loan{}, err
	}
	defer tx.Rollback(ctx)

	var l dom.Loan
	err = tx.QueryRow(ctx, `
		SELECT l.id, l.borrower_name, l.loan_date, l.return_date, l.book_id, b.title
		FROM loans l JOIN books b ON b.id = l.book_id
		WHERE l.id = $1
		FOR UPDATE OF l`, loanID,
	).Scan(&l.ID, &l.BorrowerName, &l.LoanDate, &l.ReturnDate, &l.BookID, &l.BookTitle)
	if err != nil {
		return dom.Loan{}, err
	}
	if l.ReturnDate != nil {
		return l, nil
	}

	err = tx.QueryRow(ctx, `
		UPDATE loans SET return_date = NOW() WHERE id = $1
		RETURNING return_date`, loanID,
	).Scan(&l.ReturnDate)
	if err != nil {
		return dom.Loan{}, err
	}
	if _, err := tx.Exec(ctx,
		`UPDATE books SET stock = stock + 1 WHERE id = $1`, l.BookID,
	); err != nil {
		return dom.Loan{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return dom.Loan{}, err
	}
	return l, nil
}

func (r *PGLoanRepo) List(ctx context.Context) ([]dom.Loan, error) {
	query := `
		SELECT l.id, l.borrower_name, l.loan_date, l.return_date, l.book_id, b.title
		FROM loans l JOIN books b ON b.id = l.book_id
		ORDER BY l.loan_date DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var list []dom.Loan
	for rows.Next() {
		var l dom.Loan
		if err := rows.Scan(&l.ID, &l.BorrowerName, &l.LoanDate, &l.ReturnDate,
			&l.BookID, &l.BookTitle); err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

func (r *PGLoanRepo) CountActive(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM loans WHERE return_date IS NULL`).Scan(&n)
	return n, err
}
