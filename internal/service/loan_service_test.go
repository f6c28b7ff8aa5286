package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hasbenyek/perpus-sahroni/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoanFixture(t *testing.T) (*memStore, *service.BookService, *service.LoanService) {
	t.Helper()
	store := newMemStore()
	books := service.NewBookService(memBookRepo{store}, nil)
	loans := service.NewLoanService(memLoanRepo{store}, memBookRepo{store}, nil)
	return store, books, loans
}

func TestBorrow(t *testing.T) {
	store, books, loans := newLoanFixture(t)
	ctx := context.Background()

	b, err := books.Add(ctx, "Dune", "Herbert", 2)
	require.NoError(t, err)

	l, err := loans.Borrow(ctx, b.ID, "Budi")
	require.NoError(t, err)
	assert.Equal(t, "Budi", l.BorrowerName)
	assert.Equal(t, b.ID, l.BookID)
	assert.Nil(t, l.ReturnDate)
	assert.False(t, l.Returned())
	assert.Equal(t, 1, store.stock(b.ID))
}

func TestBorrowOutOfStock(t *testing.T) {
	store, books, loans := newLoanFixture(t)
	ctx := context.Background()

	b, err := books.Add(ctx, "Dune", "Herbert", 0)
	require.NoError(t, err)

	_, err = loans.Borrow(ctx, b.ID, "Budi")
	assert.ErrorIs(t, err, service.ErrOutOfStock)
	assert.Equal(t, 0, store.loanCount())
	assert.Equal(t, 0, store.stock(b.ID))
}

func TestBorrowUnknownBook(t *testing.T) {
	_, _, loans := newLoanFixture(t)

	_, err := loans.Borrow(context.Background(), 999, "Budi")
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestBorrowEmptyBorrower(t *testing.T) {
	store, books, loans := newLoanFixture(t)
	ctx := context.Background()

	b, _ := books.Add(ctx, "Dune", "Herbert", 1)
	_, err := loans.Borrow(ctx, b.ID, "   ")
	assert.ErrorIs(t, err, service.ErrInvalidBorrower)
	assert.Equal(t, 1, store.stock(b.ID))
}

func TestReturnIsIdempotent(t *testing.T) {
	store, books, loans := newLoanFixture(t)
	ctx := context.Background()

	b, _ := books.Add(ctx, "Dune", "Herbert", 1)
	l, err := loans.Borrow(ctx, b.ID, "Budi")
	require.NoError(t, err)
	require.Equal(t, 0, store.stock(b.ID))

	returned, err := loans.Return(ctx, l.ID)
	require.NoError(t, err)
	require.NotNil(t, returned.ReturnDate)
	assert.True(t, !returned.ReturnDate.Before(returned.LoanDate))
	assert.Equal(t, 1, store.stock(b.ID))

	// Second return is a no-op, not a double increment.
	again, err := loans.Return(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, returned.ReturnDate.Unix(), again.ReturnDate.Unix())
	assert.Equal(t, 1, store.stock(b.ID))
}

func TestReturnUnknownLoan(t *testing.T) {
	_, _, loans := newLoanFixture(t)

	_, err := loans.Return(context.Background(), 999)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestConcurrentBorrowLastCopy(t *testing.T) {
	store, books, loans := newLoanFixture(t)
	ctx := context.Background()

	b, _ := books.Add(ctx, "Dune", "Herbert", 1)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = loans.Borrow(ctx, b.ID, "Racer")
		}(i)
	}
	wg.Wait()

	var ok, outOfStock int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, service.ErrOutOfStock):
			outOfStock++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, outOfStock)
	assert.Equal(t, 0, store.stock(b.ID))
	assert.Equal(t, 1, store.loanCount())
}

func TestListLoansNewestFirst(t *testing.T) {
	_, books, loans := newLoanFixture(t)
	ctx := context.Background()

	b, _ := books.Add(ctx, "Dune", "Herbert", 2)
	first, _ := loans.Borrow(ctx, b.ID, "Budi")
	second, _ := loans.Borrow(ctx, b.ID, "Sari")

	list, err := loans.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, "Dune", list[0].BookTitle)
}

func TestStats(t *testing.T) {
	_, books, loans := newLoanFixture(t)
	ctx := context.Background()

	b, _ := books.Add(ctx, "Dune", "Herbert", 2)
	books.Add(ctx, "Emma", "Austen", 1)
	l, _ := loans.Borrow(ctx, b.ID, "Budi")
	loans.Borrow(ctx, b.ID, "Sari")
	loans.Return(ctx, l.ID)

	st, err := loans.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.TotalBooks)
	assert.Equal(t, int64(1), st.ActiveLoans)
}
