package service_test

import (
	"context"
	"testing"

	"github.com/hasbenyek/perpus-sahroni/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddBook(t *testing.T) {
	store := newMemStore()
	svc := service.NewBookService(memBookRepo{store}, nil)
	ctx := context.Background()

	b, err := svc.Add(ctx, "  The Go Programming Language ", "Donovan & Kernighan", 3)
	require.NoError(t, err)
	assert.Equal(t, "The Go Programming Language", b.Title)
	assert.Equal(t, 3, b.Stock)
	assert.NotZero(t, b.ID)
}

func TestAddBookValidation(t *testing.T) {
	store := newMemStore()
	svc := service.NewBookService(memBookRepo{store}, nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		title  string
		author string
		stock  int
	}{
		{"empty title", "", "Someone", 1},
		{"empty author", "Title", "", 1},
		{"whitespace title", "   ", "Someone", 1},
		{"negative stock", "Title", "Someone", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tt.title, tt.author, tt.stock)
			assert.ErrorIs(t, err, service.ErrInvalidBook)
		})
	}
}

func TestListBooksNewestFirst(t *testing.T) {
	store := newMemStore()
	svc := service.NewBookService(memBookRepo{store}, nil)
	ctx := context.Background()

	first, _ := svc.Add(ctx, "First", "A", 1)
	second, _ := svc.Add(ctx, "Second", "B", 1)

	list, err := svc.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestSearchBooks(t *testing.T) {
	store := newMemStore()
	svc := service.NewBookService(memBookRepo{store}, nil)
	ctx := context.Background()

	svc.Add(ctx, "A History of Wales", "Smith, J.", 1)
	svc.Add(ctx, "SMITHsonian Guide", "Unknown", 1)
	svc.Add(ctx, "Gardening", "Jones", 1)

	list, err := svc.List(ctx, "smith")
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, b := range list {
		assert.NotEqual(t, "Jones", b.Author)
	}

	// Blank query, even padded, lists everything.
	all, err := svc.List(ctx, "   ")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestGetBookNotFound(t *testing.T) {
	store := newMemStore()
	svc := service.NewBookService(memBookRepo{store}, nil)

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
