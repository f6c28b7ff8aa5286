package domain

import "time"

// Book is the domain entity for a catalog entry. Stock counts the copies
// currently available; only the loan ledger mutates it after creation.
type Book struct {
	ID     int64
	Title  string
	Author string
	Stock  int

	CreatedAt time.Time
}
