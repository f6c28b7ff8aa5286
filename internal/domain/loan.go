package domain

import "time"

// Loan records one checkout of one book copy. ReturnDate nil means the
// loan is still outstanding. Borrowers are free-text names, not users.
type Loan struct {
	ID           int64
	BorrowerName string
	LoanDate     time.Time
	ReturnDate   *time.Time
	BookID       int64

	// BookTitle is joined in on reads for display; not a column of loans.
	BookTitle string
}

// Returned reports whether the loan has been closed out.
func (l Loan) Returned() bool { return l.ReturnDate != nil }
