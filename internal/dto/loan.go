package dto

import "time"

// BorrowRequest is the JSON body for POST /books/{id}/borrow.
type BorrowRequest struct {
	BorrowerName string `json:"borrower_name" binding:"required,min=1,max=100"`
}

type LoanResponse struct {
	ID           int64      `json:"id"`
	BorrowerName string     `json:"borrower_name"`
	BookID       int64      `json:"book_id"`
	BookTitle    string     `json:"book_title,omitempty"`
	LoanDate     time.Time  `json:"loan_date"`
	ReturnDate   *time.Time `json:"return_date"`
}

type ListLoansResponse struct {
	Items []LoanResponse `json:"items"`
}

// DashboardResponse is the summary shown after login.
type DashboardResponse struct {
	TotalBooks  int64 `json:"total_books"`
	ActiveLoans int64 `json:"active_loans"`
}
