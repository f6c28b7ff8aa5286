package dto

import "time"

// CreateBookRequest is the JSON body for POST /books.
type CreateBookRequest struct {
	Title  string `json:"title" binding:"required,min=1,max=200"`
	Author string `json:"author" binding:"required,min=1,max=100"`
	Stock  int    `json:"stock" binding:"gte=0"`
}

type BookResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
}

type ListBooksResponse struct {
	Items []BookResponse `json:"items"`
}
