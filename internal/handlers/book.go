package handlers

import (
	"net/http"
	"strconv"

	dom "github.com/hasbenyek/perpus-sahroni/internal/domain"
	"github.com/hasbenyek/perpus-sahroni/internal/dto"
	"github.com/hasbenyek/perpus-sahroni/internal/service"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	svc *service.BookService
}

func NewBookHandler(svc *service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

// Create godoc
// @Summary      Add a book to the catalog
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        body  body      dto.CreateBookRequest  true  "Book body"
// @Success      201   {object}  dto.BookResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /books [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, err := h.svc.Add(c.Request.Context(), req.Title, req.Author, req.Stock)
	if err != nil {
		if err == service.ErrInvalidBook {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, bookToResponse(b))
}

// List godoc
// @Summary      List books, optionally filtered by search query
// @Tags         books
// @Produce      json
// @Security     CookieAuth
// @Param        q    query     string  false  "Search query (title/author substring)"
// @Success      200  {object}  dto.ListBooksResponse
// @Failure      500  {object}  map[string]string
// @Router       /books [get]
func (h *BookHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ListBooksResponse{Items: booksToResponses(list)})
}

// GetByID godoc
// @Summary      Get a book by ID
// @Tags         books
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Book ID"
// @Success      200  {object}  dto.BookResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /books/{id} [get]
func (h *BookHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	b, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, bookToResponse(b))
}

func parseID(c *gin.Context, name string) (int64, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func bookToResponse(b dom.Book) dto.BookResponse {
	return dto.BookResponse{
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		Stock:     b.Stock,
		CreatedAt: b.CreatedAt,
	}
}

func booksToResponses(list []dom.Book) []dto.BookResponse {
	out := make([]dto.BookResponse, len(list))
	for i := range list {
		out[i] = bookToResponse(list[i])
	}
	return out
}
