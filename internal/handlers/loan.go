package handlers

import (
	"net/http"

	dom "github.com/hasbenyek/perpus-sahroni/internal/domain"
	"github.com/hasbenyek/perpus-sahroni/internal/dto"
	"github.com/hasbenyek/perpus-sahroni/internal/service"

	"github.com/gin-gonic/gin"
)

type LoanHandler struct {
	svc *service.LoanService
}

func NewLoanHandler(svc *service.LoanService) *LoanHandler {
	return &LoanHandler{svc: svc}
}

// Borrow godoc
// @Summary      Borrow a copy of a book
// @Tags         loans
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Param        id    path      int  true  "Book ID"
// @Param        body  body      dto.BorrowRequest  true  "Borrower"
// @Success      201   {object}  dto.LoanResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /books/{id}/borrow [post]
func (h *LoanHandler) Borrow(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l, err := h.svc.Borrow(c.Request.Context(), id, req.BorrowerName)
	if err != nil {
		switch err {
		case service.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		case service.ErrOutOfStock:
			c.JSON(http.StatusConflict, gin.H{"error": "book is out of stock"})
		case service.ErrInvalidBorrower:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusCreated, loanToResponse(l))
}

// Return godoc
// @Summary      Return a borrowed book
// @Tags         loans
// @Produce      json
// @Security     CookieAuth
// @Param        id   path      int  true  "Loan ID"
// @Success      200  {object}  dto.LoanResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /loans/{id}/return [post]
func (h *LoanHandler) Return(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	l, err := h.svc.Return(c.Request.Context(), id)
	if err != nil {
		if err == service.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, loanToResponse(l))
}

// List godoc
// @Summary      List all loans, newest first
// @Tags         loans
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.ListLoansResponse
// @Failure      500  {object}  map[string]string
// @Router       /loans [get]
func (h *LoanHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ListLoansResponse{Items: loansToResponses(list)})
}

// Dashboard godoc
// @Summary      Library summary counters
// @Tags         loans
// @Produce      json
// @Security     CookieAuth
// @Success      200  {object}  dto.DashboardResponse
// @Failure      500  {object}  map[string]string
// @Router       /dashboard [get]
func (h *LoanHandler) Dashboard(c *gin.Context) {
	st, err := h.svc.Stats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.DashboardResponse{
		TotalBooks:  st.TotalBooks,
		ActiveLoans: st.ActiveLoans,
	})
}

func loanToResponse(l dom.Loan) dto.LoanResponse {
	return dto.LoanResponse{
		ID:           l.ID,
		BorrowerName: l.BorrowerName,
		BookID:       l.BookID,
		BookTitle:    l.BookTitle,
		LoanDate:     l.LoanDate,
		ReturnDate:   l.ReturnDate,
	}
}

func loansToResponses(list []dom.Loan) []dto.LoanResponse {
	out := make([]dto.LoanResponse, len(list))
	for i := range list {
		out[i] = loanToResponse(list[i])
	}
	return out
}
