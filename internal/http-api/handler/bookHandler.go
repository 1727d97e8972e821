package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"shelfmark/internal/http-api/dto"
	"shelfmark/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	svc service.BookService
}

func NewBookHandler(svc service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

// RegisterRoutes wires the catalog endpoints. Search and single fetch are
// public; manual creation writes the shared catalog and therefore requires a
// session.
func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	books := rg.Group("/books")
	{
		books.GET("", h.Search)
		books.GET("/:id", h.Get)
		books.POST("", requireAuth, h.Create)
	}
}

// Search filters the catalog by free-text fields, capped at 12 rows.
// GET /api/books?q=&title=&author=
func (h *BookHandler) Search(c *gin.Context) {
	var query dto.SearchBooksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	books, err := h.svc.Search(c.Request.Context(), query.General, query.Title, query.Author)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal Server Error"))
		return
	}

	c.JSON(http.StatusOK, dto.Success(books))
}

// Get fetches one catalog book.
// GET /api/books/:id
func (h *BookHandler) Get(c *gin.Context) {
	book, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Book not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	// legacy shape: the bare book
	c.JSON(http.StatusOK, book)
}

// Create handles the manual-entry form: upsert the catalog row by ISBN and add
// it to the caller's collection.
// POST /api/books
func (h *BookHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.Fail("user not authenticated"))
		return
	}

	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Missing required fields"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	book, err := h.svc.CreateManual(ctx, userID.(string), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail("Failed to create book"))
		return
	}

	c.JSON(http.StatusCreated, dto.Success(book))
}
