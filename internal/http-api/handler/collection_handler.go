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

type CollectionHandler struct {
	svc service.CollectionService
}

func NewCollectionHandler(svc service.CollectionService) *CollectionHandler {
	return &CollectionHandler{svc: svc}
}

// RegisterRoutes wires the collection endpoints under the authenticated /user
// group. Remove and patch address the entry by bookId in the body, as the
// original clients do.
func (h *CollectionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	{
		books.GET("", h.List)
		books.POST("", h.Add)
		books.PATCH("", h.UpdateReadingState)
		books.DELETE("", h.Remove)
		books.GET("/userbook", h.GetEntry)
	}
}

// List returns the caller's whole collection, ordered by book title.
// GET /api/user/books
func (h *CollectionHandler) List(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	collection, err := h.svc.List(c.Request.Context(), userID.(string))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.Fail("Error fetching books"))
		return
	}

	items := make([]dto.CollectionItemResponse, 0, len(collection))
	for _, entry := range collection {
		items = append(items, dto.FromModelToCollectionItem(entry))
	}

	c.JSON(http.StatusOK, dto.Success(items))
}

// Add puts a book in the caller's collection, creating the catalog row on
// first sight.
// POST /api/user/books
func (h *CollectionHandler) Add(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	var req dto.AddToCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Add(ctx, userID.(string), req); err != nil {
		if errors.Is(err, service.ErrAlreadyInCollection) {
			c.JSON(http.StatusConflict, dto.Fail("Book already in your collection"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal Server Error"))
		return
	}

	c.JSON(http.StatusCreated, dto.SuccessMessage("Book added to your collection"))
}

// UpdateReadingState patches status and/or progress for the caller's entry.
// PATCH /api/user/books
func (h *CollectionHandler) UpdateReadingState(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	var req dto.UpdateUserBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("bookId is required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	entry, err := h.svc.UpdateReadingState(ctx, userID.(string), req)
	if err != nil {
		if errors.Is(err, service.ErrNotInCollection) {
			c.JSON(http.StatusNotFound, dto.Fail("Book not found in your collection"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal Server Error"))
		return
	}

	c.JSON(http.StatusOK, dto.Success(entry))
}

// Remove deletes the caller's entry for a book. A repeat delete is a 404.
// DELETE /api/user/books
func (h *CollectionHandler) Remove(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	var req dto.RemoveFromCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("bookId is required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Remove(ctx, userID.(string), req.BookID); err != nil {
		if errors.Is(err, service.ErrNotInCollection) {
			c.JSON(http.StatusNotFound, dto.Fail("Book not found in your collection"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal Server Error"))
		return
	}

	c.JSON(http.StatusOK, dto.SuccessMessage("Book removed from your collection"))
}

// GetEntry returns the caller's raw UserBook row for a book.
// GET /api/user/books/userbook?bookId=
func (h *CollectionHandler) GetEntry(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	bookID := c.Query("bookId")
	if bookID == "" {
		c.JSON(http.StatusBadRequest, dto.Fail("bookId is required"))
		return
	}

	entry, err := h.svc.GetEntry(c.Request.Context(), userID.(string), bookID)
	if err != nil {
		if errors.Is(err, service.ErrNotInCollection) {
			c.JSON(http.StatusNotFound, dto.Fail("UserBook not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal Server Error"))
		return
	}

	// legacy shape: the bare entry
	c.JSON(http.StatusOK, entry)
}
