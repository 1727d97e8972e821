package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"shelfmark/internal/http-api/dto"
	"shelfmark/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	svc service.QuoteService
}

func NewQuoteHandler(svc service.QuoteService) *QuoteHandler {
	return &QuoteHandler{svc: svc}
}

// RegisterRoutes wires the quote endpoints under the authenticated /user
// group. List addresses quotes by the parent book; edit/delete address a
// single quote by its own id.
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	{
		quotes.GET("/:bookId", h.List)
		quotes.POST("", h.Create)
		quotes.PATCH("/by-id/:id", h.Update)
		quotes.DELETE("/by-id/:id", h.Delete)
	}
}

// List returns one page of the caller's quotes for a book, newest first.
// GET /api/user/quotes/:bookId?page=&limit=
func (h *QuoteHandler) List(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	page, limit := parsePageQuery(c, service.DefaultQuotePageSize)

	quotes, pagination, err := h.svc.List(c.Request.Context(), userID.(string), c.Param("bookId"), page, limit)
	if err != nil {
		if errors.Is(err, service.ErrNotInCollection) {
			c.JSON(http.StatusNotFound, dto.Fail("Book not found in your collection"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal Server Error"))
		return
	}

	c.JSON(http.StatusOK, dto.SuccessPaginated(quotes, pagination))
}

// Create adds a quote to the caller's copy of a book.
// POST /api/user/quotes
func (h *QuoteHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	var req dto.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("bookId and content are required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	quote, err := h.svc.Create(ctx, userID.(string), req)
	if err != nil {
		if errors.Is(err, service.ErrNotInCollection) {
			c.JSON(http.StatusNotFound, dto.Fail("Book not found in your collection"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal Server Error"))
		return
	}

	c.JSON(http.StatusOK, dto.Success(quote))
}

// Update edits a quote the caller owns. Missing and foreign quotes answer
// identically.
// PATCH /api/user/quotes/by-id/:id
func (h *QuoteHandler) Update(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	var req dto.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail(err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	quote, err := h.svc.Update(ctx, userID.(string), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, service.ErrNotFoundOrDenied) {
			c.JSON(http.StatusForbidden, dto.Fail("Not found or access denied"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal Server Error"))
		return
	}

	c.JSON(http.StatusOK, dto.Success(quote))
}

// Delete removes a quote the caller owns, with the same merged signal.
// DELETE /api/user/quotes/by-id/:id
func (h *QuoteHandler) Delete(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.svc.Delete(ctx, userID.(string), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrNotFoundOrDenied) {
			c.JSON(http.StatusForbidden, dto.Fail("Not found or access denied"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal Server Error"))
		return
	}

	c.JSON(http.StatusOK, dto.SuccessMessage("Quote deleted"))
}

// parsePageQuery reads 1-indexed page and limit query params, falling back to
// the entity's own defaults.
func parsePageQuery(c *gin.Context, defaultLimit int) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}
