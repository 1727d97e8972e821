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

type FlashcardHandler struct {
	svc service.FlashcardService
}

func NewFlashcardHandler(svc service.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{svc: svc}
}

// RegisterRoutes wires the flashcard endpoints under the authenticated /user
// group. No update route; cards are deleted and re-added.
func (h *FlashcardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cards := rg.Group("/flashcards")
	{
		cards.GET("/:bookId", h.List)
		cards.POST("", h.Create)
		cards.DELETE("/by-id/:id", h.Delete)
	}
}

// List returns one page of the caller's flashcards for a book, oldest first.
// GET /api/user/flashcards/:bookId?page=&limit=
func (h *FlashcardHandler) List(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	page, limit := parsePageQuery(c, service.DefaultFlashcardPageSize)

	cards, pagination, err := h.svc.List(c.Request.Context(), userID.(string), c.Param("bookId"), page, limit)
	if err != nil {
		if errors.Is(err, service.ErrNotInCollection) {
			c.JSON(http.StatusNotFound, dto.Fail("Book not found in your collection"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal Server Error"))
		return
	}

	c.JSON(http.StatusOK, dto.SuccessPaginated(cards, pagination))
}

// Create adds a flashcard to the caller's copy of a book.
// POST /api/user/flashcards
func (h *FlashcardHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	var req dto.CreateFlashcardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("bookId, front and back are required"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	card, err := h.svc.Create(ctx, userID.(string), req)
	if err != nil {
		if errors.Is(err, service.ErrNotInCollection) {
			c.JSON(http.StatusNotFound, dto.Fail("Book not found in your collection"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Fail("Internal Server Error"))
		return
	}

	c.JSON(http.StatusOK, dto.Success(card))
}

// Delete removes a flashcard the caller owns; missing and foreign cards
// answer identically.
// DELETE /api/user/flashcards/by-id/:id
func (h *FlashcardHandler) Delete(c *gin.Context) {
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

	c.JSON(http.StatusOK, dto.SuccessMessage("Flashcard deleted"))
}
