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

type ReviewHandler struct {
	svc service.ReviewService
}

func NewReviewHandler(svc service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// RegisterRoutes wires the review endpoints. Listing is public, creating
// requires a session, and has-reviewed answers false for an absent session
// instead of 401.
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	review := rg.Group("/review")
	{
		review.GET("", h.ListByBook)
		review.POST("", requireAuth, h.Create)
		review.GET("/has-reviewed", optionalAuth, h.HasReviewed)
	}
}

// Create inserts the caller's single review for a book.
// POST /api/review
func (h *ReviewHandler) Create(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, dto.Fail("Unauthorized"))
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Fail("Invalid input"))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	review, err := h.svc.Create(ctx, userID.(string), req.BookID, req.Rating, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrAlreadyReviewed) {
			c.JSON(http.StatusConflict, dto.Fail("You have already reviewed this book."))
			return
		}
		if errors.Is(err, service.ErrBookNotFound) {
			c.JSON(http.StatusNotFound, dto.Fail("Book not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.Fail("Server error"))
		return
	}

	c.JSON(http.StatusCreated, review)
}

// ListByBook returns all reviews for a book, newest first, with reviewer
// display info. Public, legacy bare-array shape.
// GET /api/review?bookId=
func (h *ReviewHandler) ListByBook(c *gin.Context) {
	bookID := c.Query("bookId")
	if bookID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Book ID is required"})
		return
	}

	reviews, err := h.svc.ListByBook(c.Request.Context(), bookID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	mapped := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		mapped = append(mapped, *dto.FromModelToReviewResponse(&reviews[i]))
	}

	c.JSON(http.StatusOK, mapped)
}

// HasReviewed reports whether the caller already reviewed a book. No session
// means false, never 401.
// GET /api/review/has-reviewed?bookId=
func (h *ReviewHandler) HasReviewed(c *gin.Context) {
	bookID := c.Query("bookId")
	if bookID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Book ID is required"})
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusOK, dto.HasReviewedResponse{HasReviewed: false})
		return
	}

	hasReviewed, err := h.svc.HasReviewed(c.Request.Context(), userID.(string), bookID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.HasReviewedResponse{HasReviewed: false})
		return
	}

	c.JSON(http.StatusOK, dto.HasReviewedResponse{HasReviewed: hasReviewed})
}
