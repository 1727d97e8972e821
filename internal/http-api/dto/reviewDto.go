package dto

import (
	"shelfmark/internal/http-api/models"
)

// CreateReviewRequest creates the caller's single review for a book.
type CreateReviewRequest struct {
	BookID  string `json:"bookId" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Content string `json:"content" binding:"required"`
}

// ReviewerInfo is the minimal reviewer display info attached to a review.
type ReviewerInfo struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatarUrl"`
	Email     string `json:"email"`
}

// ReviewResponse is the public review shape.
type ReviewResponse struct {
	ID      string       `json:"id"`
	Rating  int          `json:"rating"`
	Content string       `json:"content"`
	User    ReviewerInfo `json:"user"`
}

func FromModelToReviewResponse(r *models.Review) *ReviewResponse {
	resp := &ReviewResponse{
		ID:      r.ID,
		Rating:  r.Rating,
		Content: r.Comment,
	}
	resp.User.Name = r.User.Name
	if resp.User.Name == "" {
		resp.User.Name = "Anonymous"
	}
	if r.User.AvatarURL != nil {
		resp.User.AvatarURL = *r.User.AvatarURL
	}
	resp.User.Email = r.User.Email
	return resp
}

// HasReviewedResponse answers the soft-session "did I review this already"
// check; absent session means false, never an error.
type HasReviewedResponse struct {
	HasReviewed bool `json:"hasReviewed"`
}
