package service

import (
	"context"
	"errors"

	"shelfmark/internal/http-api/models"
	"shelfmark/internal/http-api/repository"

	"gorm.io/gorm"
)

var ErrAlreadyReviewed = errors.New("you have already reviewed this book")

type ReviewService interface {
	Create(ctx context.Context, userID, bookID string, rating int, content string) (*models.Review, error)
	ListByBook(ctx context.Context, bookID string) ([]models.Review, error)
	HasReviewed(ctx context.Context, userID, bookID string) (bool, error)
}

type reviewService struct {
	repo     repository.ReviewRepository
	bookRepo repository.BookRepository
}

func NewReviewService(repo repository.ReviewRepository, bookRepo repository.BookRepository) ReviewService {
	return &reviewService{
		repo:     repo,
		bookRepo: bookRepo,
	}
}

// Create inserts the caller's single review for a book. The duplicate
// pre-check is the fast path; under concurrent submissions the composite
// unique index decides, and the violation maps to the same conflict.
func (s *reviewService) Create(ctx context.Context, userID, bookID string, rating int, content string) (*models.Review, error) {
	if _, err := s.bookRepo.GetByID(ctx, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, userID, bookID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReviewed
	}

	review := &models.Review{
		UserID:  userID,
		BookID:  bookID,
		Rating:  rating,
		Comment: content,
	}
	if err := s.repo.Create(ctx, review); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyReviewed
		}
		return nil, err
	}

	return review, nil
}

func (s *reviewService) ListByBook(ctx context.Context, bookID string) ([]models.Review, error) {
	return s.repo.ListByBook(ctx, bookID)
}

func (s *reviewService) HasReviewed(ctx context.Context, userID, bookID string) (bool, error) {
	return s.repo.Exists(ctx, userID, bookID)
}
