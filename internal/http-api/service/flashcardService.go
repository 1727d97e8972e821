package service

import (
	"context"
	"errors"

	"shelfmark/internal/http-api/dto"
	"shelfmark/internal/http-api/models"
	"shelfmark/internal/http-api/repository"

	"gorm.io/gorm"
)

// Flashcards page oldest-first so study order follows insertion order.
const DefaultFlashcardPageSize = 4

// FlashcardService mirrors QuoteService minus update; editing a card means
// deleting and re-adding it.
type FlashcardService interface {
	List(ctx context.Context, userID, bookID string, page, limit int) ([]models.Flashcard, *dto.Pagination, error)
	Create(ctx context.Context, userID string, req dto.CreateFlashcardRequest) (*models.Flashcard, error)
	Delete(ctx context.Context, userID, cardID string) error
}

type flashcardService struct {
	repo           repository.FlashcardRepository
	collectionRepo repository.CollectionRepository
}

func NewFlashcardService(repo repository.FlashcardRepository, collectionRepo repository.CollectionRepository) FlashcardService {
	return &flashcardService{
		repo:           repo,
		collectionRepo: collectionRepo,
	}
}

func (s *flashcardService) List(ctx context.Context, userID, bookID string, page, limit int) ([]models.Flashcard, *dto.Pagination, error) {
	userBook, err := s.collectionRepo.Get(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotInCollection
		}
		return nil, nil, err
	}

	total, err := s.repo.CountByUserBook(ctx, userBook.ID)
	if err != nil {
		return nil, nil, err
	}

	offset := (page - 1) * limit
	cards, err := s.repo.ListByUserBook(ctx, userBook.ID, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	return cards, dto.NewPagination(total, page, limit), nil
}

func (s *flashcardService) Create(ctx context.Context, userID string, req dto.CreateFlashcardRequest) (*models.Flashcard, error) {
	userBook, err := s.collectionRepo.Get(ctx, userID, req.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotInCollection
		}
		return nil, err
	}

	card := &models.Flashcard{
		UserBookID: userBook.ID,
		Front:      req.Front,
		Back:       req.Back,
	}

	if err := s.repo.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// Delete applies the same merged not-found/denied resolution as quotes.
func (s *flashcardService) Delete(ctx context.Context, userID, cardID string) error {
	row, err := s.repo.FindWithOwner(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrDenied
		}
		return err
	}
	if row.OwnerID != userID {
		return ErrNotFoundOrDenied
	}

	if err := s.repo.Delete(ctx, cardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrDenied
		}
		return err
	}
	return nil
}
