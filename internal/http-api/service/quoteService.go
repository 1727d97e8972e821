package service

import (
	"context"
	"errors"

	"shelfmark/internal/http-api/dto"
	"shelfmark/internal/http-api/models"
	"shelfmark/internal/http-api/repository"

	"gorm.io/gorm"
)

// Quotes page newest-first; the default page size is deliberately distinct
// from the flashcard one (per-entity configuration, not a shared default).
const DefaultQuotePageSize = 5

// ErrNotFoundOrDenied is the merged signal for child-resource mutations: a
// missing row and a row owned by someone else answer identically, so callers
// cannot probe for the existence of other users' data.
var ErrNotFoundOrDenied = errors.New("not found or access denied")

type QuoteService interface {
	List(ctx context.Context, userID, bookID string, page, limit int) ([]models.Quote, *dto.Pagination, error)
	Create(ctx context.Context, userID string, req dto.CreateQuoteRequest) (*models.Quote, error)
	Update(ctx context.Context, userID, quoteID string, req dto.UpdateQuoteRequest) (*models.Quote, error)
	Delete(ctx context.Context, userID, quoteID string) error
}

type quoteService struct {
	repo           repository.QuoteRepository
	collectionRepo repository.CollectionRepository
}

func NewQuoteService(repo repository.QuoteRepository, collectionRepo repository.CollectionRepository) QuoteService {
	return &quoteService{
		repo:           repo,
		collectionRepo: collectionRepo,
	}
}

// List returns one page of the caller's quotes for a book, newest first, with
// pagination metadata. A page past the end returns empty data without erroring.
func (s *quoteService) List(ctx context.Context, userID, bookID string, page, limit int) ([]models.Quote, *dto.Pagination, error) {
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
	quotes, err := s.repo.ListByUserBook(ctx, userBook.ID, limit, offset)
	if err != nil {
		return nil, nil, err
	}

	return quotes, dto.NewPagination(total, page, limit), nil
}

func (s *quoteService) Create(ctx context.Context, userID string, req dto.CreateQuoteRequest) (*models.Quote, error) {
	userBook, err := s.collectionRepo.Get(ctx, userID, req.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotInCollection
		}
		return nil, err
	}

	quote := &models.Quote{
		UserBookID: userBook.ID,
		Content:    req.Content,
	}
	if req.Page != nil {
		page := int(*req.Page)
		quote.Page = &page
	}

	if err := s.repo.Create(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// Update resolves the quote together with its owning user id in one join, then
// applies a partial update of content and/or page.
func (s *quoteService) Update(ctx context.Context, userID, quoteID string, req dto.UpdateQuoteRequest) (*models.Quote, error) {
	row, err := s.resolveOwned(ctx, userID, quoteID)
	if err != nil {
		return nil, err
	}

	quote := row.Quote
	if req.Content != nil {
		quote.Content = *req.Content
	}
	if req.Page != nil {
		page := int(*req.Page)
		quote.Page = &page
	}

	if err := s.repo.Update(ctx, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (s *quoteService) Delete(ctx context.Context, userID, quoteID string) error {
	if _, err := s.resolveOwned(ctx, userID, quoteID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, quoteID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrDenied
		}
		return err
	}
	return nil
}

func (s *quoteService) resolveOwned(ctx context.Context, userID, quoteID string) (*repository.QuoteWithOwner, error) {
	row, err := s.repo.FindWithOwner(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFoundOrDenied
		}
		return nil, err
	}
	if row.OwnerID != userID {
		return nil, ErrNotFoundOrDenied
	}
	return row, nil
}
