package service

import (
	"context"
	"errors"
	"time"

	"shelfmark/internal/http-api/dto"
	"shelfmark/internal/http-api/models"
	"shelfmark/internal/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrAlreadyInCollection = errors.New("book already in your collection")
	ErrNotInCollection     = errors.New("book not found in your collection")
)

type CollectionService interface {
	List(ctx context.Context, userID string) ([]models.UserBook, error)
	Add(ctx context.Context, userID string, req dto.AddToCollectionRequest) error
	Remove(ctx context.Context, userID, bookID string) error
	UpdateReadingState(ctx context.Context, userID string, req dto.UpdateUserBookRequest) (*models.UserBook, error)
	GetEntry(ctx context.Context, userID, bookID string) (*models.UserBook, error)
}

type collectionService struct {
	repo     repository.CollectionRepository
	bookRepo repository.BookRepository
}

func NewCollectionService(repo repository.CollectionRepository, bookRepo repository.BookRepository) CollectionService {
	return &collectionService{
		repo:     repo,
		bookRepo: bookRepo,
	}
}

func (s *collectionService) List(ctx context.Context, userID string) ([]models.UserBook, error) {
	return s.repo.List(ctx, userID)
}

// Add ensures the catalog book exists (creating it lazily from the payload on
// first sight), then creates the caller's UserBook with default reading state.
// A duplicate (user, book) pair is rejected, by pre-check on the fast path and
// by the composite unique index under concurrency.
func (s *collectionService) Add(ctx context.Context, userID string, req dto.AddToCollectionRequest) error {
	if _, err := s.bookRepo.GetByID(ctx, req.ID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := s.createBookFromPayload(ctx, req); err != nil {
			return err
		}
	}

	if _, err := s.repo.Get(ctx, userID, req.ID); err == nil {
		return ErrAlreadyInCollection
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	entry := &models.UserBook{
		UserID: userID,
		BookID: req.ID,
		Status: models.StatusWantToRead,
	}
	if err := s.repo.Add(ctx, entry); err != nil {
		if repository.IsUniqueViolation(err) {
			return ErrAlreadyInCollection
		}
		return err
	}

	return nil
}

func (s *collectionService) createBookFromPayload(ctx context.Context, req dto.AddToCollectionRequest) error {
	author := string(req.Author)
	if author == "" {
		author = "Unknown"
	}

	book := &models.Book{
		ID:     req.ID,
		Title:  req.Title,
		Author: author,
	}
	if req.CoverURL != "" {
		book.CoverURL = &req.CoverURL
	}
	if isbn := string(req.ISBN); isbn != "" {
		book.ISBN = &isbn
	}
	if publisher := string(req.Publishers); publisher != "" {
		book.Publisher = &publisher
	}
	if req.PublishYear != nil {
		published := time.Date(*req.PublishYear, time.January, 1, 0, 0, 0, 0, time.UTC)
		book.PublishedAt = &published
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		// another user added the same catalog book concurrently
		if repository.IsUniqueViolation(err) {
			return nil
		}
		return err
	}
	return nil
}

func (s *collectionService) Remove(ctx context.Context, userID, bookID string) error {
	if err := s.repo.Remove(ctx, userID, bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotInCollection
		}
		return err
	}
	return nil
}

// UpdateReadingState patches status and/or progress, only the fields present.
// Patching progress alone never touches status, and vice versa.
func (s *collectionService) UpdateReadingState(ctx context.Context, userID string, req dto.UpdateUserBookRequest) (*models.UserBook, error) {
	fields := map[string]interface{}{}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.Progress != nil {
		fields["progress"] = *req.Progress
	}

	if len(fields) > 0 {
		rows, err := s.repo.UpdateFields(ctx, userID, req.BookID, fields)
		if err != nil {
			return nil, err
		}
		if rows == 0 {
			return nil, ErrNotInCollection
		}
	}

	entry, err := s.repo.Get(ctx, userID, req.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotInCollection
		}
		return nil, err
	}
	return entry, nil
}

func (s *collectionService) GetEntry(ctx context.Context, userID, bookID string) (*models.UserBook, error) {
	entry, err := s.repo.Get(ctx, userID, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotInCollection
		}
		return nil, err
	}
	return entry, nil
}
