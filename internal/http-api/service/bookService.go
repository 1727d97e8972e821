package service

import (
	"context"
	"errors"
	"time"

	"shelfmark/internal/cache"
	"shelfmark/internal/http-api/dto"
	"shelfmark/internal/http-api/models"
	"shelfmark/internal/http-api/repository"

	"gorm.io/gorm"
)

// Catalog search returns at most this many rows, no pagination.
const searchResultCap = 12

var ErrBookNotFound = errors.New("book not found")

type BookService interface {
	Search(ctx context.Context, general, title, author string) ([]models.Book, error)
	GetByID(ctx context.Context, id string) (*models.Book, error)
	CreateManual(ctx context.Context, userID string, req dto.CreateBookRequest) (*models.Book, error)
}

type bookService struct {
	bookRepo       repository.BookRepository
	collectionRepo repository.CollectionRepository
	bookCache      *cache.BookCache
}

func NewBookService(bookRepo repository.BookRepository, collectionRepo repository.CollectionRepository, bookCache *cache.BookCache) BookService {
	return &bookService{
		bookRepo:       bookRepo,
		collectionRepo: collectionRepo,
		bookCache:      bookCache,
	}
}

func (s *bookService) Search(ctx context.Context, general, title, author string) ([]models.Book, error) {
	return s.bookRepo.Search(ctx, general, title, author, searchResultCap)
}

// GetByID serves catalog detail lookups through the cache when configured.
func (s *bookService) GetByID(ctx context.Context, id string) (*models.Book, error) {
	if cached, err := s.bookCache.Get(ctx, id); err == nil && cached != nil {
		return cached, nil
	}

	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}

	s.bookCache.Set(ctx, book)
	return book, nil
}

// CreateManual upserts a catalog book by ISBN from the manual-entry form and
// adds it to the caller's collection with default reading state. A second
// submission for the same ISBN reuses the existing catalog row, never
// duplicating it.
func (s *bookService) CreateManual(ctx context.Context, userID string, req dto.CreateBookRequest) (*models.Book, error) {
	book, err := s.upsertByISBN(ctx, req)
	if err != nil {
		return nil, err
	}

	// Add to the caller's collection if not already present.
	if _, err := s.collectionRepo.Get(ctx, userID, book.ID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		entry := &models.UserBook{
			UserID: userID,
			BookID: book.ID,
			Status: models.StatusWantToRead,
		}
		if err := s.collectionRepo.Add(ctx, entry); err != nil && !repository.IsUniqueViolation(err) {
			return nil, err
		}
	}

	return book, nil
}

func (s *bookService) upsertByISBN(ctx context.Context, req dto.CreateBookRequest) (*models.Book, error) {
	isbn := string(req.ISBN)

	if isbn != "" {
		existing, err := s.bookRepo.FindByISBN(ctx, isbn)
		if err == nil {
			return existing, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	book := &models.Book{
		Title:  req.Title,
		Author: string(req.Authors),
	}
	if req.Category != "" {
		book.Category = &req.Category
	} else {
		category := "General"
		book.Category = &category
	}
	if req.Language != "" {
		book.Language = &req.Language
	}
	if req.Description != "" {
		book.Description = &req.Description
	}
	if p := string(req.Publisher); p != "" {
		book.Publisher = &p
	}
	if req.PageCount != nil {
		book.PageCount = req.PageCount
	}
	if isbn != "" {
		book.ISBN = &isbn
	}
	if req.CoverImageURL != "" {
		book.CoverURL = &req.CoverImageURL
	}
	if req.PublishDate != "" {
		if published, err := time.Parse("2006-01-02", req.PublishDate); err == nil {
			book.PublishedAt = &published
		}
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		// A concurrent submission inserted the same ISBN first; reuse its row.
		if repository.IsUniqueViolation(err) && isbn != "" {
			return s.bookRepo.FindByISBN(ctx, isbn)
		}
		return nil, err
	}

	s.bookCache.Invalidate(ctx, book.ID)
	return book, nil
}
