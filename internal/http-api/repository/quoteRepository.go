package repository

import (
	"context"
	"fmt"

	"shelfmark/internal/http-api/models"

	"gorm.io/gorm"
)

// QuoteWithOwner carries a quote together with the user id that owns its
// parent UserBook, fetched in a single join so the ownership check always
// reflects the current parent.
type QuoteWithOwner struct {
	models.Quote
	OwnerID string `gorm:"column:owner_id"`
}

type QuoteRepository interface {
	Create(ctx context.Context, quote *models.Quote) error
	CountByUserBook(ctx context.Context, userBookID string) (int64, error)
	ListByUserBook(ctx context.Context, userBookID string, limit, offset int) ([]models.Quote, error)
	FindWithOwner(ctx context.Context, id string) (*QuoteWithOwner, error)
	Update(ctx context.Context, quote *models.Quote) error
	Delete(ctx context.Context, id string) error
}

type quoteRepository struct {
	db *gorm.DB
}

func NewQuoteRepository(db *gorm.DB) QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, quote *models.Quote) error {
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return fmt.Errorf("create quote: %w", err)
	}
	return nil
}

func (r *quoteRepository) CountByUserBook(ctx context.Context, userBookID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Where("user_book_id = ?", userBookID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByUserBook returns a page of quotes, newest first.
func (r *quoteRepository) ListByUserBook(ctx context.Context, userBookID string, limit, offset int) ([]models.Quote, error) {
	var quotes []models.Quote
	if err := r.db.WithContext(ctx).
		Where("user_book_id = ?", userBookID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&quotes).Error; err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return quotes, nil
}

func (r *quoteRepository) FindWithOwner(ctx context.Context, id string) (*QuoteWithOwner, error) {
	var row QuoteWithOwner
	if err := r.db.WithContext(ctx).
		Model(&models.Quote{}).
		Select("quotes.*, user_books.user_id AS owner_id").
		Joins("JOIN user_books ON user_books.id = quotes.user_book_id").
		Where("quotes.id = ?", id).
		Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *quoteRepository) Update(ctx context.Context, quote *models.Quote) error {
	if err := r.db.WithContext(ctx).Save(quote).Error; err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	return nil
}

func (r *quoteRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Quote{})
	if result.Error != nil {
		return fmt.Errorf("delete quote: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
