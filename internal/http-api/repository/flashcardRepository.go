package repository

import (
	"context"
	"fmt"

	"shelfmark/internal/http-api/models"

	"gorm.io/gorm"
)

// FlashcardWithOwner mirrors QuoteWithOwner for the flashcard ownership chain.
type FlashcardWithOwner struct {
	models.Flashcard
	OwnerID string `gorm:"column:owner_id"`
}

type FlashcardRepository interface {
	Create(ctx context.Context, card *models.Flashcard) error
	CountByUserBook(ctx context.Context, userBookID string) (int64, error)
	ListByUserBook(ctx context.Context, userBookID string, limit, offset int) ([]models.Flashcard, error)
	FindWithOwner(ctx context.Context, id string) (*FlashcardWithOwner, error)
	Delete(ctx context.Context, id string) error
}

type flashcardRepository struct {
	db *gorm.DB
}

func NewFlashcardRepository(db *gorm.DB) FlashcardRepository {
	return &flashcardRepository{db: db}
}

func (r *flashcardRepository) Create(ctx context.Context, card *models.Flashcard) error {
	if err := r.db.WithContext(ctx).Create(card).Error; err != nil {
		return fmt.Errorf("create flashcard: %w", err)
	}
	return nil
}

func (r *flashcardRepository) CountByUserBook(ctx context.Context, userBookID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Flashcard{}).
		Where("user_book_id = ?", userBookID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ListByUserBook returns a page of flashcards, oldest first. Study order is
// insertion order, unlike quotes.
func (r *flashcardRepository) ListByUserBook(ctx context.Context, userBookID string, limit, offset int) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	if err := r.db.WithContext(ctx).
		Where("user_book_id = ?", userBookID).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("list flashcards: %w", err)
	}
	return cards, nil
}

func (r *flashcardRepository) FindWithOwner(ctx context.Context, id string) (*FlashcardWithOwner, error) {
	var row FlashcardWithOwner
	if err := r.db.WithContext(ctx).
		Model(&models.Flashcard{}).
		Select("flashcards.*, user_books.user_id AS owner_id").
		Joins("JOIN user_books ON user_books.id = flashcards.user_book_id").
		Where("flashcards.id = ?", id).
		Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *flashcardRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Flashcard{})
	if result.Error != nil {
		return fmt.Errorf("delete flashcard: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
