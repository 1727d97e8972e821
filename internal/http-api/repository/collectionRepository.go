package repository

import (
	"context"
	"fmt"

	"shelfmark/internal/http-api/models"

	"gorm.io/gorm"
)

type CollectionRepository interface {
	Add(ctx context.Context, userBook *models.UserBook) error
	Remove(ctx context.Context, userID, bookID string) error
	Get(ctx context.Context, userID, bookID string) (*models.UserBook, error)
	List(ctx context.Context, userID string) ([]models.UserBook, error)
	UpdateFields(ctx context.Context, userID, bookID string, fields map[string]interface{}) (int64, error)
}

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) CollectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) Add(ctx context.Context, userBook *models.UserBook) error {
	if err := r.db.WithContext(ctx).Create(userBook).Error; err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("add to collection: %w", err)
	}
	return nil
}

func (r *collectionRepository) Remove(ctx context.Context, userID, bookID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&models.UserBook{})

	if result.Error != nil {
		return fmt.Errorf("remove from collection: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *collectionRepository) Get(ctx context.Context, userID, bookID string) (*models.UserBook, error) {
	var ub models.UserBook
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&ub).Error; err != nil {
		return nil, err
	}
	return &ub, nil
}

// List returns the caller's whole collection joined with book data, ordered by
// book title ascending. Unpaginated, the full collection loads at once.
func (r *collectionRepository) List(ctx context.Context, userID string) ([]models.UserBook, error) {
	var collection []models.UserBook

	if err := r.db.WithContext(ctx).
		Preload("Book").
		Joins("JOIN books ON books.id = user_books.book_id").
		Where("user_books.user_id = ?", userID).
		Order("books.title ASC").
		Find(&collection).Error; err != nil {
		return nil, fmt.Errorf("list collection: %w", err)
	}

	return collection, nil
}

// UpdateFields patches only the given columns for the (user, book) row and
// reports the number of rows touched.
func (r *collectionRepository) UpdateFields(ctx context.Context, userID, bookID string, fields map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.UserBook{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Updates(fields)

	if result.Error != nil {
		return 0, fmt.Errorf("update collection entry: %w", result.Error)
	}
	return result.RowsAffected, nil
}
