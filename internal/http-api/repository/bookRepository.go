package repository

import (
	"context"
	"fmt"
	"strings"

	"shelfmark/internal/http-api/models"

	"gorm.io/gorm"
)

type BookRepository interface {
	GetByID(ctx context.Context, id string) (*models.Book, error)
	FindByISBN(ctx context.Context, isbn string) (*models.Book, error)
	Create(ctx context.Context, book *models.Book) error
	Search(ctx context.Context, general, title, author string, limit int) ([]models.Book, error)
}

type bookRepository struct {
	db *gorm.DB
}

func NewBookRepository(db *gorm.DB) BookRepository {
	return &bookRepository{db: db}
}

func (r *bookRepository) GetByID(ctx context.Context, id string) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	var b models.Book
	if err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookRepository) Create(ctx context.Context, book *models.Book) error {
	if err := r.db.WithContext(ctx).Create(book).Error; err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("create book: %w", err)
	}
	return nil
}

// Search performs case-insensitive partial matching against the catalog.
// A general query expands to an OR across title and author; explicit title and
// author filters add further OR branches. No filters at all returns an
// unfiltered page bounded by limit.
func (r *bookRepository) Search(ctx context.Context, general, title, author string, limit int) ([]models.Book, error) {
	var list []models.Book

	clauses := make([]string, 0, 4)
	args := make([]interface{}, 0, 4)

	if general != "" {
		p := "%" + general + "%"
		clauses = append(clauses, "title ILIKE ?", "COALESCE(author,'') ILIKE ?")
		args = append(args, p, p)
	}
	if title != "" {
		clauses = append(clauses, "title ILIKE ?")
		args = append(args, "%"+title+"%")
	}
	if author != "" {
		clauses = append(clauses, "COALESCE(author,'') ILIKE ?")
		args = append(args, "%"+author+"%")
	}

	db := r.db.WithContext(ctx).Limit(limit)
	if len(clauses) > 0 {
		db = db.Where(strings.Join(clauses, " OR "), args...)
	}

	if err := db.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return list, nil
}
