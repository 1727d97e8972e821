package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Book is the shared catalog record, one row per physical book. The ID is
// usually the external catalog identifier supplied by the client on add; manual
// entries get a generated UUID.
type Book struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Author      string     `json:"author" gorm:"not null;default:'Unknown'"` // free text, may hold comma-joined names
	Category    *string    `json:"category,omitempty"`
	Language    *string    `json:"language,omitempty"`
	Publisher   *string    `json:"publisher,omitempty"`
	Description *string    `json:"description,omitempty" gorm:"type:text"`
	PageCount   *int       `json:"page_count,omitempty"`
	ISBN        *string    `json:"isbn,omitempty" gorm:"uniqueIndex"`
	CoverURL    *string    `json:"cover_url,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
}

func (book *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if book.ID == "" {
		book.ID = uuid.New().String()
	}
	return
}

func (Book) TableName() string {
	return "books"
}
