package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Flashcard has the same transitive-ownership shape as Quote.
type Flashcard struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserBookID string    `gorm:"type:uuid;not null;index" json:"user_book_id"`
	Front      string    `gorm:"not null;type:text" json:"front"`
	Back       string    `gorm:"not null;type:text" json:"back"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	UserBook *UserBook `gorm:"foreignKey:UserBookID;constraint:OnDelete:CASCADE;" json:"user_book,omitempty"`
}

func (f *Flashcard) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return
}

func (Flashcard) TableName() string {
	return "flashcards"
}
