package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Quote is a child of UserBook. Ownership is transitive: a quote has no user id
// of its own, authorization joins back through user_books.
type Quote struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserBookID string    `gorm:"type:uuid;not null;index" json:"user_book_id"`
	Content    string    `gorm:"not null;type:text" json:"content"`
	Page       *int      `json:"page,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Association: removing the book from a collection removes its quotes.
	UserBook *UserBook `gorm:"foreignKey:UserBookID;constraint:OnDelete:CASCADE;" json:"user_book,omitempty"`
}

func (q *Quote) BeforeCreate(tx *gorm.DB) (err error) {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	return
}

func (Quote) TableName() string {
	return "quotes"
}
