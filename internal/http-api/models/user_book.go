package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Reading statuses carried by a UserBook.
const (
	StatusWantToRead = "want-to-read"
	StatusReading    = "reading"
	StatusCompleted  = "completed"
	StatusPaused     = "paused"
)

// UserBook represents "this user has this book in their library". Exactly one
// row per (user, book) pair, enforced by the composite unique index so that
// concurrent adds cannot slip past the existence check.
type UserBook struct {
	ID       string    `gorm:"primaryKey;type:uuid" json:"id"`
	UserID   string    `gorm:"type:uuid;not null;uniqueIndex:idx_user_book" json:"user_id"`
	BookID   string    `gorm:"not null;uniqueIndex:idx_user_book" json:"book_id"`
	Status   string    `gorm:"not null;default:'want-to-read'" json:"status"`
	Progress int       `gorm:"not null;default:0;check:progress >= 0 AND progress <= 100" json:"progress"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"added_at"`

	// Associations
	User *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"user,omitempty"`
	Book *Book `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE;" json:"book,omitempty"`
}

func (ub *UserBook) BeforeCreate(tx *gorm.DB) (err error) {
	if ub.ID == "" {
		ub.ID = uuid.New().String()
	}
	return
}

func (UserBook) TableName() string {
	return "user_books"
}
