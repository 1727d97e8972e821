package dto

import (
	"shelfmark/internal/http-api/models"
)

// AddToCollectionRequest adds an external catalog book to the caller's
// collection, creating the catalog row on first sight. Author/isbn/publisher
// may arrive array-shaped from the external book API.
type AddToCollectionRequest struct {
	ID          string       `json:"id" binding:"required"`
	Title       string       `json:"title" binding:"required"`
	Author      JoinedString `json:"author"`
	CoverURL    string       `json:"coverUrl"`
	ISBN        FirstString  `json:"isbn"`
	Publishers  FirstString  `json:"publishers"`
	PublishYear *int         `json:"publishYear"`
}

// UpdateUserBookRequest patches reading state; status and progress are
// independently optional.
type UpdateUserBookRequest struct {
	BookID   string  `json:"bookId" binding:"required"`
	Status   *string `json:"status" binding:"omitempty,oneof=want-to-read reading completed paused"`
	Progress *int    `json:"progress" binding:"omitempty,min=0,max=100"`
}

// RemoveFromCollectionRequest removes the caller's entry for a book.
type RemoveFromCollectionRequest struct {
	BookID string `json:"bookId" binding:"required"`
}

// CollectionItemResponse is one shelf entry: the book's display fields plus
// the caller's reading state.
type CollectionItemResponse struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	CoverURL *string `json:"coverUrl,omitempty"`
	Status   string  `json:"status"`
	Progress int     `json:"progress"`
}

func FromModelToCollectionItem(entry models.UserBook) CollectionItemResponse {
	item := CollectionItemResponse{
		ID:       entry.BookID,
		Status:   entry.Status,
		Progress: entry.Progress,
	}
	if entry.Book != nil {
		item.Title = entry.Book.Title
		item.Author = entry.Book.Author
		item.CoverURL = entry.Book.CoverURL
	}
	return item
}
