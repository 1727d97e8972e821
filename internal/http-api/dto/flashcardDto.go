package dto

// CreateFlashcardRequest adds a flashcard to the caller's copy of a book.
// Front and back are both required; there is no flashcard update endpoint.
type CreateFlashcardRequest struct {
	BookID string `json:"bookId" binding:"required"`
	Front  string `json:"front" binding:"required"`
	Back   string `json:"back" binding:"required"`
}
