package dto

// SearchBooksQuery binds the catalog search filters. All are optional; a
// general query expands to an OR across title and author.
type SearchBooksQuery struct {
	General string `form:"q"`
	Title   string `form:"title"`
	Author  string `form:"author"`
}

// CreateBookRequest is the manual-entry form payload. The book is upserted by
// ISBN into the shared catalog and auto-added to the caller's collection.
type CreateBookRequest struct {
	Title         string       `json:"title" binding:"required"`
	Authors       JoinedString `json:"authors" binding:"required"`
	Category      string       `json:"category"`
	Language      string       `json:"language"`
	Description   string       `json:"description"`
	Publisher     FirstString  `json:"publisher"`
	PublishDate   string       `json:"publishDate"`
	PageCount     *int         `json:"pageCount"`
	ISBN          FirstString  `json:"isbn"`
	CoverImageURL string       `json:"coverImageUrl"`
}
