package dto

// CreateQuoteRequest adds a quote to the caller's copy of a book. Page may be
// sent as a numeric string by the form layer.
type CreateQuoteRequest struct {
	BookID  string   `json:"bookId" binding:"required"`
	Content string   `json:"content" binding:"required"`
	Page    *FlexInt `json:"page"`
}

// UpdateQuoteRequest patches content and/or page; only fields present change.
type UpdateQuoteRequest struct {
	Content *string  `json:"content"`
	Page    *FlexInt `json:"page"`
}
