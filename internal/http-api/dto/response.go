package dto

// APIResponse is the common envelope: { success, data?, message?, pagination? }.
// A few legacy endpoints (single book fetch, review list, register) return the
// bare entity instead.
type APIResponse struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
	Limit       int   `json:"limit"`
	CurrentPage int   `json:"currentPage"`
}

// NewPagination computes page metadata: totalPages = ceil(totalItems/limit).
func NewPagination(totalItems int64, page, limit int) *Pagination {
	totalPages := int(totalItems) / limit
	if int(totalItems)%limit != 0 {
		totalPages++
	}

	return &Pagination{
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		Limit:       limit,
		CurrentPage: page,
	}
}

func Success(data interface{}) APIResponse {
	return APIResponse{Success: true, Data: data}
}

func SuccessMessage(message string) APIResponse {
	return APIResponse{Success: true, Message: message}
}

func SuccessPaginated(data interface{}, pagination *Pagination) APIResponse {
	return APIResponse{Success: true, Data: data, Pagination: pagination}
}

func Fail(message string) APIResponse {
	return APIResponse{Success: false, Message: message}
}
