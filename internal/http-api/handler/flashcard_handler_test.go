package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shelfmark/internal/http-api/dto"
	"shelfmark/internal/http-api/models"
	"shelfmark/internal/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockFlashcardService mocks the FlashcardService interface
type MockFlashcardService struct {
	mock.Mock
}

func (m *MockFlashcardService) List(ctx context.Context, userID, bookID string, page, limit int) ([]models.Flashcard, *dto.Pagination, error) {
	args := m.Called(ctx, userID, bookID, page, limit)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]models.Flashcard), args.Get(1).(*dto.Pagination), args.Error(2)
}

func (m *MockFlashcardService) Create(ctx context.Context, userID string, req dto.CreateFlashcardRequest) (*models.Flashcard, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Flashcard), args.Error(1)
}

func (m *MockFlashcardService) Delete(ctx context.Context, userID, cardID string) error {
	args := m.Called(ctx, userID, cardID)
	return args.Error(0)
}

func TestFlashcardListHandler_DefaultPaging(t *testing.T) {
	mockSvc := new(MockFlashcardService)
	handler := NewFlashcardHandler(mockSvc)
	router := setupRouter()
	router.GET("/user/flashcards/:bookId", authAs("user-1"), handler.List)

	cards := []models.Flashcard{{ID: "f-1", Front: "Q", Back: "A"}}
	pagination := dto.NewPagination(9, 1, 4)

	// flashcards default to their own page size, not the quote one
	mockSvc.On("List", mock.Anything, "user-1", "OL123W", 1, service.DefaultFlashcardPageSize).
		Return(cards, pagination, nil)

	req, _ := http.NewRequest("GET", "/user/flashcards/OL123W", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response dto.APIResponse
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.True(t, response.Success)
	assert.Equal(t, 4, response.Pagination.Limit)
	assert.Equal(t, 3, response.Pagination.TotalPages)

	mockSvc.AssertExpectations(t)
}

func TestFlashcardCreateHandler_MissingBack(t *testing.T) {
	mockSvc := new(MockFlashcardService)
	handler := NewFlashcardHandler(mockSvc)
	router := setupRouter()
	router.POST("/user/flashcards", authAs("user-1"), handler.Create)

	body := []byte(`{"bookId":"OL123W","front":"Q"}`)

	req, _ := http.NewRequest("POST", "/user/flashcards", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestFlashcardCreateHandler_BookNotInCollection(t *testing.T) {
	mockSvc := new(MockFlashcardService)
	handler := NewFlashcardHandler(mockSvc)
	router := setupRouter()
	router.POST("/user/flashcards", authAs("user-1"), handler.Create)

	mockSvc.On("Create", mock.Anything, "user-1", mock.Anything).
		Return(nil, service.ErrNotInCollection)

	body := []byte(`{"bookId":"OL123W","front":"Q","back":"A"}`)

	req, _ := http.NewRequest("POST", "/user/flashcards", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestFlashcardDeleteHandler_Denied(t *testing.T) {
	mockSvc := new(MockFlashcardService)
	handler := NewFlashcardHandler(mockSvc)
	router := setupRouter()
	router.DELETE("/user/flashcards/by-id/:id", authAs("user-1"), handler.Delete)

	mockSvc.On("Delete", mock.Anything, "user-1", "f-1").Return(service.ErrNotFoundOrDenied)

	req, _ := http.NewRequest("DELETE", "/user/flashcards/by-id/f-1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockSvc.AssertExpectations(t)
}
