package service

import (
	"context"
	"testing"

	"shelfmark/internal/http-api/dto"
	"shelfmark/internal/http-api/models"
	"shelfmark/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockFlashcardRepository mocks the FlashcardRepository interface
type MockFlashcardRepository struct {
	mock.Mock
}

func (m *MockFlashcardRepository) Create(ctx context.Context, card *models.Flashcard) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *MockFlashcardRepository) CountByUserBook(ctx context.Context, userBookID string) (int64, error) {
	args := m.Called(ctx, userBookID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockFlashcardRepository) ListByUserBook(ctx context.Context, userBookID string, limit, offset int) ([]models.Flashcard, error) {
	args := m.Called(ctx, userBookID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Flashcard), args.Error(1)
}

func (m *MockFlashcardRepository) FindWithOwner(ctx context.Context, id string) (*repository.FlashcardWithOwner, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.FlashcardWithOwner), args.Error(1)
}

func (m *MockFlashcardRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestFlashcardList_Success(t *testing.T) {
	mockRepo := new(MockFlashcardRepository)
	mockCollectionRepo := new(MockCollectionRepository)
	svc := NewFlashcardService(mockRepo, mockCollectionRepo)

	userBook := &models.UserBook{ID: "ub-1", UserID: "user-1", BookID: "OL123W"}
	cards := []models.Flashcard{
		{ID: "f-1", UserBookID: "ub-1", Front: "Who is Paul?", Back: "The Kwisatz Haderach"},
	}

	mockCollectionRepo.On("Get", mock.Anything, "user-1", "OL123W").Return(userBook, nil)
	mockRepo.On("CountByUserBook", mock.Anything, "ub-1").Return(int64(9), nil)
	mockRepo.On("ListByUserBook", mock.Anything, "ub-1", 4, 0).Return(cards, nil)

	result, pagination, err := svc.List(context.Background(), "user-1", "OL123W", 1, 4)

	assert.NoError(t, err)
	assert.Len(t, result, 1)
	assert.Equal(t, int64(9), pagination.TotalItems)
	assert.Equal(t, 3, pagination.TotalPages)
	assert.Equal(t, 4, pagination.Limit)
	mockRepo.AssertExpectations(t)
	mockCollectionRepo.AssertExpectations(t)
}

func TestFlashcardList_BookNotInCollection(t *testing.T) {
	mockRepo := new(MockFlashcardRepository)
	mockCollectionRepo := new(MockCollectionRepository)
	svc := NewFlashcardService(mockRepo, mockCollectionRepo)

	mockCollectionRepo.On("Get", mock.Anything, "user-1", "OL123W").Return(nil, gorm.ErrRecordNotFound)

	result, pagination, err := svc.List(context.Background(), "user-1", "OL123W", 1, 4)

	assert.Error(t, err)
	assert.Equal(t, ErrNotInCollection, err)
	assert.Nil(t, result)
	assert.Nil(t, pagination)
	mockCollectionRepo.AssertExpectations(t)
}

func TestFlashcardCreate_Success(t *testing.T) {
	mockRepo := new(MockFlashcardRepository)
	mockCollectionRepo := new(MockCollectionRepository)
	svc := NewFlashcardService(mockRepo, mockCollectionRepo)

	userBook := &models.UserBook{ID: "ub-1", UserID: "user-1", BookID: "OL123W"}

	mockCollectionRepo.On("Get", mock.Anything, "user-1", "OL123W").Return(userBook, nil)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(f *models.Flashcard) bool {
		return f.UserBookID == "ub-1" && f.Front == "front text" && f.Back == "back text"
	})).Return(nil)

	card, err := svc.Create(context.Background(), "user-1", dto.CreateFlashcardRequest{
		BookID: "OL123W",
		Front:  "front text",
		Back:   "back text",
	})

	assert.NoError(t, err)
	assert.NotNil(t, card)
	assert.Equal(t, "ub-1", card.UserBookID)
	mockRepo.AssertExpectations(t)
	mockCollectionRepo.AssertExpectations(t)
}

func TestFlashcardCreate_BookNotInCollection(t *testing.T) {
	mockRepo := new(MockFlashcardRepository)
	mockCollectionRepo := new(MockCollectionRepository)
	svc := NewFlashcardService(mockRepo, mockCollectionRepo)

	mockCollectionRepo.On("Get", mock.Anything, "user-1", "OL123W").Return(nil, gorm.ErrRecordNotFound)

	card, err := svc.Create(context.Background(), "user-1", dto.CreateFlashcardRequest{
		BookID: "OL123W",
		Front:  "front text",
		Back:   "back text",
	})

	assert.Error(t, err)
	assert.Equal(t, ErrNotInCollection, err)
	assert.Nil(t, card)
	mockCollectionRepo.AssertExpectations(t)
}

func TestFlashcardDelete_Success(t *testing.T) {
	mockRepo := new(MockFlashcardRepository)
	mockCollectionRepo := new(MockCollectionRepository)
	svc := NewFlashcardService(mockRepo, mockCollectionRepo)

	row := &repository.FlashcardWithOwner{
		Flashcard: models.Flashcard{ID: "f-1", UserBookID: "ub-1"},
		OwnerID:   "user-1",
	}

	mockRepo.On("FindWithOwner", mock.Anything, "f-1").Return(row, nil)
	mockRepo.On("Delete", mock.Anything, "f-1").Return(nil)

	err := svc.Delete(context.Background(), "user-1", "f-1")

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestFlashcardDelete_ForeignOwner(t *testing.T) {
	mockRepo := new(MockFlashcardRepository)
	mockCollectionRepo := new(MockCollectionRepository)
	svc := NewFlashcardService(mockRepo, mockCollectionRepo)

	row := &repository.FlashcardWithOwner{
		Flashcard: models.Flashcard{ID: "f-1"},
		OwnerID:   "someone-else",
	}

	mockRepo.On("FindWithOwner", mock.Anything, "f-1").Return(row, nil)

	err := svc.Delete(context.Background(), "user-1", "f-1")

	assert.Error(t, err)
	assert.Equal(t, ErrNotFoundOrDenied, err)
	mockRepo.AssertExpectations(t)
}

func TestFlashcardDelete_Missing(t *testing.T) {
	mockRepo := new(MockFlashcardRepository)
	mockCollectionRepo := new(MockCollectionRepository)
	svc := NewFlashcardService(mockRepo, mockCollectionRepo)

	mockRepo.On("FindWithOwner", mock.Anything, "missing").Return(nil, gorm.ErrRecordNotFound)

	err := svc.Delete(context.Background(), "user-1", "missing")

	assert.Error(t, err)
	assert.Equal(t, ErrNotFoundOrDenied, err)
	mockRepo.AssertExpectations(t)
}
