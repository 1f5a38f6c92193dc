package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Raghu4002/railway-reservation/internal/domain"
	"github.com/Raghu4002/railway-reservation/internal/service/trains"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTrainUseCase struct {
	mock.Mock
}

func (m *MockTrainUseCase) List(ctx context.Context) ([]domain.Train, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Train), args.Error(1)
}

func (m *MockTrainUseCase) GetByID(ctx context.Context, id int64) (*domain.Train, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Train), args.Error(1)
}

func (m *MockTrainUseCase) Search(ctx context.Context, sourceID, destinationID int64) ([]domain.Train, error) {
	args := m.Called(ctx, sourceID, destinationID)
	return args.Get(0).([]domain.Train), args.Error(1)
}

func (m *MockTrainUseCase) Create(ctx context.Context, actor domain.Actor, input trains.CreateTrainInput) (*domain.Train, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Train), args.Error(1)
}

func (m *MockTrainUseCase) Update(ctx context.Context, actor domain.Actor, id int64, input trains.UpdateTrainInput) (*domain.Train, error) {
	args := m.Called(ctx, actor, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Train), args.Error(1)
}

func (m *MockTrainUseCase) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func TestTrainHandler_list(t *testing.T) {
	mockService := &MockTrainUseCase{}
	handler := NewTrainHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/trains", nil)

	trainList := []domain.Train{{ID: 3, Number: "12951", Name: "Rajdhani Express", TotalSeats: 100, AvailableSeats: 97, Fare: 500}}
	mockService.On("List", c.Request.Context()).Return(trainList, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []domain.Train
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)
	assert.Equal(t, "12951", response[0].Number)
}

func TestTrainHandler_get_NotFound(t *testing.T) {
	mockService := &MockTrainUseCase{}
	handler := NewTrainHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "99"}}
	c.Request = httptest.NewRequest("GET", "/trains/99", nil)

	mockService.On("GetByID", c.Request.Context(), int64(99)).Return(nil, domain.ErrTrainNotFound)

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTrainHandler_search(t *testing.T) {
	mockService := &MockTrainUseCase{}
	handler := NewTrainHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/trains/search?source_id=1&destination_id=2", nil)

	mockService.On("Search", c.Request.Context(), int64(1), int64(2)).Return([]domain.Train{}, nil)

	handler.search(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestTrainHandler_delete_Forbidden(t *testing.T) {
	mockService := &MockTrainUseCase{}
	handler := NewTrainHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "3"}}
	c.Request = httptest.NewRequest("DELETE", "/trains/3", nil)
	c.Set(actorKey, domain.Actor{RiderID: 7})

	mockService.On("Delete", c.Request.Context(), domain.Actor{RiderID: 7}, int64(3)).Return(domain.ErrForbidden)

	handler.delete(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
