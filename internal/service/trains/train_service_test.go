package trains

import (
	"context"
	"testing"

	"github.com/Raghu4002/railway-reservation/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockTrainRepository struct {
	mock.Mock
}

func (m *MockTrainRepository) List(ctx context.Context) ([]domain.Train, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Train), args.Error(1)
}

func (m *MockTrainRepository) GetByID(ctx context.Context, id int64) (*domain.Train, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Train), args.Error(1)
}

func (m *MockTrainRepository) GetByNumber(ctx context.Context, number string) (*domain.Train, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Train), args.Error(1)
}

func (m *MockTrainRepository) Search(ctx context.Context, sourceID, destinationID int64) ([]domain.Train, error) {
	args := m.Called(ctx, sourceID, destinationID)
	return args.Get(0).([]domain.Train), args.Error(1)
}

func (m *MockTrainRepository) Create(ctx context.Context, train *domain.Train) error {
	args := m.Called(ctx, train)
	return args.Error(0)
}

func (m *MockTrainRepository) Update(ctx context.Context, train *domain.Train) error {
	args := m.Called(ctx, train)
	return args.Error(0)
}

func (m *MockTrainRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockLocationRepository struct {
	mock.Mock
}

func (m *MockLocationRepository) List(ctx context.Context) ([]domain.Location, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Location), args.Error(1)
}

func (m *MockLocationRepository) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Location), args.Error(1)
}

func (m *MockLocationRepository) ExistsByNameOrCode(ctx context.Context, name, code string) (bool, error) {
	args := m.Called(ctx, name, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockLocationRepository) Create(ctx context.Context, location *domain.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Update(ctx context.Context, location *domain.Location) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}

func (m *MockLocationRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetTrains(ctx context.Context) ([]domain.Train, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Train), args.Error(1)
}

func (m *MockCache) SetTrains(ctx context.Context, trains []domain.Train) error {
	args := m.Called(ctx, trains)
	return args.Error(0)
}

func (m *MockCache) InvalidateTrains(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var admin = domain.Actor{RiderID: 1, IsAdmin: true}

func sampleTrains() []domain.Train {
	return []domain.Train{
		{
			ID:             3,
			Number:         "12951",
			Name:           "Rajdhani Express",
			SourceID:       1,
			DestinationID:  2,
			TotalSeats:     100,
			AvailableSeats: 97,
			Fare:           500,
		},
	}
}

func TestTrainService_List_CacheMiss(t *testing.T) {
	mockRepo := &MockTrainRepository{}
	mockCache := &MockCache{}

	service := NewTrainService(mockRepo, &MockLocationRepository{}, mockCache)

	ctx := context.Background()
	trains := sampleTrains()

	mockCache.On("GetTrains", ctx).Return(([]domain.Train)(nil), nil).Once()
	mockRepo.On("List", ctx).Return(trains, nil).Once()
	mockCache.On("SetTrains", ctx, trains).Return(nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, trains, result)

	mockCache.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestTrainService_List_CacheHit(t *testing.T) {
	mockRepo := &MockTrainRepository{}
	mockCache := &MockCache{}

	service := NewTrainService(mockRepo, &MockLocationRepository{}, mockCache)

	ctx := context.Background()
	trains := sampleTrains()

	mockCache.On("GetTrains", ctx).Return(trains, nil).Once()

	result, err := service.List(ctx)

	assert.NoError(t, err)
	assert.Equal(t, trains, result)
	mockRepo.AssertNotCalled(t, "List")
}

func TestTrainService_Create_RequiresAdmin(t *testing.T) {
	service := NewTrainService(&MockTrainRepository{}, &MockLocationRepository{}, nil)

	created, err := service.Create(context.Background(), domain.Actor{RiderID: 7}, CreateTrainInput{
		Number: "12951", Name: "Rajdhani Express", SourceID: 1, DestinationID: 2, TotalSeats: 100,
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, created)
}

func TestTrainService_Create_Success(t *testing.T) {
	mockRepo := &MockTrainRepository{}
	mockLocations := &MockLocationRepository{}
	mockCache := &MockCache{}

	service := NewTrainService(mockRepo, mockLocations, mockCache)

	ctx := context.Background()

	mockLocations.On("GetByID", ctx, int64(1)).Return(&domain.Location{ID: 1}, nil).Once()
	mockLocations.On("GetByID", ctx, int64(2)).Return(&domain.Location{ID: 2}, nil).Once()
	mockRepo.On("GetByNumber", ctx, "12951").Return(nil, domain.ErrTrainNotFound).Once()
	mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Train")).Return(nil).Once()
	mockCache.On("InvalidateTrains", ctx).Return(nil).Once()

	created, err := service.Create(ctx, admin, CreateTrainInput{
		Number: "12951", Name: "Rajdhani Express", SourceID: 1, DestinationID: 2, TotalSeats: 100, Fare: 500,
	})

	assert.NoError(t, err)
	assert.Equal(t, 100, created.AvailableSeats)
	mockCache.AssertExpectations(t)
}

func TestTrainService_Create_DuplicateNumber(t *testing.T) {
	mockRepo := &MockTrainRepository{}
	mockLocations := &MockLocationRepository{}

	service := NewTrainService(mockRepo, mockLocations, nil)

	ctx := context.Background()

	mockLocations.On("GetByID", ctx, int64(1)).Return(&domain.Location{ID: 1}, nil).Once()
	mockLocations.On("GetByID", ctx, int64(2)).Return(&domain.Location{ID: 2}, nil).Once()
	mockRepo.On("GetByNumber", ctx, "12951").Return(&sampleTrains()[0], nil).Once()

	created, err := service.Create(ctx, admin, CreateTrainInput{
		Number: "12951", Name: "Rajdhani Express", SourceID: 1, DestinationID: 2, TotalSeats: 100,
	})

	assert.ErrorIs(t, err, domain.ErrDuplicateTrainNumber)
	assert.Nil(t, created)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestTrainService_Create_SameSourceAndDestination(t *testing.T) {
	service := NewTrainService(&MockTrainRepository{}, &MockLocationRepository{}, nil)

	created, err := service.Create(context.Background(), admin, CreateTrainInput{
		Number: "12951", Name: "Rajdhani Express", SourceID: 1, DestinationID: 1, TotalSeats: 100,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidTrain)
	assert.Nil(t, created)
}

// Shrinking or growing capacity keeps the booked-seat count: the store
// re-derives available from the new total and hands the fresh value back.
func TestTrainService_Update_TotalSeatsPreservesBookedCount(t *testing.T) {
	mockRepo := &MockTrainRepository{}
	mockCache := &MockCache{}

	service := NewTrainService(mockRepo, &MockLocationRepository{}, mockCache)

	ctx := context.Background()
	existing := sampleTrains()[0] // 100 total, 97 available, 3 booked

	mockRepo.On("GetByID", ctx, int64(3)).Return(&existing, nil).Once()
	mockRepo.On("Update", ctx, mock.AnythingOfType("*domain.Train")).Run(func(args mock.Arguments) {
		tr := args.Get(1).(*domain.Train)
		tr.AvailableSeats = tr.TotalSeats - 3
	}).Return(nil).Once()
	mockCache.On("InvalidateTrains", ctx).Return(nil).Once()

	newTotal := 50
	updated, err := service.Update(ctx, admin, 3, UpdateTrainInput{TotalSeats: &newTotal})

	assert.NoError(t, err)
	assert.Equal(t, 50, updated.TotalSeats)
	assert.Equal(t, 47, updated.AvailableSeats)
}

func TestTrainService_Update_TotalSeatsBelowBookedCount(t *testing.T) {
	mockRepo := &MockTrainRepository{}

	service := NewTrainService(mockRepo, &MockLocationRepository{}, nil)

	ctx := context.Background()
	existing := sampleTrains()[0] // 3 booked

	mockRepo.On("GetByID", ctx, int64(3)).Return(&existing, nil).Once()
	mockRepo.On("Update", ctx, mock.AnythingOfType("*domain.Train")).Return(domain.ErrInvalidTrain).Once()

	newTotal := 2
	updated, err := service.Update(ctx, admin, 3, UpdateTrainInput{TotalSeats: &newTotal})

	assert.ErrorIs(t, err, domain.ErrInvalidTrain)
	assert.Nil(t, updated)
}

func TestTrainService_Delete_RequiresAdmin(t *testing.T) {
	mockRepo := &MockTrainRepository{}

	service := NewTrainService(mockRepo, &MockLocationRepository{}, nil)

	err := service.Delete(context.Background(), domain.Actor{RiderID: 7}, 3)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	mockRepo.AssertNotCalled(t, "Delete")
}
