package trains

import (
	"context"
	"log"

	"github.com/Raghu4002/railway-reservation/internal/domain"
	"github.com/Raghu4002/railway-reservation/internal/repository"
)

type TrainUseCase interface {
	List(ctx context.Context) ([]domain.Train, error)
	GetByID(ctx context.Context, id int64) (*domain.Train, error)
	Search(ctx context.Context, sourceID, destinationID int64) ([]domain.Train, error)
	Create(ctx context.Context, actor domain.Actor, input CreateTrainInput) (*domain.Train, error)
	Update(ctx context.Context, actor domain.Actor, id int64, input UpdateTrainInput) (*domain.Train, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type Cache interface {
	GetTrains(ctx context.Context) ([]domain.Train, error)
	SetTrains(ctx context.Context, trains []domain.Train) error
	InvalidateTrains(ctx context.Context) error
}

type TrainService struct {
	trains    repository.TrainRepository
	locations repository.LocationRepository
	cache     Cache
}

type CreateTrainInput struct {
	Number        string `json:"train_number"`
	Name          string `json:"train_name"`
	SourceID      int64  `json:"source_id"`
	DestinationID int64  `json:"destination_id"`
	DepartureTime string `json:"departure_time"`
	ArrivalTime   string `json:"arrival_time"`
	TotalSeats    int    `json:"total_seats"`
	Fare          int64  `json:"fare"`
}

type UpdateTrainInput struct {
	Name          *string `json:"train_name"`
	SourceID      *int64  `json:"source_id"`
	DestinationID *int64  `json:"destination_id"`
	DepartureTime *string `json:"departure_time"`
	ArrivalTime   *string `json:"arrival_time"`
	TotalSeats    *int    `json:"total_seats"`
	Fare          *int64  `json:"fare"`
}

func NewTrainService(trains repository.TrainRepository, locations repository.LocationRepository, cache Cache) *TrainService {
	return &TrainService{trains: trains, locations: locations, cache: cache}
}

func (s *TrainService) List(ctx context.Context) ([]domain.Train, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetTrains(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	trains, err := s.trains.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetTrains(ctx, trains)
	}
	return trains, nil
}

func (s *TrainService) GetByID(ctx context.Context, id int64) (*domain.Train, error) {
	return s.trains.GetByID(ctx, id)
}

func (s *TrainService) Search(ctx context.Context, sourceID, destinationID int64) ([]domain.Train, error) {
	return s.trains.Search(ctx, sourceID, destinationID)
}

func (s *TrainService) Create(ctx context.Context, actor domain.Actor, input CreateTrainInput) (*domain.Train, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	if input.TotalSeats <= 0 || input.Number == "" || input.Name == "" {
		return nil, domain.ErrInvalidTrain
	}
	if input.SourceID == input.DestinationID {
		return nil, domain.ErrInvalidTrain
	}
	if _, err := s.locations.GetByID(ctx, input.SourceID); err != nil {
		return nil, err
	}
	if _, err := s.locations.GetByID(ctx, input.DestinationID); err != nil {
		return nil, err
	}
	if _, err := s.trains.GetByNumber(ctx, input.Number); err == nil {
		return nil, domain.ErrDuplicateTrainNumber
	}

	train := &domain.Train{
		Number:         input.Number,
		Name:           input.Name,
		SourceID:       input.SourceID,
		DestinationID:  input.DestinationID,
		DepartureTime:  input.DepartureTime,
		ArrivalTime:    input.ArrivalTime,
		TotalSeats:     input.TotalSeats,
		AvailableSeats: input.TotalSeats,
		Fare:           input.Fare,
	}
	if err := s.trains.Create(ctx, train); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return train, nil
}

func (s *TrainService) Update(ctx context.Context, actor domain.Actor, id int64, input UpdateTrainInput) (*domain.Train, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}

	train, err := s.trains.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		train.Name = *input.Name
	}
	if input.SourceID != nil {
		train.SourceID = *input.SourceID
	}
	if input.DestinationID != nil {
		train.DestinationID = *input.DestinationID
	}
	if input.DepartureTime != nil {
		train.DepartureTime = *input.DepartureTime
	}
	if input.ArrivalTime != nil {
		train.ArrivalTime = *input.ArrivalTime
	}
	if input.Fare != nil {
		train.Fare = *input.Fare
	}
	if input.TotalSeats != nil {
		if *input.TotalSeats <= 0 {
			return nil, domain.ErrInvalidTrain
		}
		// The store re-derives available from the new total in the same
		// statement, keeping the booked count; a total below the booked
		// count comes back as ErrInvalidTrain.
		train.TotalSeats = *input.TotalSeats
	}

	if err := s.trains.Update(ctx, train); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return train, nil
}

func (s *TrainService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if !actor.IsAdmin {
		return domain.ErrForbidden
	}
	if err := s.trains.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *TrainService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTrains(ctx); err != nil {
		log.Printf("WARNING: failed to invalidate trains cache: %v", err)
	}
}

var _ TrainUseCase = (*TrainService)(nil)
