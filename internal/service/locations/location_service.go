package locations

import (
	"context"

	"github.com/Raghu4002/railway-reservation/internal/domain"
	"github.com/Raghu4002/railway-reservation/internal/repository"
)

type LocationUseCase interface {
	List(ctx context.Context) ([]domain.Location, error)
	GetByID(ctx context.Context, id int64) (*domain.Location, error)
	Create(ctx context.Context, actor domain.Actor, input CreateLocationInput) (*domain.Location, error)
	Update(ctx context.Context, actor domain.Actor, id int64, input UpdateLocationInput) (*domain.Location, error)
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type LocationService struct {
	locations repository.LocationRepository
}

type CreateLocationInput struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	City  string `json:"city"`
	State string `json:"state"`
}

type UpdateLocationInput struct {
	Name  *string `json:"name"`
	Code  *string `json:"code"`
	City  *string `json:"city"`
	State *string `json:"state"`
}

func NewLocationService(locations repository.LocationRepository) *LocationService {
	return &LocationService{locations: locations}
}

func (s *LocationService) List(ctx context.Context) ([]domain.Location, error) {
	return s.locations.List(ctx)
}

func (s *LocationService) GetByID(ctx context.Context, id int64) (*domain.Location, error) {
	return s.locations.GetByID(ctx, id)
}

func (s *LocationService) Create(ctx context.Context, actor domain.Actor, input CreateLocationInput) (*domain.Location, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	exists, err := s.locations.ExistsByNameOrCode(ctx, input.Name, input.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateLocation
	}

	location := &domain.Location{
		Name:  input.Name,
		Code:  input.Code,
		City:  input.City,
		State: input.State,
	}
	if err := s.locations.Create(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *LocationService) Update(ctx context.Context, actor domain.Actor, id int64, input UpdateLocationInput) (*domain.Location, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}

	location, err := s.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		location.Name = *input.Name
	}
	if input.Code != nil {
		location.Code = *input.Code
	}
	if input.City != nil {
		location.City = *input.City
	}
	if input.State != nil {
		location.State = *input.State
	}

	if err := s.locations.Update(ctx, location); err != nil {
		return nil, err
	}
	return location, nil
}

func (s *LocationService) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if !actor.IsAdmin {
		return domain.ErrForbidden
	}
	return s.locations.Delete(ctx, id)
}

var _ LocationUseCase = (*LocationService)(nil)
