package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/Raghu4002/railway-reservation/internal/domain"
	"github.com/Raghu4002/railway-reservation/internal/kafka"
	"github.com/Raghu4002/railway-reservation/internal/ledger"
	"github.com/Raghu4002/railway-reservation/internal/repository"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, actor domain.Actor, input CreateBookingInput) (*domain.Booking, error)
	CancelBooking(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.CancellationReceipt, error)
	GetBooking(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Booking, error)
	ListBookingsForRider(ctx context.Context, actor domain.Actor) ([]domain.Booking, error)
	ListAllBookings(ctx context.Context, actor domain.Actor) ([]domain.Booking, error)
}

type Cache interface {
	InvalidateTrains(ctx context.Context) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	trains             repository.TrainRepository
	seats              ledger.Ledger
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	refMaxAttempts     int

	// Injectable for deterministic tests.
	now          func() time.Time
	newReference func() string
}

type CreateBookingInput struct {
	TrainID         int64     `json:"train_id"`
	JourneyDate     time.Time `json:"journey_date"`
	PassengerName   string    `json:"passenger_name"`
	PassengerAge    int       `json:"passenger_age"`
	PassengerGender string    `json:"passenger_gender"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func WithClock(now func() time.Time) BookingServiceOption {
	return func(s *BookingService) {
		s.now = now
	}
}

func WithReferenceGenerator(gen func() string) BookingServiceOption {
	return func(s *BookingService) {
		s.newReference = gen
	}
}

const defaultRefMaxAttempts = 5

func NewBookingService(
	bookings repository.BookingRepository,
	trains repository.TrainRepository,
	seats ledger.Ledger,
	cache Cache,
	producer Producer,
	bookingTopic string,
	refMaxAttempts int,
	opts ...BookingServiceOption,
) *BookingService {
	if refMaxAttempts <= 0 {
		refMaxAttempts = defaultRefMaxAttempts
	}
	service := &BookingService{
		bookings:       bookings,
		trains:         trains,
		seats:          seats,
		cache:          cache,
		producer:       producer,
		bookingTopic:   bookingTopic,
		refMaxAttempts: refMaxAttempts,
		now:            time.Now,
		newReference:   NewReference,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// NewReference returns a booking reference like "TKT3F9A01BC": a fixed prefix
// plus 8 hex characters from a crypto-random source.
func NewReference() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		panic("booking: reference entropy source failed: " + err.Error())
	}
	return "TKT" + strings.ToUpper(hex.EncodeToString(buf))
}

func seatLabel(occupancy int) string {
	return "S" + strconv.Itoa(occupancy)
}

func (s *BookingService) CreateBooking(ctx context.Context, actor domain.Actor, input CreateBookingInput) (*domain.Booking, error) {
	if input.PassengerAge <= 0 || input.PassengerName == "" || input.PassengerGender == "" {
		return nil, domain.ErrInvalidPassenger
	}

	train, err := s.trains.GetByID(ctx, input.TrainID)
	if err != nil {
		return nil, err
	}

	if beforeToday(input.JourneyDate, s.now()) {
		return nil, domain.ErrInvalidJourneyDate
	}

	handle, err := s.seats.Reserve(ctx, input.TrainID)
	if err != nil {
		return nil, err
	}

	reference, err := s.uniqueReference(ctx)
	if err != nil {
		s.compensateReserve(ctx, input.TrainID)
		return nil, err
	}

	booking := &domain.Booking{
		Reference:       reference,
		RiderID:         actor.RiderID,
		TrainID:         input.TrainID,
		JourneyDate:     input.JourneyDate,
		PassengerName:   input.PassengerName,
		PassengerAge:    input.PassengerAge,
		PassengerGender: input.PassengerGender,
		SeatLabel:       seatLabel(handle.Occupancy),
		FareCharged:     train.Fare,
		Status:          domain.BookingStatusConfirmed,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		s.compensateReserve(ctx, input.TrainID)
		return nil, err
	}

	s.invalidateTrains(ctx)
	if err := s.publish(ctx, "booking_created", booking); err != nil {
		log.Printf("WARNING: failed to publish booking_created event for %s: %v", booking.Reference, err)
	}
	return booking, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.CancellationReceipt, error) {
	current, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(current.RiderID) {
		return nil, domain.ErrForbidden
	}
	if current.Status == domain.BookingStatusCancelled {
		return nil, domain.ErrAlreadyCancelled
	}

	// Restore the seat before flipping the status, so a booking is never
	// recorded CANCELLED while its seat is still held. A missing train means
	// the schedule side deleted it; the cancellation proceeds with nothing
	// to restore.
	seatRestored := true
	if err := s.seats.Release(ctx, current.TrainID); err != nil {
		if !errors.Is(err, domain.ErrTrainNotFound) {
			return nil, err
		}
		seatRestored = false
	}

	// UpdateStatus is conditional, so of two racing cancels only one flips
	// the row; the loser re-reserves the seat it released.
	updated, err := s.bookings.UpdateStatus(ctx, bookingID, domain.BookingStatusCancelled)
	if err != nil {
		if seatRestored {
			if _, rerr := s.seats.Reserve(ctx, current.TrainID); rerr != nil {
				log.Printf("WARNING: failed to re-reserve seat on train %d after cancel persistence failure: %v", current.TrainID, rerr)
			}
		}
		return nil, err
	}

	s.invalidateTrains(ctx)
	if err := s.publish(ctx, "booking_cancelled", updated); err != nil {
		log.Printf("WARNING: failed to publish booking_cancelled event for %s: %v", updated.Reference, err)
	}

	return &domain.CancellationReceipt{
		Reference:    updated.Reference,
		TrainID:      updated.TrainID,
		SeatRestored: seatRestored,
		CancelledAt:  updated.UpdatedAt,
	}, nil
}

func (s *BookingService) GetBooking(ctx context.Context, actor domain.Actor, bookingID int64) (*domain.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccess(booking.RiderID) {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

func (s *BookingService) ListBookingsForRider(ctx context.Context, actor domain.Actor) ([]domain.Booking, error) {
	return s.bookings.ListByRider(ctx, actor.RiderID)
}

func (s *BookingService) ListAllBookings(ctx context.Context, actor domain.Actor) ([]domain.Booking, error) {
	if !actor.IsAdmin {
		return nil, domain.ErrForbidden
	}
	return s.bookings.ListAll(ctx)
}

func (s *BookingService) uniqueReference(ctx context.Context) (string, error) {
	for i := 0; i < s.refMaxAttempts; i++ {
		reference := s.newReference()
		exists, err := s.bookings.ReferenceExists(ctx, reference)
		if err != nil {
			return "", err
		}
		if !exists {
			return reference, nil
		}
	}
	return "", domain.ErrReferenceExhausted
}

func (s *BookingService) compensateReserve(ctx context.Context, trainID int64) {
	if err := s.seats.Release(ctx, trainID); err != nil {
		log.Printf("WARNING: failed to release seat on train %d after create failure: %v", trainID, err)
	}
}

func (s *BookingService) invalidateTrains(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateTrains(ctx); err != nil {
		log.Printf("WARNING: failed to invalidate trains cache: %v", err)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:        eventType,
		Reference:   booking.Reference,
		RiderID:     booking.RiderID,
		TrainID:     booking.TrainID,
		JourneyDate: booking.JourneyDate.Format("2006-01-02"),
		SeatLabel:   booking.SeatLabel,
		FareCharged: booking.FareCharged,
		Status:      string(booking.Status),
		OccurredAt:  s.now(),
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event)
	}
	return nil
}

// beforeToday compares calendar dates only, ignoring time of day and zone,
// so a journey date parsed at UTC midnight is not rejected by a server in a
// zone ahead of UTC.
func beforeToday(journey, now time.Time) bool {
	jy, jm, jd := journey.Date()
	ny, nm, nd := now.Date()
	j := time.Date(jy, jm, jd, 0, 0, 0, 0, time.UTC)
	n := time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC)
	return j.Before(n)
}

var _ BookingUseCase = (*BookingService)(nil)
