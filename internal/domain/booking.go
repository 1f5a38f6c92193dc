package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID              int64
	Reference       string
	RiderID         int64
	TrainID         int64
	JourneyDate     time.Time
	PassengerName   string
	PassengerAge    int
	PassengerGender string
	SeatLabel       string
	FareCharged     int64
	Status          BookingStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CancellationReceipt reports the outcome of a cancellation. SeatRestored is
// false when the train was deleted before the booking was cancelled, in which
// case there is no counter left to restore.
type CancellationReceipt struct {
	Reference    string
	TrainID      int64
	SeatRestored bool
	CancelledAt  time.Time
}
