package notify

import (
	"context"
	"log"

	"github.com/Raghu4002/railway-reservation/internal/kafka"
)

// Sender delivers rider-facing booking notifications. Delivery is currently a
// log line; the transport behind it is interchangeable.
type Sender struct{}

func NewSender() *Sender {
	return &Sender{}
}

func (s *Sender) Send(ctx context.Context, event kafka.BookingEvent) error {
	log.Printf("notify rider %d: %s for booking %s (train %d, seat %s, fare %d)",
		event.RiderID, event.Type, event.Reference, event.TrainID, event.SeatLabel, event.FareCharged)
	return nil
}
