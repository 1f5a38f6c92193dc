package domain

import "time"

type Train struct {
	ID             int64
	Number         string
	Name           string
	SourceID       int64
	DestinationID  int64
	DepartureTime  string
	ArrivalTime    string
	TotalSeats     int
	AvailableSeats int
	Fare           int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Location struct {
	ID        int64
	Name      string
	Code      string
	City      string
	State     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Actor identifies who is performing an operation. It is supplied by the
// authentication layer and trusted as-is.
type Actor struct {
	RiderID int64
	IsAdmin bool
}

// CanAccess reports whether the actor may read or cancel a booking owned by
// the given rider.
func (a Actor) CanAccess(ownerID int64) bool {
	return a.IsAdmin || a.RiderID == ownerID
}
