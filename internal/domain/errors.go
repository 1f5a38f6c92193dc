package domain

import "errors"

var (
	ErrTrainNotFound        = errors.New("train not found")
	ErrBookingNotFound      = errors.New("booking not found")
	ErrLocationNotFound     = errors.New("location not found")
	ErrNoSeatsAvailable     = errors.New("no seats available")
	ErrInvalidJourneyDate   = errors.New("journey date cannot be in the past")
	ErrInvalidPassenger     = errors.New("invalid passenger details")
	ErrInvalidTrain         = errors.New("invalid train details")
	ErrForbidden            = errors.New("not authorized")
	ErrAlreadyCancelled     = errors.New("booking already cancelled")
	ErrReferenceExhausted   = errors.New("could not generate a unique booking reference")
	ErrDuplicateTrainNumber = errors.New("train number already exists")
	ErrDuplicateLocation    = errors.New("location name or code already exists")
)
