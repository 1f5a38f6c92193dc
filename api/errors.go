package api

import (
	"errors"
	"net/http"

	"github.com/Raghu4002/railway-reservation/internal/domain"
	"github.com/gin-gonic/gin"
)

// writeError maps domain failures onto HTTP statuses. Anything unrecognized
// is a persistence or infrastructure failure and reports as 500.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrTrainNotFound),
		errors.Is(err, domain.ErrBookingNotFound),
		errors.Is(err, domain.ErrLocationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNoSeatsAvailable),
		errors.Is(err, domain.ErrInvalidJourneyDate),
		errors.Is(err, domain.ErrInvalidPassenger),
		errors.Is(err, domain.ErrInvalidTrain),
		errors.Is(err, domain.ErrAlreadyCancelled),
		errors.Is(err, domain.ErrDuplicateTrainNumber),
		errors.Is(err, domain.ErrDuplicateLocation):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrForbidden):
		status = http.StatusForbidden
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
