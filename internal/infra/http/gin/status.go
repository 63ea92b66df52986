package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	reservationapp "staybook/internal/app/handlers/reservation"
	domainlisting "staybook/internal/domain/listing"
	domainproperty "staybook/internal/domain/property"
	domainreservation "staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/period"
	mongostore "staybook/internal/infra/db/mongo"
	"staybook/internal/infra/storage/memory"
)

// statusFromError maps typed domain and application failures to stable HTTP
// statuses. Unknown errors become 500.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, domainlisting.ErrListingNotFound),
		errors.Is(err, domainreservation.ErrReservationNotFound),
		errors.Is(err, domainproperty.ErrPropertyNotFound),
		errors.Is(err, reservationapp.ErrListingNotFound):
		return http.StatusNotFound
	case errors.Is(err, period.ErrInvalidPeriod),
		errors.Is(err, domainreservation.ErrInvalidPeriod):
		return http.StatusBadRequest
	case errors.Is(err, reservationapp.ErrOutsideSlidingWindow),
		errors.Is(err, reservationapp.ErrCancellationWindowExpired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, reservationapp.ErrPeriodUnavailable),
		errors.Is(err, reservationapp.ErrHoldNotFound),
		errors.Is(err, domainlisting.ErrPeriodUnavailable),
		errors.Is(err, domainlisting.ErrNoMatchingHold),
		errors.Is(err, domainlisting.ErrNoMatchingInterval),
		errors.Is(err, domainreservation.ErrNotPending),
		errors.Is(err, domainreservation.ErrNotConfirmed),
		errors.Is(err, domainreservation.ErrAlreadyCancelled),
		errors.Is(err, mongostore.ErrConcurrentUpdate),
		errors.Is(err, memory.ErrConcurrentUpdate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFromError(err), gin.H{"error": err.Error()})
}
