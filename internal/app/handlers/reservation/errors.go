package reservation

import "errors"

// Facade failure reasons surfaced to callers as typed errors so the HTTP
// boundary can map each one to a stable status.
var (
	ErrListingNotFound           = errors.New("reservation: listing not found")
	ErrPeriodUnavailable         = errors.New("reservation: period is not available")
	ErrOutsideSlidingWindow      = errors.New("reservation: start date is outside the sliding window")
	ErrHoldNotFound              = errors.New("reservation: no matching hold on listing")
	ErrCancellationWindowExpired = errors.New("reservation: cancellation window expired")
)
