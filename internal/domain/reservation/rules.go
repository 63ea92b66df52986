package reservation

import (
	"time"

	"staybook/internal/domain/shared/period"
)

const (
	minDuration        = 24 * time.Hour
	cancellationWindow = 24 * time.Hour
)

// MinDurationSatisfied reports whether the period spans at least 24 hours.
// Exactly 24 hours is valid.
func MinDurationSatisfied(p period.Period) bool {
	return p.To.Sub(p.From) >= minDuration
}

// CancellationAllowed reports whether a reservation starting at checkIn may
// still be cancelled at now. Exactly 24 hours before check-in is allowed;
// anything closer, including check-ins already in the past, is not.
func CancellationAllowed(checkIn, now time.Time) bool {
	return checkIn.Sub(now) >= cancellationWindow
}
