package facade

import (
	"context"
	"time"

	"staybook/internal/app/dto"
	"staybook/internal/domain/shared/period"
)

// DefaultHoldDuration is how long a hold reserves a period while the guest
// completes payment.
const DefaultHoldDuration = 15 * time.Minute

type FailureReason string

const (
	ReasonListingNotFound      FailureReason = "LISTING_NOT_FOUND"
	ReasonPeriodUnavailable    FailureReason = "PERIOD_UNAVAILABLE"
	ReasonOutsideSlidingWindow FailureReason = "OUTSIDE_SLIDING_WINDOW"
	ReasonHoldNotFound         FailureReason = "HOLD_NOT_FOUND"
	ReasonIntervalNotFound     FailureReason = "INTERVAL_NOT_FOUND"
)

type PlaceHoldResult struct {
	Success bool
	Listing dto.ListingDTO
	Reason  FailureReason
}

type ConfirmResult struct {
	Success bool
	Listing dto.ListingDTO
	Reason  FailureReason
}

type ReleaseResult struct {
	Success bool
	Listing dto.ListingDTO
	Reason  FailureReason
}

// PropertyModule is the only seam through which the booking side reads or
// mutates listing availability. It returns DTO snapshots, never live
// aggregates.
type PropertyModule interface {
	FindProperty(ctx context.Context, propertyID string) (*dto.PropertyDTO, error)
	PropertyExists(ctx context.Context, propertyID string) (bool, error)
	FindListing(ctx context.Context, listingID string) (*dto.ListingDTO, error)

	PlaceHold(ctx context.Context, listingID string, p period.Period, holdDuration time.Duration) (PlaceHoldResult, error)
	ConfirmReservationOnListing(ctx context.Context, listingID string, p period.Period) (ConfirmResult, error)
	ReleaseInterval(ctx context.Context, listingID string, p period.Period) (ReleaseResult, error)
}
