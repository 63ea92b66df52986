package facade

import (
	"context"
	"errors"
	"time"

	"staybook/internal/app/dto"
	"staybook/internal/domain/listing"
	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/period"
)

// Module implements PropertyModule over the listing and property
// repositories. All listing writes performed by the booking side funnel
// through here, each one a load, pure transition, full-snapshot save.
type Module struct {
	Listings   listing.Repository
	Properties property.Repository
	Now        func() time.Time
}

func NewModule(listings listing.Repository, properties property.Repository) *Module {
	return &Module{Listings: listings, Properties: properties, Now: time.Now}
}

func (m *Module) FindProperty(ctx context.Context, propertyID string) (*dto.PropertyDTO, error) {
	p, err := m.Properties.ByID(ctx, property.PropertyID(propertyID))
	if err != nil {
		if errors.Is(err, property.ErrPropertyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	out := dto.NewPropertyDTO(p)
	return &out, nil
}

func (m *Module) PropertyExists(ctx context.Context, propertyID string) (bool, error) {
	p, err := m.FindProperty(ctx, propertyID)
	if err != nil {
		return false, err
	}
	return p != nil, nil
}

func (m *Module) FindListing(ctx context.Context, listingID string) (*dto.ListingDTO, error) {
	l, err := m.Listings.ByID(ctx, listing.ListingID(listingID))
	if err != nil {
		if errors.Is(err, listing.ErrListingNotFound) {
			return nil, nil
		}
		return nil, err
	}
	out := dto.NewListingDTO(l)
	return &out, nil
}

// PlaceHold reserves a period with a temporary hold. Expired holds are purged
// eagerly here before the new hold is attempted; this is the only write path
// that removes them from persisted state.
func (m *Module) PlaceHold(ctx context.Context, listingID string, p period.Period, holdDuration time.Duration) (PlaceHoldResult, error) {
	if holdDuration <= 0 {
		holdDuration = DefaultHoldDuration
	}
	l, err := m.Listings.ByID(ctx, listing.ListingID(listingID))
	if err != nil {
		if errors.Is(err, listing.ErrListingNotFound) {
			return PlaceHoldResult{Reason: ReasonListingNotFound}, nil
		}
		return PlaceHoldResult{}, err
	}
	now := m.now()
	if !listing.WithinSlidingWindow(p.From, now) {
		return PlaceHoldResult{Reason: ReasonOutsideSlidingWindow}, nil
	}
	expiresAt := now.Add(holdDuration)

	cleaned := l.CleanupExpiredHolds(now)
	held, err := cleaned.PlaceHold(p, expiresAt, now)
	if err != nil {
		if errors.Is(err, listing.ErrPeriodUnavailable) {
			return PlaceHoldResult{Reason: ReasonPeriodUnavailable}, nil
		}
		return PlaceHoldResult{}, err
	}
	if err := m.Listings.Save(ctx, held); err != nil {
		return PlaceHoldResult{}, err
	}
	return PlaceHoldResult{Success: true, Listing: dto.NewListingDTO(held)}, nil
}

func (m *Module) ConfirmReservationOnListing(ctx context.Context, listingID string, p period.Period) (ConfirmResult, error) {
	l, err := m.Listings.ByID(ctx, listing.ListingID(listingID))
	if err != nil {
		if errors.Is(err, listing.ErrListingNotFound) {
			return ConfirmResult{Reason: ReasonListingNotFound}, nil
		}
		return ConfirmResult{}, err
	}
	confirmed, err := l.ConfirmReservation(p, m.now())
	if err != nil {
		if errors.Is(err, listing.ErrNoMatchingHold) {
			return ConfirmResult{Reason: ReasonHoldNotFound}, nil
		}
		return ConfirmResult{}, err
	}
	if err := m.Listings.Save(ctx, confirmed); err != nil {
		return ConfirmResult{}, err
	}
	return ConfirmResult{Success: true, Listing: dto.NewListingDTO(confirmed)}, nil
}

func (m *Module) ReleaseInterval(ctx context.Context, listingID string, p period.Period) (ReleaseResult, error) {
	l, err := m.Listings.ByID(ctx, listing.ListingID(listingID))
	if err != nil {
		if errors.Is(err, listing.ErrListingNotFound) {
			return ReleaseResult{Reason: ReasonListingNotFound}, nil
		}
		return ReleaseResult{}, err
	}
	released, err := l.ReleaseInterval(p, m.now())
	if err != nil {
		if errors.Is(err, listing.ErrNoMatchingInterval) {
			return ReleaseResult{Reason: ReasonIntervalNotFound}, nil
		}
		return ReleaseResult{}, err
	}
	if err := m.Listings.Save(ctx, released); err != nil {
		return ReleaseResult{}, err
	}
	return ReleaseResult{Success: true, Listing: dto.NewListingDTO(released)}, nil
}

func (m *Module) now() time.Time {
	if m.Now != nil {
		return m.Now().UTC()
	}
	return time.Now().UTC()
}

var _ PropertyModule = (*Module)(nil)
