package listing

import (
	"context"
	"time"

	"staybook/internal/app/queries"
	domainlisting "staybook/internal/domain/listing"
	"staybook/internal/domain/shared/period"
)

const checkAvailabilityKey = "listing.check_availability"

type AvailabilityQuery struct {
	ListingID string
	From      time.Time
	To        time.Time
}

func (q AvailabilityQuery) Key() string { return checkAvailabilityKey }

type AvailabilityView struct {
	ListingID string `json:"listingId"`
	Available bool   `json:"available"`
}

// AvailabilityHandler answers the read-only availability probe. Expired
// holds do not block here even before a write has purged them.
type AvailabilityHandler struct {
	Listings domainlisting.Repository
	Now      func() time.Time
}

func (h *AvailabilityHandler) Handle(ctx context.Context, q AvailabilityQuery) (*AvailabilityView, error) {
	p, err := period.New(q.From, q.To)
	if err != nil {
		return nil, err
	}
	l, err := h.Listings.ByID(ctx, domainlisting.ListingID(q.ListingID))
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now().UTC()
	}
	return &AvailabilityView{ListingID: q.ListingID, Available: l.IsAvailableFor(p, now)}, nil
}

var _ queries.Handler[AvailabilityQuery, *AvailabilityView] = (*AvailabilityHandler)(nil)
