package listing

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain/shared/money"
	"staybook/internal/domain/shared/period"
)

var (
	ErrListingNotFound    = errors.New("listing: not found")
	ErrPeriodUnavailable  = errors.New("listing: period is not available")
	ErrNoMatchingHold     = errors.New("listing: no matching hold for the given period")
	ErrNoMatchingInterval = errors.New("listing: no matching hold or reserved interval for the given period")
	ErrInvalidPrice       = errors.New("listing: nightly price must be positive")
)

type ListingID string
type PropertyID string

type IntervalStatus string

const (
	IntervalAvailable IntervalStatus = "AVAILABLE"
	IntervalBlocked   IntervalStatus = "BLOCKED"
	IntervalHold      IntervalStatus = "HOLD"
	IntervalReserved  IntervalStatus = "RESERVED"
)

// Interval is a half-open [From, To) range on a listing calendar. ExpiresAt
// is set only while Status is HOLD.
type Interval struct {
	From      time.Time
	To        time.Time
	Status    IntervalStatus
	ExpiresAt *time.Time
}

// Expired reports whether a HOLD interval has lapsed. Expiry is inclusive:
// a hold is gone the moment now reaches ExpiresAt.
func (i Interval) Expired(now time.Time) bool {
	return i.Status == IntervalHold && i.ExpiresAt != nil && !now.Before(*i.ExpiresAt)
}

func (i Interval) blocking() bool {
	return i.Status == IntervalHold || i.Status == IntervalReserved || i.Status == IntervalBlocked
}

func (i Interval) overlaps(p period.Period) bool {
	return p.From.Before(i.To) && i.From.Before(p.To)
}

func (i Interval) matches(p period.Period) bool {
	return i.From.Equal(p.From) && i.To.Equal(p.To)
}

// Listing is the availability aggregate. Every mutating operation returns a
// new snapshot; the receiver is never modified.
type Listing struct {
	ID            ListingID
	PropertyID    PropertyID
	PublicID      int64
	PricePerNight money.Money
	Intervals     []Interval
	DeletedAt     *time.Time
	Version       int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Repository is the listing persistence port. ByID reports a missing listing
// with ErrListingNotFound; Save performs a full-snapshot write guarded by the
// aggregate Version.
type Repository interface {
	ByID(ctx context.Context, id ListingID) (*Listing, error)
	Save(ctx context.Context, l *Listing) error
	SoftDelete(ctx context.Context, id ListingID, now time.Time) error
	ByProperty(ctx context.Context, id PropertyID) ([]*Listing, error)
	List(ctx context.Context, params ListParams) (ListResult, error)
	NextPublicID(ctx context.Context) (int64, error)
}

// ListParams filter and paginate listing queries.
type ListParams struct {
	MinPriceCents int64
	MaxPriceCents int64
	Currency      string
	PropertyIDs   []PropertyID
	Page          int
	Limit         int
}

type ListResult struct {
	Items []*Listing
	Total int
}

// Normalized applies pagination defaults.
func (p ListParams) Normalized() ListParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

func (p ListParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type CreateParams struct {
	ID            ListingID
	PropertyID    PropertyID
	PublicID      int64
	PricePerNight money.Money
	Now           time.Time
}

func NewListing(params CreateParams) (*Listing, error) {
	if params.ID == "" {
		return nil, errors.New("listing: id is required")
	}
	if params.PropertyID == "" {
		return nil, errors.New("listing: property id is required")
	}
	if params.PricePerNight.ValueInCents <= 0 {
		return nil, ErrInvalidPrice
	}
	now := params.Now.UTC()
	return &Listing{
		ID:            params.ID,
		PropertyID:    params.PropertyID,
		PublicID:      params.PublicID,
		PricePerNight: params.PricePerNight,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// IsAvailableFor reports whether no active HOLD, RESERVED or BLOCKED interval
// overlaps p. Expired holds are filtered at read time, so availability stays
// correct even when stale holds remain persisted. AVAILABLE intervals are
// informational and never block.
func (l *Listing) IsAvailableFor(p period.Period, now time.Time) bool {
	for _, iv := range l.Intervals {
		if iv.Expired(now) {
			continue
		}
		if iv.blocking() && iv.overlaps(p) {
			return false
		}
	}
	return true
}

// PlaceHold appends a HOLD interval expiring at expiresAt, failing with
// ErrPeriodUnavailable when p collides with an active interval.
func (l *Listing) PlaceHold(p period.Period, expiresAt, now time.Time) (*Listing, error) {
	if !l.IsAvailableFor(p, now) {
		return nil, ErrPeriodUnavailable
	}
	exp := expiresAt.UTC()
	next := l.clone()
	next.Intervals = append(next.Intervals, Interval{
		From:      p.From,
		To:        p.To,
		Status:    IntervalHold,
		ExpiresAt: &exp,
	})
	next.UpdatedAt = now.UTC()
	return next, nil
}

// ConfirmReservation promotes the HOLD exactly matching p to RESERVED. The
// match is exact on both endpoints so a caller can never confirm a different
// hold than the one it placed.
func (l *Listing) ConfirmReservation(p period.Period, now time.Time) (*Listing, error) {
	idx := -1
	for i, iv := range l.Intervals {
		if iv.Status == IntervalHold && iv.matches(p) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNoMatchingHold
	}
	next := l.clone()
	next.Intervals[idx] = Interval{From: p.From, To: p.To, Status: IntervalReserved}
	next.UpdatedAt = now.UTC()
	return next, nil
}

// ReleaseInterval removes the HOLD or RESERVED interval exactly matching p.
func (l *Listing) ReleaseInterval(p period.Period, now time.Time) (*Listing, error) {
	idx := -1
	for i, iv := range l.Intervals {
		if (iv.Status == IntervalHold || iv.Status == IntervalReserved) && iv.matches(p) {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrNoMatchingInterval
	}
	next := l.clone()
	next.Intervals = append(next.Intervals[:idx], next.Intervals[idx+1:]...)
	next.UpdatedAt = now.UTC()
	return next, nil
}

// BlockPeriod appends a host-initiated BLOCKED interval. Blocks carry no
// expiry and are never auto-released.
func (l *Listing) BlockPeriod(p period.Period, now time.Time) (*Listing, error) {
	if !l.IsAvailableFor(p, now) {
		return nil, ErrPeriodUnavailable
	}
	next := l.clone()
	next.Intervals = append(next.Intervals, Interval{From: p.From, To: p.To, Status: IntervalBlocked})
	next.UpdatedAt = now.UTC()
	return next, nil
}

// CleanupExpiredHolds drops every lapsed HOLD. Idempotent; non-HOLD intervals
// are never touched.
func (l *Listing) CleanupExpiredHolds(now time.Time) *Listing {
	next := l.clone()
	kept := next.Intervals[:0]
	for _, iv := range next.Intervals {
		if iv.Expired(now) {
			continue
		}
		kept = append(kept, iv)
	}
	next.Intervals = kept
	next.UpdatedAt = now.UTC()
	return next
}

// UpdatePrice replaces the nightly price on a new snapshot.
func (l *Listing) UpdatePrice(price money.Money, now time.Time) (*Listing, error) {
	if price.ValueInCents <= 0 {
		return nil, ErrInvalidPrice
	}
	next := l.clone()
	next.PricePerNight = price
	next.UpdatedAt = now.UTC()
	return next, nil
}

// Delete marks the listing soft-deleted.
func (l *Listing) Delete(now time.Time) *Listing {
	next := l.clone()
	at := now.UTC()
	next.DeletedAt = &at
	next.UpdatedAt = at
	return next
}

func (l *Listing) IsDeleted() bool {
	return l.DeletedAt != nil
}

func (l *Listing) clone() *Listing {
	dup := *l
	dup.Intervals = append([]Interval(nil), l.Intervals...)
	return &dup
}
