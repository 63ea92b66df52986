package reservation

import (
	"context"
	"errors"
	"time"

	"staybook/internal/domain/listing"
	"staybook/internal/domain/shared/events"
	"staybook/internal/domain/shared/money"
	"staybook/internal/domain/shared/period"
)

var (
	ErrReservationNotFound = errors.New("reservation: not found")
	ErrNotPending          = errors.New("reservation: not in pending state")
	ErrNotConfirmed        = errors.New("reservation: not in confirmed state")
	ErrAlreadyCancelled    = errors.New("reservation: already cancelled")
	ErrInvalidPeriod       = errors.New("reservation: period must be at least 24 hours")
)

type ReservationID string
type GuestID string

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// Reservation is the booking lifecycle aggregate. It never owns the listing
// interval; the period is the key used to locate it through the facade.
// Transitions return new snapshots with the lifecycle event recorded on the
// returned value.
type Reservation struct {
	ID         ReservationID
	ListingID  listing.ListingID
	GuestID    GuestID
	Period     period.Period
	Status     Status
	TotalPrice money.Money
	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ReservationID) (*Reservation, error)
	Save(ctx context.Context, r *Reservation) error
	List(ctx context.Context, params ListParams) (ListResult, error)
}

type ListParams struct {
	GuestID   GuestID
	ListingID listing.ListingID
	Page      int
	Limit     int
}

type ListResult struct {
	Items []*Reservation
	Total int
}

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
	ID         ReservationID
	ListingID  listing.ListingID
	GuestID    GuestID
	Period     period.Period
	TotalPrice money.Money
	Now        time.Time
}

// New creates a PENDING reservation and records ReservationCreated. The
// minimum-duration rule is enforced here so no reservation shorter than a
// day can ever exist.
func New(params CreateParams) (*Reservation, error) {
	if params.ID == "" {
		return nil, errors.New("reservation: id is required")
	}
	if params.GuestID == "" {
		return nil, errors.New("reservation: guest id is required")
	}
	if !MinDurationSatisfied(params.Period) {
		return nil, ErrInvalidPeriod
	}
	now := params.Now.UTC()
	r := &Reservation{
		ID:         params.ID,
		ListingID:  params.ListingID,
		GuestID:    params.GuestID,
		Period:     params.Period,
		Status:     StatusPending,
		TotalPrice: params.TotalPrice,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	r.Record(ReservationCreated{
		ReservationID: r.ID,
		ListingID:     r.ListingID,
		GuestID:       r.GuestID,
		Period:        r.Period,
		Status:        r.Status,
		TotalPrice:    r.TotalPrice,
		At:            now,
	})
	return r, nil
}

func (r *Reservation) Confirm(now time.Time) (*Reservation, error) {
	if r.Status != StatusPending {
		return nil, ErrNotPending
	}
	next := r.clone()
	next.Status = StatusConfirmed
	next.UpdatedAt = now.UTC()
	next.Record(ReservationConfirmed{
		ReservationID: next.ID,
		ListingID:     next.ListingID,
		GuestID:       next.GuestID,
		At:            next.UpdatedAt,
	})
	return next, nil
}

// Cancel transitions to CANCELLED. The cancellation-window rule is applied by
// the orchestrating use case, which also releases the listing interval first.
func (r *Reservation) Cancel(now time.Time) (*Reservation, error) {
	if r.Status == StatusCancelled {
		return nil, ErrAlreadyCancelled
	}
	next := r.clone()
	next.Status = StatusCancelled
	next.UpdatedAt = now.UTC()
	next.Record(ReservationCancelled{
		ReservationID: next.ID,
		ListingID:     next.ListingID,
		GuestID:       next.GuestID,
		At:            next.UpdatedAt,
	})
	return next, nil
}

func (r *Reservation) Complete(now time.Time) (*Reservation, error) {
	if r.Status != StatusConfirmed {
		return nil, ErrNotConfirmed
	}
	next := r.clone()
	next.Status = StatusCompleted
	next.UpdatedAt = now.UTC()
	next.Record(ReservationCompleted{
		ReservationID: next.ID,
		ListingID:     next.ListingID,
		GuestID:       next.GuestID,
		At:            next.UpdatedAt,
	})
	return next, nil
}

func (r *Reservation) clone() *Reservation {
	dup := *r
	dup.EventRecorder = events.EventRecorder{}
	return &dup
}
