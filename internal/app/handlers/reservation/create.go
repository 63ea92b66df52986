package reservation

import (
	"context"
	"fmt"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/facade"
	"staybook/internal/app/middleware"
	"staybook/internal/app/outbox"
	"staybook/internal/domain/listing"
	domainreservation "staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/money"
	"staybook/internal/domain/shared/period"
)

const createReservationKey = "reservation.create"

type CreateCommand struct {
	CommandID       string
	ListingID       string
	GuestID         string
	From            time.Time
	To              time.Time
	IdempotencyKeyV string
}

func (c CreateCommand) Key() string { return createReservationKey }

func (c CreateCommand) IdempotencyKey() string { return c.IdempotencyKeyV }

func (c CreateCommand) ResultPrototype() any { return &CreateResult{} }

type CreateResult struct {
	ReservationID string `json:"reservation_id"`
}

// CreateHandler places a hold on the listing through the facade, then
// persists the PENDING reservation carrying the identical period. The hold
// lands before the reservation so a crash in between leaves only an
// expiring hold, never an unbacked reservation.
type CreateHandler struct {
	Facade       facade.PropertyModule
	Reservations domainreservation.Repository
	Outbox       outbox.Outbox
	Encoder      outbox.EventEncoder
	HoldDuration time.Duration
	Now          func() time.Time
}

func (h *CreateHandler) Handle(ctx context.Context, cmd CreateCommand) (*CreateResult, error) {
	p, err := period.New(cmd.From, cmd.To)
	if err != nil {
		return nil, domainreservation.ErrInvalidPeriod
	}
	if !domainreservation.MinDurationSatisfied(p) {
		return nil, domainreservation.ErrInvalidPeriod
	}

	hold, err := h.Facade.PlaceHold(ctx, cmd.ListingID, p, h.HoldDuration)
	if err != nil {
		return nil, err
	}
	if !hold.Success {
		switch hold.Reason {
		case facade.ReasonListingNotFound:
			return nil, ErrListingNotFound
		case facade.ReasonOutsideSlidingWindow:
			return nil, ErrOutsideSlidingWindow
		case facade.ReasonPeriodUnavailable:
			return nil, ErrPeriodUnavailable
		default:
			return nil, fmt.Errorf("reservation: place hold failed: %s", hold.Reason)
		}
	}

	now := h.now()
	price := money.Money{
		ValueInCents: hold.Listing.PricePerNight.ValueInCents,
		Currency:     hold.Listing.PricePerNight.Currency,
	}
	total := price.Multiply(int64(p.Nights()))

	res, err := domainreservation.New(domainreservation.CreateParams{
		ID:         domainreservation.ReservationID(cmd.CommandID),
		ListingID:  listing.ListingID(cmd.ListingID),
		GuestID:    domainreservation.GuestID(cmd.GuestID),
		Period:     p,
		TotalPrice: total,
		Now:        now,
	})
	if err != nil {
		return nil, err
	}

	if err := h.Reservations.Save(ctx, res); err != nil {
		return nil, err
	}

	pending := res.PendingEvents()
	res.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, pending); err != nil {
		return nil, err
	}

	return &CreateResult{ReservationID: string(res.ID)}, nil
}

func (h *CreateHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[CreateCommand, *CreateResult] = (*CreateHandler)(nil)
var _ middleware.IdempotentCommand = (*CreateCommand)(nil)
