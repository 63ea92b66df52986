package reservation

import (
	"context"
	"fmt"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/facade"
	"staybook/internal/app/outbox"
	domainreservation "staybook/internal/domain/reservation"
)

const confirmReservationKey = "reservation.confirm"

type ConfirmCommand struct {
	ReservationID string
}

func (c ConfirmCommand) Key() string { return confirmReservationKey }

// ConfirmHandler promotes the listing hold to RESERVED before the
// reservation itself is marked CONFIRMED. A hold that expired in the
// meantime surfaces as ErrHoldNotFound and the reservation stays PENDING.
type ConfirmHandler struct {
	Facade       facade.PropertyModule
	Reservations domainreservation.Repository
	Outbox       outbox.Outbox
	Encoder      outbox.EventEncoder
	Now          func() time.Time
}

func (h *ConfirmHandler) Handle(ctx context.Context, cmd ConfirmCommand) (any, error) {
	res, err := h.Reservations.ByID(ctx, domainreservation.ReservationID(cmd.ReservationID))
	if err != nil {
		return nil, err
	}
	confirmed, err := res.Confirm(h.now())
	if err != nil {
		return nil, err
	}

	result, err := h.Facade.ConfirmReservationOnListing(ctx, string(res.ListingID), res.Period)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		switch result.Reason {
		case facade.ReasonListingNotFound:
			return nil, ErrListingNotFound
		case facade.ReasonHoldNotFound:
			return nil, ErrHoldNotFound
		default:
			return nil, fmt.Errorf("reservation: confirm on listing failed: %s", result.Reason)
		}
	}

	if err := h.Reservations.Save(ctx, confirmed); err != nil {
		return nil, err
	}

	pending := confirmed.PendingEvents()
	confirmed.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, pending); err != nil {
		return nil, err
	}
	return nil, nil
}

func (h *ConfirmHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[ConfirmCommand, any] = (*ConfirmHandler)(nil)
