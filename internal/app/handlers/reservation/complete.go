package reservation

import (
	"context"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/outbox"
	domainreservation "staybook/internal/domain/reservation"
)

const completeReservationKey = "reservation.complete"

type CompleteCommand struct {
	ReservationID string
}

func (c CompleteCommand) Key() string { return completeReservationKey }

// CompleteHandler closes out a CONFIRMED reservation after the stay. The
// RESERVED interval stays on the listing as a record of the occupied period.
type CompleteHandler struct {
	Reservations domainreservation.Repository
	Outbox       outbox.Outbox
	Encoder      outbox.EventEncoder
	Now          func() time.Time
}

func (h *CompleteHandler) Handle(ctx context.Context, cmd CompleteCommand) (any, error) {
	res, err := h.Reservations.ByID(ctx, domainreservation.ReservationID(cmd.ReservationID))
	if err != nil {
		return nil, err
	}
	completed, err := res.Complete(h.now())
	if err != nil {
		return nil, err
	}
	if err := h.Reservations.Save(ctx, completed); err != nil {
		return nil, err
	}

	pending := completed.PendingEvents()
	completed.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, pending); err != nil {
		return nil, err
	}
	return nil, nil
}

func (h *CompleteHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[CompleteCommand, any] = (*CompleteHandler)(nil)
