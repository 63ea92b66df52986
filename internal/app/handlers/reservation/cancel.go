package reservation

import (
	"context"
	"log/slog"
	"time"

	"staybook/internal/app/commands"
	"staybook/internal/app/facade"
	"staybook/internal/app/outbox"
	domainreservation "staybook/internal/domain/reservation"
)

const cancelReservationKey = "reservation.cancel"

type CancelCommand struct {
	ReservationID string
}

func (c CancelCommand) Key() string { return cancelReservationKey }

// CancelHandler releases the listing interval first, then marks the
// reservation CANCELLED. A missing interval is tolerated: a pending
// reservation's hold may already have expired and been purged, and the
// cancellation must still go through.
type CancelHandler struct {
	Facade       facade.PropertyModule
	Reservations domainreservation.Repository
	Outbox       outbox.Outbox
	Encoder      outbox.EventEncoder
	Logger       *slog.Logger
	Now          func() time.Time
}

func (h *CancelHandler) Handle(ctx context.Context, cmd CancelCommand) (any, error) {
	res, err := h.Reservations.ByID(ctx, domainreservation.ReservationID(cmd.ReservationID))
	if err != nil {
		return nil, err
	}
	if res.Status == domainreservation.StatusCancelled {
		return nil, domainreservation.ErrAlreadyCancelled
	}
	now := h.now()
	if !domainreservation.CancellationAllowed(res.Period.From, now) {
		return nil, ErrCancellationWindowExpired
	}

	release, err := h.Facade.ReleaseInterval(ctx, string(res.ListingID), res.Period)
	if err != nil {
		return nil, err
	}
	if !release.Success && h.Logger != nil {
		h.Logger.Warn("cancel: listing interval not released",
			"reservation_id", cmd.ReservationID,
			"listing_id", res.ListingID,
			"reason", release.Reason,
		)
	}

	cancelled, err := res.Cancel(now)
	if err != nil {
		return nil, err
	}
	if err := h.Reservations.Save(ctx, cancelled); err != nil {
		return nil, err
	}

	pending := cancelled.PendingEvents()
	cancelled.ClearEvents()
	if err := outbox.RecordDomainEvents(ctx, h.Outbox, h.Encoder, pending); err != nil {
		return nil, err
	}
	return nil, nil
}

func (h *CancelHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

var _ commands.Handler[CancelCommand, any] = (*CancelHandler)(nil)
