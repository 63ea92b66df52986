package reservation

import (
	"time"

	"staybook/internal/domain/listing"
	"staybook/internal/domain/shared/money"
	"staybook/internal/domain/shared/period"
)

type ReservationCreated struct {
	ReservationID ReservationID     `json:"-"`
	ListingID     listing.ListingID `json:"listingId"`
	GuestID       GuestID           `json:"guestId"`
	Period        period.Period     `json:"period"`
	Status        Status            `json:"status"`
	TotalPrice    money.Money       `json:"totalPrice"`
	At            time.Time         `json:"-"`
}

func (e ReservationCreated) EventName() string     { return "reservation.created" }
func (e ReservationCreated) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCreated) OccurredAt() time.Time { return e.At }

type ReservationConfirmed struct {
	ReservationID ReservationID     `json:"reservationId"`
	ListingID     listing.ListingID `json:"listingId"`
	GuestID       GuestID           `json:"guestId"`
	At            time.Time         `json:"-"`
}

func (e ReservationConfirmed) EventName() string     { return "reservation.confirmed" }
func (e ReservationConfirmed) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationConfirmed) OccurredAt() time.Time { return e.At }

type ReservationCancelled struct {
	ReservationID ReservationID     `json:"reservationId"`
	ListingID     listing.ListingID `json:"listingId"`
	GuestID       GuestID           `json:"guestId"`
	At            time.Time         `json:"-"`
}

func (e ReservationCancelled) EventName() string     { return "reservation.cancelled" }
func (e ReservationCancelled) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCancelled) OccurredAt() time.Time { return e.At }

type ReservationCompleted struct {
	ReservationID ReservationID     `json:"reservationId"`
	ListingID     listing.ListingID `json:"listingId"`
	GuestID       GuestID           `json:"guestId"`
	At            time.Time         `json:"-"`
}

func (e ReservationCompleted) EventName() string     { return "reservation.completed" }
func (e ReservationCompleted) AggregateID() string   { return string(e.ReservationID) }
func (e ReservationCompleted) OccurredAt() time.Time { return e.At }
