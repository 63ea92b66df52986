package reservation

import (
	"context"
	"time"

	"staybook/internal/app/queries"
	"staybook/internal/domain/listing"
	domainreservation "staybook/internal/domain/reservation"
	"staybook/internal/domain/shared/money"
	"staybook/internal/domain/shared/period"
)

const (
	getReservationKey   = "reservation.get"
	listReservationsKey = "reservation.list"
)

type GetQuery struct {
	ReservationID string
}

func (q GetQuery) Key() string { return getReservationKey }

type ReservationView struct {
	ID         string        `json:"id"`
	ListingID  string        `json:"listingId"`
	GuestID    string        `json:"guestId"`
	Period     period.Period `json:"period"`
	Status     string        `json:"status"`
	TotalPrice money.Money   `json:"totalPrice"`
	CreatedAt  time.Time     `json:"createdAt"`
}

type GetHandler struct {
	Reservations domainreservation.Repository
}

func (h *GetHandler) Handle(ctx context.Context, q GetQuery) (*ReservationView, error) {
	res, err := h.Reservations.ByID(ctx, domainreservation.ReservationID(q.ReservationID))
	if err != nil {
		return nil, err
	}
	view := newReservationView(res)
	return &view, nil
}

type ListQuery struct {
	GuestID   string
	ListingID string
	Page      int
	Limit     int
}

func (q ListQuery) Key() string { return listReservationsKey }

type ListView struct {
	Items []ReservationView `json:"items"`
	Total int               `json:"total"`
}

type ListHandler struct {
	Reservations domainreservation.Repository
}

func (h *ListHandler) Handle(ctx context.Context, q ListQuery) (*ListView, error) {
	result, err := h.Reservations.List(ctx, domainreservation.ListParams{
		GuestID:   domainreservation.GuestID(q.GuestID),
		ListingID: listing.ListingID(q.ListingID),
		Page:      q.Page,
		Limit:     q.Limit,
	})
	if err != nil {
		return nil, err
	}
	view := ListView{Items: make([]ReservationView, 0, len(result.Items)), Total: result.Total}
	for _, res := range result.Items {
		view.Items = append(view.Items, newReservationView(res))
	}
	return &view, nil
}

func newReservationView(res *domainreservation.Reservation) ReservationView {
	return ReservationView{
		ID:         string(res.ID),
		ListingID:  string(res.ListingID),
		GuestID:    string(res.GuestID),
		Period:     res.Period,
		Status:     string(res.Status),
		TotalPrice: res.TotalPrice,
		CreatedAt:  res.CreatedAt,
	}
}

var _ queries.Handler[GetQuery, *ReservationView] = (*GetHandler)(nil)
var _ queries.Handler[ListQuery, *ListView] = (*ListHandler)(nil)
