package listing

import (
	"context"

	"staybook/internal/app/dto"
	"staybook/internal/app/queries"
	domainlisting "staybook/internal/domain/listing"
	"staybook/internal/domain/property"
)

const (
	getListingKey   = "listing.get"
	listListingsKey = "listing.list"
)

type GetQuery struct {
	ListingID string
}

func (q GetQuery) Key() string { return getListingKey }

type GetHandler struct {
	Listings domainlisting.Repository
}

func (h *GetHandler) Handle(ctx context.Context, q GetQuery) (*dto.ListingDTO, error) {
	l, err := h.Listings.ByID(ctx, domainlisting.ListingID(q.ListingID))
	if err != nil {
		return nil, err
	}
	view := dto.NewListingDTO(l)
	return &view, nil
}

type ListQuery struct {
	Capacity      int
	MinPriceCents int64
	MaxPriceCents int64
	Currency      string
	Page          int
	Limit         int
}

func (q ListQuery) Key() string { return listListingsKey }

type ListView struct {
	Items []dto.ListingDTO `json:"items"`
	Total int              `json:"total"`
}

// ListHandler pages through listings. The capacity filter lives on the
// owning property, so matching property ids are resolved first and pushed
// into the listing query.
type ListHandler struct {
	Listings   domainlisting.Repository
	Properties property.Repository
}

func (h *ListHandler) Handle(ctx context.Context, q ListQuery) (*ListView, error) {
	params := domainlisting.ListParams{
		MinPriceCents: q.MinPriceCents,
		MaxPriceCents: q.MaxPriceCents,
		Currency:      q.Currency,
		Page:          q.Page,
		Limit:         q.Limit,
	}
	if q.Capacity > 0 {
		ids, err := h.Properties.IDsWithCapacity(ctx, q.Capacity)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			return &ListView{Items: []dto.ListingDTO{}}, nil
		}
		params.PropertyIDs = make([]domainlisting.PropertyID, 0, len(ids))
		for _, id := range ids {
			params.PropertyIDs = append(params.PropertyIDs, domainlisting.PropertyID(id))
		}
	}
	result, err := h.Listings.List(ctx, params)
	if err != nil {
		return nil, err
	}
	view := ListView{Items: make([]dto.ListingDTO, 0, len(result.Items)), Total: result.Total}
	for _, l := range result.Items {
		view.Items = append(view.Items, dto.NewListingDTO(l))
	}
	return &view, nil
}

var _ queries.Handler[GetQuery, *dto.ListingDTO] = (*GetHandler)(nil)
var _ queries.Handler[ListQuery, *ListView] = (*ListHandler)(nil)
