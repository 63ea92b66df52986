package dto

import (
	"time"

	"staybook/internal/domain/listing"
	"staybook/internal/domain/property"
	"staybook/internal/domain/shared/money"
)

// MoneyDTO is the wire shape for monetary amounts.
type MoneyDTO struct {
	ValueInCents int64  `json:"valueInCents"`
	Currency     string `json:"currency"`
}

// IntervalDTO carries a calendar interval; timestamps serialize as RFC 3339.
type IntervalDTO struct {
	From      time.Time  `json:"from"`
	To        time.Time  `json:"to"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

// ListingDTO is the snapshot projection handed across the module boundary
// instead of the live aggregate.
type ListingDTO struct {
	ID            string        `json:"id"`
	PublicID      int64         `json:"publicId"`
	PricePerNight MoneyDTO      `json:"pricePerNight"`
	Intervals     []IntervalDTO `json:"intervals"`
	DeletedAt     *time.Time    `json:"deletedAt"`
}

type AddressDTO struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode,omitempty"`
}

type PropertyDTO struct {
	ID           string     `json:"id"`
	HostID       string     `json:"hostId"`
	PublicID     int64      `json:"publicId"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Capacity     int        `json:"capacity"`
	PropertyType string     `json:"propertyType"`
	Address      AddressDTO `json:"address"`
	ImageURLs    []string   `json:"imagesUrls"`
}

func NewMoneyDTO(m money.Money) MoneyDTO {
	return MoneyDTO{ValueInCents: m.ValueInCents, Currency: m.Currency}
}

func NewListingDTO(l *listing.Listing) ListingDTO {
	intervals := make([]IntervalDTO, 0, len(l.Intervals))
	for _, iv := range l.Intervals {
		intervals = append(intervals, IntervalDTO{
			From:      iv.From,
			To:        iv.To,
			Status:    string(iv.Status),
			ExpiresAt: iv.ExpiresAt,
		})
	}
	return ListingDTO{
		ID:            string(l.ID),
		PublicID:      l.PublicID,
		PricePerNight: NewMoneyDTO(l.PricePerNight),
		Intervals:     intervals,
		DeletedAt:     l.DeletedAt,
	}
}

func NewPropertyDTO(p *property.Property) PropertyDTO {
	return PropertyDTO{
		ID:           string(p.ID),
		HostID:       string(p.HostID),
		PublicID:     p.PublicID,
		Name:         p.Name,
		Description:  p.Description,
		Capacity:     p.Capacity,
		PropertyType: p.PropertyType,
		Address: AddressDTO{
			Line1:   p.Address.Line1,
			Line2:   p.Address.Line2,
			City:    p.Address.City,
			Country: p.Address.Country,
			ZipCode: p.Address.ZipCode,
		},
		ImageURLs: append([]string(nil), p.ImageURLs...),
	}
}
