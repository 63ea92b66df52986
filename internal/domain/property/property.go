package property

import (
	"context"
	"errors"
	"strings"
)

var ErrPropertyNotFound = errors.New("property: not found")

type PropertyID string
type HostID string

type Address struct {
	Line1   string
	Line2   string
	City    string
	Country string
	ZipCode string
}

func (a Address) Valid() bool {
	return strings.TrimSpace(a.Line1) != "" && strings.TrimSpace(a.City) != "" && strings.TrimSpace(a.Country) != ""
}

// Property is the host-facing unit a listing belongs to. Its CRUD flows live
// outside this service; the aggregate exists to back cross-module reads and
// the capacity filter on listing queries.
type Property struct {
	ID           PropertyID
	HostID       HostID
	PublicID     int64
	Name         string
	Description  string
	Capacity     int
	PropertyType string
	Address      Address
	ImageURLs    []string
}

type Repository interface {
	ByID(ctx context.Context, id PropertyID) (*Property, error)
	Save(ctx context.Context, p *Property) error
	IDsWithCapacity(ctx context.Context, minCapacity int) ([]PropertyID, error)
}
