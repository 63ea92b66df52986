package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	domainlisting "staybook/internal/domain/listing"
	domainproperty "staybook/internal/domain/property"
	domainreservation "staybook/internal/domain/reservation"
)

// ErrConcurrentUpdate is returned when a save races another writer for the
// same aggregate.
var ErrConcurrentUpdate = errors.New("memory: concurrent update detected")

// ListingRepository is an in-memory implementation used in tests and the
// memory storage mode. Saves enforce the same optimistic version check the
// mongo repository applies, so two writers racing the same listing cannot
// silently overwrite each other.
type ListingRepository struct {
	mu     sync.RWMutex
	items  map[domainlisting.ListingID]*domainlisting.Listing
	nextID int64
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{items: make(map[domainlisting.ListingID]*domainlisting.Listing)}
}

func (r *ListingRepository) ByID(ctx context.Context, id domainlisting.ListingID) (*domainlisting.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	l, ok := r.items[id]
	if !ok {
		return nil, domainlisting.ErrListingNotFound
	}
	return l, nil
}

func (r *ListingRepository) Save(ctx context.Context, l *domainlisting.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.items[l.ID]; ok && current.Version != l.Version {
		return ErrConcurrentUpdate
	}
	l.Version++
	r.items[l.ID] = l
	return nil
}

func (r *ListingRepository) SoftDelete(ctx context.Context, id domainlisting.ListingID, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.items[id]
	if !ok {
		return domainlisting.ErrListingNotFound
	}
	deleted := l.Delete(now)
	deleted.Version = l.Version + 1
	r.items[id] = deleted
	return nil
}

func (r *ListingRepository) ByProperty(ctx context.Context, id domainlisting.PropertyID) ([]*domainlisting.Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matches := make([]*domainlisting.Listing, 0)
	for _, l := range r.items {
		if l.PropertyID == id && !l.IsDeleted() {
			matches = append(matches, l)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].PublicID < matches[j].PublicID
	})
	return matches, nil
}

func (r *ListingRepository) List(ctx context.Context, params domainlisting.ListParams) (domainlisting.ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opts := params.Normalized()
	matches := make([]*domainlisting.Listing, 0, len(r.items))
	for _, l := range r.items {
		if l.IsDeleted() {
			continue
		}
		if opts.MinPriceCents > 0 && l.PricePerNight.ValueInCents < opts.MinPriceCents {
			continue
		}
		if opts.MaxPriceCents > 0 && l.PricePerNight.ValueInCents > opts.MaxPriceCents {
			continue
		}
		if opts.Currency != "" && l.PricePerNight.Currency != opts.Currency {
			continue
		}
		if len(opts.PropertyIDs) > 0 && !propertyIncluded(l.PropertyID, opts.PropertyIDs) {
			continue
		}
		matches = append(matches, l)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].PublicID < matches[j].PublicID
	})

	total := len(matches)
	start := opts.Offset()
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return domainlisting.ListResult{Items: matches[start:end], Total: total}, nil
}

func (r *ListingRepository) NextPublicID(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	return r.nextID, nil
}

func propertyIncluded(id domainlisting.PropertyID, allowed []domainlisting.PropertyID) bool {
	for _, candidate := range allowed {
		if id == candidate {
			return true
		}
	}
	return false
}

// ReservationRepository stores reservations in memory.
type ReservationRepository struct {
	mu    sync.RWMutex
	items map[domainreservation.ReservationID]*domainreservation.Reservation
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{items: make(map[domainreservation.ReservationID]*domainreservation.Reservation)}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservation.ReservationID) (*domainreservation.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.items[id]
	if !ok {
		return nil, domainreservation.ErrReservationNotFound
	}
	return res, nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainreservation.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.items[res.ID]; ok && current.Version != res.Version {
		return ErrConcurrentUpdate
	}
	res.Version++
	r.items[res.ID] = res
	return nil
}

func (r *ReservationRepository) List(ctx context.Context, params domainreservation.ListParams) (domainreservation.ListResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	opts := params.Normalized()
	matches := make([]*domainreservation.Reservation, 0)
	for _, res := range r.items {
		if opts.GuestID != "" && res.GuestID != opts.GuestID {
			continue
		}
		if opts.ListingID != "" && res.ListingID != opts.ListingID {
			continue
		}
		matches = append(matches, res)
	}
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].CreatedAt.After(matches[j].CreatedAt)
	})

	total := len(matches)
	start := opts.Offset()
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}
	return domainreservation.ListResult{Items: matches[start:end], Total: total}, nil
}

// PropertyRepository keeps properties in memory.
type PropertyRepository struct {
	mu    sync.RWMutex
	items map[domainproperty.PropertyID]*domainproperty.Property
}

func NewPropertyRepository() *PropertyRepository {
	return &PropertyRepository{items: make(map[domainproperty.PropertyID]*domainproperty.Property)}
}

func (r *PropertyRepository) ByID(ctx context.Context, id domainproperty.PropertyID) (*domainproperty.Property, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domainproperty.ErrPropertyNotFound
	}
	return p, nil
}

func (r *PropertyRepository) Save(ctx context.Context, p *domainproperty.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = p
	return nil
}

func (r *PropertyRepository) IDsWithCapacity(ctx context.Context, minCapacity int) ([]domainproperty.PropertyID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]domainproperty.PropertyID, 0)
	for _, p := range r.items {
		if p.Capacity >= minCapacity {
			ids = append(ids, p.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

var _ domainlisting.Repository = (*ListingRepository)(nil)
var _ domainreservation.Repository = (*ReservationRepository)(nil)
var _ domainproperty.Repository = (*PropertyRepository)(nil)
