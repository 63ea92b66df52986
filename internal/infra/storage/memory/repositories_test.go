package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	domainlisting "staybook/internal/domain/listing"
	domainproperty "staybook/internal/domain/property"
	"staybook/internal/domain/shared/money"
)

func seedListing(t *testing.T, repo *ListingRepository, id string, cents int64) *domainlisting.Listing {
	t.Helper()
	l, err := domainlisting.NewListing(domainlisting.CreateParams{
		ID:            domainlisting.ListingID(id),
		PropertyID:    "prop-1",
		PublicID:      nextPublicID(t, repo),
		PricePerNight: money.Must(cents, "EUR"),
		Now:           time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("NewListing: %v", err)
	}
	if err := repo.Save(context.Background(), l); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return l
}

func nextPublicID(t *testing.T, repo *ListingRepository) int64 {
	t.Helper()
	id, err := repo.NextPublicID(context.Background())
	if err != nil {
		t.Fatalf("NextPublicID: %v", err)
	}
	return id
}

func TestListingSaveDetectsConcurrentUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewListingRepository()
	seedListing(t, repo, "lst-1", 10000)

	first, err := repo.ByID(ctx, "lst-1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}
	second, err := repo.ByID(ctx, "lst-1")
	if err != nil {
		t.Fatalf("ByID: %v", err)
	}

	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	updatedFirst, err := first.UpdatePrice(money.Must(11000, "EUR"), now)
	if err != nil {
		t.Fatalf("UpdatePrice: %v", err)
	}
	if err := repo.Save(ctx, updatedFirst); err != nil {
		t.Fatalf("first save: %v", err)
	}

	updatedSecond, err := second.UpdatePrice(money.Must(12000, "EUR"), now)
	if err != nil {
		t.Fatalf("UpdatePrice: %v", err)
	}
	if err := repo.Save(ctx, updatedSecond); !errors.Is(err, ErrConcurrentUpdate) {
		t.Fatalf("stale save: got %v, want ErrConcurrentUpdate", err)
	}
}

func TestListingByIDNotFound(t *testing.T) {
	repo := NewListingRepository()
	if _, err := repo.ByID(context.Background(), "lst-missing"); !errors.Is(err, domainlisting.ErrListingNotFound) {
		t.Fatalf("got %v, want ErrListingNotFound", err)
	}
}

func TestListingListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewListingRepository()
	seedListing(t, repo, "lst-cheap", 5000)
	seedListing(t, repo, "lst-mid", 10000)
	seedListing(t, repo, "lst-expensive", 20000)

	t.Run("price range", func(t *testing.T) {
		result, err := repo.List(ctx, domainlisting.ListParams{MinPriceCents: 6000, MaxPriceCents: 15000})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if result.Total != 1 || result.Items[0].ID != "lst-mid" {
			t.Fatalf("result = %+v, want only lst-mid", result)
		}
	})

	t.Run("pagination", func(t *testing.T) {
		page1, err := repo.List(ctx, domainlisting.ListParams{Page: 1, Limit: 2})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(page1.Items) != 2 || page1.Total != 3 {
			t.Fatalf("page1 = %d items, total %d", len(page1.Items), page1.Total)
		}
		page2, err := repo.List(ctx, domainlisting.ListParams{Page: 2, Limit: 2})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if len(page2.Items) != 1 {
			t.Fatalf("page2 = %d items, want 1", len(page2.Items))
		}
	})

	t.Run("soft-deleted listings are hidden", func(t *testing.T) {
		if err := repo.SoftDelete(ctx, "lst-cheap", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)); err != nil {
			t.Fatalf("SoftDelete: %v", err)
		}
		result, err := repo.List(ctx, domainlisting.ListParams{})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if result.Total != 2 {
			t.Fatalf("total = %d, want 2 after soft delete", result.Total)
		}
	})
}

func TestPropertyIDsWithCapacity(t *testing.T) {
	ctx := context.Background()
	repo := NewPropertyRepository()
	for _, p := range []*domainproperty.Property{
		{ID: "prop-small", Capacity: 2},
		{ID: "prop-large", Capacity: 8},
	} {
		if err := repo.Save(ctx, p); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	ids, err := repo.IDsWithCapacity(ctx, 4)
	if err != nil {
		t.Fatalf("IDsWithCapacity: %v", err)
	}
	if len(ids) != 1 || ids[0] != "prop-large" {
		t.Fatalf("ids = %v, want [prop-large]", ids)
	}
}
