package facade

import (
	"context"
	"testing"
	"time"

	"staybook/internal/domain/listing"
	"staybook/internal/domain/shared/money"
	"staybook/internal/domain/shared/period"
	"staybook/internal/infra/storage/memory"
)

func ts(t *testing.T, raw string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t.Fatalf("parse %s: %v", raw, err)
	}
	return v
}

func stay(t *testing.T, from, to string) period.Period {
	t.Helper()
	p, err := period.New(ts(t, from), ts(t, to))
	if err != nil {
		t.Fatalf("period %s..%s: %v", from, to, err)
	}
	return p
}

func newFixture(t *testing.T, now time.Time) (*Module, *memory.ListingRepository) {
	t.Helper()
	listings := memory.NewListingRepository()
	properties := memory.NewPropertyRepository()

	l, err := listing.NewListing(listing.CreateParams{
		ID:            "lst-1",
		PropertyID:    "prop-1",
		PublicID:      1,
		PricePerNight: money.Must(12000, "EUR"),
		Now:           ts(t, "2026-01-01T00:00:00Z"),
	})
	if err != nil {
		t.Fatalf("NewListing: %v", err)
	}
	if err := listings.Save(context.Background(), l); err != nil {
		t.Fatalf("seed listing: %v", err)
	}

	m := NewModule(listings, properties)
	m.Now = func() time.Time { return now }
	return m, listings
}

func TestPlaceHold(t *testing.T) {
	ctx := context.Background()
	now := ts(t, "2026-01-15T00:00:00Z")
	p := stay(t, "2026-03-01T00:00:00Z", "2026-03-05T00:00:00Z")

	t.Run("success persists the hold", func(t *testing.T) {
		m, listings := newFixture(t, now)
		result, err := m.PlaceHold(ctx, "lst-1", p, 15*time.Minute)
		if err != nil {
			t.Fatalf("PlaceHold: %v", err)
		}
		if !result.Success {
			t.Fatalf("reason = %s, want success", result.Reason)
		}
		stored, err := listings.ByID(ctx, "lst-1")
		if err != nil {
			t.Fatalf("ByID: %v", err)
		}
		if len(stored.Intervals) != 1 || stored.Intervals[0].Status != listing.IntervalHold {
			t.Fatalf("persisted intervals = %+v", stored.Intervals)
		}
		want := now.Add(15 * time.Minute)
		if got := stored.Intervals[0].ExpiresAt; got == nil || !got.Equal(want) {
			t.Fatalf("expiresAt = %v, want %v", got, want)
		}
	})

	t.Run("unknown listing", func(t *testing.T) {
		m, _ := newFixture(t, now)
		result, err := m.PlaceHold(ctx, "lst-missing", p, 0)
		if err != nil {
			t.Fatalf("PlaceHold: %v", err)
		}
		if result.Success || result.Reason != ReasonListingNotFound {
			t.Fatalf("reason = %s, want LISTING_NOT_FOUND", result.Reason)
		}
	})

	t.Run("outside sliding window", func(t *testing.T) {
		m, _ := newFixture(t, now)
		far := stay(t, "2027-02-01T00:00:00Z", "2027-02-05T00:00:00Z")
		result, err := m.PlaceHold(ctx, "lst-1", far, 0)
		if err != nil {
			t.Fatalf("PlaceHold: %v", err)
		}
		if result.Success || result.Reason != ReasonOutsideSlidingWindow {
			t.Fatalf("reason = %s, want OUTSIDE_SLIDING_WINDOW", result.Reason)
		}
	})

	t.Run("period unavailable", func(t *testing.T) {
		m, _ := newFixture(t, now)
		if result, _ := m.PlaceHold(ctx, "lst-1", p, 0); !result.Success {
			t.Fatalf("first hold failed: %s", result.Reason)
		}
		overlap := stay(t, "2026-03-04T00:00:00Z", "2026-03-08T00:00:00Z")
		result, err := m.PlaceHold(ctx, "lst-1", overlap, 0)
		if err != nil {
			t.Fatalf("PlaceHold: %v", err)
		}
		if result.Success || result.Reason != ReasonPeriodUnavailable {
			t.Fatalf("reason = %s, want PERIOD_UNAVAILABLE", result.Reason)
		}
	})

	t.Run("expired holds are purged before holding", func(t *testing.T) {
		m, listings := newFixture(t, now)
		if result, _ := m.PlaceHold(ctx, "lst-1", p, 15*time.Minute); !result.Success {
			t.Fatalf("first hold failed: %s", result.Reason)
		}

		// same period again after the hold has lapsed: the stale hold is
		// dropped from persisted state and the new one takes its place
		later := now.Add(time.Hour)
		m.Now = func() time.Time { return later }
		result, err := m.PlaceHold(ctx, "lst-1", p, 15*time.Minute)
		if err != nil {
			t.Fatalf("PlaceHold: %v", err)
		}
		if !result.Success {
			t.Fatalf("reason = %s, want success", result.Reason)
		}
		stored, _ := listings.ByID(ctx, "lst-1")
		if len(stored.Intervals) != 1 {
			t.Fatalf("persisted intervals = %d, want the stale hold purged", len(stored.Intervals))
		}
		want := later.Add(15 * time.Minute)
		if got := stored.Intervals[0].ExpiresAt; got == nil || !got.Equal(want) {
			t.Fatalf("expiresAt = %v, want %v", got, want)
		}
	})
}

func TestConfirmReservationOnListing(t *testing.T) {
	ctx := context.Background()
	now := ts(t, "2026-01-15T00:00:00Z")
	p := stay(t, "2026-03-01T00:00:00Z", "2026-03-05T00:00:00Z")

	t.Run("promotes the hold", func(t *testing.T) {
		m, listings := newFixture(t, now)
		if result, _ := m.PlaceHold(ctx, "lst-1", p, 0); !result.Success {
			t.Fatalf("hold failed: %s", result.Reason)
		}
		result, err := m.ConfirmReservationOnListing(ctx, "lst-1", p)
		if err != nil {
			t.Fatalf("Confirm: %v", err)
		}
		if !result.Success {
			t.Fatalf("reason = %s, want success", result.Reason)
		}
		stored, _ := listings.ByID(ctx, "lst-1")
		if stored.Intervals[0].Status != listing.IntervalReserved {
			t.Fatalf("status = %s, want RESERVED", stored.Intervals[0].Status)
		}
	})

	t.Run("no matching hold", func(t *testing.T) {
		m, _ := newFixture(t, now)
		result, err := m.ConfirmReservationOnListing(ctx, "lst-1", p)
		if err != nil {
			t.Fatalf("Confirm: %v", err)
		}
		if result.Success || result.Reason != ReasonHoldNotFound {
			t.Fatalf("reason = %s, want HOLD_NOT_FOUND", result.Reason)
		}
	})

	t.Run("unknown listing", func(t *testing.T) {
		m, _ := newFixture(t, now)
		result, _ := m.ConfirmReservationOnListing(ctx, "lst-missing", p)
		if result.Success || result.Reason != ReasonListingNotFound {
			t.Fatalf("reason = %s, want LISTING_NOT_FOUND", result.Reason)
		}
	})
}

func TestReleaseInterval(t *testing.T) {
	ctx := context.Background()
	now := ts(t, "2026-01-15T00:00:00Z")
	p := stay(t, "2026-03-01T00:00:00Z", "2026-03-05T00:00:00Z")

	t.Run("frees the period", func(t *testing.T) {
		m, listings := newFixture(t, now)
		if result, _ := m.PlaceHold(ctx, "lst-1", p, 0); !result.Success {
			t.Fatalf("hold failed: %s", result.Reason)
		}
		result, err := m.ReleaseInterval(ctx, "lst-1", p)
		if err != nil {
			t.Fatalf("Release: %v", err)
		}
		if !result.Success {
			t.Fatalf("reason = %s, want success", result.Reason)
		}
		stored, _ := listings.ByID(ctx, "lst-1")
		if len(stored.Intervals) != 0 {
			t.Fatalf("persisted intervals = %+v, want none", stored.Intervals)
		}
	})

	t.Run("missing interval", func(t *testing.T) {
		m, _ := newFixture(t, now)
		result, _ := m.ReleaseInterval(ctx, "lst-1", p)
		if result.Success || result.Reason != ReasonIntervalNotFound {
			t.Fatalf("reason = %s, want INTERVAL_NOT_FOUND", result.Reason)
		}
	})
}

func TestFindListingAndProperty(t *testing.T) {
	ctx := context.Background()
	m, _ := newFixture(t, ts(t, "2026-01-15T00:00:00Z"))

	l, err := m.FindListing(ctx, "lst-1")
	if err != nil {
		t.Fatalf("FindListing: %v", err)
	}
	if l == nil || l.ID != "lst-1" {
		t.Fatalf("listing = %+v, want lst-1", l)
	}

	missing, err := m.FindListing(ctx, "lst-missing")
	if err != nil {
		t.Fatalf("FindListing missing: %v", err)
	}
	if missing != nil {
		t.Fatalf("missing listing = %+v, want nil", missing)
	}

	exists, err := m.PropertyExists(ctx, "prop-missing")
	if err != nil {
		t.Fatalf("PropertyExists: %v", err)
	}
	if exists {
		t.Fatal("absent property reported as existing")
	}
}
