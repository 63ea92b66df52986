package period

import (
	"errors"
	"testing"
	"time"
)

func mustPeriod(t *testing.T, from, to string) Period {
	t.Helper()
	p, err := New(parse(t, from), parse(t, to))
	if err != nil {
		t.Fatalf("New(%s, %s): %v", from, to, err)
	}
	return p
}

func parse(t *testing.T, raw string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		t.Fatalf("parse %s: %v", raw, err)
	}
	return ts
}

func TestNewRejectsInvalid(t *testing.T) {
	from := parse(t, "2026-03-05T00:00:00Z")

	if _, err := New(from, from); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("zero-length period: got %v, want ErrInvalidPeriod", err)
	}
	if _, err := New(from, from.Add(-time.Hour)); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("inverted period: got %v, want ErrInvalidPeriod", err)
	}
	if _, err := New(time.Time{}, from); !errors.Is(err, ErrInvalidPeriod) {
		t.Fatalf("zero from: got %v, want ErrInvalidPeriod", err)
	}
}

func TestOverlaps(t *testing.T) {
	base := mustPeriod(t, "2026-03-05T00:00:00Z", "2026-03-10T00:00:00Z")

	cases := []struct {
		name  string
		other Period
		want  bool
	}{
		{"identical", mustPeriod(t, "2026-03-05T00:00:00Z", "2026-03-10T00:00:00Z"), true},
		{"contained", mustPeriod(t, "2026-03-06T00:00:00Z", "2026-03-07T00:00:00Z"), true},
		{"overlapping start", mustPeriod(t, "2026-03-01T00:00:00Z", "2026-03-06T00:00:00Z"), true},
		{"overlapping end", mustPeriod(t, "2026-03-09T00:00:00Z", "2026-03-15T00:00:00Z"), true},
		{"touching before", mustPeriod(t, "2026-03-01T00:00:00Z", "2026-03-05T00:00:00Z"), false},
		{"touching after", mustPeriod(t, "2026-03-10T00:00:00Z", "2026-03-15T00:00:00Z"), false},
		{"disjoint", mustPeriod(t, "2026-04-01T00:00:00Z", "2026-04-05T00:00:00Z"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Overlaps(tc.other); got != tc.want {
				t.Fatalf("Overlaps = %v, want %v", got, tc.want)
			}
			if got := tc.other.Overlaps(base); got != tc.want {
				t.Fatalf("Overlaps (reversed) = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNights(t *testing.T) {
	p := mustPeriod(t, "2026-03-05T00:00:00Z", "2026-03-10T00:00:00Z")
	if got := p.Nights(); got != 5 {
		t.Fatalf("Nights = %d, want 5", got)
	}
	short := mustPeriod(t, "2026-03-05T10:00:00Z", "2026-03-06T10:00:00Z")
	if got := short.Nights(); got != 1 {
		t.Fatalf("Nights = %d, want 1", got)
	}
}

func TestEqualIsExact(t *testing.T) {
	p := mustPeriod(t, "2026-03-05T00:00:00Z", "2026-03-10T00:00:00Z")
	same := mustPeriod(t, "2026-03-05T00:00:00Z", "2026-03-10T00:00:00Z")
	shifted := Period{From: p.From.Add(time.Millisecond), To: p.To}

	if !p.Equal(same) {
		t.Fatal("identical periods should be equal")
	}
	if p.Equal(shifted) {
		t.Fatal("millisecond-shifted period should not be equal")
	}
}
