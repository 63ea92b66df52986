package period

import (
	"errors"
	"time"
)

var ErrInvalidPeriod = errors.New("period: end must be after start")

// Period represents a half-open interval [From, To).
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

func New(from, to time.Time) (Period, error) {
	p := Period{From: from.UTC(), To: to.UTC()}
	if err := p.Validate(); err != nil {
		return Period{}, err
	}
	return p, nil
}

func (p Period) Validate() error {
	if p.From.IsZero() || p.To.IsZero() {
		return ErrInvalidPeriod
	}
	if !p.To.After(p.From) {
		return ErrInvalidPeriod
	}
	return nil
}

func (p Period) Duration() time.Duration {
	return p.To.Sub(p.From)
}

// Nights counts full 24-hour spans covered by the period.
func (p Period) Nights() int {
	return int(p.To.Sub(p.From).Hours() / 24)
}

// Overlaps reports whether the two half-open intervals intersect.
// Touching boundaries do not overlap.
func (p Period) Overlaps(other Period) bool {
	return p.From.Before(other.To) && other.From.Before(p.To)
}

// Equal reports exact instant equality on both endpoints.
func (p Period) Equal(other Period) bool {
	return p.From.Equal(other.From) && p.To.Equal(other.To)
}
