package listing

import "time"

// slidingWindow is the rolling horizon beyond which new holds may not start.
const slidingWindow = 365 * 24 * time.Hour

// WithinSlidingWindow reports whether a hold starting at from may be placed.
// Only the upper bound is enforced; start dates in the past always pass.
func WithinSlidingWindow(from, now time.Time) bool {
	return !from.After(now.Add(slidingWindow))
}
