package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeRange is returned when a range's end is not after its start.
var ErrInvalidTimeRange = errors.New("domain: time range end must be after start")

// TimeRange represents a half-open scheduling interval [Start, End).
// The start instant belongs to the range, the end instant does not, which
// makes back-to-back reservations ([9:00, 11:00) and [11:00, 13:00)) legal.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange builds a validated half-open interval.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() {
		return TimeRange{}, fmt.Errorf("%w: start and end are required", ErrInvalidTimeRange)
	}
	if !end.After(start) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Overlaps reports whether two half-open intervals intersect.
// Strict inequalities: ranges that merely touch at a boundary do not overlap.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && r.End.After(other.Start)
}

// Duration returns the length of the interval.
func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// IsZero reports whether the range is unset.
func (r TimeRange) IsZero() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r TimeRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start.Format(time.RFC3339), r.End.Format(time.RFC3339))
}
