// Package timewindow buckets a date into an ordered, mutually exclusive set
// of relative-time ranges. Pure functions only; the reference instant is
// always passed in, never read from the global clock.
package timewindow

import "time"

// Bucket identifies which half-open range a date falls into. Non-negative
// values index the cut-point slice: bucket i covers [cuts[i-1], cuts[i])
// with the reference instant standing in for cuts[-1]. Dates outside the
// covered span classify as one of the two sentinel values.
type Bucket int

const (
	BucketBeforeNow Bucket = -1
	BucketBeyond    Bucket = -2
)

// InRange reports whether the bucket is a real range rather than a sentinel.
func (b Bucket) InRange() bool {
	return b >= 0
}

// Classify places d into exactly one bucket relative to now. cuts must be
// strictly ascending and later than now; a date equal to a cut point belongs
// to the bucket above it.
func Classify(now, d time.Time, cuts []time.Time) Bucket {
	if d.Before(now) {
		return BucketBeforeNow
	}
	for i, cut := range cuts {
		if d.Before(cut) {
			return Bucket(i)
		}
	}
	return BucketBeyond
}

// MonthCuts builds cut points at the given calendar-month offsets from now.
func MonthCuts(now time.Time, months ...int) []time.Time {
	cuts := make([]time.Time, 0, len(months))
	for _, m := range months {
		cuts = append(cuts, now.AddDate(0, m, 0))
	}
	return cuts
}

// DurationCuts builds cut points at the given duration offsets from now.
func DurationCuts(now time.Time, offsets ...time.Duration) []time.Time {
	cuts := make([]time.Time, 0, len(offsets))
	for _, d := range offsets {
		cuts = append(cuts, now.Add(d))
	}
	return cuts
}
