package timewindow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyMonthBuckets(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	cuts := MonthCuts(now, 3, 6, 12)

	tests := []struct {
		name string
		d    time.Time
		want Bucket
	}{
		{"yesterday", now.AddDate(0, 0, -1), BucketBeforeNow},
		{"exactly now", now, Bucket(0)},
		{"two months out", now.AddDate(0, 2, 0), Bucket(0)},
		{"four months out lands only in the middle bucket", now.AddDate(0, 4, 0), Bucket(1)},
		{"eight months out", now.AddDate(0, 8, 0), Bucket(2)},
		{"thirteen months out", now.AddDate(0, 13, 0), BucketBeyond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(now, tt.d, cuts))
		})
	}
}

func TestClassifyBoundaryBelongsToUpperBucket(t *testing.T) {
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	cuts := MonthCuts(now, 3, 6, 12)

	assert.Equal(t, Bucket(1), Classify(now, cuts[0], cuts))
	assert.Equal(t, Bucket(2), Classify(now, cuts[1], cuts))
	assert.Equal(t, BucketBeyond, Classify(now, cuts[2], cuts))
}

// Sweeping a date across the whole span must yield exactly one bucket per
// instant, with no gaps and no overlaps.
func TestClassifyDisjointCover(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cuts := MonthCuts(now, 3, 6, 12)

	seen := map[Bucket]int{}
	for offset := -30; offset <= 400; offset++ {
		d := now.AddDate(0, 0, offset)
		b := Classify(now, d, cuts)
		seen[b]++
		switch {
		case offset < 0:
			assert.Equal(t, BucketBeforeNow, b, "offset %d", offset)
		case offset >= 365: // 2026 has 365 days, so +12mo is day 365
			assert.Equal(t, BucketBeyond, b, "offset %d", offset)
		default:
			assert.True(t, b.InRange(), "offset %d got %v", offset, b)
		}
	}
	require.Len(t, seen, 5)
}

func TestClassifyDayCut(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	cuts := DurationCuts(now, 24*time.Hour)

	assert.Equal(t, Bucket(0), Classify(now, now.Add(30*time.Minute), cuts))
	assert.Equal(t, BucketBeforeNow, Classify(now, now.Add(-720*time.Hour), cuts))
	assert.Equal(t, BucketBeyond, Classify(now, now.Add(25*time.Hour), cuts))
}
