package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mkRange(startHour, endHour int) Range {
	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: day.Add(time.Duration(startHour) * time.Hour), End: day.Add(time.Duration(endHour) * time.Hour)}
}

func TestRangeOverlaps(t *testing.T) {
	a := mkRange(9, 12)
	assert.True(t, a.Overlaps(mkRange(11, 13)))
	assert.False(t, a.Overlaps(mkRange(12, 14))) // half-open, touching doesn't overlap
	assert.False(t, a.Overlaps(mkRange(6, 9)))
	assert.True(t, a.Overlaps(mkRange(9, 10)))
}

func TestRangeDuration(t *testing.T) {
	assert.Equal(t, 3*time.Hour, mkRange(9, 12).Duration())
	assert.Equal(t, time.Duration(0), mkRange(12, 9).Duration())
}

func TestRangeClipTo(t *testing.T) {
	r := mkRange(8, 16)
	clipped, ok := r.ClipTo(mkRange(10, 14))
	assert.True(t, ok)
	assert.Equal(t, mkRange(10, 14), clipped)

	clipped, ok = r.ClipTo(mkRange(6, 10))
	assert.True(t, ok)
	assert.Equal(t, mkRange(8, 10), clipped)

	_, ok = r.ClipTo(mkRange(16, 18))
	assert.False(t, ok)
}

func TestMergeRanges(t *testing.T) {
	ranges := []Range{mkRange(9, 11), mkRange(10, 12), mkRange(14, 16), mkRange(16, 18)}
	merged := MergeRanges(ranges)
	assert.Equal(t, []Range{mkRange(9, 12), mkRange(14, 18)}, merged)
}

func TestMergeRangesEmpty(t *testing.T) {
	assert.Nil(t, MergeRanges(nil))
}

func TestTotalDuration(t *testing.T) {
	ranges := []Range{mkRange(9, 11), mkRange(14, 16)}
	assert.Equal(t, 4*time.Hour, TotalDuration(ranges))
}

func TestAnyOverlaps(t *testing.T) {
	ranges := []Range{mkRange(9, 11), mkRange(14, 16)}
	assert.True(t, AnyOverlaps(ranges, mkRange(10, 12)))
	assert.False(t, AnyOverlaps(ranges, mkRange(12, 14)))
}

func TestBlockedRangeNormalizeEndInclusive(t *testing.T) {
	midnight := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	b := BlockedRange{Range: Range{Start: time.Date(2026, 1, 4, 9, 0, 0, 0, time.UTC), End: midnight}, Reason: string(ReasonCustomerBlock)}
	normalized, err := b.NormalizeEndInclusive("UTC")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC), normalized.End)
}
