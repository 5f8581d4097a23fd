package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustZoned(t *testing.T, instant time.Time, zone string) Zoned {
	t.Helper()
	z, err := ToZoned(instant, zone)
	require.NoError(t, err)
	return z
}

func TestIsDayBlockedByDateKey(t *testing.T) {
	set := BlockSet{Dates: map[string]struct{}{"2026-04-06": {}}}
	day := mustZoned(t, time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC), "UTC")
	blocked, err := IsDayBlocked(set, day, DefaultCalendar(), "UTC")
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestIsDayBlockedNonWorkingDay(t *testing.T) {
	set := newBlockSet()
	sunday := mustZoned(t, time.Date(2026, 4, 5, 0, 0, 0, 0, time.UTC), "UTC") // a Sunday
	blocked, err := IsDayBlocked(set, sunday, DefaultCalendar(), "UTC")
	require.NoError(t, err)
	assert.True(t, blocked)
}

func TestIsDayBlockedPartialBlockThreshold(t *testing.T) {
	day := mustZoned(t, time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC), "UTC") // a Monday

	t.Run("under threshold stays unblocked", func(t *testing.T) {
		set := newBlockSet()
		set.Ranges = []BlockedRange{{Range: mkRangeOn(day, 9, 12)}} // 3h < 4h
		blocked, err := IsDayBlocked(set, day, DefaultCalendar(), "UTC")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("at or over threshold blocks", func(t *testing.T) {
		set := newBlockSet()
		set.Ranges = []BlockedRange{{Range: mkRangeOn(day, 9, 13)}} // 4h
		blocked, err := IsDayBlocked(set, day, DefaultCalendar(), "UTC")
		require.NoError(t, err)
		assert.True(t, blocked)
	})

	t.Run("overlapping ranges merge before summing", func(t *testing.T) {
		set := newBlockSet()
		set.Ranges = []BlockedRange{
			{Range: mkRangeOn(day, 9, 12)},
			{Range: mkRangeOn(day, 11, 14)},
		} // merges to 9-14 = 5h
		blocked, err := IsDayBlocked(set, day, DefaultCalendar(), "UTC")
		require.NoError(t, err)
		assert.True(t, blocked)
	})
}

func mkRangeOn(day Zoned, startHour, endHour int) Range {
	base := time.Date(day.Year, time.Month(day.Month), day.Day, 0, 0, 0, 0, time.UTC)
	return Range{Start: base.Add(time.Duration(startHour) * time.Hour), End: base.Add(time.Duration(endHour) * time.Hour)}
}

func TestIsDayBlockedMultiResource(t *testing.T) {
	r1, r2, r3 := uuid.New(), uuid.New(), uuid.New()
	day := mustZoned(t, time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC), "UTC")

	blockedSet := newBlockSet()
	blockedSet.Dates["2026-04-06"] = struct{}{}
	openSet := newBlockSet()

	perResource := PerResourceBlocks{r1: blockedSet, r2: openSet, r3: openSet}

	t.Run("enough unblocked resources", func(t *testing.T) {
		blocked, err := IsDayBlockedMultiResource(perResource, []uuid.UUID{r1, r2, r3}, 2, day, DefaultCalendar(), "UTC")
		require.NoError(t, err)
		assert.False(t, blocked)
	})

	t.Run("not enough unblocked resources", func(t *testing.T) {
		blocked, err := IsDayBlockedMultiResource(perResource, []uuid.UUID{r1, r2, r3}, 3, day, DefaultCalendar(), "UTC")
		require.NoError(t, err)
		assert.True(t, blocked)
	})
}
