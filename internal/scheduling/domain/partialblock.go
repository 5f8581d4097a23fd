package domain

import (
	"time"

	"github.com/google/uuid"
)

// PartialBlockThreshold is the "4-hour rule": a day is blocked for a resource
// when its blocked ranges, clipped to the working window, union to at least
// this much time.
const PartialBlockThreshold = 4 * time.Hour

// IsDayBlocked implements the per-resource, per-day partial-block evaluator
// (§4.4, GLOSSARY "Blocked day (single-resource)"). A day is blocked when:
// its date-key is in blockedDates, or the weekday is not a working day, or
// the blocked ranges clipped to the working window union to >= 4 hours.
// Overlapping ranges are merged by sort-then-sweep before summing.
func IsDayBlocked(set BlockSet, day Zoned, availability CompanyAvailability, zone string) (bool, error) {
	dateKey := FormatDateKey(day)
	if set.HasDate(dateKey) {
		return true, nil
	}

	weekday := time.Weekday(dayWeekday(day, zone))
	window := WorkingHours(availability, weekday)
	if window.IsEmpty() {
		return true, nil
	}

	workStart, err := ZonedAtMinutes(day, window.StartMinutes, zone)
	if err != nil {
		return false, err
	}
	workEnd, err := ZonedAtMinutes(day, window.EndMinutes, zone)
	if err != nil {
		return false, err
	}
	workWindow := Range{Start: workStart, End: workEnd}

	var clipped []Range
	for _, br := range set.Ranges {
		if c, ok := br.Range.ClipTo(workWindow); ok {
			clipped = append(clipped, c)
		}
	}
	merged := MergeRanges(clipped)
	return TotalDuration(merged) >= PartialBlockThreshold, nil
}

// dayWeekday resolves the weekday of a zoned value by round-tripping through
// FromZoned; callers that already hold a time.Time should prefer t.Weekday().
func dayWeekday(z Zoned, zone string) time.Weekday {
	t, err := FromZoned(z, zone)
	if err != nil {
		return time.Sunday
	}
	return t.Weekday()
}

// IsDayBlockedMultiResource implements the multi-resource "Blocked day"
// definition: a day on which fewer than minResources resources are
// unblocked, each evaluated per IsDayBlocked.
func IsDayBlockedMultiResource(perResource PerResourceBlocks, resourceIDs []uuid.UUID, minResources int, day Zoned, availability CompanyAvailability, zone string) (bool, error) {
	available := 0
	for _, id := range resourceIDs {
		set, ok := perResource[id]
		if !ok {
			continue
		}
		blocked, err := IsDayBlocked(set, day, availability, zone)
		if err != nil {
			return false, err
		}
		if !blocked {
			available++
		}
	}
	return available < minResources, nil
}
