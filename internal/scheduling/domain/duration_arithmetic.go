package domain

import (
	"time"
)

// MaxAdvanceIterations bounds AdvanceWorkingDays and AddWorkingHours against
// runaway iteration (§5 hard limits).
const MaxAdvanceIterations = 732

// DayBlockedFunc decides whether a calendar day (identified by its Zoned
// day-start) is blocked, for either the strict per-day single-resource
// evaluator or the multi-resource "at least minResources unblocked" evaluator.
type DayBlockedFunc func(day Zoned) (bool, error)

// AdvanceWorkingDays walks forward one calendar day at a time from
// startZoned, incrementing a counter each time the day is not blocked under
// evaluator, until n unblocked days have been counted. Day-level overlap
// percentage is intentionally not enforced here in multi-resource mode; it
// is only enforced at window level by FindFirstEligibleSubsetForDays.
func AdvanceWorkingDays(startZoned Zoned, n int, evaluator DayBlockedFunc) (Zoned, error) {
	day := startZoned
	counted := 0
	for i := 0; i < MaxAdvanceIterations; i++ {
		blocked, err := evaluator(day)
		if err != nil {
			return Zoned{}, err
		}
		if !blocked {
			counted++
			if counted >= n {
				return day, nil
			}
		}
		day = AddDays(day, 1)
	}
	return day, nil
}

// CountWorkingDaysBetween counts all working days from start to end
// (inclusive), regardless of block state: blocked days still consume
// throughput. Working-ness is a weekday+hours property, not a block-state one.
func CountWorkingDaysBetween(start, end Zoned, availability CompanyAvailability, zone string) (int, error) {
	count := 0
	day := start
	for i := 0; i < MaxAdvanceIterations; i++ {
		t, err := FromZoned(day, zone)
		if err != nil {
			return 0, err
		}
		window := WorkingHours(availability, t.Weekday())
		if !window.IsEmpty() {
			count++
		}
		if FormatDateKey(day) == FormatDateKey(end) {
			break
		}
		day = AddDays(day, 1)
	}
	return count, nil
}

// WorkingHoursAdvance is the per-day minute budget AddWorkingHours consumes from.
type WorkingHoursAdvance struct {
	Availability CompanyAvailability
	Zone         string
	MergedBlocks BlockSet
}

// AddWorkingHours walks forward from startZoned, for each day skipping to the
// next when blocked or outside working hours, otherwise consuming
// end-current minutes; when the remaining budget fits within what is
// available, it returns the clipped instant. Always respects mergedBlocks.
func AddWorkingHours(startZoned Zoned, hours float64, cfg WorkingHoursAdvance) (time.Time, error) {
	remaining := time.Duration(hours * float64(time.Hour))
	day := startZoned

	for i := 0; i < MaxAdvanceIterations; i++ {
		dayStartInstant, err := FromZoned(day, cfg.Zone)
		if err != nil {
			return time.Time{}, err
		}
		window := WorkingHours(cfg.Availability, dayStartInstant.Weekday())
		if window.IsEmpty() {
			day = AddDays(day, 1)
			continue
		}

		workStart, err := ZonedAtMinutes(day, window.StartMinutes, cfg.Zone)
		if err != nil {
			return time.Time{}, err
		}
		workEnd, err := ZonedAtMinutes(day, window.EndMinutes, cfg.Zone)
		if err != nil {
			return time.Time{}, err
		}

		cursor := workStart
		if i == 0 {
			sameDay, err := SameDateKey(startZonedInstant(startZoned, cfg.Zone), workStart, cfg.Zone)
			if err != nil {
				return time.Time{}, err
			}
			if sameDay {
				candidate, err := FromZoned(startZoned, cfg.Zone)
				if err != nil {
					return time.Time{}, err
				}
				if candidate.After(workStart) {
					cursor = candidate
				}
			}
		}
		if cursor.Before(workStart) {
			cursor = workStart
		}
		if !cursor.Before(workEnd) {
			day = AddDays(day, 1)
			continue
		}

		dayWindow := Range{Start: cursor, End: workEnd}
		available := subtractBlocked(dayWindow, cfg.MergedBlocks.PlainRanges())

		for _, seg := range available {
			segDuration := seg.Duration()
			if remaining <= segDuration {
				return seg.Start.Add(remaining), nil
			}
			remaining -= segDuration
		}

		day = AddDays(day, 1)
	}
	return time.Time{}, nil
}

func startZonedInstant(z Zoned, zone string) time.Time {
	t, _ := FromZoned(z, zone)
	return t
}

// subtractBlocked removes every blocked interval from window, returning the
// ordered list of free sub-ranges that remain, grounded on the gap-finding
// sweep used to compute available time between consecutive busy intervals.
func subtractBlocked(window Range, blocked []Range) []Range {
	merged := MergeRanges(blocked)
	var free []Range
	cursor := window.Start
	for _, b := range merged {
		c, ok := b.ClipTo(window)
		if !ok {
			continue
		}
		if c.Start.After(cursor) {
			free = append(free, Range{Start: cursor, End: c.Start})
		}
		if c.End.After(cursor) {
			cursor = c.End
		}
	}
	if cursor.Before(window.End) {
		free = append(free, Range{Start: cursor, End: window.End})
	}
	return free
}

// CalculatePrepEnd computes the earliest bookable day's start per §4.5.
// No preparation returns "now" as a Zoned value. Day-unit preparation
// consumes value whole working days, skipping weekends and holiday-flagged
// blocks, starting tomorrow if today's remaining prep-day window has
// already passed; it returns the next day's midnight after the last prep
// day. Hour-unit preparation walks forward consuming available minutes per
// default working day.
func CalculatePrepEnd(now time.Time, preparation *Duration, zone string, isHoliday func(Zoned) (bool, error)) (Zoned, error) {
	nowZoned, err := ToZoned(now, zone)
	if err != nil {
		return Zoned{}, err
	}
	if preparation == nil || preparation.IsZero() {
		return nowZoned, nil
	}

	if preparation.Days() {
		needed := preparation.CeilDays()
		day := nowZoned
		window := PrepWorkingHours(weekdayOf(day, zone))
		if !window.IsEmpty() {
			todayEnd, err := ZonedAtMinutes(day, window.EndMinutes, zone)
			if err != nil {
				return Zoned{}, err
			}
			nowInstant, err := FromZoned(nowZoned, zone)
			if err != nil {
				return Zoned{}, err
			}
			if nowInstant.After(todayEnd) {
				day = AddDays(day, 1)
			}
		} else {
			day = AddDays(day, 1)
		}

		counted := 0
		for i := 0; i < MaxAdvanceIterations && counted < needed; i++ {
			window := PrepWorkingHours(weekdayOf(day, zone))
			holiday, err := isHolidaySafe(isHoliday, day)
			if err != nil {
				return Zoned{}, err
			}
			if !window.IsEmpty() && !holiday {
				counted++
				if counted >= needed {
					return DayStart(AddDays(day, 1)), nil
				}
			}
			day = AddDays(day, 1)
		}
		return DayStart(day), nil
	}

	// Hours mode: walk forward consuming available prep minutes per default
	// working day.
	remaining := time.Duration(preparation.Value * float64(time.Hour))
	day := nowZoned
	for i := 0; i < MaxAdvanceIterations; i++ {
		window := PrepWorkingHours(weekdayOf(day, zone))
		if window.IsEmpty() {
			day = AddDays(day, 1)
			continue
		}
		holiday, err := isHolidaySafe(isHoliday, day)
		if err != nil {
			return Zoned{}, err
		}
		if holiday {
			day = AddDays(day, 1)
			continue
		}

		workStart, err := ZonedAtMinutes(day, window.StartMinutes, zone)
		if err != nil {
			return Zoned{}, err
		}
		workEnd, err := ZonedAtMinutes(day, window.EndMinutes, zone)
		if err != nil {
			return Zoned{}, err
		}
		cursor := workStart
		if i == 0 {
			nowInstant, err := FromZoned(nowZoned, zone)
			if err != nil {
				return Zoned{}, err
			}
			if nowInstant.After(cursor) {
				cursor = nowInstant
			}
		}
		if !cursor.Before(workEnd) {
			day = AddDays(day, 1)
			continue
		}

		available := workEnd.Sub(cursor)
		if remaining <= available {
			end, err := ToZoned(cursor.Add(remaining), zone)
			if err != nil {
				return Zoned{}, err
			}
			return end, nil
		}
		remaining -= available
		day = AddDays(day, 1)
	}
	return day, nil
}

func isHolidaySafe(isHoliday func(Zoned) (bool, error), day Zoned) (bool, error) {
	if isHoliday == nil {
		return false, nil
	}
	return isHoliday(day)
}

func weekdayOf(z Zoned, zone string) time.Weekday {
	t, err := FromZoned(z, zone)
	if err != nil {
		return time.Sunday
	}
	return t.Weekday()
}

// ExecutionMode is hours or days, matching the GLOSSARY's "Execution mode".
type ExecutionMode string

const (
	ModeHours ExecutionMode = "hours"
	ModeDays  ExecutionMode = "days"
)

// CalculateBufferEnd computes the buffer-end instant per §4.5. No buffer
// returns executionEndZoned unchanged. In hours/hours mode the buffer starts
// exactly at execution end; otherwise it starts at the next day's midnight.
// Hour buffers extend via AddWorkingHours; day buffers advance
// ceil(value) working days then clamp to that day's working end.
func CalculateBufferEnd(executionEndZoned Zoned, buffer *Duration, mode ExecutionMode, cfg WorkingHoursAdvance, evaluator DayBlockedFunc) (Zoned, error) {
	if buffer == nil || buffer.IsZero() {
		return executionEndZoned, nil
	}

	var bufferStart Zoned
	if mode == ModeHours && buffer.Hours() {
		bufferStart = executionEndZoned
	} else {
		bufferStart = DayStart(AddDays(executionEndZoned, 1))
	}

	if buffer.Hours() {
		end, err := AddWorkingHours(bufferStart, buffer.Value, cfg)
		if err != nil {
			return Zoned{}, err
		}
		return ToZoned(end, cfg.Zone)
	}

	days := buffer.CeilDays()
	end, err := AdvanceWorkingDays(bufferStart, days, evaluator)
	if err != nil {
		return Zoned{}, err
	}
	window := WorkingHours(cfg.Availability, weekdayOf(end, cfg.Zone))
	if window.IsEmpty() {
		return end, nil
	}
	clampedInstant, err := ZonedAtMinutes(end, window.EndMinutes, cfg.Zone)
	if err != nil {
		return Zoned{}, err
	}
	return ToZoned(clampedInstant, cfg.Zone)
}
