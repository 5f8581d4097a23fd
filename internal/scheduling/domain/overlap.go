package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// SampleMinutes is the hours-mode sampling granularity (§4.8, §4.6).
const SampleMinutes = 30

// OverlapResult is the shared shape returned by both overlap modes.
type OverlapResult struct {
	OverlapPercentage float64
	CanComplete       bool
}

// DaysOverlap walks forward from candidateDay counting working days, and for
// each checks whether every subset member is unblocked at day granularity
// (§4.4). It stops when availableDays == executionDays (success) or the
// working-day counter reaches throughputLimit = max(executionDays,
// maxThroughputDays).
func DaysOverlap(perResource PerResourceBlocks, subset []uuid.UUID, availability CompanyAvailability, zone string, candidateDay Zoned, executionDays, maxThroughputDays int) (OverlapResult, error) {
	throughputLimit := executionDays
	if maxThroughputDays > throughputLimit {
		throughputLimit = maxThroughputDays
	}

	availableDays := 0
	workingDaysSeen := 0
	day := candidateDay

	for i := 0; i < MaxAdvanceIterations && workingDaysSeen < throughputLimit; i++ {
		t, err := FromZoned(day, zone)
		if err != nil {
			return OverlapResult{}, err
		}
		window := WorkingHours(availability, t.Weekday())
		if !window.IsEmpty() {
			workingDaysSeen++
			allUnblocked := true
			for _, id := range subset {
				set := perResource[id]
				blocked, err := IsDayBlocked(set, day, availability, zone)
				if err != nil {
					return OverlapResult{}, err
				}
				if blocked {
					allUnblocked = false
					break
				}
			}
			if allUnblocked {
				availableDays++
			}
			if availableDays == executionDays {
				break
			}
		}
		day = AddDays(day, 1)
	}

	pct := 0.0
	if executionDays > 0 {
		pct = float64(availableDays) / float64(executionDays) * 100
	}
	return OverlapResult{
		OverlapPercentage: pct,
		CanComplete:       availableDays >= executionDays,
	}, nil
}

// HoursOverlap samples the execution interval every 30 minutes and returns
// the percentage of samples where every subset member has a working
// weekday, the day not in its blocked-dates, and no blocked-range overlap
// with the sample sub-interval. Empty/reverse intervals return 100.
func HoursOverlap(perResource PerResourceBlocks, subset []uuid.UUID, window Range, availability CompanyAvailability, zone string) (OverlapResult, error) {
	totalMinutes := window.Duration().Minutes()
	if totalMinutes <= 0 {
		return OverlapResult{OverlapPercentage: 100, CanComplete: true}, nil
	}

	samples := int(math.Ceil(float64(totalMinutes) / SampleMinutes))
	available := 0

	for i := 0; i < samples; i++ {
		sampleStart := window.Start.Add(time.Duration(i*SampleMinutes) * time.Minute)
		sampleEnd := sampleStart.Add(SampleMinutes * time.Minute)
		if sampleEnd.After(window.End) {
			sampleEnd = window.End
		}
		sample := Range{Start: sampleStart, End: sampleEnd}

		sampleZoned, err := ToZoned(sampleStart, zone)
		if err != nil {
			return OverlapResult{}, err
		}
		weekday := time.Weekday(0)
		if t, err := FromZoned(sampleZoned, zone); err == nil {
			weekday = t.Weekday()
		}
		dateKey := FormatDateKey(sampleZoned)

		allAvailable := WorkingHours(availability, weekday).Available
		if allAvailable {
			for _, id := range subset {
				set, ok := perResource[id]
				if !ok || set.HasDate(dateKey) || AnyOverlaps(set.PlainRanges(), sample) {
					allAvailable = false
					break
				}
			}
		}
		if allAvailable {
			available++
		}
	}

	pct := float64(available) / float64(samples) * 100
	return OverlapResult{OverlapPercentage: pct, CanComplete: pct >= 100}, nil
}
