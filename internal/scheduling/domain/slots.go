package domain

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Slot is one candidate hours-mode start time, with the resolved subset of
// resources (nil/empty for single-resource projects) that can staff it.
type Slot struct {
	Start           time.Time
	ExecutionEnd    time.Time
	BufferEnd       time.Time
	AssignedSubset  []uuid.UUID
}

// GenerateDaySlots enumerates 30-minute-aligned candidate starts within day's
// working window (§4.6). A candidate is accepted when its execution window
// (and, if present, its buffer window) fits entirely inside the working
// window and clears the block check: for single-resource projects that means
// no overlap with merged; for multi-resource projects it means
// FindFirstEligibleSubsetForHours finds a subset meeting the required
// overlap. The first accepted candidate is returned; callers that need the
// earliest slot should call this once per day in ascending day order.
func GenerateDaySlots(
	day Zoned,
	project *Project,
	execution Duration,
	buffer *Duration,
	availability CompanyAvailability,
	zone string,
	merged BlockSet,
	perResource PerResourceBlocks,
	notBefore time.Time,
	logger *slog.Logger,
) (*Slot, error) {
	t, err := FromZoned(day, zone)
	if err != nil {
		return nil, err
	}
	window := WorkingHours(availability, t.Weekday())
	if window.IsEmpty() {
		return nil, nil
	}

	workStart, err := ZonedAtMinutes(day, window.StartMinutes, zone)
	if err != nil {
		return nil, err
	}
	workEnd, err := ZonedAtMinutes(day, window.EndMinutes, zone)
	if err != nil {
		return nil, err
	}

	cursorStart := workStart
	if !notBefore.IsZero() && notBefore.After(cursorStart) {
		sameDay, err := SameDateKey(notBefore, workStart, zone)
		if err != nil {
			return nil, err
		}
		if sameDay {
			step := SampleMinutes * time.Minute
			elapsed := notBefore.Sub(workStart)
			steps := elapsed / step
			if elapsed%step != 0 {
				steps++
			}
			if raised := workStart.Add(steps * step); raised.After(cursorStart) {
				cursorStart = raised
			}
		}
	}

	executionSpan := time.Duration(execution.Value * float64(time.Hour))
	var bufferSpan time.Duration
	if buffer != nil && buffer.Hours() {
		bufferSpan = time.Duration(buffer.Value * float64(time.Hour))
	}

	for cursor := cursorStart; !cursor.Add(executionSpan).After(workEnd); cursor = cursor.Add(SampleMinutes * time.Minute) {
		executionEnd := cursor.Add(executionSpan)
		executionWindow := Range{Start: cursor, End: executionEnd}

		var bufferWindow *Range
		bufferEnd := executionEnd
		if bufferSpan > 0 {
			bw := Range{Start: executionEnd, End: executionEnd.Add(bufferSpan)}
			if bw.End.After(workEnd) {
				continue
			}
			bufferWindow = &bw
			bufferEnd = bw.End
		}

		if !project.IsMultiResource() {
			if AnyOverlaps(merged.PlainRanges(), executionWindow) {
				continue
			}
			if bufferWindow != nil && AnyOverlaps(merged.PlainRanges(), *bufferWindow) {
				continue
			}
			return &Slot{Start: cursor, ExecutionEnd: executionEnd, BufferEnd: bufferEnd}, nil
		}

		subset, ok, err := FindFirstEligibleSubsetForHours(
			project.Resources,
			project.MinResources,
			project.RequiredOverlap(),
			perResource,
			executionWindow,
			bufferWindow,
			availability,
			zone,
			logger,
		)
		if err != nil {
			return nil, err
		}
		if ok {
			return &Slot{Start: cursor, ExecutionEnd: executionEnd, BufferEnd: bufferEnd, AssignedSubset: subset}, nil
		}
	}

	return nil, nil
}
