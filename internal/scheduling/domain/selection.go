package domain

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ValidateSelectionInput bundles the external records plus the customer's
// concrete start selection that validate_selection checks.
type ValidateSelectionInput struct {
	Project         *Project
	Professional    *Professional
	Resources       []*Resource
	Bookings        []*Booking
	CustomerBlocks  *CustomerBlocks
	SubprojectIndex *int
	Now             time.Time
	Start           time.Time
	Logger          *slog.Logger
}

// ValidationResult is validate_selection's outcome: either a populated
// Window, or Valid=false with a stable Reason string.
type ValidationResult struct {
	Valid  bool
	Reason string
	Window *Proposal
}

// ValidateSelection is the validate_selection operation (§4.10): it checks
// the customer's chosen start against working-day membership, the
// preparation floor, block state, and (for multi-resource projects) team
// overlap, then computes the concrete window on success.
func ValidateSelection(in ValidateSelectionInput) (*ValidationResult, error) {
	if in.Project == nil {
		return nil, ErrProjectNotFound
	}
	if in.Professional == nil {
		return nil, ErrProfessionalNotFound
	}
	execution, preparation, buffer := in.Project.ForSubproject(in.SubprojectIndex)
	if execution.IsZero() {
		return nil, ErrMissingExecutionDuration
	}
	if in.Project.IsMultiResource() && len(in.Resources) == 0 {
		return nil, ErrNoResources
	}

	logger := in.Logger
	if logger == nil {
		logger = slog.Default()
	}
	zone := in.Professional.EffectiveTimeZone()
	availability := in.Professional.CompanyAvailability

	startZoned, err := ToZoned(in.Start, zone)
	if err != nil {
		return nil, err
	}
	weekday := weekdayOf(startZoned, zone)
	if WorkingHours(availability, weekday).IsEmpty() {
		return &ValidationResult{Valid: false, Reason: string(ReasonNotAWorkingDay)}, nil
	}

	isHoliday, err := holidayChecker(in.Professional, zone)
	if err != nil {
		return nil, err
	}
	prepEndZoned, err := CalculatePrepEnd(in.Now, preparation, zone, isHoliday)
	if err != nil {
		return nil, err
	}
	prepEndInstant, err := FromZoned(prepEndZoned, zone)
	if err != nil {
		return nil, err
	}
	if in.Start.Before(prepEndInstant) {
		return &ValidationResult{Valid: false, Reason: string(ReasonStartBeforePrep)}, nil
	}

	fullBlocks := AggregationInput{
		Professional:   in.Professional,
		Resources:      in.Resources,
		Bookings:       in.Bookings,
		ProjectID:      in.Project.ID,
		CustomerBlocks: in.CustomerBlocks,
	}
	mergedFull, perResourceFull, err := AggregateBlocks(fullBlocks)
	if err != nil {
		return nil, err
	}
	noCustomer := fullBlocks
	noCustomer.ExcludeCustomerBlocks = true
	mergedNoCustomer, perResourceNoCustomer, err := AggregateBlocks(noCustomer)
	if err != nil {
		return nil, err
	}

	var assigned []uuid.UUID

	dayStart := DayStart(startZoned)
	bufferCfg := WorkingHoursAdvance{Availability: availability, Zone: zone, MergedBlocks: mergedNoCustomer}
	dayBlockedNoCustomer := func(day Zoned) (bool, error) {
		return IsDayBlocked(mergedNoCustomer, day, availability, zone)
	}
	if in.Project.IsMultiResource() {
		dayBlockedNoCustomer = func(day Zoned) (bool, error) {
			return IsDayBlockedMultiResource(perResourceNoCustomer, assigned, len(assigned), day, availability, zone)
		}
	}

	if execution.Hours() {
		executionSpan := time.Duration(execution.Value * float64(time.Hour))
		executionEnd := in.Start.Add(executionSpan)
		executionWindow := Range{Start: in.Start, End: executionEnd}

		if !in.Project.IsMultiResource() {
			if AnyOverlaps(mergedFull.PlainRanges(), executionWindow) {
				return &ValidationResult{Valid: false, Reason: string(ReasonSlotNotAvailable)}, nil
			}
		} else {
			var bufferWindow *Range
			if buffer != nil && buffer.Hours() {
				bw := Range{Start: executionEnd, End: executionEnd.Add(time.Duration(buffer.Value * float64(time.Hour)))}
				bufferWindow = &bw
			}
			subset, ok, err := FindFirstEligibleSubsetForHours(in.Project.Resources, in.Project.MinResources, in.Project.RequiredOverlap(), perResourceFull, executionWindow, bufferWindow, availability, zone, logger)
			if err != nil {
				return nil, err
			}
			if !ok {
				return &ValidationResult{Valid: false, Reason: string(ReasonNotEnoughResources)}, nil
			}
			assigned = subset
		}

		executionEndZoned, err := ToZoned(executionEnd, zone)
		if err != nil {
			return nil, err
		}
		bufferEndZoned, err := CalculateBufferEnd(executionEndZoned, buffer, ModeHours, bufferCfg, dayBlockedNoCustomer)
		if err != nil {
			return nil, err
		}
		bufferEndInstant, err := FromZoned(bufferEndZoned, zone)
		if err != nil {
			return nil, err
		}

		return &ValidationResult{Valid: true, Window: &Proposal{
			StartDate:         dayStart,
			Start:             in.Start,
			ExecutionEnd:      executionEnd,
			BufferEnd:         bufferEndInstant,
			AssignedResources: assigned,
		}}, nil
	}

	dayBlockedFull := func(day Zoned) (bool, error) {
		if in.Project.IsMultiResource() {
			return IsDayBlockedMultiResource(perResourceFull, in.Project.Resources, in.Project.MinResources, day, availability, zone)
		}
		return IsDayBlocked(mergedFull, day, availability, zone)
	}
	blocked, err := dayBlockedFull(dayStart)
	if err != nil {
		return nil, err
	}
	if blocked {
		reason := ReasonDateBlocked
		if in.Project.IsMultiResource() {
			reason = ReasonNotEnoughResources
		}
		return &ValidationResult{Valid: false, Reason: string(reason)}, nil
	}

	executionDays := execution.CeilDays()
	var executionEnd Zoned
	if in.Project.IsMultiResource() {
		subset, ok, err := FindFirstEligibleSubsetForDays(in.Project.Resources, in.Project.MinResources, in.Project.RequiredOverlap(), perResourceFull, availability, zone, dayStart, executionDays, logger)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &ValidationResult{Valid: false, Reason: string(ReasonNotEnoughResources)}, nil
		}
		assigned = subset
		end, err := AdvanceWorkingDays(dayStart, executionDays, func(d Zoned) (bool, error) {
			return IsDayBlockedMultiResource(perResourceFull, assigned, len(assigned), d, availability, zone)
		})
		if err != nil {
			return nil, err
		}
		executionEnd = end
	} else {
		end, err := AdvanceWorkingDays(dayStart, executionDays, dayBlockedFull)
		if err != nil {
			return nil, err
		}
		executionEnd = end
	}

	executionEndInstant, err := ZonedAtMinutes(executionEnd, WorkingHours(availability, weekdayOf(executionEnd, zone)).EndMinutes, zone)
	if err != nil {
		return nil, err
	}
	executionEndZoned, err := ToZoned(executionEndInstant, zone)
	if err != nil {
		return nil, err
	}
	bufferEndZoned, err := CalculateBufferEnd(executionEndZoned, buffer, ModeDays, bufferCfg, dayBlockedNoCustomer)
	if err != nil {
		return nil, err
	}
	bufferEndInstant, err := FromZoned(bufferEndZoned, zone)
	if err != nil {
		return nil, err
	}

	return &ValidationResult{Valid: true, Window: &Proposal{
		StartDate:         dayStart,
		Start:             in.Start,
		ExecutionEnd:      executionEndInstant,
		BufferEnd:         bufferEndInstant,
		AssignedResources: assigned,
	}}, nil
}

// holidayChecker builds the isHoliday predicate CalculatePrepEnd needs, from
// a professional's recurring holiday rules plus any blocked range explicitly
// flagged IsHoliday.
func holidayChecker(prof *Professional, zone string) (func(Zoned) (bool, error), error) {
	holidayRanges, err := ExpandHolidayRules(prof.HolidayRules, zone)
	if err != nil {
		return nil, err
	}
	for _, r := range prof.CompanyBlockedRanges {
		if r.IsHoliday {
			holidayRanges = append(holidayRanges, BlockedRange{Range: Range{Start: r.Start, End: r.End}, IsHoliday: true})
		}
	}
	return func(day Zoned) (bool, error) {
		dayStart, err := FromZoned(day, zone)
		if err != nil {
			return false, err
		}
		dayEnd, err := FromZoned(DayStart(AddDays(day, 1)), zone)
		if err != nil {
			return false, err
		}
		dayRange := Range{Start: dayStart, End: dayEnd}
		for _, hr := range holidayRanges {
			if hr.Overlaps(dayRange) {
				return true, nil
			}
		}
		return false, nil
	}, nil
}

// BuildWindowInput mirrors ValidateSelectionInput for a start already known
// to be valid (build_window skips every validity gate and only computes the
// concrete execution/buffer window).
type BuildWindowInput struct {
	Project         *Project
	Professional    *Professional
	Resources       []*Resource
	Bookings        []*Booking
	CustomerBlocks  *CustomerBlocks
	SubprojectIndex *int
	Start           time.Time
	Logger          *slog.Logger
}

// BuildWindow is the build_window operation (§4.10): given a start already
// accepted by validate_selection, it recomputes the execution-end and
// buffer-end instants without re-checking block state or team overlap.
func BuildWindow(in BuildWindowInput) (*Proposal, error) {
	if in.Project == nil {
		return nil, ErrProjectNotFound
	}
	if in.Professional == nil {
		return nil, ErrProfessionalNotFound
	}
	execution, _, buffer := in.Project.ForSubproject(in.SubprojectIndex)
	if execution.IsZero() {
		return nil, ErrMissingExecutionDuration
	}

	logger := in.Logger
	if logger == nil {
		logger = slog.Default()
	}
	zone := in.Professional.EffectiveTimeZone()
	availability := in.Professional.CompanyAvailability
	startZoned, err := ToZoned(in.Start, zone)
	if err != nil {
		return nil, err
	}

	noCustomer := AggregationInput{
		Professional:          in.Professional,
		Resources:             in.Resources,
		Bookings:              in.Bookings,
		ProjectID:             in.Project.ID,
		CustomerBlocks:        in.CustomerBlocks,
		ExcludeCustomerBlocks: true,
	}
	mergedNoCustomer, perResourceNoCustomer, err := AggregateBlocks(noCustomer)
	if err != nil {
		return nil, err
	}

	var assigned []uuid.UUID
	bufferCfg := WorkingHoursAdvance{Availability: availability, Zone: zone, MergedBlocks: mergedNoCustomer}
	dayBlocked := func(day Zoned) (bool, error) {
		if in.Project.IsMultiResource() {
			return IsDayBlockedMultiResource(perResourceNoCustomer, assigned, len(assigned), day, availability, zone)
		}
		return IsDayBlocked(mergedNoCustomer, day, availability, zone)
	}

	if execution.Hours() {
		executionEnd := in.Start.Add(time.Duration(execution.Value * float64(time.Hour)))
		if in.Project.IsMultiResource() {
			executionWindow := Range{Start: in.Start, End: executionEnd}
			var bufferWindow *Range
			if buffer != nil && buffer.Hours() {
				bw := Range{Start: executionEnd, End: executionEnd.Add(time.Duration(buffer.Value * float64(time.Hour)))}
				bufferWindow = &bw
			}
			subset, _, err := FindFirstEligibleSubsetForHours(in.Project.Resources, in.Project.MinResources, in.Project.RequiredOverlap(), perResourceNoCustomer, executionWindow, bufferWindow, availability, zone, logger)
			if err != nil {
				return nil, err
			}
			assigned = subset
		}
		executionEndZoned, err := ToZoned(executionEnd, zone)
		if err != nil {
			return nil, err
		}
		bufferEndZoned, err := CalculateBufferEnd(executionEndZoned, buffer, ModeHours, bufferCfg, dayBlocked)
		if err != nil {
			return nil, err
		}
		bufferEndInstant, err := FromZoned(bufferEndZoned, zone)
		if err != nil {
			return nil, err
		}
		return &Proposal{
			StartDate:         DayStart(startZoned),
			Start:             in.Start,
			ExecutionEnd:      executionEnd,
			BufferEnd:         bufferEndInstant,
			AssignedResources: assigned,
		}, nil
	}

	executionDays := execution.CeilDays()
	if in.Project.IsMultiResource() {
		subset, _, err := FindFirstEligibleSubsetForDays(in.Project.Resources, in.Project.MinResources, in.Project.RequiredOverlap(), perResourceNoCustomer, availability, zone, DayStart(startZoned), executionDays, logger)
		if err != nil {
			return nil, err
		}
		assigned = subset
	}
	executionEnd, err := AdvanceWorkingDays(DayStart(startZoned), executionDays, dayBlocked)
	if err != nil {
		return nil, err
	}
	executionEndInstant, err := ZonedAtMinutes(executionEnd, WorkingHours(availability, weekdayOf(executionEnd, zone)).EndMinutes, zone)
	if err != nil {
		return nil, err
	}
	executionEndZoned, err := ToZoned(executionEndInstant, zone)
	if err != nil {
		return nil, err
	}
	bufferEndZoned, err := CalculateBufferEnd(executionEndZoned, buffer, ModeDays, bufferCfg, dayBlocked)
	if err != nil {
		return nil, err
	}
	bufferEndInstant, err := FromZoned(bufferEndZoned, zone)
	if err != nil {
		return nil, err
	}
	return &Proposal{
		StartDate:         DayStart(startZoned),
		Start:             in.Start,
		ExecutionEnd:      executionEndInstant,
		BufferEnd:         bufferEndInstant,
		AssignedResources: assigned,
	}, nil
}
