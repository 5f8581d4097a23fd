package domain

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// OuterScanDays bounds how far forward the proposal builder searches for a
// bookable slot before giving up (§4.9 outer scan limit).
const OuterScanDays = 180

// Proposal is one concrete bookable window: a start, an execution end, a
// buffer end, and (for multi-resource projects) the resources that were
// found eligible to staff it.
type Proposal struct {
	StartDate         Zoned
	Start             time.Time
	ExecutionEnd      time.Time
	BufferEnd         time.Time
	AssignedResources []uuid.UUID
	ThroughputDays    int
}

// ProposalSet is build_proposals' result: the earliest day the project could
// be booked at all, the earliest concrete proposal, and the proposal with
// the shortest throughput window found within the outer scan.
type ProposalSet struct {
	EarliestBookableDate       Zoned
	EarliestProposal           *Proposal
	ShortestThroughputProposal *Proposal
}

// BuildProposalsInput bundles the external records and clock build_proposals
// needs. Resources must already be resolved for every ID in Project.Resources.
type BuildProposalsInput struct {
	Project         *Project
	Professional    *Professional
	Resources       []*Resource
	Bookings        []*Booking
	CustomerBlocks  *CustomerBlocks
	SubprojectIndex *int
	Now             time.Time
	Logger          *slog.Logger
}

// BuildProposals is the build_proposals operation (§4.9): it resolves
// preparation end, aggregates blocks, and scans forward up to OuterScanDays
// calendar days branching on execution mode to find the earliest bookable
// date, the earliest concrete proposal, and the shortest-throughput proposal.
func BuildProposals(in BuildProposalsInput) (*ProposalSet, error) {
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

	isHoliday, err := holidayChecker(in.Professional, zone)
	if err != nil {
		return nil, err
	}

	prepEndZoned, err := CalculatePrepEnd(in.Now, preparation, zone, isHoliday)
	if err != nil {
		return nil, err
	}

	merged, perResource, err := AggregateBlocks(AggregationInput{
		Professional:   in.Professional,
		Resources:      in.Resources,
		Bookings:       in.Bookings,
		ProjectID:      in.Project.ID,
		CustomerBlocks: in.CustomerBlocks,
	})
	if err != nil {
		return nil, err
	}

	dayBlocked := func(day Zoned) (bool, error) {
		if in.Project.IsMultiResource() {
			return IsDayBlockedMultiResource(perResource, in.Project.Resources, in.Project.MinResources, day, availability, zone)
		}
		return IsDayBlocked(merged, day, availability, zone)
	}

	earliestBookableDate, err := AdvanceWorkingDays(DayStart(prepEndZoned), 1, dayBlocked)
	if err != nil {
		return nil, err
	}

	result := &ProposalSet{EarliestBookableDate: earliestBookableDate}

	prepEndInstant, err := FromZoned(prepEndZoned, zone)
	if err != nil {
		return nil, err
	}

	if execution.Hours() {
		day := earliestBookableDate
		for i := 0; i < OuterScanDays; i++ {
			slot, err := GenerateDaySlots(day, in.Project, execution, buffer, availability, zone, merged, perResource, prepEndInstant, logger)
			if err != nil {
				return nil, err
			}
			if slot != nil {
				proposal := &Proposal{
					StartDate:         DayStart(day),
					Start:             slot.Start,
					ExecutionEnd:      slot.ExecutionEnd,
					BufferEnd:         slot.BufferEnd,
					AssignedResources: slot.AssignedSubset,
				}
				result.EarliestProposal = proposal
				result.ShortestThroughputProposal = proposal
				break
			}
			day = AddDays(day, 1)
		}
		return result, nil
	}

	executionDays := execution.CeilDays()
	bufferCfg := WorkingHoursAdvance{Availability: availability, Zone: zone, MergedBlocks: merged}

	var shortestThroughput = -1
	day := earliestBookableDate
	for i := 0; i < OuterScanDays; i++ {
		blocked, err := dayBlocked(day)
		if err != nil {
			return nil, err
		}
		if blocked {
			day = AddDays(day, 1)
			continue
		}

		var assigned []uuid.UUID
		var executionEnd Zoned
		if in.Project.IsMultiResource() {
			subset, ok, err := FindFirstEligibleSubsetForDays(in.Project.Resources, in.Project.MinResources, in.Project.RequiredOverlap(), perResource, availability, zone, day, executionDays, logger)
			if err != nil {
				return nil, err
			}
			if !ok {
				day = AddDays(day, 1)
				continue
			}
			assigned = subset
			end, err := AdvanceWorkingDays(day, executionDays, func(d Zoned) (bool, error) {
				return IsDayBlockedMultiResource(perResource, subset, len(subset), d, availability, zone)
			})
			if err != nil {
				return nil, err
			}
			executionEnd = end
		} else {
			end, err := AdvanceWorkingDays(day, executionDays, dayBlocked)
			if err != nil {
				return nil, err
			}
			executionEnd = end
		}

		startInstant, err := ZonedAtMinutes(day, WorkingHours(availability, weekdayOf(day, zone)).StartMinutes, zone)
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

		throughputDays, err := CountWorkingDaysBetween(day, executionEnd, availability, zone)
		if err != nil {
			return nil, err
		}

		proposal := &Proposal{
			StartDate:         day,
			Start:             startInstant,
			ExecutionEnd:      executionEndInstant,
			BufferEnd:         bufferEndInstant,
			AssignedResources: assigned,
			ThroughputDays:    throughputDays,
		}
		if result.EarliestProposal == nil && throughputDays <= executionDays*2 {
			result.EarliestProposal = proposal
		}
		if throughputDays <= int(float64(executionDays)*1.2) &&
			(shortestThroughput == -1 || throughputDays < shortestThroughput) {
			shortestThroughput = throughputDays
			result.ShortestThroughputProposal = proposal
		}
		if result.EarliestProposal != nil && result.ShortestThroughputProposal != nil {
			break
		}

		day = AddDays(day, 1)
	}

	return result, nil
}
