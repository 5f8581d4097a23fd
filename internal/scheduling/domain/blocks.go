package domain

import (
	"time"

	"github.com/google/uuid"
)

// BlockSet is the merged shape: a blocked-dates set plus a blocked-ranges
// list, used in single-resource / strict-intersection mode.
type BlockSet struct {
	Dates  map[string]struct{}
	Ranges []BlockedRange
}

func newBlockSet() BlockSet {
	return BlockSet{Dates: make(map[string]struct{})}
}

// HasDate reports whether dateKey is in the blocked-dates set.
func (b BlockSet) HasDate(dateKey string) bool {
	_, ok := b.Dates[dateKey]
	return ok
}

// PlainRanges extracts the underlying Range values, discarding reason/holiday metadata.
func (b BlockSet) PlainRanges() []Range {
	out := make([]Range, len(b.Ranges))
	for i, r := range b.Ranges {
		out[i] = r.Range
	}
	return out
}

// PerResourceBlocks maps each project resource to its own BlockSet. Company
// and customer blocks are added to every entry; personal and
// booking-attributed blocks are resource-specific.
type PerResourceBlocks map[uuid.UUID]BlockSet

// AggregationInput bundles the sources block aggregation reads from.
type AggregationInput struct {
	Professional   *Professional
	Resources      []*Resource
	Bookings       []*Booking
	ProjectID      uuid.UUID
	CustomerBlocks *CustomerBlocks
	// ExcludeCustomerBlocks builds the buffer-arithmetic block set, which
	// honors company/personal/booking blocks but ignores customer restrictions.
	ExcludeCustomerBlocks bool
}

// AggregateBlocks builds the merged block set (always) and, when resources
// is non-empty, the per-resource block set. Company and customer blocks are
// added to both shapes and inherited by every per-resource entry.
func AggregateBlocks(in AggregationInput) (BlockSet, PerResourceBlocks, error) {
	zone := in.Professional.EffectiveTimeZone()

	merged := newBlockSet()
	if err := addCompanyBlocks(&merged, in.Professional, zone); err != nil {
		return BlockSet{}, nil, err
	}
	if !in.ExcludeCustomerBlocks {
		if err := addCustomerBlocks(&merged, in.CustomerBlocks, zone); err != nil {
			return BlockSet{}, nil, err
		}
	}

	var perResource PerResourceBlocks
	if len(in.Resources) > 0 {
		perResource = make(PerResourceBlocks, len(in.Resources))
		for _, res := range in.Resources {
			set := newBlockSet()
			if err := addCompanyBlocks(&set, in.Professional, zone); err != nil {
				return BlockSet{}, nil, err
			}
			if !in.ExcludeCustomerBlocks {
				if err := addCustomerBlocks(&set, in.CustomerBlocks, zone); err != nil {
					return BlockSet{}, nil, err
				}
			}
			if err := addPersonalBlocks(&set, res, zone); err != nil {
				return BlockSet{}, nil, err
			}
			addBookingBlocks(&set, in.Bookings, res.ID, in.ProjectID)
			perResource[res.ID] = set
		}
		// Single merged set also absorbs booking blocks for any resource, so
		// single-resource evaluators that fall back to the merged set still
		// see booking-derived blocks.
		for _, res := range in.Resources {
			addBookingBlocks(&merged, in.Bookings, res.ID, in.ProjectID)
			if err := addPersonalBlocks(&merged, res, zone); err != nil {
				return BlockSet{}, nil, err
			}
		}
	}

	return merged, perResource, nil
}

func addCompanyBlocks(set *BlockSet, prof *Professional, zone string) error {
	for _, d := range prof.CompanyBlockedDates {
		z, err := ToZoned(d.Date, zone)
		if err != nil {
			return err
		}
		set.Dates[FormatDateKey(z)] = struct{}{}
	}
	for _, r := range prof.CompanyBlockedRanges {
		end, err := NormalizeRangeEndInclusive(r.End, zone)
		if err != nil {
			return err
		}
		set.Ranges = append(set.Ranges, BlockedRange{
			Range:     Range{Start: r.Start, End: end},
			Reason:    r.Reason,
			IsHoliday: r.IsHoliday,
		})
	}
	holidayRanges, err := ExpandHolidayRules(prof.HolidayRules, zone)
	if err != nil {
		return err
	}
	set.Ranges = append(set.Ranges, holidayRanges...)
	return nil
}

func addCustomerBlocks(set *BlockSet, blocks *CustomerBlocks, zone string) error {
	if blocks == nil {
		return nil
	}
	for _, d := range blocks.Dates {
		z, err := ToZoned(d, zone)
		if err != nil {
			return err
		}
		set.Dates[FormatDateKey(z)] = struct{}{}
	}
	for _, w := range blocks.Windows {
		start, end, err := windowToRange(w, zone)
		if err != nil {
			return err
		}
		end, err = NormalizeRangeEndInclusive(end, zone)
		if err != nil {
			return err
		}
		set.Ranges = append(set.Ranges, BlockedRange{
			Range:  Range{Start: start, End: end},
			Reason: string(ReasonCustomerBlock),
		})
	}
	return nil
}

func windowToRange(w CustomerWindow, zone string) (time.Time, time.Time, error) {
	z, err := ToZoned(w.Date, zone)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	startMin, err := parseHHMM(w.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endMin, err := parseHHMM(w.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start, err := ZonedAtMinutes(z, startMin, zone)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ZonedAtMinutes(z, endMin, zone)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, end, nil
}

func addPersonalBlocks(set *BlockSet, res *Resource, zone string) error {
	for _, d := range res.BlockedDates {
		z, err := ToZoned(d.Date, zone)
		if err != nil {
			return err
		}
		set.Dates[FormatDateKey(z)] = struct{}{}
	}
	for _, r := range res.BlockedRanges {
		end, err := NormalizeRangeEndInclusive(r.End, zone)
		if err != nil {
			return err
		}
		set.Ranges = append(set.Ranges, BlockedRange{
			Range:     Range{Start: r.Start, End: end},
			Reason:    r.Reason,
			IsHoliday: r.IsHoliday,
		})
	}
	return nil
}

// addBookingBlocks appends execution (reason "booking") and, if present,
// buffer (reason "booking-buffer") ranges for every active booking that
// blocks resourceID under the attribution rule. Only bookings whose status
// is outside {completed, cancelled, refunded} and that carry a start plus
// either a buffer-end or execution-end are considered.
func addBookingBlocks(set *BlockSet, bookings []*Booking, resourceID, projectID uuid.UUID) {
	for _, b := range bookings {
		if !b.IsActive() || !b.BlocksResource(resourceID, projectID) {
			continue
		}
		if b.ExecutionEnd != nil {
			set.Ranges = append(set.Ranges, BlockedRange{
				Range:  Range{Start: *b.Start, End: *b.ExecutionEnd},
				Reason: string(ReasonBooking),
			})
		}
		if b.BufferEnd != nil {
			bufferStart := *b.Start
			if b.ExecutionEnd != nil {
				bufferStart = *b.ExecutionEnd
			}
			set.Ranges = append(set.Ranges, BlockedRange{
				Range:  Range{Start: bufferStart, End: *b.BufferEnd},
				Reason: string(ReasonBookingBuffer),
			})
		}
	}
}
