package domain

import (
	"time"

	"github.com/google/uuid"
)

// CompanyBlockedDate is a full-day block on the company calendar.
type CompanyBlockedDate struct {
	Date      time.Time
	IsHoliday bool
	Reason    string
}

// CompanyBlockedRange is a start/end block on the company calendar.
type CompanyBlockedRange struct {
	Start     time.Time
	End       time.Time
	IsHoliday bool
	Reason    string
}

// HolidayRule expands, via RRULE, into concrete BlockedRange entries
// with IsHoliday set. See ExpandHolidayRules.
type HolidayRule struct {
	RRule    string
	Reason   string
	AllDay   bool
	TimeZone string
}

// Professional owns a working calendar: a per-weekday override, company-wide
// blocked dates/ranges, and optional recurring holiday rules.
type Professional struct {
	ID                   uuid.UUID
	TimeZone             string
	CompanyAvailability  CompanyAvailability
	CompanyBlockedDates  []CompanyBlockedDate
	CompanyBlockedRanges []CompanyBlockedRange
	HolidayRules         []HolidayRule
}

// EffectiveTimeZone returns the professional's zone, defaulting to UTC.
func (p *Professional) EffectiveTimeZone() string {
	if p.TimeZone == "" {
		return "UTC"
	}
	return p.TimeZone
}

// Resource is a user-like entity referenced by Project.Resources. It carries
// its own blocked dates/ranges, independent of the professional's calendar.
type Resource struct {
	ID            uuid.UUID
	ProfessionalID uuid.UUID
	BlockedDates  []CompanyBlockedDate
	BlockedRanges []CompanyBlockedRange
}

// CustomerWindow is a per-request partial-day block supplied by the customer.
type CustomerWindow struct {
	Date      time.Time
	StartTime string
	EndTime   string
}

// CustomerBlocks is the optional, per-request set of customer-supplied blocks.
type CustomerBlocks struct {
	Dates   []time.Time
	Windows []CustomerWindow
}

// Booking is a pre-existing reservation that can attribute blocked time to
// one or more resources. Only bookings with status outside
// {completed, cancelled, refunded} and carrying a start instant plus either
// a buffer-end or execution-end are considered by block aggregation.
type Booking struct {
	ID                  uuid.UUID
	ProjectID           uuid.UUID
	ProfessionalID      uuid.UUID
	Status              string
	Start               *time.Time
	ExecutionEnd        *time.Time
	BufferEnd           *time.Time
	AssignedTeamMembers []uuid.UUID
}

// inactiveBookingStatuses are excluded from block aggregation.
var inactiveBookingStatuses = map[string]struct{}{
	"completed": {},
	"cancelled": {},
	"refunded":  {},
}

// IsActive reports whether this booking should contribute blocked time.
func (b *Booking) IsActive() bool {
	if _, inactive := inactiveBookingStatuses[b.Status]; inactive {
		return false
	}
	if b.Start == nil {
		return false
	}
	return b.ExecutionEnd != nil || b.BufferEnd != nil
}

// BlocksResource implements the booking attribution rule: a booking blocks a
// resource if (i) it lists assignedTeamMembers including the resource; or
// (ii) it has no assignedTeamMembers but its professional equals the
// resource; or (iii) it targets the project, blocking every listed resource
// as a legacy fallback.
func (b *Booking) BlocksResource(resourceID uuid.UUID, projectID uuid.UUID) bool {
	if len(b.AssignedTeamMembers) > 0 {
		for _, id := range b.AssignedTeamMembers {
			if id == resourceID {
				return true
			}
		}
		return false
	}
	if b.ProfessionalID == resourceID {
		return true
	}
	return b.ProjectID == projectID
}
