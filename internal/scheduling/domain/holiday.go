package domain

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
)

// holidayExpansionWindow bounds how far forward recurring holiday rules are
// expanded. It equals MaxAdvanceIterations (732 days), the cap on forward day
// walks, which is well beyond the OuterScanDays (180) proposal scan.
const holidayExpansionWindow = 366 * 2

// ExpandHolidayRules expands each rule's RRULE against a window starting
// "now" in zone and returns one full-day BlockedRange per occurrence.
// A rule with an empty RRULE is skipped. This is additive: professionals who
// never set HolidayRules see identical behavior to the unexpanded spec.
func ExpandHolidayRules(rules []HolidayRule, zone string) ([]BlockedRange, error) {
	if len(rules) == 0 {
		return nil, nil
	}

	loc, err := LoadZone(zone)
	if err != nil {
		return nil, err
	}
	from := time.Now().In(loc).Truncate(time.Second)
	to := from.AddDate(0, 0, holidayExpansionWindow)

	var expanded []BlockedRange
	for _, rule := range rules {
		if rule.RRule == "" {
			continue
		}
		r, err := rrule.StrToRRule(rule.RRule)
		if err != nil {
			return nil, fmt.Errorf("invalid holiday RRULE %q: %w", rule.RRule, err)
		}
		for _, occurrence := range r.Between(from, to, true) {
			dayStart := time.Date(occurrence.Year(), occurrence.Month(), occurrence.Day(), 0, 0, 0, 0, loc)
			dayEnd := dayStart.AddDate(0, 0, 1)
			expanded = append(expanded, BlockedRange{
				Range:     Range{Start: dayStart, End: dayEnd},
				Reason:    rule.Reason,
				IsHoliday: true,
			})
		}
	}
	return expanded, nil
}
