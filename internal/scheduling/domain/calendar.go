package domain

import (
	"fmt"
	"time"
)

// DayAvailability is a professional's override for a single weekday:
// availability plus wall-clock start/end in "HH:MM" form.
type DayAvailability struct {
	Available bool
	StartTime string
	EndTime   string
}

// CompanyAvailability maps weekday to the professional's override. Missing
// days fall back to DefaultCalendar.
type CompanyAvailability map[time.Weekday]DayAvailability

// WorkingWindow is the resolved working window for a single day.
type WorkingWindow struct {
	Available    bool
	StartMinutes int
	EndMinutes   int
	StartTime    string
	EndTime      string
}

// IsEmpty reports whether the window has zero or negative width.
func (w WorkingWindow) IsEmpty() bool {
	return !w.Available || w.StartMinutes >= w.EndMinutes
}

// DefaultCalendar is the calendar used whenever a field is missing from the
// professional's override. Monday-Friday 09:00-17:00, weekends unavailable.
func DefaultCalendar() CompanyAvailability {
	weekday := DayAvailability{Available: true, StartTime: "09:00", EndTime: "17:00"}
	weekend := DayAvailability{Available: false}
	return CompanyAvailability{
		time.Sunday:    weekend,
		time.Monday:    weekday,
		time.Tuesday:   weekday,
		time.Wednesday: weekday,
		time.Thursday:  weekday,
		time.Friday:    weekday,
		time.Saturday:  weekend,
	}
}

// WorkingHours resolves the working window for weekday, overlaying the
// professional's availability on DefaultCalendar. An override marked
// unavailable, or whose start is not before its end, makes the day unavailable.
func WorkingHours(availability CompanyAvailability, weekday time.Weekday) WorkingWindow {
	def := DefaultCalendar()[weekday]
	day, ok := availability[weekday]
	if !ok {
		day = def
	}
	if day.StartTime == "" {
		day.StartTime = def.StartTime
	}
	if day.EndTime == "" {
		day.EndTime = def.EndTime
	}

	if !day.Available {
		return WorkingWindow{Available: false}
	}

	startMin, errStart := parseHHMM(day.StartTime)
	endMin, errEnd := parseHHMM(day.EndTime)
	if errStart != nil || errEnd != nil || startMin >= endMin {
		return WorkingWindow{Available: false}
	}

	return WorkingWindow{
		Available:    true,
		StartMinutes: startMin,
		EndMinutes:   endMin,
		StartTime:    day.StartTime,
		EndTime:      day.EndTime,
	}
}

// PrepWorkingHours returns the default working hours for weekday even when
// the professional's override marks the day unavailable: preparation runs
// during default hours regardless of professional availability overrides.
func PrepWorkingHours(weekday time.Weekday) WorkingWindow {
	return WorkingHours(DefaultCalendar(), weekday)
}

func parseHHMM(s string) (int, error) {
	var h, m int
	n, err := fmt.Sscanf(s, "%d:%d", &h, &m)
	if err != nil || n != 2 {
		return 0, fmt.Errorf("invalid HH:MM time %q", s)
	}
	return h*60 + m, nil
}
