package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeZone is returned when an IANA zone name cannot be loaded.
var ErrInvalidTimeZone = errors.New("invalid time zone")

// Zoned is an instant carried as wall-clock fields in a specific zone. It is
// produced by ToZoned and consumed by FromZoned; the zone name travels with
// the value so a Zoned is never ambiguous about which calendar it describes.
type Zoned struct {
	Year, Month, Day       int
	Hour, Minute, Second   int
	Nanosecond             int
	Zone                   string
	loc                    *time.Location
}

// LoadZone resolves an IANA zone name, wrapping ErrInvalidTimeZone on failure.
func LoadZone(zone string) (*time.Location, error) {
	if zone == "" {
		zone = "UTC"
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimeZone, zone, err)
	}
	return loc, nil
}

// ToZoned converts an absolute instant into its wall-clock representation in zone.
func ToZoned(instant time.Time, zone string) (Zoned, error) {
	loc, err := LoadZone(zone)
	if err != nil {
		return Zoned{}, err
	}
	t := instant.In(loc)
	return Zoned{
		Year: t.Year(), Month: int(t.Month()), Day: t.Day(),
		Hour: t.Hour(), Minute: t.Minute(), Second: t.Second(),
		Nanosecond: t.Nanosecond(),
		Zone:       zone,
		loc:        loc,
	}, nil
}

// FromZoned re-resolves a zoned wall-clock value back to an absolute instant.
// Re-resolution (rather than a stored offset) is what makes AddDays DST-safe.
func FromZoned(z Zoned, zone string) (time.Time, error) {
	loc := z.loc
	if loc == nil {
		var err error
		loc, err = LoadZone(zone)
		if err != nil {
			return time.Time{}, err
		}
	}
	return time.Date(z.Year, time.Month(z.Month), z.Day, z.Hour, z.Minute, z.Second, z.Nanosecond, loc), nil
}

// DayStart returns z with its time-of-day fields zeroed, without leaving the zone.
func DayStart(z Zoned) Zoned {
	z.Hour, z.Minute, z.Second, z.Nanosecond = 0, 0, 0, 0
	return z
}

// AddDays performs pure calendar arithmetic on the date fields, rolling over
// month and year boundaries; the time-of-day fields are left untouched and
// DST offsets are re-resolved the next time the value passes through FromZoned.
func AddDays(z Zoned, n int) Zoned {
	d := time.Date(z.Year, time.Month(z.Month), z.Day+n, 0, 0, 0, 0, time.UTC)
	z.Year, z.Month, z.Day = d.Year(), int(d.Month()), d.Day()
	return z
}

// FormatDateKey renders the canonical "YYYY-MM-DD" key used by blocked-dates sets.
func FormatDateKey(z Zoned) string {
	return fmt.Sprintf("%04d-%02d-%02d", z.Year, z.Month, z.Day)
}

// NormalizeRangeEndInclusive is the only end-of-range policy the engine uses:
// a range end that lands on exact wall-clock midnight in zone is advanced to
// the next day's midnight so it reads as inclusive of the prior calendar day.
func NormalizeRangeEndInclusive(end time.Time, zone string) (time.Time, error) {
	z, err := ToZoned(end, zone)
	if err != nil {
		return time.Time{}, err
	}
	if z.Hour == 0 && z.Minute == 0 && z.Second == 0 && z.Nanosecond == 0 {
		next := DayStart(AddDays(z, 1))
		return FromZoned(next, zone)
	}
	return end, nil
}

// MinutesOfDay returns the minute-of-day (0..1439) for an instant interpreted in zone.
func MinutesOfDay(instant time.Time, zone string) (int, error) {
	z, err := ToZoned(instant, zone)
	if err != nil {
		return 0, err
	}
	return z.Hour*60 + z.Minute, nil
}

// ZonedAtMinutes builds the absolute instant for the given calendar day (taken
// from reference) at the given minute-of-day, in zone.
func ZonedAtMinutes(reference Zoned, minutes int, zone string) (time.Time, error) {
	z := reference
	z.Hour = minutes / 60
	z.Minute = minutes % 60
	z.Second = 0
	z.Nanosecond = 0
	return FromZoned(z, zone)
}

// SameDateKey reports whether two instants fall on the same calendar day in zone.
func SameDateKey(a, b time.Time, zone string) (bool, error) {
	za, err := ToZoned(a, zone)
	if err != nil {
		return false, err
	}
	zb, err := ToZoned(b, zone)
	if err != nil {
		return false, err
	}
	return FormatDateKey(za) == FormatDateKey(zb), nil
}
