// Package persistence adapts the scheduling engine's repository interfaces
// to concrete storage, grounded on the teacher's driver-agnostic
// database.Connection/Executor abstraction. Nested calendar structures
// (per-weekday overrides, blocked ranges, holiday rules) are stored as JSON
// columns rather than fully normalized tables: the engine only ever reads
// these records whole, so there is no query pattern that benefits from
// further normalization.
package persistence

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/shridmishra/fixera-scheduling/internal/scheduling/domain"
)

type dayAvailabilityJSON struct {
	Available bool   `json:"available"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

type companyBlockedDateJSON struct {
	Date      time.Time `json:"date"`
	IsHoliday bool      `json:"isHoliday,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

type companyBlockedRangeJSON struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	IsHoliday bool      `json:"isHoliday,omitempty"`
	Reason    string    `json:"reason,omitempty"`
}

type holidayRuleJSON struct {
	RRule    string `json:"rrule"`
	Reason   string `json:"reason,omitempty"`
	AllDay   bool   `json:"allDay,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

type subprojectJSON struct {
	ExecutionValue   float64 `json:"executionValue"`
	ExecutionUnit    string  `json:"executionUnit"`
	PreparationValue *float64 `json:"preparationValue,omitempty"`
	PreparationUnit  string   `json:"preparationUnit,omitempty"`
	BufferValue      *float64 `json:"bufferValue,omitempty"`
	BufferUnit       string   `json:"bufferUnit,omitempty"`
}

func encodeCompanyAvailability(availability domain.CompanyAvailability) ([]byte, error) {
	out := make(map[string]dayAvailabilityJSON, len(availability))
	for weekday, day := range availability {
		out[weekday.String()] = dayAvailabilityJSON{Available: day.Available, StartTime: day.StartTime, EndTime: day.EndTime}
	}
	return json.Marshal(out)
}

func decodeCompanyAvailability(raw []byte) (domain.CompanyAvailability, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var in map[string]dayAvailabilityJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, err
	}
	out := make(domain.CompanyAvailability, len(in))
	for name, day := range in {
		weekday, err := parseWeekday(name)
		if err != nil {
			return nil, err
		}
		out[weekday] = domain.DayAvailability{Available: day.Available, StartTime: day.StartTime, EndTime: day.EndTime}
	}
	return out, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	t, err := time.Parse("Monday", name)
	if err != nil {
		return 0, err
	}
	return t.Weekday(), nil
}

func encodeBlockedDates(dates []domain.CompanyBlockedDate) ([]byte, error) {
	out := make([]companyBlockedDateJSON, len(dates))
	for i, d := range dates {
		out[i] = companyBlockedDateJSON{Date: d.Date, IsHoliday: d.IsHoliday, Reason: d.Reason}
	}
	return json.Marshal(out)
}

func decodeBlockedDates(raw []byte) ([]domain.CompanyBlockedDate, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var in []companyBlockedDateJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, err
	}
	out := make([]domain.CompanyBlockedDate, len(in))
	for i, d := range in {
		out[i] = domain.CompanyBlockedDate{Date: d.Date, IsHoliday: d.IsHoliday, Reason: d.Reason}
	}
	return out, nil
}

func encodeBlockedRanges(ranges []domain.CompanyBlockedRange) ([]byte, error) {
	out := make([]companyBlockedRangeJSON, len(ranges))
	for i, r := range ranges {
		out[i] = companyBlockedRangeJSON{Start: r.Start, End: r.End, IsHoliday: r.IsHoliday, Reason: r.Reason}
	}
	return json.Marshal(out)
}

func decodeBlockedRanges(raw []byte) ([]domain.CompanyBlockedRange, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var in []companyBlockedRangeJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, err
	}
	out := make([]domain.CompanyBlockedRange, len(in))
	for i, r := range in {
		out[i] = domain.CompanyBlockedRange{Start: r.Start, End: r.End, IsHoliday: r.IsHoliday, Reason: r.Reason}
	}
	return out, nil
}

func encodeHolidayRules(rules []domain.HolidayRule) ([]byte, error) {
	out := make([]holidayRuleJSON, len(rules))
	for i, r := range rules {
		out[i] = holidayRuleJSON{RRule: r.RRule, Reason: r.Reason, AllDay: r.AllDay, TimeZone: r.TimeZone}
	}
	return json.Marshal(out)
}

func decodeHolidayRules(raw []byte) ([]domain.HolidayRule, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var in []holidayRuleJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, err
	}
	out := make([]domain.HolidayRule, len(in))
	for i, r := range in {
		out[i] = domain.HolidayRule{RRule: r.RRule, Reason: r.Reason, AllDay: r.AllDay, TimeZone: r.TimeZone}
	}
	return out, nil
}

func encodeSubprojects(subs []domain.Subproject) ([]byte, error) {
	out := make([]subprojectJSON, len(subs))
	for i, s := range subs {
		out[i] = subprojectJSON{ExecutionValue: s.ExecutionDuration.Value, ExecutionUnit: string(s.ExecutionDuration.Unit)}
		if s.PreparationDuration != nil {
			v := s.PreparationDuration.Value
			out[i].PreparationValue = &v
			out[i].PreparationUnit = string(s.PreparationDuration.Unit)
		}
		if s.BufferDuration != nil {
			v := s.BufferDuration.Value
			out[i].BufferValue = &v
			out[i].BufferUnit = string(s.BufferDuration.Unit)
		}
	}
	return json.Marshal(out)
}

func decodeSubprojects(raw []byte) ([]domain.Subproject, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var in []subprojectJSON
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, err
	}
	out := make([]domain.Subproject, len(in))
	for i, s := range in {
		out[i] = domain.Subproject{ExecutionDuration: domain.Duration{Value: s.ExecutionValue, Unit: domain.DurationUnit(s.ExecutionUnit)}}
		if s.PreparationValue != nil {
			out[i].PreparationDuration = &domain.Duration{Value: *s.PreparationValue, Unit: domain.DurationUnit(s.PreparationUnit)}
		}
		if s.BufferValue != nil {
			out[i].BufferDuration = &domain.Duration{Value: *s.BufferValue, Unit: domain.DurationUnit(s.BufferUnit)}
		}
	}
	return out, nil
}

func encodeUUIDs(ids []uuid.UUID) ([]byte, error) {
	strs := make([]string, len(ids))
	for i, id := range ids {
		strs[i] = id.String()
	}
	return json.Marshal(strs)
}

func decodeUUIDs(raw []byte) ([]uuid.UUID, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var strs []string
	if err := json.Unmarshal(raw, &strs); err != nil {
		return nil, err
	}
	out := make([]uuid.UUID, len(strs))
	for i, s := range strs {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
