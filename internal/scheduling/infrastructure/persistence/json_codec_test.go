package persistence

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shridmishra/fixera-scheduling/internal/scheduling/domain"
)

func TestCompanyAvailabilityRoundTrip(t *testing.T) {
	in := domain.CompanyAvailability{
		time.Monday: {Available: true, StartTime: "09:00", EndTime: "17:00"},
		time.Sunday: {Available: false},
	}
	raw, err := encodeCompanyAvailability(in)
	require.NoError(t, err)
	out, err := decodeCompanyAvailability(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestCompanyAvailabilityDecodeEmpty(t *testing.T) {
	out, err := decodeCompanyAvailability(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestBlockedDatesRoundTrip(t *testing.T) {
	in := []domain.CompanyBlockedDate{
		{Date: time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC), IsHoliday: true, Reason: "Christmas"},
	}
	raw, err := encodeBlockedDates(in)
	require.NoError(t, err)
	out, err := decodeBlockedDates(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestBlockedRangesRoundTrip(t *testing.T) {
	in := []domain.CompanyBlockedRange{
		{Start: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC), End: time.Date(2026, 1, 1, 17, 0, 0, 0, time.UTC), Reason: "offsite"},
	}
	raw, err := encodeBlockedRanges(in)
	require.NoError(t, err)
	out, err := decodeBlockedRanges(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestHolidayRulesRoundTrip(t *testing.T) {
	in := []domain.HolidayRule{
		{RRule: "FREQ=YEARLY;BYMONTH=12;BYMONTHDAY=25", Reason: "Christmas", AllDay: true, TimeZone: "UTC"},
	}
	raw, err := encodeHolidayRules(in)
	require.NoError(t, err)
	out, err := decodeHolidayRules(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSubprojectsRoundTrip(t *testing.T) {
	prep := domain.Duration{Value: 1, Unit: domain.DurationDays}
	in := []domain.Subproject{
		{ExecutionDuration: domain.Duration{Value: 4, Unit: domain.DurationHours}, PreparationDuration: &prep},
		{ExecutionDuration: domain.Duration{Value: 2, Unit: domain.DurationDays}},
	}
	raw, err := encodeSubprojects(in)
	require.NoError(t, err)
	out, err := decodeSubprojects(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestUUIDsRoundTrip(t *testing.T) {
	in := []uuid.UUID{uuid.New(), uuid.New()}
	raw, err := encodeUUIDs(in)
	require.NoError(t, err)
	out, err := decodeUUIDs(raw)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestUUIDsDecodeEmpty(t *testing.T) {
	out, err := decodeUUIDs(nil)
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestDecodeUUIDsRejectsInvalid(t *testing.T) {
	_, err := decodeUUIDs([]byte(`["not-a-uuid"]`))
	assert.Error(t, err)
}
