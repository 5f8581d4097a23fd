package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSelectionRejectsNonWorkingDay(t *testing.T) {
	sunday := time.Date(2026, 4, 5, 10, 0, 0, 0, time.UTC)
	result, err := ValidateSelection(ValidateSelectionInput{
		Project:      &Project{ExecutionDuration: Duration{Value: 1, Unit: DurationHours}},
		Professional: &Professional{TimeZone: "UTC"},
		Now:          sunday.Add(-24 * time.Hour),
		Start:        sunday,
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, string(ReasonNotAWorkingDay), result.Reason)
}

func TestValidateSelectionRejectsStartBeforePrep(t *testing.T) {
	monday := time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)
	result, err := ValidateSelection(ValidateSelectionInput{
		Project:      &Project{ExecutionDuration: Duration{Value: 1, Unit: DurationHours}, PreparationDuration: &Duration{Value: 2, Unit: DurationDays}},
		Professional: &Professional{TimeZone: "UTC"},
		Now:          monday,
		Start:        monday,
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, string(ReasonStartBeforePrep), result.Reason)
}

func TestValidateSelectionRejectsSlotNotAvailable(t *testing.T) {
	monday := time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)
	result, err := ValidateSelection(ValidateSelectionInput{
		Project:      &Project{ExecutionDuration: Duration{Value: 1, Unit: DurationHours}},
		Professional: &Professional{TimeZone: "UTC", CompanyBlockedRanges: []CompanyBlockedRange{{Start: monday, End: monday.Add(time.Hour)}}},
		Now:          monday.Add(-time.Hour),
		Start:        monday,
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, string(ReasonSlotNotAvailable), result.Reason)
}

func TestValidateSelectionSucceedsHoursMode(t *testing.T) {
	monday := time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)
	result, err := ValidateSelection(ValidateSelectionInput{
		Project:      &Project{ExecutionDuration: Duration{Value: 2, Unit: DurationHours}},
		Professional: &Professional{TimeZone: "UTC"},
		Now:          monday.Add(-time.Hour),
		Start:        monday,
	})
	require.NoError(t, err)
	require.True(t, result.Valid)
	assert.Equal(t, monday.Add(2*time.Hour), result.Window.ExecutionEnd)
}

func TestValidateSelectionSucceedsDaysMode(t *testing.T) {
	monday := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	result, err := ValidateSelection(ValidateSelectionInput{
		Project:      &Project{ExecutionDuration: Duration{Value: 2, Unit: DurationDays}},
		Professional: &Professional{TimeZone: "UTC"},
		Now:          monday.Add(-time.Hour),
		Start:        monday,
	})
	require.NoError(t, err)
	require.True(t, result.Valid)
	assert.Equal(t, "2026-04-07", FormatDateKey(DayStart(mustZoned(t, result.Window.ExecutionEnd, "UTC"))))
}

func TestValidateSelectionRejectsNotEnoughResources(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	monday := time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)
	project := NewProject(uuid.New(), uuid.New(), Duration{Value: 1, Unit: DurationHours}, []uuid.UUID{a, b}, 2, 100)
	result, err := ValidateSelection(ValidateSelectionInput{
		Project:      project,
		Professional: &Professional{TimeZone: "UTC"},
		Resources: []*Resource{
			{ID: a},
			{ID: b, BlockedRanges: []CompanyBlockedRange{{Start: monday, End: monday.Add(time.Hour)}}},
		},
		Now:   monday.Add(-time.Hour),
		Start: monday,
	})
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, string(ReasonNotEnoughResources), result.Reason)
}

func TestValidateSelectionRequiresProjectAndProfessional(t *testing.T) {
	_, err := ValidateSelection(ValidateSelectionInput{Professional: &Professional{}})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	_, err = ValidateSelection(ValidateSelectionInput{Project: &Project{ExecutionDuration: Duration{Value: 1, Unit: DurationHours}}})
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
}

func TestBuildWindowHoursModeSkipsGates(t *testing.T) {
	monday := time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)
	window, err := BuildWindow(BuildWindowInput{
		Project:      &Project{ExecutionDuration: Duration{Value: 3, Unit: DurationHours}},
		Professional: &Professional{TimeZone: "UTC"},
		Start:        monday,
	})
	require.NoError(t, err)
	assert.Equal(t, monday.Add(3*time.Hour), window.ExecutionEnd)
}

func TestBuildWindowDaysModeResolvesAssignedResources(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	monday := time.Date(2026, 4, 6, 0, 0, 0, 0, time.UTC)
	project := NewProject(uuid.New(), uuid.New(), Duration{Value: 1, Unit: DurationDays}, []uuid.UUID{a, b}, 1, 0)

	window, err := BuildWindow(BuildWindowInput{
		Project:      project,
		Professional: &Professional{TimeZone: "UTC"},
		Resources:    []*Resource{{ID: a}, {ID: b}},
		Start:        monday,
	})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a}, window.AssignedResources)
}

func TestBuildWindowRequiresExecutionDuration(t *testing.T) {
	_, err := BuildWindow(BuildWindowInput{Project: &Project{}, Professional: &Professional{}})
	assert.ErrorIs(t, err, ErrMissingExecutionDuration)
}
