package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDurationIsZero(t *testing.T) {
	assert.True(t, Duration{Value: 0}.IsZero())
	assert.True(t, Duration{Value: -1}.IsZero())
	assert.False(t, Duration{Value: 0.5}.IsZero())
}

func TestDurationUnitPredicates(t *testing.T) {
	h := Duration{Value: 2, Unit: DurationHours}
	d := Duration{Value: 2, Unit: DurationDays}
	assert.True(t, h.Hours())
	assert.False(t, h.Days())
	assert.True(t, d.Days())
	assert.False(t, d.Hours())
}

func TestDurationCeilDays(t *testing.T) {
	assert.Equal(t, 0, Duration{Value: 0}.CeilDays())
	assert.Equal(t, 3, Duration{Value: 2.1, Unit: DurationDays}.CeilDays())
	assert.Equal(t, 2, Duration{Value: 2, Unit: DurationDays}.CeilDays())
}

func TestDurationMinutes(t *testing.T) {
	assert.Equal(t, 90, Duration{Value: 1.5, Unit: DurationHours}.Minutes())
	assert.Equal(t, 0, Duration{Value: 0, Unit: DurationHours}.Minutes())
}
