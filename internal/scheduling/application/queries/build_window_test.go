package queries

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shridmishra/fixera-scheduling/internal/scheduling/domain"
)

func TestBuildWindowHandlerComputesWindow(t *testing.T) {
	project := &domain.Project{ExecutionDuration: domain.Duration{Value: 3, Unit: domain.DurationHours}}
	professional := &domain.Professional{TimeZone: "UTC"}
	resolver := newTestResolver(project, professional, nil, nil)
	handler := NewBuildWindowHandler(resolver, nil, nil)

	monday := time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)
	window, err := handler.Handle(context.Background(), BuildWindowQuery{Start: monday})
	require.NoError(t, err)
	assert.Equal(t, monday.Add(3*time.Hour), window.ExecutionEnd)
}
