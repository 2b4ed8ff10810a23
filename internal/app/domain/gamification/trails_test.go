package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KallebyX/visitecacapava/internal/app/models"
)

func TestEvaluateRouteCompletions(t *testing.T) {
	routes := []models.Route{
		{ID: "route-geoparque", PointsOfInterest: []string{"poi-pedra", "poi-guaritas"}},
		{ID: "route-historica", PointsOfInterest: []string{"poi-forte", "poi-matriz"}},
		{ID: "route-vazia"},
	}

	tests := []struct {
		name      string
		visited   map[string]struct{}
		completed map[string]struct{}
		expected  []string
	}{
		{
			name:      "nothing visited completes nothing",
			visited:   setOf(),
			completed: setOf(),
			expected:  nil,
		},
		{
			name:      "partial coverage completes nothing",
			visited:   setOf("poi-pedra"),
			completed: setOf(),
			expected:  nil,
		},
		{
			name:      "full coverage completes the route",
			visited:   setOf("poi-pedra", "poi-guaritas"),
			completed: setOf(),
			expected:  []string{"route-geoparque"},
		},
		{
			name:      "already completed routes are skipped",
			visited:   setOf("poi-pedra", "poi-guaritas"),
			completed: setOf("route-geoparque"),
			expected:  nil,
		},
		{
			name:      "one visit can complete several routes",
			visited:   setOf("poi-pedra", "poi-guaritas", "poi-forte", "poi-matriz"),
			completed: setOf(),
			expected:  []string{"route-geoparque", "route-historica"},
		},
		{
			name:      "extra visits outside the route do not matter",
			visited:   setOf("poi-pedra", "poi-guaritas", "poi-minas"),
			completed: setOf(),
			expected:  []string{"route-geoparque"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completions := EvaluateRouteCompletions(tt.visited, tt.completed, routes)
			var ids []string
			for _, c := range completions {
				ids = append(ids, c.Route.ID)
				assert.Equal(t, RouteBonusPoints, c.BonusPoints)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestEvaluateRouteCompletionsEmptyRouteNeverCompletes(t *testing.T) {
	routes := []models.Route{{ID: "route-vazia"}}

	completions := EvaluateRouteCompletions(setOf("poi-pedra"), setOf(), routes)
	assert.Empty(t, completions)
}
