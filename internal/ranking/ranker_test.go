package ranking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/staybook/internal/domain/unit"
)

func candidateSet() []unit.Unit {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	mk := func(id string, rate float64, occupancy int) unit.Unit {
		return unit.Unit{
			ID:           id,
			Name:         "Unit " + id,
			NightlyRate:  rate,
			MaxOccupancy: occupancy,
			Amenities:    []string{"wifi"},
			ListedAt:     now.AddDate(0, 0, -200),
		}
	}
	return []unit.Unit{
		mk("unit-c", 180, 6), // within budget, wasted capacity
		mk("unit-a", 100, 2), // exceptional value, exact fit
		mk("unit-b", 150, 3), // great value, one seat spare
	}
}

func searchFor2() SearchContext {
	return SearchContext{
		Guests:         2,
		BudgetPerNight: 200,
		Now:            time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRank_OrdersByScoreDescending(t *testing.T) {
	m := DefaultModel()
	ranked := m.Rank(candidateSet(), searchFor2(), Preferences{}, 10)

	require.Len(t, ranked, 3)
	assert.Equal(t, "unit-a", ranked[0].Unit.ID)
	assert.Equal(t, "unit-b", ranked[1].Unit.ID)
	assert.Equal(t, "unit-c", ranked[2].Unit.ID)
	assert.GreaterOrEqual(t, ranked[0].Score, ranked[1].Score)
	assert.GreaterOrEqual(t, ranked[1].Score, ranked[2].Score)
}

func TestRank_TruncatesToLimit(t *testing.T) {
	m := DefaultModel()
	ranked := m.Rank(candidateSet(), searchFor2(), Preferences{}, 2)
	require.Len(t, ranked, 2)
	assert.Equal(t, "unit-a", ranked[0].Unit.ID)

	ranked = m.Rank(candidateSet(), searchFor2(), Preferences{}, 0)
	assert.Len(t, ranked, 3, "zero limit falls back to the default")
}

func TestRank_TiesBreakByAscendingUnitID(t *testing.T) {
	units := candidateSet()
	// Make every unit identical except for id.
	for i := range units {
		units[i].NightlyRate = 100
		units[i].MaxOccupancy = 2
	}
	units[0].ID, units[1].ID, units[2].ID = "unit-z", "unit-m", "unit-a"

	m := DefaultModel()
	ranked := m.Rank(units, searchFor2(), Preferences{}, 10)

	require.Len(t, ranked, 3)
	assert.Equal(t, ranked[0].Score, ranked[1].Score)
	assert.Equal(t, ranked[1].Score, ranked[2].Score)
	assert.Equal(t, "unit-a", ranked[0].Unit.ID)
	assert.Equal(t, "unit-m", ranked[1].Unit.ID)
	assert.Equal(t, "unit-z", ranked[2].Unit.ID)
}

func TestRank_DeterministicAcrossCalls(t *testing.T) {
	m := DefaultModel()
	prefs := Preferences{Amenities: []string{"wifi", "pool"}}

	first := m.Rank(candidateSet(), searchFor2(), prefs, 10)
	for i := 0; i < 5; i++ {
		again := m.Rank(candidateSet(), searchFor2(), prefs, 10)
		require.Equal(t, first, again)
	}
}

func TestRank_DoesNotMutateInput(t *testing.T) {
	units := candidateSet()
	orig := make([]unit.Unit, len(units))
	copy(orig, units)

	DefaultModel().Rank(units, searchFor2(), Preferences{}, 1)
	assert.Equal(t, orig, units)
}

func TestFormatRecommendations(t *testing.T) {
	assert.Equal(t, "No properties found matching your criteria.", FormatRecommendations(nil))

	m := DefaultModel()
	out := FormatRecommendations(m.Rank(candidateSet(), searchFor2(), Preferences{}, 2))
	assert.Contains(t, out, "1. Unit unit-a")
	assert.Contains(t, out, "2. Unit unit-b")
	assert.Contains(t, out, "Exceptional value at $100/night")
}
