package ranking

import (
	"sort"

	"github.com/example/staybook/internal/domain/unit"
)

// DefaultLimit bounds result sets when the caller passes no limit.
const DefaultLimit = 5

// Candidate is one scored unit. Transient, never persisted.
type Candidate struct {
	Unit    unit.Unit
	Score   float64
	Reasons []string
}

// Rank scores every candidate and returns at most limit of them, best
// first. Ties break by ascending unit id so ordering is fully
// deterministic. The input slice is not mutated or filtered; availability
// and hard constraints are the caller's job.
func (m Model) Rank(units []unit.Unit, sc SearchContext, prefs Preferences, limit int) []Candidate {
	if limit <= 0 {
		limit = DefaultLimit
	}

	scored := make([]Candidate, 0, len(units))
	for _, u := range units {
		score, reasons := m.Score(u, sc, prefs)
		scored = append(scored, Candidate{Unit: u, Score: score, Reasons: reasons})
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Unit.ID < scored[j].Unit.ID
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored
}
