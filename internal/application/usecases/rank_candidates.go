package usecases

import (
	"github.com/example/staybook/internal/domain/unit"
	"github.com/example/staybook/internal/ranking"
)

// CandidateRanker is the ranking entry point for the surrounding search
// layer. Candidates arrive pre-filtered (availability, city, hard guest
// floor); this only scores and orders them.
type CandidateRanker struct {
	Model ranking.Model
	Clock Clock
}

// RankCandidates scores candidates against the search context and
// preferences and returns at most limit results, best first.
func (r CandidateRanker) RankCandidates(candidates []unit.Unit, sc ranking.SearchContext, prefs ranking.Preferences, limit int) []ranking.Candidate {
	if sc.Now.IsZero() && r.Clock != nil {
		sc.Now = r.Clock.Now()
	}
	return r.Model.Rank(candidates, sc, prefs, limit)
}
