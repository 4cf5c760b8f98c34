package ranking

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/example/staybook/internal/domain/unit"
)

// SearchContext carries the guest's hard constraints for one ranking call.
type SearchContext struct {
	Guests         int
	BudgetPerNight float64 // 0 means no budget stated
	Now            time.Time
}

// Preferences carries the guest's soft preferences. All fields optional;
// a missing field degrades its sub-score to zero contribution.
type Preferences struct {
	Origin    *unit.Coordinate // reference point for distance scoring
	Amenities []string         // desired amenity tags
}

// Model is the configured scoring function over a single candidate unit.
type Model struct {
	Weights   Weights
	FreshDays int // listings younger than this score full recency weight
	AgingDays int // listings younger than this score half recency weight
}

// NewModel builds a Model with validated weights and default age
// thresholds (30/90 days).
func NewModel(w Weights) (Model, error) {
	if err := w.Validate(); err != nil {
		return Model{}, err
	}
	return Model{Weights: w, FreshDays: 30, AgingDays: 90}, nil
}

func DefaultModel() Model {
	m, _ := NewModel(DefaultWeights())
	return m
}

// Score returns the weighted total for one unit plus reason strings for
// every materially positive contribution, in the fixed order
// price, distance, capacity, amenity, recency.
func (m Model) Score(u unit.Unit, sc SearchContext, prefs Preferences) (float64, []string) {
	var total float64
	var reasons []string

	add := func(delta float64, reason string) {
		total += delta
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}

	add(m.scorePrice(u, sc))
	add(m.scoreDistance(u, prefs))
	add(m.scoreCapacity(u, sc))
	add(m.scoreAmenities(u, prefs))
	add(m.scoreRecency(u, sc))

	return total, reasons
}

func (m Model) scorePrice(u unit.Unit, sc SearchContext) (float64, string) {
	if sc.BudgetPerNight <= 0 {
		return 0, ""
	}
	ratio := u.NightlyRate / sc.BudgetPerNight
	switch {
	case ratio <= 0.5:
		return m.Weights.Price, fmt.Sprintf("Exceptional value at $%.0f/night", u.NightlyRate)
	case ratio <= 0.75:
		return m.Weights.Price * 0.8, fmt.Sprintf("Great value at $%.0f/night", u.NightlyRate)
	case ratio <= 1.0:
		return m.Weights.Price * 0.5, fmt.Sprintf("Within budget at $%.0f/night", u.NightlyRate)
	default:
		// Over budget: penalty grows with the overage but stays bounded,
		// so an expensive unit is buried rather than excluded.
		overage := math.Min(ratio-1.0, 1.0)
		return -m.Weights.Price * overage, ""
	}
}

func (m Model) scoreDistance(u unit.Unit, prefs Preferences) (float64, string) {
	if prefs.Origin == nil || u.Coordinate == nil {
		return 0, ""
	}
	km := haversineKm(*u.Coordinate, *prefs.Origin)
	switch {
	case km < 1:
		return m.Weights.Distance, "Walking distance to your preferred area"
	case km < 5:
		return m.Weights.Distance * 0.8, fmt.Sprintf("Only %.1fkm from your preferred area", km)
	case km < 10:
		return m.Weights.Distance * 0.5, fmt.Sprintf("Close to preferred area (%.1fkm)", km)
	default:
		return 0, ""
	}
}

func (m Model) scoreCapacity(u unit.Unit, sc SearchContext) (float64, string) {
	needed := sc.Guests
	if needed < 1 {
		needed = 1
	}
	if u.MaxOccupancy < needed {
		// Upstream filtering should have excluded this; score it to the
		// bottom instead of erroring so the ranking call stays total.
		return -1.0, ""
	}
	extra := u.MaxOccupancy - needed
	switch {
	case extra == 0:
		return m.Weights.CapacityFit, fmt.Sprintf("Perfect size for %d %s", needed, guestWord(needed))
	case extra <= 2:
		return m.Weights.CapacityFit * 0.8, fmt.Sprintf("Comfortable space for %d %s", needed, guestWord(needed))
	default:
		// Wasted capacity.
		return m.Weights.CapacityFit * 0.3, ""
	}
}

func (m Model) scoreAmenities(u unit.Unit, prefs Preferences) (float64, string) {
	requested := normalizeTags(prefs.Amenities)
	if len(requested) == 0 {
		return 0, ""
	}
	available := make(map[string]struct{}, len(u.Amenities))
	for _, a := range u.Amenities {
		available[strings.ToLower(strings.TrimSpace(a))] = struct{}{}
	}
	var matched []string
	for _, want := range requested {
		if _, ok := available[want]; ok {
			matched = append(matched, want)
		}
	}
	ratio := float64(len(matched)) / float64(len(requested))

	score := ratio * m.Weights.AmenityMatch
	if ratio >= 0.8 {
		score = m.Weights.AmenityMatch
		top := matched
		if len(top) > 3 {
			top = top[:3]
		}
		return score, "Has " + strings.Join(top, ", ")
	}
	if ratio >= 0.5 {
		return score, fmt.Sprintf("Has %d of your requested amenities", len(matched))
	}
	return score, ""
}

func (m Model) scoreRecency(u unit.Unit, sc SearchContext) (float64, string) {
	if u.ListedAt.IsZero() {
		return 0, ""
	}
	daysOld := int(sc.Now.Sub(u.ListedAt).Hours() / 24)
	switch {
	case daysOld < m.FreshDays:
		return m.Weights.Recency, "Recently listed property"
	case daysOld < m.AgingDays:
		return m.Weights.Recency * 0.5, ""
	default:
		return 0, ""
	}
}

func guestWord(n int) string {
	if n == 1 {
		return "guest"
	}
	return "guests"
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	var out []string
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

const earthRadiusKm = 6371

func haversineKm(a, b unit.Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := lat2 - lat1
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}
