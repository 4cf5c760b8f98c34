// Package ranking scores and orders candidate units against a guest's
// constraints and preferences. Scoring is stateless and deterministic:
// the same inputs always yield the same scores, reasons and order.
package ranking

import (
	"fmt"
	"math"
)

// Weights configures the five scoring factors. Each sub-score is
// normalized before weighting, so the weights are directly comparable and
// must sum to 1.0. Invalid weights are rejected, never renormalized.
type Weights struct {
	Price        float64
	Distance     float64
	CapacityFit  float64
	AmenityMatch float64
	Recency      float64
}

func DefaultWeights() Weights {
	return Weights{
		Price:        0.30,
		Distance:     0.20,
		CapacityFit:  0.20,
		AmenityMatch: 0.20,
		Recency:      0.10,
	}
}

const weightSumTolerance = 1e-9

func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"price":         w.Price,
		"distance":      w.Distance,
		"capacity_fit":  w.CapacityFit,
		"amenity_match": w.AmenityMatch,
		"recency":       w.Recency,
	} {
		if v < 0 {
			return fmt.Errorf("weight %s is negative (%v)", name, v)
		}
	}
	sum := w.Price + w.Distance + w.CapacityFit + w.AmenityMatch + w.Recency
	if math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0 (got %v)", sum)
	}
	return nil
}
