// Package pricing computes itemized stay quotes. The caller feeds the
// resulting total into the reservation request; nothing here touches
// storage.
package pricing

import "math"

// FeeSchedule holds the house fee rules.
type FeeSchedule struct {
	ServiceFeeRate float64 // fraction of accommodation
	CleaningFee    float64 // flat, per stay
	TaxRate        float64 // fraction of pre-tax total
	AddOnPrices    map[string]float64
}

// DefaultFeeSchedule returns the standard rates: 10% service fee, $50
// cleaning, 8% tax, and the add-on catalog.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		ServiceFeeRate: 0.10,
		CleaningFee:    50.0,
		TaxRate:        0.08,
		AddOnPrices: map[string]float64{
			"early_checkin":  50,
			"late_checkout":  50,
			"welcome_basket": 75,
			"spa_package":    200,
			"chef_service":   300,
		},
	}
}

// Quote is an itemized price for a stay.
type Quote struct {
	Nights        int
	Accommodation float64
	ServiceFee    float64
	CleaningFee   float64
	AddOnCost     float64
	Tax           float64
	Total         float64
}

// Compute quotes a stay of the given length at the given nightly rate.
// Unknown add-on identifiers price at zero rather than failing; the add-on
// catalog is advisory, not a validation surface.
func (f FeeSchedule) Compute(nightlyRate float64, nights int, addOns []string) Quote {
	q := Quote{Nights: nights}
	q.Accommodation = nightlyRate * float64(nights)
	q.ServiceFee = q.Accommodation * f.ServiceFeeRate
	q.CleaningFee = f.CleaningFee
	for _, a := range addOns {
		q.AddOnCost += f.AddOnPrices[a]
	}
	preTax := q.Accommodation + q.ServiceFee + q.CleaningFee + q.AddOnCost
	q.Tax = preTax * f.TaxRate
	q.Total = round2(preTax + q.Tax)
	return q
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
