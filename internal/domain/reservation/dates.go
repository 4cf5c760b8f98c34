package reservation

import "time"

// DateRange is a half-open stay window [CheckIn, CheckOut): the check-in
// night is occupied, the check-out day is free. A checkout and a check-in
// on the same day therefore never conflict.
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// Overlaps reports whether two half-open ranges share at least one night.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// HasOverlap reports whether newRange conflicts with any existing
// reservation that still holds its dates. Cancelled and completed
// reservations never block. Call this against current persisted state
// inside the unit transaction, never against an earlier read.
func HasOverlap(existing []Reservation, newRange DateRange) bool {
	for _, res := range existing {
		if !res.Status.Blocking() {
			continue
		}
		if res.Range().Overlaps(newRange) {
			return true
		}
	}
	return false
}

// Date truncates t to a UTC calendar date.
func Date(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
