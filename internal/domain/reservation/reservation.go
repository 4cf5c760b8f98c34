package reservation

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Blocking reports whether a reservation in this status holds its dates.
// Cancelled and completed stays never block new bookings.
func (s Status) Blocking() bool {
	return s == StatusPending || s == StatusConfirmed
}

// CanTransitionTo encodes the allowed status moves. Creation always starts
// at pending; cancelled and completed are terminal.
func (s Status) CanTransitionTo(to Status) bool {
	switch s {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled || to == StatusCompleted
	}
	return false
}

// Request is a normalized booking attempt. Callers validate guest count
// against unit occupancy before it reaches the core. Immutable once built.
type Request struct {
	GuestID    string
	UnitID     string
	HostID     string
	CheckIn    time.Time // calendar date, UTC midnight
	CheckOut   time.Time // calendar date, UTC midnight, strictly after CheckIn
	Guests     int
	TotalPrice float64
	AddOns     []string
}

// Range returns the requested half-open stay window.
func (r Request) Range() DateRange {
	return DateRange{CheckIn: r.CheckIn, CheckOut: r.CheckOut}
}

// Nights is the stay length in whole nights.
func (r Request) Nights() int {
	return int(r.CheckOut.Sub(r.CheckIn).Hours() / 24)
}

// Reservation is a persisted booking. The creation step is owned
// exclusively by the Booker; later status moves come from confirmation
// and cancellation flows outside this core.
type Reservation struct {
	ID         string
	GuestID    string
	UnitID     string
	HostID     string
	CheckIn    time.Time
	CheckOut   time.Time
	Guests     int
	TotalPrice float64
	AddOns     []string
	Status     Status
	NaturalKey string
	Signature  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Range returns the reserved half-open stay window.
func (r Reservation) Range() DateRange {
	return DateRange{CheckIn: r.CheckIn, CheckOut: r.CheckOut}
}
