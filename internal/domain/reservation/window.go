package reservation

import (
	"fmt"
	"time"
)

// WindowPolicy bounds acceptable booking windows.
type WindowPolicy struct {
	MinNights   int
	MaxNights   int
	AdvanceDays int // how far in the future a check-in may be
}

// DefaultWindowPolicy mirrors the house rules: 1-30 night stays, booked at
// most a year out.
func DefaultWindowPolicy() WindowPolicy {
	return WindowPolicy{MinNights: 1, MaxNights: 30, AdvanceDays: 365}
}

func (p WindowPolicy) Validate() error {
	if p.MinNights < 1 {
		return fmt.Errorf("min nights must be >= 1 (got %d)", p.MinNights)
	}
	if p.MaxNights < p.MinNights {
		return fmt.Errorf("max nights %d below min nights %d", p.MaxNights, p.MinNights)
	}
	if p.AdvanceDays < 1 {
		return fmt.Errorf("advance days must be >= 1 (got %d)", p.AdvanceDays)
	}
	return nil
}

// CheckWindow validates the requested stay against the policy as of now.
// Violations wrap ErrInvalidWindow. Runs before any store interaction.
func (p WindowPolicy) CheckWindow(req Request, now time.Time) error {
	today := Date(now)
	checkIn := Date(req.CheckIn)
	checkOut := Date(req.CheckOut)

	if !checkOut.After(checkIn) {
		return fmt.Errorf("%w: check-out %s not after check-in %s",
			ErrInvalidWindow, checkOut.Format(dateLayout), checkIn.Format(dateLayout))
	}
	if checkIn.Before(today) {
		return fmt.Errorf("%w: check-in %s is in the past",
			ErrInvalidWindow, checkIn.Format(dateLayout))
	}
	if checkIn.After(today.AddDate(0, 0, p.AdvanceDays)) {
		return fmt.Errorf("%w: check-in %s beyond %d-day booking horizon",
			ErrInvalidWindow, checkIn.Format(dateLayout), p.AdvanceDays)
	}
	nights := req.Nights()
	if nights < p.MinNights {
		return fmt.Errorf("%w: %d night(s) below minimum stay of %d",
			ErrInvalidWindow, nights, p.MinNights)
	}
	if nights > p.MaxNights {
		return fmt.Errorf("%w: %d nights above maximum stay of %d",
			ErrInvalidWindow, nights, p.MaxNights)
	}
	return nil
}
