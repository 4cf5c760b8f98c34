package reservation

import "context"

// Store is the availability store port. Implementations must give Begin
// per-unit atomic read-modify-write semantics: between Begin and Commit no
// other transaction for the same unit may read or write its reservations.
// Transactions for different units proceed in parallel.
type Store interface {
	Begin(ctx context.Context, unitID string) (Txn, error)
}

// Txn is a unit-of-work scoped to one unit's reservation set. Exactly one
// of Commit or Abort must be called. Transient conflicts surface as
// ErrContention from any method including Commit.
type Txn interface {
	// FindByNaturalKey returns the reservation stored under key, or
	// (nil, nil) when none exists.
	FindByNaturalKey(ctx context.Context, key string) (*Reservation, error)

	// ListActive returns the unit's reservations that still hold their
	// dates (pending or confirmed).
	ListActive(ctx context.Context, unitID string) ([]Reservation, error)

	Insert(ctx context.Context, res Reservation) error
	Commit(ctx context.Context) error
	Abort(ctx context.Context)
}
