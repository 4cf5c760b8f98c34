package reservation

import "errors"

var (
	// ErrInvalidWindow: the requested dates violate the booking window
	// policy. Caller input error, not retryable as-is.
	ErrInvalidWindow = errors.New("invalid booking window")

	// ErrConflictingDuplicate: a reservation exists under the same natural
	// key with a different signature. Requires caller clarification, never
	// silently overwritten.
	ErrConflictingDuplicate = errors.New("conflicting duplicate request")

	// ErrUnavailable: the requested dates overlap an existing blocking
	// reservation. Terminal for this request; other dates may succeed.
	ErrUnavailable = errors.New("unit unavailable for requested dates")

	// ErrStoreUnavailable: the store kept failing transiently after
	// bounded retries. Try again later.
	ErrStoreUnavailable = errors.New("availability store unavailable")

	// ErrContention: a transient store conflict (serialization failure,
	// deadlock, lock timeout). Store implementations return it to signal
	// the attempt is safe to retry.
	ErrContention = errors.New("store contention")

	// ErrInvalidTransition: the requested status move is not allowed by
	// the transition table.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotFound: no reservation under the given id or key.
	ErrNotFound = errors.New("reservation not found")
)
