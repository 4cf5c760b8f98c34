package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/example/staybook/internal/domain/reservation"
)

// RetryPolicy bounds the booker's retry loop on store contention.
type RetryPolicy struct {
	MaxAttempts int
	BaseBackoff time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseBackoff: 50 * time.Millisecond}
}

// Booker turns possibly-duplicated, possibly-concurrent booking requests
// into non-overlapping reservations. The idempotency lookup, the overlap
// check and the insert all run inside one store transaction scoped to the
// target unit; two concurrent calls for conflicting dates can never both
// create.
type Booker struct {
	Store  reservation.Store
	Clock  Clock
	IDs    IDSource
	Window reservation.WindowPolicy
	Retry  RetryPolicy
	Events EventPublisher // optional
	Log    *slog.Logger   // optional
}

// CreateOrGet creates a reservation for req or returns the one already
// stored under the same natural key.
//
// Outcomes:
//   - (res, true, nil): a new pending reservation was committed.
//   - (res, false, nil): an identical request was seen before; the stored
//     reservation is returned (safe client retry).
//   - reservation.ErrInvalidWindow, ErrConflictingDuplicate,
//     ErrUnavailable: terminal, surfaced verbatim.
//   - reservation.ErrStoreUnavailable: the store kept failing after
//     bounded backoff.
func (b *Booker) CreateOrGet(ctx context.Context, req reservation.Request) (reservation.Reservation, bool, error) {
	if err := b.Window.CheckWindow(req, b.Clock.Now()); err != nil {
		return reservation.Reservation{}, false, err
	}

	key := reservation.NaturalKey(req)
	sig := reservation.Signature(req)
	log := b.logger().With("unit_id", req.UnitID, "natural_key", key)

	retry := b.Retry
	if retry.MaxAttempts < 1 {
		retry = DefaultRetryPolicy()
	}

	backoff := retry.BaseBackoff
	var lastErr error
	for attempt := 1; attempt <= retry.MaxAttempts; attempt++ {
		res, created, err := b.attempt(ctx, req, key, sig)
		if err == nil || isTerminal(err) {
			if err == nil && created {
				b.publishCreated(ctx, log, res)
			}
			return res, created, err
		}

		lastErr = err
		log.Warn("booking attempt failed, retrying", "attempt", attempt, "error", err)
		if attempt == retry.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return reservation.Reservation{}, false, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return reservation.Reservation{}, false,
		fmt.Errorf("%w: %d attempts exhausted: %v", reservation.ErrStoreUnavailable, retry.MaxAttempts, lastErr)
}

// attempt runs one unit-of-work. Store failures come back raw so the
// caller can decide whether to retry; terminal outcomes come back wrapped
// in their sentinel.
func (b *Booker) attempt(ctx context.Context, req reservation.Request, key, sig string) (reservation.Reservation, bool, error) {
	txn, err := b.Store.Begin(ctx, req.UnitID)
	if err != nil {
		return reservation.Reservation{}, false, fmt.Errorf("begin unit txn: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			txn.Abort(ctx)
		}
	}()

	existing, err := txn.FindByNaturalKey(ctx, key)
	if err != nil {
		return reservation.Reservation{}, false, fmt.Errorf("lookup natural key: %w", err)
	}
	if existing != nil {
		if existing.Signature == sig {
			// Identical retry of the same request.
			return *existing, false, nil
		}
		return reservation.Reservation{}, false,
			fmt.Errorf("%w: reservation %s holds the same guest/unit/dates with a different payload",
				reservation.ErrConflictingDuplicate, existing.ID)
	}

	active, err := txn.ListActive(ctx, req.UnitID)
	if err != nil {
		return reservation.Reservation{}, false, fmt.Errorf("list active reservations: %w", err)
	}
	if reservation.HasOverlap(active, req.Range()) {
		return reservation.Reservation{}, false,
			fmt.Errorf("%w: %s to %s", reservation.ErrUnavailable,
				req.CheckIn.Format("2006-01-02"), req.CheckOut.Format("2006-01-02"))
	}

	now := b.Clock.Now()
	res := reservation.Reservation{
		ID:         b.IDs.NewID(),
		GuestID:    req.GuestID,
		UnitID:     req.UnitID,
		HostID:     req.HostID,
		CheckIn:    reservation.Date(req.CheckIn),
		CheckOut:   reservation.Date(req.CheckOut),
		Guests:     req.Guests,
		TotalPrice: req.TotalPrice,
		AddOns:     reservation.NormalizeAddOns(req.AddOns),
		Status:     reservation.StatusPending,
		NaturalKey: key,
		Signature:  sig,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := txn.Insert(ctx, res); err != nil {
		return reservation.Reservation{}, false, fmt.Errorf("insert reservation: %w", err)
	}
	if err := txn.Commit(ctx); err != nil {
		return reservation.Reservation{}, false, fmt.Errorf("commit unit txn: %w", err)
	}
	committed = true
	return res, true, nil
}

func (b *Booker) publishCreated(ctx context.Context, log *slog.Logger, res reservation.Reservation) {
	log.Info("reservation created", "reservation_id", res.ID,
		"check_in", res.CheckIn.Format("2006-01-02"), "check_out", res.CheckOut.Format("2006-01-02"))
	if b.Events == nil {
		return
	}
	err := b.Events.PublishJSON(ctx, "reservation.created", map[string]any{
		"reservation_id": res.ID,
		"guest_id":       res.GuestID,
		"unit_id":        res.UnitID,
		"check_in":       res.CheckIn.Format("2006-01-02"),
		"check_out":      res.CheckOut.Format("2006-01-02"),
		"total_price":    res.TotalPrice,
	})
	if err != nil {
		log.Warn("publish reservation.created failed", "error", err)
	}
}

func (b *Booker) logger() *slog.Logger {
	if b.Log != nil {
		return b.Log
	}
	return slog.Default()
}

func isTerminal(err error) bool {
	return errors.Is(err, reservation.ErrConflictingDuplicate) ||
		errors.Is(err, reservation.ErrUnavailable) ||
		errors.Is(err, reservation.ErrInvalidWindow)
}
