package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/staybook/internal/domain/reservation"
)

func sample(id, key string, status reservation.Status) reservation.Reservation {
	return reservation.Reservation{
		ID:         id,
		GuestID:    "guest-1",
		UnitID:     "unit-1",
		CheckIn:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:   time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Status:     status,
		NaturalKey: key,
	}
}

func TestTxn_CommitMakesInsertVisible(t *testing.T) {
	s := New()
	ctx := context.Background()

	txn, err := s.Begin(ctx, "unit-1")
	require.NoError(t, err)
	require.NoError(t, txn.Insert(ctx, sample("r1", "key-1", reservation.StatusPending)))

	// Not visible before commit.
	assert.Empty(t, s.All())
	require.NoError(t, txn.Commit(ctx))

	txn2, err := s.Begin(ctx, "unit-1")
	require.NoError(t, err)
	defer txn2.Abort(ctx)

	found, err := txn2.FindByNaturalKey(ctx, "key-1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "r1", found.ID)

	active, err := txn2.ListActive(ctx, "unit-1")
	require.NoError(t, err)
	assert.Len(t, active, 1)
}

func TestTxn_AbortDiscardsInserts(t *testing.T) {
	s := New()
	ctx := context.Background()

	txn, err := s.Begin(ctx, "unit-1")
	require.NoError(t, err)
	require.NoError(t, txn.Insert(ctx, sample("r1", "key-1", reservation.StatusPending)))
	txn.Abort(ctx)

	assert.Empty(t, s.All())

	// The unit lock must be free again.
	txn2, err := s.Begin(ctx, "unit-1")
	require.NoError(t, err)
	txn2.Abort(ctx)
}

func TestListActive_FiltersTerminalStatuses(t *testing.T) {
	s := New()
	ctx := context.Background()

	txn, err := s.Begin(ctx, "unit-1")
	require.NoError(t, err)
	require.NoError(t, txn.Insert(ctx, sample("r1", "key-1", reservation.StatusPending)))
	require.NoError(t, txn.Insert(ctx, sample("r2", "key-2", reservation.StatusCancelled)))
	require.NoError(t, txn.Insert(ctx, sample("r3", "key-3", reservation.StatusCompleted)))
	require.NoError(t, txn.Commit(ctx))

	txn2, err := s.Begin(ctx, "unit-1")
	require.NoError(t, err)
	defer txn2.Abort(ctx)

	active, err := txn2.ListActive(ctx, "unit-1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "r1", active[0].ID)
}

func TestUpdateStatus_EnforcesTransitionTable(t *testing.T) {
	s := New()
	ctx := context.Background()

	txn, err := s.Begin(ctx, "unit-1")
	require.NoError(t, err)
	require.NoError(t, txn.Insert(ctx, sample("r1", "key-1", reservation.StatusPending)))
	require.NoError(t, txn.Commit(ctx))

	res, err := s.UpdateStatus(ctx, "r1", reservation.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusConfirmed, res.Status)

	_, err = s.UpdateStatus(ctx, "r1", reservation.StatusPending)
	assert.ErrorIs(t, err, reservation.ErrInvalidTransition)

	_, err = s.UpdateStatus(ctx, "missing", reservation.StatusConfirmed)
	assert.ErrorIs(t, err, reservation.ErrNotFound)
}

func TestFailNextBegins(t *testing.T) {
	s := New()
	s.FailNextBegins(1)

	_, err := s.Begin(context.Background(), "unit-1")
	assert.ErrorIs(t, err, reservation.ErrContention)

	txn, err := s.Begin(context.Background(), "unit-1")
	require.NoError(t, err)
	txn.Abort(context.Background())
}
