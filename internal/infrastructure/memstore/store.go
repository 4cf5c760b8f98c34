// Package memstore is an in-memory availability store. It backs tests and
// local runs with the same per-unit atomicity contract the postgres store
// provides: one transaction per unit at a time, held from Begin to
// Commit/Abort.
package memstore

import (
	"context"
	"sync"

	"github.com/example/staybook/internal/domain/reservation"
)

type Store struct {
	mu        sync.Mutex
	unitLocks map[string]*sync.Mutex
	byKey     map[string]reservation.Reservation   // natural key -> reservation
	byUnit    map[string][]reservation.Reservation // unit id -> reservations

	// failBegins, when positive, makes the next Begin calls fail with
	// ErrContention. Used by tests to exercise the retry path.
	failBegins int
}

func New() *Store {
	return &Store{
		unitLocks: make(map[string]*sync.Mutex),
		byKey:     make(map[string]reservation.Reservation),
		byUnit:    make(map[string][]reservation.Reservation),
	}
}

// FailNextBegins arms n injected contention failures.
func (s *Store) FailNextBegins(n int) {
	s.mu.Lock()
	s.failBegins = n
	s.mu.Unlock()
}

func (s *Store) Begin(ctx context.Context, unitID string) (reservation.Txn, error) {
	s.mu.Lock()
	if s.failBegins > 0 {
		s.failBegins--
		s.mu.Unlock()
		return nil, reservation.ErrContention
	}
	lock, ok := s.unitLocks[unitID]
	if !ok {
		lock = &sync.Mutex{}
		s.unitLocks[unitID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return &txn{store: s, unitID: unitID, lock: lock}, nil
}

// All returns a snapshot of every stored reservation, for assertions.
func (s *Store) All() []reservation.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]reservation.Reservation, 0, len(s.byKey))
	for _, res := range s.byKey {
		out = append(out, res)
	}
	return out
}

// UpdateStatus applies a validated status transition outside the booking
// path, mirroring the postgres store's surface.
func (s *Store) UpdateStatus(ctx context.Context, id string, to reservation.Status) (reservation.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, res := range s.byKey {
		if res.ID != id {
			continue
		}
		if !res.Status.CanTransitionTo(to) {
			return reservation.Reservation{}, reservation.ErrInvalidTransition
		}
		res.Status = to
		s.byKey[key] = res
		list := s.byUnit[res.UnitID]
		for i := range list {
			if list[i].ID == id {
				list[i].Status = to
			}
		}
		return res, nil
	}
	return reservation.Reservation{}, reservation.ErrNotFound
}

type txn struct {
	store    *Store
	unitID   string
	lock     *sync.Mutex
	inserts  []reservation.Reservation
	finished bool
}

func (t *txn) FindByNaturalKey(ctx context.Context, key string) (*reservation.Reservation, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	if res, ok := t.store.byKey[key]; ok {
		out := res
		return &out, nil
	}
	return nil, nil
}

func (t *txn) ListActive(ctx context.Context, unitID string) ([]reservation.Reservation, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	var out []reservation.Reservation
	for _, res := range t.store.byUnit[unitID] {
		if res.Status.Blocking() {
			out = append(out, res)
		}
	}
	return out, nil
}

func (t *txn) Insert(ctx context.Context, res reservation.Reservation) error {
	t.inserts = append(t.inserts, res)
	return nil
}

func (t *txn) Commit(ctx context.Context) error {
	if t.finished {
		return nil
	}
	t.store.mu.Lock()
	for _, res := range t.inserts {
		t.store.byKey[res.NaturalKey] = res
		t.store.byUnit[res.UnitID] = append(t.store.byUnit[res.UnitID], res)
	}
	t.store.mu.Unlock()
	t.finish()
	return nil
}

func (t *txn) Abort(ctx context.Context) {
	if t.finished {
		return
	}
	t.inserts = nil
	t.finish()
}

func (t *txn) finish() {
	t.finished = true
	t.lock.Unlock()
}
