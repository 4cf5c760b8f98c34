package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/staybook/internal/domain/reservation"
)

// Open builds a pgx pool for the given database URL.
func Open(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, err
	}
	cfg.MaxConnLifetime = 5 * time.Minute
	cfg.MaxConnIdleTime = 1 * time.Minute
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Store implements the reservation store port on postgres.
type Store struct{ pool *pgxpool.Pool }

func NewStore(pool *pgxpool.Pool) *Store { return &Store{pool: pool} }

// Begin opens a transaction serialized per unit via an advisory lock over
// the unit id. Row locks on existing reservations would miss the
// phantom-insert case (two empty-calendar bookings racing); the advisory
// lock covers it while leaving other units fully concurrent.
func (s *Store) Begin(ctx context.Context, unitID string) (reservation.Txn, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, wrapContention(err)
	}
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, unitID); err != nil {
		_ = tx.Rollback(ctx)
		return nil, wrapContention(err)
	}
	return &txn{tx: tx}, nil
}

const reservationCols = `id, guest_id, unit_id, host_id, check_in, check_out, guests, total_price, add_ons, status, natural_key, signature, created_at, updated_at`

type txn struct{ tx pgx.Tx }

func (t *txn) FindByNaturalKey(ctx context.Context, key string) (*reservation.Reservation, error) {
	row := t.tx.QueryRow(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE natural_key=$1`, key)
	res, err := scanReservation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrapContention(err)
	}
	return &res, nil
}

func (t *txn) ListActive(ctx context.Context, unitID string) ([]reservation.Reservation, error) {
	rows, err := t.tx.Query(ctx,
		`SELECT `+reservationCols+` FROM reservations
		 WHERE unit_id=$1 AND status IN ('pending','confirmed')
		 ORDER BY check_in ASC`, unitID)
	if err != nil {
		return nil, wrapContention(err)
	}
	defer rows.Close()

	var out []reservation.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, wrapContention(err)
		}
		out = append(out, res)
	}
	return out, wrapContention(rows.Err())
}

func (t *txn) Insert(ctx context.Context, res reservation.Reservation) error {
	_, err := t.tx.Exec(ctx, `
INSERT INTO reservations(`+reservationCols+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)`,
		res.ID, res.GuestID, res.UnitID, res.HostID, res.CheckIn, res.CheckOut,
		res.Guests, res.TotalPrice, joinCSV(res.AddOns), string(res.Status),
		res.NaturalKey, res.Signature, res.CreatedAt, res.UpdatedAt)
	return wrapContention(err)
}

func (t *txn) Commit(ctx context.Context) error {
	return wrapContention(t.tx.Commit(ctx))
}

func (t *txn) Abort(ctx context.Context) {
	_ = t.tx.Rollback(ctx)
}

// GetByID fetches one reservation outside any unit transaction.
func (s *Store) GetByID(ctx context.Context, id string) (reservation.Reservation, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+reservationCols+` FROM reservations WHERE id=$1`, id)
	res, err := scanReservation(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return reservation.Reservation{}, reservation.ErrNotFound
	}
	return res, err
}

// UpdateStatus applies a validated status transition and records an audit
// row. Creation never goes through here; that path is the Booker's alone.
func (s *Store) UpdateStatus(ctx context.Context, id string, to reservation.Status, reason string) (reservation.Reservation, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return reservation.Reservation{}, wrapContention(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current string
	err = tx.QueryRow(ctx, `SELECT status FROM reservations WHERE id=$1 FOR UPDATE`, id).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return reservation.Reservation{}, reservation.ErrNotFound
	}
	if err != nil {
		return reservation.Reservation{}, wrapContention(err)
	}
	if !reservation.Status(current).CanTransitionTo(to) {
		return reservation.Reservation{}, fmt.Errorf("%w: %s -> %s", reservation.ErrInvalidTransition, current, to)
	}

	row := tx.QueryRow(ctx, `
UPDATE reservations SET status=$2, updated_at=now() WHERE id=$1
RETURNING `+reservationCols, id, string(to))
	res, err := scanReservation(row)
	if err != nil {
		return reservation.Reservation{}, wrapContention(err)
	}

	_, err = tx.Exec(ctx, `
INSERT INTO reservation_audit(reservation_id, old_status, new_status, reason)
VALUES ($1,$2,$3,$4)`, id, current, string(to), reason)
	if err != nil {
		return reservation.Reservation{}, wrapContention(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return reservation.Reservation{}, wrapContention(err)
	}
	return res, nil
}

func scanReservation(row pgx.Row) (reservation.Reservation, error) {
	var res reservation.Reservation
	var addOns, status string
	err := row.Scan(&res.ID, &res.GuestID, &res.UnitID, &res.HostID,
		&res.CheckIn, &res.CheckOut, &res.Guests, &res.TotalPrice,
		&addOns, &status, &res.NaturalKey, &res.Signature,
		&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return reservation.Reservation{}, err
	}
	res.AddOns = parseCSV(addOns)
	res.Status = reservation.Status(status)
	return res, nil
}

// wrapContention tags retryable postgres failures (serialization aborts,
// deadlocks, lock timeouts) with the domain contention sentinel.
func wrapContention(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03":
			return fmt.Errorf("%w: %v", reservation.ErrContention, err)
		}
	}
	return err
}

func joinCSV(items []string) string {
	var cleaned []string
	for _, it := range items {
		it = strings.TrimSpace(it)
		if it == "" {
			continue
		}
		cleaned = append(cleaned, it)
	}
	return strings.Join(cleaned, ",")
}

func parseCSV(s string) []string {
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
