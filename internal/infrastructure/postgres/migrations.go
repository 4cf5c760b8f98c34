package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS units (
	id TEXT PRIMARY KEY,
	host_id TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL,
	city TEXT NOT NULL DEFAULT '',
	lat DOUBLE PRECISION,
	lng DOUBLE PRECISION,
	nightly_rate DOUBLE PRECISION NOT NULL,
	max_occupancy INT NOT NULL,
	amenities TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'active',
	listed_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS reservations (
	id TEXT PRIMARY KEY,
	guest_id TEXT NOT NULL,
	unit_id TEXT NOT NULL,
	host_id TEXT NOT NULL DEFAULT '',
	check_in DATE NOT NULL,
	check_out DATE NOT NULL,
	guests INT NOT NULL,
	total_price DOUBLE PRECISION NOT NULL,
	add_ons TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	natural_key TEXT UNIQUE NOT NULL,
	signature TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_reservations_unit_status ON reservations(unit_id, status);

CREATE TABLE IF NOT EXISTS reservation_audit (
	id BIGSERIAL PRIMARY KEY,
	reservation_id TEXT NOT NULL,
	old_status TEXT NOT NULL,
	new_status TEXT NOT NULL,
	reason TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schemaSQL)
	return err
}
