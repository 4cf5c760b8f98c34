package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/staybook/internal/domain/reservation"
	"github.com/example/staybook/internal/domain/unit"
)

// UnitRepo reads and writes the unit catalog. The reservation core treats
// units as read-only; writes exist for seeding and catalog sync.
type UnitRepo struct{ pool *pgxpool.Pool }

func NewUnitRepo(pool *pgxpool.Pool) *UnitRepo { return &UnitRepo{pool: pool} }

const unitCols = `id, host_id, name, city, lat, lng, nightly_rate, max_occupancy, amenities, status, listed_at`

func (r *UnitRepo) Upsert(ctx context.Context, u unit.Unit) error {
	var lat, lng *float64
	if u.Coordinate != nil {
		lat, lng = &u.Coordinate.Lat, &u.Coordinate.Lng
	}
	_, err := r.pool.Exec(ctx, `
INSERT INTO units(`+unitCols+`)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
ON CONFLICT (id) DO UPDATE SET
	host_id=EXCLUDED.host_id, name=EXCLUDED.name, city=EXCLUDED.city,
	lat=EXCLUDED.lat, lng=EXCLUDED.lng, nightly_rate=EXCLUDED.nightly_rate,
	max_occupancy=EXCLUDED.max_occupancy, amenities=EXCLUDED.amenities,
	status=EXCLUDED.status, listed_at=EXCLUDED.listed_at`,
		u.ID, u.HostID, u.Name, u.City, lat, lng, u.NightlyRate,
		u.MaxOccupancy, joinCSV(u.Amenities), string(u.Status), u.ListedAt)
	return err
}

func (r *UnitRepo) Get(ctx context.Context, id string) (unit.Unit, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+unitCols+` FROM units WHERE id=$1`, id)
	u, err := scanUnit(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return unit.Unit{}, reservation.ErrNotFound
	}
	return u, err
}

// ListActive returns the bookable catalog, ordered by id for stable
// output. This is the candidate source for the ranking CLI.
func (r *UnitRepo) ListActive(ctx context.Context) ([]unit.Unit, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+unitCols+` FROM units WHERE status='active' ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []unit.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUnit(row pgx.Row) (unit.Unit, error) {
	var u unit.Unit
	var lat, lng *float64
	var amenities, status string
	err := row.Scan(&u.ID, &u.HostID, &u.Name, &u.City, &lat, &lng,
		&u.NightlyRate, &u.MaxOccupancy, &amenities, &status, &u.ListedAt)
	if err != nil {
		return unit.Unit{}, err
	}
	if lat != nil && lng != nil {
		u.Coordinate = &unit.Coordinate{Lat: *lat, Lng: *lng}
	}
	u.Amenities = parseCSV(amenities)
	u.Status = unit.Status(status)
	return u, nil
}
