package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RateRow struct {
	ID          string
	DogSize     string
	RateType    string
	ServiceType string
	PricePerDay string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type RateRepo struct {
	db *pgxpool.Pool
}

func NewRateRepo(db *pgxpool.Pool) *RateRepo {
	return &RateRepo{db: db}
}

const rateColumns = `id::text, dog_size, rate_type, service_type, price_per_day::text, created_at, updated_at`

func scanRate(row pgx.Row) (*RateRow, error) {
	var out RateRow
	if err := row.Scan(
		&out.ID,
		&out.DogSize,
		&out.RateType,
		&out.ServiceType,
		&out.PricePerDay,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *RateRepo) List(ctx context.Context) ([]RateRow, error) {
	const q = `
SELECT ` + rateColumns + `
FROM rates
ORDER BY service_type, rate_type,
  CASE dog_size WHEN 'small' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END;
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]RateRow, 0, 12)
	for rows.Next() {
		rr, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rr)
	}
	return out, rows.Err()
}

func (r *RateRepo) GetByID(ctx context.Context, id string) (*RateRow, error) {
	const q = `
SELECT ` + rateColumns + `
FROM rates
WHERE id = $1::uuid;
`
	return scanRate(r.db.QueryRow(ctx, q, id))
}

func (r *RateRepo) UpdatePrice(ctx context.Context, id, price string) (*RateRow, error) {
	const q = `
UPDATE rates
SET price_per_day = $2::numeric, updated_at = now()
WHERE id = $1::uuid
RETURNING ` + rateColumns + `;
`
	return scanRate(r.db.QueryRow(ctx, q, id, price))
}

// InsertIfMissing leaves an existing (size, rate type, service type) row alone.
func (r *RateRepo) InsertIfMissing(ctx context.Context, in RateRow) (bool, error) {
	const q = `
INSERT INTO rates (dog_size, rate_type, service_type, price_per_day)
VALUES ($1, $2, $3, $4::numeric)
ON CONFLICT (dog_size, rate_type, service_type) DO NOTHING;
`
	tag, err := r.db.Exec(ctx, q, in.DogSize, in.RateType, in.ServiceType, in.PricePerDay)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}
