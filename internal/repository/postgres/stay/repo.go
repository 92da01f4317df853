package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StayRow mirrors the stays table joined with dog and customer. NUMERIC
// columns travel as text.
type StayRow struct {
	ID                   string
	DogID                string
	DogName              string
	DogSize              string
	CustomerID           string
	CustomerName         string
	CustomerPhone        *string
	CheckInDate          time.Time
	CheckOutDate         time.Time
	CheckInTime          *string
	CheckOutTime         *string
	StayType             string
	RateType             string
	ManualDaysCount      *int
	RequiresDropoff      bool
	RequiresPickup       bool
	IsPuppy              bool
	Rover                bool
	SpecialPrice         *string
	SpecialPriceComments *string
	ExtraChargeComments  *string
	Notes                *string
	DaysCount            string
	DailyRate            string
	RateMultiplier       string
	DropoffFee           string
	PickupFee            string
	PuppyFee             string
	ExtraCharge          string
	BoardingCost         string
	ComputedTotal        string
	SpecialPriceApplied  bool
	RoverDiscount        string
	TotalCost            string
	Status               string
	Billed               bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type DogRefRow struct {
	ID                 string
	Name               string
	Status             string
	Size               string
	PickupFeeOverride  *string
	DropoffFeeOverride *string
	CustomDailyRate    *string
}

type StayFilter struct {
	DogID      *string
	CustomerID *string
	Status     *string
	Today      time.Time
	Limit      int
	Offset     int
}

type StayRepo struct {
	db *pgxpool.Pool
}

func NewStayRepo(db *pgxpool.Pool) *StayRepo {
	return &StayRepo{db: db}
}

const stayColumns = `
  s.id::text, s.dog_id::text, d.name, d.size, d.customer_id::text, c.name, c.phone,
  s.check_in_date, s.check_out_date,
  to_char(s.check_in_time, 'HH24:MI'), to_char(s.check_out_time, 'HH24:MI'),
  s.stay_type, s.rate_type, s.manual_days_count,
  s.requires_dropoff, s.requires_pickup, s.is_puppy, s.rover,
  s.special_price::text, s.special_price_comments, s.extra_charge_comments, s.notes,
  s.days_count::text, s.daily_rate::text, s.rate_multiplier::text,
  s.dropoff_fee::text, s.pickup_fee::text, s.puppy_fee::text, s.extra_charge::text,
  s.boarding_cost::text, s.computed_total::text,
  (s.special_price IS NOT NULL AND s.special_price > 0),
  s.rover_discount::text, s.total_cost::text,
  s.status,
  EXISTS (SELECT 1 FROM bill_items bi WHERE bi.stay_id = s.id),
  s.created_at, s.updated_at`

const stayJoins = `
JOIN dogs d ON d.id = s.dog_id
JOIN customers c ON c.id = d.customer_id`

// DerivedStatusSQL computes a stay's status for the date in parameter $1.
const DerivedStatusSQL = `
CASE
  WHEN s.status = 'cancelled' THEN 'cancelled'
  WHEN $1::date < s.check_in_date THEN 'upcoming'
  WHEN $1::date > s.check_out_date THEN 'completed'
  ELSE 'active'
END`

func ScanStay(row pgx.Row) (*StayRow, error) {
	var out StayRow
	if err := row.Scan(
		&out.ID,
		&out.DogID,
		&out.DogName,
		&out.DogSize,
		&out.CustomerID,
		&out.CustomerName,
		&out.CustomerPhone,
		&out.CheckInDate,
		&out.CheckOutDate,
		&out.CheckInTime,
		&out.CheckOutTime,
		&out.StayType,
		&out.RateType,
		&out.ManualDaysCount,
		&out.RequiresDropoff,
		&out.RequiresPickup,
		&out.IsPuppy,
		&out.Rover,
		&out.SpecialPrice,
		&out.SpecialPriceComments,
		&out.ExtraChargeComments,
		&out.Notes,
		&out.DaysCount,
		&out.DailyRate,
		&out.RateMultiplier,
		&out.DropoffFee,
		&out.PickupFee,
		&out.PuppyFee,
		&out.ExtraCharge,
		&out.BoardingCost,
		&out.ComputedTotal,
		&out.SpecialPriceApplied,
		&out.RoverDiscount,
		&out.TotalCost,
		&out.Status,
		&out.Billed,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// SelectStays is the shared projection for stay listings in other packages.
func SelectStays() string {
	return `SELECT ` + stayColumns + ` FROM stays s ` + stayJoins
}

func collectStays(rows pgx.Rows) ([]StayRow, error) {
	defer rows.Close()
	out := make([]StayRow, 0, 16)
	for rows.Next() {
		s, err := ScanStay(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *StayRepo) GetDog(ctx context.Context, dogID string) (*DogRefRow, error) {
	const q = `
SELECT id::text, name, status, size,
  pickup_fee_override::text, dropoff_fee_override::text, custom_daily_rate::text
FROM dogs
WHERE id = $1::uuid;
`
	var out DogRefRow
	if err := r.db.QueryRow(ctx, q, dogID).Scan(
		&out.ID,
		&out.Name,
		&out.Status,
		&out.Size,
		&out.PickupFeeOverride,
		&out.DropoffFeeOverride,
		&out.CustomDailyRate,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func stayArgs(in StayRow) []any {
	return []any{
		in.DogID,
		in.CheckInDate,
		in.CheckOutDate,
		in.CheckInTime,
		in.CheckOutTime,
		in.StayType,
		in.RateType,
		in.ManualDaysCount,
		in.RequiresDropoff,
		in.RequiresPickup,
		in.IsPuppy,
		in.Rover,
		in.SpecialPrice,
		in.SpecialPriceComments,
		in.ExtraChargeComments,
		in.Notes,
		in.DaysCount,
		in.DailyRate,
		in.RateMultiplier,
		in.DropoffFee,
		in.PickupFee,
		in.PuppyFee,
		in.ExtraCharge,
		in.BoardingCost,
		in.ComputedTotal,
		in.RoverDiscount,
		in.TotalCost,
		in.Status,
	}
}

func (r *StayRepo) Create(ctx context.Context, in StayRow) (*StayRow, error) {
	const q = `
WITH s AS (
  INSERT INTO stays (
    dog_id, check_in_date, check_out_date, check_in_time, check_out_time,
    stay_type, rate_type, manual_days_count,
    requires_dropoff, requires_pickup, is_puppy, rover,
    special_price, special_price_comments, extra_charge_comments, notes,
    days_count, daily_rate, rate_multiplier,
    dropoff_fee, pickup_fee, puppy_fee, extra_charge,
    boarding_cost, computed_total, rover_discount, total_cost, status
  ) VALUES (
    $1::uuid, $2::date, $3::date, $4::time, $5::time,
    $6, $7, $8,
    $9, $10, $11, $12,
    $13::numeric, $14, $15, $16,
    $17::numeric, $18::numeric, $19::numeric,
    $20::numeric, $21::numeric, $22::numeric, $23::numeric,
    $24::numeric, $25::numeric, $26::numeric, $27::numeric, $28
  )
  RETURNING *
)
SELECT ` + stayColumns + `
FROM s` + stayJoins + `;
`
	return ScanStay(r.db.QueryRow(ctx, q, stayArgs(in)...))
}

// Update replaces the booking and its priced breakdown.
func (r *StayRepo) Update(ctx context.Context, id string, in StayRow) (*StayRow, error) {
	const q = `
WITH s AS (
  UPDATE stays
  SET
    dog_id = $1::uuid, check_in_date = $2::date, check_out_date = $3::date,
    check_in_time = $4::time, check_out_time = $5::time,
    stay_type = $6, rate_type = $7, manual_days_count = $8,
    requires_dropoff = $9, requires_pickup = $10, is_puppy = $11, rover = $12,
    special_price = $13::numeric, special_price_comments = $14,
    extra_charge_comments = $15, notes = $16,
    days_count = $17::numeric, daily_rate = $18::numeric, rate_multiplier = $19::numeric,
    dropoff_fee = $20::numeric, pickup_fee = $21::numeric, puppy_fee = $22::numeric,
    extra_charge = $23::numeric, boarding_cost = $24::numeric, computed_total = $25::numeric,
    rover_discount = $26::numeric, total_cost = $27::numeric, status = $28,
    updated_at = now()
  WHERE id = $29::uuid
  RETURNING *
)
SELECT ` + stayColumns + `
FROM s` + stayJoins + `;
`
	args := append(stayArgs(in), id)
	return ScanStay(r.db.QueryRow(ctx, q, args...))
}

func (r *StayRepo) GetByID(ctx context.Context, id string) (*StayRow, error) {
	q := SelectStays() + `
WHERE s.id = $1::uuid;
`
	return ScanStay(r.db.QueryRow(ctx, q, id))
}

// List filters by the status a stay has on f.Today, not the stored one.
func (r *StayRepo) List(ctx context.Context, f StayFilter) ([]StayRow, error) {
	q := SelectStays() + `
WHERE ($2::uuid IS NULL OR s.dog_id = $2::uuid)
  AND ($3::uuid IS NULL OR d.customer_id = $3::uuid)
  AND ($4::text IS NULL OR ` + DerivedStatusSQL + ` = $4)
ORDER BY s.check_in_date DESC, s.created_at DESC
LIMIT $5 OFFSET $6;
`
	rows, err := r.db.Query(ctx, q, f.Today, f.DogID, f.CustomerID, f.Status, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	return collectStays(rows)
}

func (r *StayRepo) UpdateStatus(ctx context.Context, id, status string) (*StayRow, error) {
	const q = `
WITH s AS (
  UPDATE stays
  SET status = $2, updated_at = now()
  WHERE id = $1::uuid
  RETURNING *
)
SELECT ` + stayColumns + `
FROM s` + stayJoins + `;
`
	return ScanStay(r.db.QueryRow(ctx, q, id, status))
}

// Delete fails with a foreign key violation while a bill item references
// the stay.
func (r *StayRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM stays WHERE id = $1::uuid;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
