package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DogRow struct {
	ID                  string
	CustomerID          string
	CustomerName        string
	Name                string
	Breed               *string
	Age                 *int
	AgeMonths           *int
	Location            *string
	Size                string
	Status              string
	FoodPreferences     *string
	BehavioralNotes     *string
	SpecialInstructions *string
	PhotoURL            *string
	PickupFeeOverride   *string
	DropoffFeeOverride  *string
	CustomDailyRate     *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// DogPatch carries a partial update. Nil fields keep their value; the Clear
// flags reset an override to NULL.
type DogPatch struct {
	CustomerID          *string
	Name                *string
	Breed               *string
	Age                 *int
	AgeMonths           *int
	Location            *string
	Size                *string
	Status              *string
	FoodPreferences     *string
	BehavioralNotes     *string
	SpecialInstructions *string
	PhotoURL            *string
	PickupFeeOverride   *string
	DropoffFeeOverride  *string
	CustomDailyRate     *string
	ClearPickupFee      bool
	ClearDropoffFee     bool
	ClearCustomRate     bool
}

type DogRepo struct {
	db *pgxpool.Pool
}

func NewDogRepo(db *pgxpool.Pool) *DogRepo {
	return &DogRepo{db: db}
}

const dogColumns = `
  d.id::text, d.customer_id::text, c.name, d.name, d.breed, d.age, d.age_months, d.location,
  d.size, d.status, d.food_preferences, d.behavioral_notes, d.special_instructions, d.photo_url,
  d.pickup_fee_override::text, d.dropoff_fee_override::text, d.custom_daily_rate::text,
  d.created_at, d.updated_at`

func scanDog(row pgx.Row) (*DogRow, error) {
	var out DogRow
	if err := row.Scan(
		&out.ID,
		&out.CustomerID,
		&out.CustomerName,
		&out.Name,
		&out.Breed,
		&out.Age,
		&out.AgeMonths,
		&out.Location,
		&out.Size,
		&out.Status,
		&out.FoodPreferences,
		&out.BehavioralNotes,
		&out.SpecialInstructions,
		&out.PhotoURL,
		&out.PickupFeeOverride,
		&out.DropoffFeeOverride,
		&out.CustomDailyRate,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *DogRepo) CustomerExists(ctx context.Context, customerID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1::uuid);`
	var ok bool
	if err := r.db.QueryRow(ctx, q, customerID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (r *DogRepo) Create(ctx context.Context, in DogRow) (*DogRow, error) {
	const q = `
WITH d AS (
  INSERT INTO dogs (
    customer_id, name, breed, age, age_months, location, size, status,
    food_preferences, behavioral_notes, special_instructions, photo_url,
    pickup_fee_override, dropoff_fee_override, custom_daily_rate
  ) VALUES (
    $1::uuid, $2, $3, $4, $5, $6, $7, $8,
    $9, $10, $11, $12,
    $13::numeric, $14::numeric, $15::numeric
  )
  RETURNING *
)
SELECT ` + dogColumns + `
FROM d
JOIN customers c ON c.id = d.customer_id;
`
	return scanDog(r.db.QueryRow(ctx, q,
		in.CustomerID,
		in.Name,
		in.Breed,
		in.Age,
		in.AgeMonths,
		in.Location,
		in.Size,
		in.Status,
		in.FoodPreferences,
		in.BehavioralNotes,
		in.SpecialInstructions,
		in.PhotoURL,
		in.PickupFeeOverride,
		in.DropoffFeeOverride,
		in.CustomDailyRate,
	))
}

func (r *DogRepo) GetByID(ctx context.Context, id string) (*DogRow, error) {
	const q = `
SELECT ` + dogColumns + `
FROM dogs d
JOIN customers c ON c.id = d.customer_id
WHERE d.id = $1::uuid
LIMIT 1;
`
	return scanDog(r.db.QueryRow(ctx, q, id))
}

func (r *DogRepo) List(ctx context.Context, customerID, status *string, limit, offset int) ([]DogRow, error) {
	const q = `
SELECT ` + dogColumns + `
FROM dogs d
JOIN customers c ON c.id = d.customer_id
WHERE ($1::uuid IS NULL OR d.customer_id = $1::uuid)
  AND ($2::text IS NULL OR d.status = $2)
ORDER BY d.name ASC, d.created_at DESC
LIMIT $3 OFFSET $4;
`
	rows, err := r.db.Query(ctx, q, customerID, status, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]DogRow, 0, limit)
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *DogRepo) Update(ctx context.Context, id string, in DogPatch) (*DogRow, error) {
	const q = `
WITH d AS (
  UPDATE dogs
  SET
    customer_id          = COALESCE($2::uuid, customer_id),
    name                 = COALESCE($3, name),
    breed                = COALESCE($4, breed),
    age                  = COALESCE($5, age),
    age_months           = COALESCE($6, age_months),
    location             = COALESCE($7, location),
    size                 = COALESCE($8, size),
    status               = COALESCE($9, status),
    food_preferences     = COALESCE($10, food_preferences),
    behavioral_notes     = COALESCE($11, behavioral_notes),
    special_instructions = COALESCE($12, special_instructions),
    photo_url            = COALESCE($13, photo_url),
    pickup_fee_override  = CASE WHEN $17 THEN NULL ELSE COALESCE($14::numeric, pickup_fee_override) END,
    dropoff_fee_override = CASE WHEN $18 THEN NULL ELSE COALESCE($15::numeric, dropoff_fee_override) END,
    custom_daily_rate    = CASE WHEN $19 THEN NULL ELSE COALESCE($16::numeric, custom_daily_rate) END,
    updated_at = now()
  WHERE id = $1::uuid
  RETURNING *
)
SELECT ` + dogColumns + `
FROM d
JOIN customers c ON c.id = d.customer_id;
`
	return scanDog(r.db.QueryRow(ctx, q,
		id,
		in.CustomerID,
		in.Name,
		in.Breed,
		in.Age,
		in.AgeMonths,
		in.Location,
		in.Size,
		in.Status,
		in.FoodPreferences,
		in.BehavioralNotes,
		in.SpecialInstructions,
		in.PhotoURL,
		in.PickupFeeOverride,
		in.DropoffFeeOverride,
		in.CustomDailyRate,
		in.ClearPickupFee,
		in.ClearDropoffFee,
		in.ClearCustomRate,
	))
}

// Delete fails with a foreign key violation while stays reference the dog.
func (r *DogRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM dogs WHERE id = $1::uuid;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
