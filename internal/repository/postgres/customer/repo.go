package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CustomerRow struct {
	ID        string
	Name      string
	Phone     *string
	Email     *string
	Address   *string
	Notes     *string
	DogCount  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CustomerRepo struct {
	db *pgxpool.Pool
}

func NewCustomerRepo(db *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{db: db}
}

const customerColumns = `
  c.id::text, c.name, c.phone, c.email, c.address, c.notes,
  (SELECT count(*) FROM dogs d WHERE d.customer_id = c.id)::int,
  c.created_at, c.updated_at`

func scanCustomer(row pgx.Row) (*CustomerRow, error) {
	var out CustomerRow
	if err := row.Scan(
		&out.ID,
		&out.Name,
		&out.Phone,
		&out.Email,
		&out.Address,
		&out.Notes,
		&out.DogCount,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *CustomerRepo) Create(ctx context.Context, in CustomerRow) (*CustomerRow, error) {
	const q = `
WITH c AS (
  INSERT INTO customers (name, phone, email, address, notes)
  VALUES ($1, $2, $3, $4, $5)
  RETURNING *
)
SELECT ` + customerColumns + `
FROM c;
`
	return scanCustomer(r.db.QueryRow(ctx, q, in.Name, in.Phone, in.Email, in.Address, in.Notes))
}

func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*CustomerRow, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers c
WHERE c.id = $1::uuid
LIMIT 1;
`
	return scanCustomer(r.db.QueryRow(ctx, q, id))
}

func (r *CustomerRepo) Exists(ctx context.Context, id string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1::uuid);`
	var ok bool
	if err := r.db.QueryRow(ctx, q, id).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// List orders by name; search matches name, phone or email.
func (r *CustomerRepo) List(ctx context.Context, search *string, limit, offset int) ([]CustomerRow, error) {
	const q = `
SELECT ` + customerColumns + `
FROM customers c
WHERE $1::text IS NULL
   OR c.name ILIKE '%' || $1 || '%'
   OR c.phone ILIKE '%' || $1 || '%'
   OR c.email ILIKE '%' || $1 || '%'
ORDER BY c.name ASC, c.created_at DESC
LIMIT $2 OFFSET $3;
`
	rows, err := r.db.Query(ctx, q, search, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CustomerRow, 0, limit)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *CustomerRepo) Update(ctx context.Context, id string, in CustomerRow) (*CustomerRow, error) {
	const q = `
WITH c AS (
  UPDATE customers
  SET
    name    = COALESCE($2, name),
    phone   = COALESCE($3, phone),
    email   = COALESCE($4, email),
    address = COALESCE($5, address),
    notes   = COALESCE($6, notes),
    updated_at = now()
  WHERE id = $1::uuid
  RETURNING *
)
SELECT ` + customerColumns + `
FROM c;
`
	out, err := scanCustomer(r.db.QueryRow(ctx, q,
		id,
		nullIfEmptyStrPtr(in.Name),
		in.Phone,
		in.Email,
		in.Address,
		in.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return out, nil
}

// Delete fails with a foreign key violation while dogs or bills reference
// the customer.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM customers WHERE id = $1::uuid;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// used only for update where name is string not *string in CustomerRow
func nullIfEmptyStrPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
