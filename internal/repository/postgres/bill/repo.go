package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	stayrepo "github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/stay"
)

type BillRow struct {
	ID            string
	CustomerID    string
	CustomerName  string
	CustomerPhone *string
	CustomerEmail *string
	BillCode      string
	BillDate      time.Time
	DueDate       time.Time
	Subtotal      string
	Tax           string
	TotalAmount   string
	PaidAmount    string
	PaymentStatus string
	Status        string
	PaymentMethod *string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type BillItemRow struct {
	StayID      string
	Description string
	Quantity    string
	UnitPrice   string
	TotalPrice  string
}

type BillableStayRow struct {
	ID        string
	StayType  string
	DaysCount string
	DailyRate string
	TotalCost string
}

type BillFilter struct {
	CustomerID *string
	Status     *string
	Limit      int
	Offset     int
}

type BillRepo struct {
	db *pgxpool.Pool
}

func NewBillRepo(db *pgxpool.Pool) *BillRepo {
	return &BillRepo{db: db}
}

func (r *BillRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.db.BeginTx(ctx, pgx.TxOptions{})
}

const billColumns = `
  b.id::text, b.customer_id::text, c.name, c.phone, c.email,
  b.bill_code, b.bill_date, b.due_date,
  b.subtotal::text, b.tax::text, b.total_amount::text, b.paid_amount::text,
  b.payment_status, b.status, b.payment_method, b.notes,
  b.created_at, b.updated_at`

const billFrom = `
FROM bills b
JOIN customers c ON c.id = b.customer_id`

func scanBill(row pgx.Row) (*BillRow, error) {
	var out BillRow
	if err := row.Scan(
		&out.ID,
		&out.CustomerID,
		&out.CustomerName,
		&out.CustomerPhone,
		&out.CustomerEmail,
		&out.BillCode,
		&out.BillDate,
		&out.DueDate,
		&out.Subtotal,
		&out.Tax,
		&out.TotalAmount,
		&out.PaidAmount,
		&out.PaymentStatus,
		&out.Status,
		&out.PaymentMethod,
		&out.Notes,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *BillRepo) CustomerExists(ctx context.Context, customerID string) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1::uuid);`
	var ok bool
	if err := r.db.QueryRow(ctx, q, customerID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

// BillableStays keeps only the requested stays of this customer that have
// started by today, are not cancelled and sit on no bill.
func (r *BillRepo) BillableStays(ctx context.Context, customerID string, stayIDs []string, today time.Time) ([]BillableStayRow, error) {
	const q = `
SELECT s.id::text, s.stay_type, s.days_count::text, s.daily_rate::text, s.total_cost::text
FROM stays s
JOIN dogs d ON d.id = s.dog_id
WHERE s.id::text = ANY($2::text[])
  AND d.customer_id = $1::uuid
  AND s.status <> 'cancelled'
  AND s.check_in_date <= $3::date
  AND NOT EXISTS (SELECT 1 FROM bill_items bi WHERE bi.stay_id = s.id)
ORDER BY s.check_in_date ASC, s.created_at ASC;
`
	rows, err := r.db.Query(ctx, q, customerID, stayIDs, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BillableStayRow, 0, len(stayIDs))
	for rows.Next() {
		var s BillableStayRow
		if err := rows.Scan(&s.ID, &s.StayType, &s.DaysCount, &s.DailyRate, &s.TotalCost); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func insertBill(ctx context.Context, tx pgx.Tx, in BillRow) (string, error) {
	const q = `
INSERT INTO bills (
  customer_id, bill_code, bill_date, due_date, subtotal, tax, total_amount, notes
) VALUES (
  $1::uuid, $2, $3::date, $4::date, $5::numeric, $6::numeric, $7::numeric, $8
)
RETURNING id::text;
`
	var id string
	err := tx.QueryRow(ctx, q,
		in.CustomerID,
		in.BillCode,
		in.BillDate,
		in.DueDate,
		in.Subtotal,
		in.Tax,
		in.TotalAmount,
		in.Notes,
	).Scan(&id)
	return id, err
}

func insertBillItem(ctx context.Context, tx pgx.Tx, billID string, it BillItemRow) error {
	const q = `
INSERT INTO bill_items (bill_id, stay_id, description, quantity, unit_price, total_price)
VALUES ($1::uuid, $2::uuid, $3, $4::numeric, $5::numeric, $6::numeric);
`
	_, err := tx.Exec(ctx, q, billID, it.StayID, it.Description, it.Quantity, it.UnitPrice, it.TotalPrice)
	return err
}

func (r *BillRepo) GetByID(ctx context.Context, id string) (*BillRow, error) {
	q := `SELECT ` + billColumns + billFrom + `
WHERE b.id = $1::uuid;
`
	return scanBill(r.db.QueryRow(ctx, q, id))
}

func (r *BillRepo) GetByCode(ctx context.Context, code string) (*BillRow, error) {
	q := `SELECT ` + billColumns + billFrom + `
WHERE b.bill_code = $1;
`
	return scanBill(r.db.QueryRow(ctx, q, code))
}

func (r *BillRepo) List(ctx context.Context, f BillFilter) ([]BillRow, error) {
	q := `SELECT ` + billColumns + billFrom + `
WHERE ($1::uuid IS NULL OR b.customer_id = $1::uuid)
  AND ($2::text IS NULL OR b.status = $2)
ORDER BY b.bill_date DESC, b.created_at DESC
LIMIT $3 OFFSET $4;
`
	rows, err := r.db.Query(ctx, q, f.CustomerID, f.Status, f.Limit, f.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BillRow, 0, f.Limit)
	for rows.Next() {
		b, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *BillRepo) UpdateStatus(ctx context.Context, id, status string, paymentMethod *string) error {
	const q = `
UPDATE bills
SET status = $2, payment_method = COALESCE($3, payment_method), updated_at = now()
WHERE id = $1::uuid;
`
	tag, err := r.db.Exec(ctx, q, id, status, paymentMethod)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete removes the bill with its items and payments.
func (r *BillRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bills WHERE id = $1::uuid;`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *BillRepo) UnbilledStays(ctx context.Context, today time.Time) ([]stayrepo.StayRow, error) {
	q := stayrepo.SelectStays() + `
WHERE s.status <> 'cancelled'
  AND s.check_in_date <= $1::date
  AND NOT EXISTS (SELECT 1 FROM bill_items bi WHERE bi.stay_id = s.id)
ORDER BY c.name ASC, s.check_out_date DESC;
`
	rows, err := r.db.Query(ctx, q, today)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]stayrepo.StayRow, 0, 16)
	for rows.Next() {
		s, err := stayrepo.ScanStay(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}
