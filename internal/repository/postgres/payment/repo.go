package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PaymentRow struct {
	ID        string
	BillID    string
	Method    string
	Amount    string
	PaidAt    time.Time
	Reference *string
	Note      *string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type BillStateRow struct {
	BillID        string
	TotalAmount   string
	PaidAmount    string
	PaymentStatus string
	Status        string
}

type PaymentRepo struct {
	db *pgxpool.Pool
}

func NewPaymentRepo(db *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{db: db}
}

func (r *PaymentRepo) Begin(ctx context.Context) (pgx.Tx, error) {
	return r.db.BeginTx(ctx, pgx.TxOptions{})
}

const paymentColumns = `
  id::text, bill_id::text, method, amount::text, paid_at,
  reference, note, status, created_at, updated_at`

func scanPayment(row pgx.Row) (*PaymentRow, error) {
	var out PaymentRow
	if err := row.Scan(
		&out.ID,
		&out.BillID,
		&out.Method,
		&out.Amount,
		&out.PaidAt,
		&out.Reference,
		&out.Note,
		&out.Status,
		&out.CreatedAt,
		&out.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

// lockBill holds the bill row until the transaction ends so concurrent
// payments settle one after another.
func lockBill(ctx context.Context, tx pgx.Tx, billID string) (*BillStateRow, error) {
	const q = `
SELECT id::text, total_amount::text, paid_amount::text, payment_status, status
FROM bills
WHERE id = $1::uuid
FOR UPDATE;
`
	var out BillStateRow
	if err := tx.QueryRow(ctx, q, billID).Scan(
		&out.BillID,
		&out.TotalAmount,
		&out.PaidAmount,
		&out.PaymentStatus,
		&out.Status,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func insertPayment(ctx context.Context, tx pgx.Tx, in PaymentRow) (*PaymentRow, error) {
	const q = `
INSERT INTO payments (bill_id, method, amount, paid_at, reference, note, status)
VALUES ($1::uuid, $2, $3::numeric, $4, $5, $6, $7)
RETURNING ` + paymentColumns + `;
`
	return scanPayment(tx.QueryRow(ctx, q,
		in.BillID,
		in.Method,
		in.Amount,
		in.PaidAt,
		in.Reference,
		in.Note,
		in.Status,
	))
}

func sumPosted(ctx context.Context, tx pgx.Tx, billID string) (string, error) {
	const q = `
SELECT COALESCE(SUM(amount), 0)::text
FROM payments
WHERE bill_id = $1::uuid AND status = 'posted';
`
	var paid string
	err := tx.QueryRow(ctx, q, billID).Scan(&paid)
	return paid, err
}

func updateBillState(ctx context.Context, tx pgx.Tx, in BillStateRow, method string) error {
	const q = `
UPDATE bills
SET
  paid_amount = $2::numeric,
  payment_status = $3,
  status = $4,
  payment_method = COALESCE(payment_method, $5),
  updated_at = now()
WHERE id = $1::uuid;
`
	_, err := tx.Exec(ctx, q, in.BillID, in.PaidAmount, in.PaymentStatus, in.Status, method)
	return err
}

func (r *PaymentRepo) ListByBill(ctx context.Context, billID string) ([]PaymentRow, error) {
	const q = `
SELECT ` + paymentColumns + `
FROM payments
WHERE bill_id = $1::uuid
ORDER BY paid_at DESC, created_at DESC;
`
	rows, err := r.db.Query(ctx, q, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]PaymentRow, 0, 10)
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
