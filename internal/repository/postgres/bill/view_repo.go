package postgres

import (
	"context"
	"time"
)

type BillViewItemRow struct {
	ID           string
	StayID       string
	DogName      string
	DogSize      string
	StayType     string
	CheckInDate  time.Time
	CheckOutDate time.Time
	CheckInTime  *string
	CheckOutTime *string
	Description  string
	Quantity     string
	UnitPrice    string
	TotalPrice   string
	DropoffFee   string
	PickupFee    string
	PuppyFee     string
	ExtraCharge  string
	Rover        bool
}

type BillViewPaymentRow struct {
	ID        string
	Method    string
	Amount    string
	PaidAt    time.Time
	Reference *string
	Note      *string
	Status    string
}

func (r *BillRepo) GetViewItems(ctx context.Context, billID string) ([]BillViewItemRow, error) {
	const q = `
SELECT
  bi.id::text,
  bi.stay_id::text,
  d.name,
  d.size,
  s.stay_type,
  s.check_in_date,
  s.check_out_date,
  to_char(s.check_in_time, 'HH24:MI'),
  to_char(s.check_out_time, 'HH24:MI'),
  bi.description,
  bi.quantity::text,
  bi.unit_price::text,
  bi.total_price::text,
  s.dropoff_fee::text,
  s.pickup_fee::text,
  s.puppy_fee::text,
  s.extra_charge::text,
  s.rover
FROM bill_items bi
JOIN stays s ON s.id = bi.stay_id
JOIN dogs d ON d.id = s.dog_id
WHERE bi.bill_id = $1::uuid
ORDER BY s.check_in_date ASC, bi.created_at ASC;
`
	rows, err := r.db.Query(ctx, q, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BillViewItemRow, 0, 8)
	for rows.Next() {
		var it BillViewItemRow
		if err := rows.Scan(
			&it.ID,
			&it.StayID,
			&it.DogName,
			&it.DogSize,
			&it.StayType,
			&it.CheckInDate,
			&it.CheckOutDate,
			&it.CheckInTime,
			&it.CheckOutTime,
			&it.Description,
			&it.Quantity,
			&it.UnitPrice,
			&it.TotalPrice,
			&it.DropoffFee,
			&it.PickupFee,
			&it.PuppyFee,
			&it.ExtraCharge,
			&it.Rover,
		); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *BillRepo) GetViewPayments(ctx context.Context, billID string) ([]BillViewPaymentRow, error) {
	const q = `
SELECT
  p.id::text,
  p.method,
  p.amount::text,
  p.paid_at,
  p.reference,
  p.note,
  p.status
FROM payments p
WHERE p.bill_id = $1::uuid
ORDER BY p.paid_at DESC, p.created_at DESC;
`
	rows, err := r.db.Query(ctx, q, billID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]BillViewPaymentRow, 0, 4)
	for rows.Next() {
		var p BillViewPaymentRow
		if err := rows.Scan(
			&p.ID,
			&p.Method,
			&p.Amount,
			&p.PaidAt,
			&p.Reference,
			&p.Note,
			&p.Status,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
