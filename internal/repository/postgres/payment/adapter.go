package postgres

import (
	"context"
	"time"

	"github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/pgutil"
	billuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/bill"
	payuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/payment"
)

type PaymentStoreAdapter struct {
	repo *PaymentRepo
	now  func() time.Time
}

func NewPaymentStoreAdapter(repo *PaymentRepo) *PaymentStoreAdapter {
	return &PaymentStoreAdapter{repo: repo, now: time.Now}
}

func (a *PaymentStoreAdapter) Create(ctx context.Context, in payuc.CreateInput) (*payuc.Payment, *payuc.BillState, error) {
	tx, err := a.repo.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// 1) lock the bill row
	bill, err := lockBill(ctx, tx, in.BillID)
	if err != nil {
		if pgutil.IsNoRows(err) {
			return nil, nil, payuc.ErrBillMissing
		}
		return nil, nil, err
	}
	if bill.Status == billuc.StatusCancelled {
		return nil, nil, payuc.ErrBillClosed
	}

	paidAt := a.now()
	if in.PaidAt != nil {
		paidAt = *in.PaidAt
	}

	// 2) insert payment
	row, err := insertPayment(ctx, tx, PaymentRow{
		BillID:    in.BillID,
		Method:    in.Method,
		Amount:    in.Amount.StringFixed(2),
		PaidAt:    paidAt,
		Reference: in.Reference,
		Note:      in.Note,
		Status:    payuc.StatusPosted,
	})
	if err != nil {
		return nil, nil, err
	}

	// 3) recompute paid amount and statuses
	paidText, err := sumPosted(ctx, tx, in.BillID)
	if err != nil {
		return nil, nil, err
	}
	paid, err := pgutil.Decimal(paidText)
	if err != nil {
		return nil, nil, err
	}
	total, err := pgutil.Decimal(bill.TotalAmount)
	if err != nil {
		return nil, nil, err
	}

	paymentStatus := payuc.PaymentStatusFor(paid, total)
	state := BillStateRow{
		BillID:        in.BillID,
		TotalAmount:   bill.TotalAmount,
		PaidAmount:    paid.StringFixed(2),
		PaymentStatus: paymentStatus,
		Status:        payuc.SettledStatus(bill.Status, paymentStatus),
	}
	if err := updateBillState(ctx, tx, state, in.Method); err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	p, err := mapPayment(row)
	if err != nil {
		return nil, nil, err
	}
	return p, &payuc.BillState{
		BillID:        state.BillID,
		TotalAmount:   total,
		PaidAmount:    paid,
		BalanceDue:    total.Sub(paid),
		PaymentStatus: state.PaymentStatus,
		Status:        state.Status,
	}, nil
}

func (a *PaymentStoreAdapter) ListByBill(ctx context.Context, billID string) ([]payuc.Payment, error) {
	rows, err := a.repo.ListByBill(ctx, billID)
	if err != nil {
		return nil, err
	}

	out := make([]payuc.Payment, 0, len(rows))
	for i := range rows {
		p, err := mapPayment(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func mapPayment(r *PaymentRow) (*payuc.Payment, error) {
	amount, err := pgutil.Decimal(r.Amount)
	if err != nil {
		return nil, err
	}
	return &payuc.Payment{
		ID:        r.ID,
		BillID:    r.BillID,
		Method:    r.Method,
		Amount:    amount,
		PaidAt:    r.PaidAt,
		Reference: r.Reference,
		Note:      r.Note,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

// Compile-time check
var _ payuc.Store = (*PaymentStoreAdapter)(nil)
