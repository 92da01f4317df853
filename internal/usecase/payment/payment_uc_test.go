package payment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	billuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/bill"
)

type fakeStore struct {
	total    decimal.Decimal
	paid     decimal.Decimal
	status   string
	payments []Payment
}

func (f *fakeStore) Create(_ context.Context, in CreateInput) (*Payment, *BillState, error) {
	if f.status == billuc.StatusCancelled {
		return nil, nil, ErrBillClosed
	}
	f.paid = f.paid.Add(in.Amount)
	ps := PaymentStatusFor(f.paid, f.total)
	f.status = SettledStatus(f.status, ps)

	p := Payment{
		ID:        uuid.NewString(),
		BillID:    in.BillID,
		Method:    in.Method,
		Amount:    in.Amount,
		PaidAt:    time.Now(),
		Reference: in.Reference,
		Note:      in.Note,
		Status:    StatusPosted,
	}
	f.payments = append(f.payments, p)
	return &p, &BillState{
		BillID:        in.BillID,
		TotalAmount:   f.total,
		PaidAmount:    f.paid,
		BalanceDue:    f.total.Sub(f.paid),
		PaymentStatus: ps,
		Status:        f.status,
	}, nil
}

func (f *fakeStore) ListByBill(_ context.Context, _ string) ([]Payment, error) {
	return f.payments, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// This test validates:
// - a partial payment leaves the bill open
// - the payment that completes the total settles a sent bill to paid
// - paying past the total is reported as overpaid
func TestCreate_SettlesBill(t *testing.T) {
	store := &fakeStore{total: d("187.00"), status: billuc.StatusSent}
	uc := New(store, zap.NewNop())
	ctx := context.Background()
	billID := uuid.NewString()

	_, st, err := uc.Create(ctx, CreateInput{BillID: billID, Method: "cash", Amount: d("100")})
	require.NoError(t, err)
	require.Equal(t, billuc.PaymentPartial, st.PaymentStatus)
	require.Equal(t, billuc.StatusSent, st.Status)
	require.Equal(t, "87.00", st.BalanceDue.StringFixed(2))

	ref := "  TRX-991 "
	p, st, err := uc.Create(ctx, CreateInput{BillID: billID, Method: " Transfer ", Amount: d("87.004"), Reference: &ref})
	require.NoError(t, err)
	require.Equal(t, MethodTransfer, p.Method)
	require.Equal(t, "87", p.Amount.String())
	require.Equal(t, "TRX-991", *p.Reference)
	require.Equal(t, billuc.PaymentPaid, st.PaymentStatus)
	require.Equal(t, billuc.StatusPaid, st.Status)

	_, st, err = uc.Create(ctx, CreateInput{BillID: billID, Method: "card", Amount: d("5")})
	require.NoError(t, err)
	require.Equal(t, billuc.PaymentOverpaid, st.PaymentStatus)

	list, err := uc.ListByBill(ctx, billID)
	require.NoError(t, err)
	require.Len(t, list, 3)
}

func TestCreate_Rejections(t *testing.T) {
	store := &fakeStore{total: d("50"), status: billuc.StatusCancelled}
	uc := New(store, zap.NewNop())
	ctx := context.Background()
	billID := uuid.NewString()

	_, _, err := uc.Create(ctx, CreateInput{BillID: "nope", Method: "cash", Amount: d("10")})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = uc.Create(ctx, CreateInput{BillID: billID, Method: "cheque", Amount: d("10")})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = uc.Create(ctx, CreateInput{BillID: billID, Method: "cash", Amount: d("0")})
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, _, err = uc.Create(ctx, CreateInput{BillID: billID, Method: "cash", Amount: d("-3")})
	require.ErrorIs(t, err, ErrInvalidAmount)

	_, _, err = uc.Create(ctx, CreateInput{BillID: billID, Method: "rover", Amount: d("10")})
	require.ErrorIs(t, err, ErrBillClosed)

	_, err = uc.ListByBill(ctx, "")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestPaymentStatusFor(t *testing.T) {
	cases := []struct {
		paid, total string
		want        string
	}{
		{"0", "100", billuc.PaymentUnpaid},
		{"0.01", "100", billuc.PaymentPartial},
		{"100.00", "100", billuc.PaymentPaid},
		{"100.01", "100", billuc.PaymentOverpaid},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, PaymentStatusFor(d(tc.paid), d(tc.total)), tc.paid)
	}
}

func TestSettledStatus(t *testing.T) {
	require.Equal(t, billuc.StatusPaid, SettledStatus(billuc.StatusDraft, billuc.PaymentPaid))
	require.Equal(t, billuc.StatusPaid, SettledStatus(billuc.StatusOverdue, billuc.PaymentOverpaid))
	require.Equal(t, billuc.StatusSent, SettledStatus(billuc.StatusSent, billuc.PaymentPartial))
	require.Equal(t, billuc.StatusCancelled, SettledStatus(billuc.StatusCancelled, billuc.PaymentPaid))
}
