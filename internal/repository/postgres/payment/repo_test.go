package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	billrepo "github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/bill"
	testutil "github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/testutil"
	billuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/bill"
	payuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/payment"
)

// This test validates:
// - partial and full payments move paid amount and payment status
// - the bill becomes paid once the balance is cleared
// - payments are listed newest first
func TestPayment_CreateAndList_SettlesBill(t *testing.T) {
	db := testutil.MustOpenDB(t)
	defer db.Close()

	testutil.TruncateAll(t, db)

	ctx := context.Background()
	log := zap.NewNop()

	// --- seed minimal data ---
	custID := testutil.MustInsertCustomer(t, db, "Dana Test", "dana@test.local")
	dogID := testutil.MustInsertDog(t, db, custID, "Biscuit", "medium")
	checkIn := time.Now().AddDate(0, 0, -10)
	stayID := testutil.MustInsertStay(t, db, dogID, checkIn, checkIn.AddDate(0, 0, 3), "3", "50.00", "150.00")

	billUC := billuc.New(billrepo.NewBillStoreAdapter(billrepo.NewBillRepo(db)), 14, log)
	bill, err := billUC.Create(ctx, billuc.CreateInput{CustomerID: custID, StayIDs: []string{stayID}})
	require.NoError(t, err)
	require.True(t, bill.TotalAmount.Equal(decimal.RequireFromString("150")))

	// --- payment under test ---
	pUC := payuc.New(NewPaymentStoreAdapter(NewPaymentRepo(db)), log)

	first := time.Now().Add(-time.Hour).UTC()
	p1, state1, err := pUC.Create(ctx, payuc.CreateInput{
		BillID: bill.ID,
		Method: "cash",
		Amount: decimal.RequireFromString("100"),
		PaidAt: &first,
	})
	require.NoError(t, err)
	require.NotEmpty(t, p1.ID)
	require.Equal(t, billuc.PaymentPartial, state1.PaymentStatus)
	require.Equal(t, billuc.StatusDraft, state1.Status)
	require.True(t, state1.BalanceDue.Equal(decimal.RequireFromString("50")))

	p2, state2, err := pUC.Create(ctx, payuc.CreateInput{
		BillID: bill.ID,
		Method: "transfer",
		Amount: decimal.RequireFromString("50"),
	})
	require.NoError(t, err)
	require.Equal(t, billuc.PaymentPaid, state2.PaymentStatus)
	require.Equal(t, billuc.StatusPaid, state2.Status)
	require.True(t, state2.BalanceDue.IsZero())

	list, err := pUC.ListByBill(ctx, bill.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, p2.ID, list[0].ID)
	require.Equal(t, p1.ID, list[1].ID)

	view, err := billUC.GetView(ctx, bill.ID)
	require.NoError(t, err)
	require.Len(t, view.Payments, 2)
	require.Equal(t, "cash", *view.PaymentMethod)
	require.True(t, view.PaidAmount.Equal(decimal.RequireFromString("150")))

	// a paid bill cannot be deleted
	require.ErrorIs(t, billUC.Delete(ctx, bill.ID), billuc.ErrPaid)
}

// This test validates:
// - payments against a missing bill are rejected
// - cancelled bills accept no payments
func TestPayment_Create_RejectsMissingAndCancelledBills(t *testing.T) {
	db := testutil.MustOpenDB(t)
	defer db.Close()

	testutil.TruncateAll(t, db)

	ctx := context.Background()
	log := zap.NewNop()
	pUC := payuc.New(NewPaymentStoreAdapter(NewPaymentRepo(db)), log)

	_, _, err := pUC.Create(ctx, payuc.CreateInput{
		BillID: "5b0e4c8e-2f59-4b8f-9d43-7f3b1a6a2c11",
		Method: "cash",
		Amount: decimal.RequireFromString("10"),
	})
	require.ErrorIs(t, err, payuc.ErrBillMissing)

	custID := testutil.MustInsertCustomer(t, db, "Sam Test", "sam@test.local")
	dogID := testutil.MustInsertDog(t, db, custID, "Pepper", "small")
	checkIn := time.Now().AddDate(0, 0, -5)
	stayID := testutil.MustInsertStay(t, db, dogID, checkIn, checkIn.AddDate(0, 0, 1), "1", "40.00", "40.00")

	billUC := billuc.New(billrepo.NewBillStoreAdapter(billrepo.NewBillRepo(db)), 14, log)
	bill, err := billUC.Create(ctx, billuc.CreateInput{CustomerID: custID, StayIDs: []string{stayID}})
	require.NoError(t, err)

	_, err = billUC.UpdateStatus(ctx, bill.ID, billuc.UpdateStatusInput{Status: billuc.StatusCancelled})
	require.NoError(t, err)

	_, _, err = pUC.Create(ctx, payuc.CreateInput{
		BillID: bill.ID,
		Method: "cash",
		Amount: decimal.RequireFromString("40"),
	})
	require.ErrorIs(t, err, payuc.ErrBillClosed)
}
