package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
	"github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/pgutil"
	stayrepo "github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/stay"
	billuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/bill"
	stayuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/stay"
)

const (
	billCodeConstraint = "bills_bill_code_key"
	itemStayConstraint = "bill_items_stay_id_key"
)

type BillStoreAdapter struct {
	repo *BillRepo
}

func NewBillStoreAdapter(repo *BillRepo) *BillStoreAdapter {
	return &BillStoreAdapter{repo: repo}
}

func (a *BillStoreAdapter) CustomerExists(ctx context.Context, customerID string) (bool, error) {
	return a.repo.CustomerExists(ctx, customerID)
}

func (a *BillStoreAdapter) BillableStays(ctx context.Context, customerID string, stayIDs []string, today stayuc.Date) ([]billuc.BillableStay, error) {
	rows, err := a.repo.BillableStays(ctx, customerID, stayIDs, today.Time)
	if err != nil {
		return nil, err
	}

	out := make([]billuc.BillableStay, 0, len(rows))
	for _, r := range rows {
		days, err := pgutil.Decimal(r.DaysCount)
		if err != nil {
			return nil, err
		}
		rate, err := pgutil.Decimal(r.DailyRate)
		if err != nil {
			return nil, err
		}
		total, err := pgutil.Decimal(r.TotalCost)
		if err != nil {
			return nil, err
		}
		out = append(out, billuc.BillableStay{
			ID:        r.ID,
			StayType:  pricing.StayType(r.StayType),
			DaysCount: days,
			DailyRate: rate,
			TotalCost: total,
		})
	}
	return out, nil
}

// Create writes the bill header and its items in one transaction.
func (a *BillStoreAdapter) Create(ctx context.Context, in billuc.NewBill) (*billuc.Bill, error) {
	tx, err := a.repo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id, err := insertBill(ctx, tx, BillRow{
		CustomerID:  in.CustomerID,
		BillCode:    in.BillCode,
		BillDate:    in.BillDate.Time,
		DueDate:     in.DueDate.Time,
		Subtotal:    in.Subtotal.StringFixed(2),
		Tax:         in.Tax.StringFixed(2),
		TotalAmount: in.TotalAmount.StringFixed(2),
		Notes:       in.Notes,
	})
	if err != nil {
		switch {
		case pgutil.IsUniqueViolationOn(err, billCodeConstraint):
			return nil, billuc.ErrCodeConflict
		case pgutil.IsForeignKeyViolation(err):
			return nil, billuc.ErrCustomerMissing
		}
		return nil, err
	}

	for _, it := range in.Items {
		err := insertBillItem(ctx, tx, id, BillItemRow{
			StayID:      it.StayID,
			Description: it.Description,
			Quantity:    it.Quantity.String(),
			UnitPrice:   it.UnitPrice.StringFixed(2),
			TotalPrice:  it.TotalPrice.StringFixed(2),
		})
		if err != nil {
			if pgutil.IsUniqueViolationOn(err, itemStayConstraint) || pgutil.IsForeignKeyViolation(err) {
				return nil, fmt.Errorf("%w: %s", billuc.ErrStayNotBillable, it.StayID)
			}
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return a.GetByID(ctx, id)
}

func (a *BillStoreAdapter) GetByID(ctx context.Context, id string) (*billuc.Bill, error) {
	row, err := a.repo.GetByID(ctx, id)
	if err != nil {
		if pgutil.IsNoRows(err) {
			return nil, billuc.ErrNotFound
		}
		return nil, err
	}
	return mapBill(row)
}

func (a *BillStoreAdapter) List(ctx context.Context, q billuc.ListQuery) ([]billuc.Bill, error) {
	rows, err := a.repo.List(ctx, BillFilter{
		CustomerID: q.CustomerID,
		Status:     q.Status,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}

	out := make([]billuc.Bill, 0, len(rows))
	for i := range rows {
		b, err := mapBill(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, nil
}

func (a *BillStoreAdapter) UpdateStatus(ctx context.Context, id string, in billuc.UpdateStatusInput) (*billuc.Bill, error) {
	if err := a.repo.UpdateStatus(ctx, id, in.Status, in.PaymentMethod); err != nil {
		if pgutil.IsNoRows(err) {
			return nil, billuc.ErrNotFound
		}
		return nil, err
	}
	return a.GetByID(ctx, id)
}

func (a *BillStoreAdapter) Delete(ctx context.Context, id string) error {
	err := a.repo.Delete(ctx, id)
	if pgutil.IsNoRows(err) {
		return billuc.ErrNotFound
	}
	return err
}

func (a *BillStoreAdapter) UnbilledStays(ctx context.Context, today stayuc.Date) ([]stayuc.Stay, error) {
	rows, err := a.repo.UnbilledStays(ctx, today.Time)
	if err != nil {
		return nil, err
	}
	return stayrepo.MapStays(rows)
}

func mapBill(r *BillRow) (*billuc.Bill, error) {
	nums := make([]decimal.Decimal, 4)
	for i, s := range []string{r.Subtotal, r.Tax, r.TotalAmount, r.PaidAmount} {
		d, err := pgutil.Decimal(s)
		if err != nil {
			return nil, err
		}
		nums[i] = d
	}

	return &billuc.Bill{
		ID:            r.ID,
		CustomerID:    r.CustomerID,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
		BillCode:      r.BillCode,
		BillDate:      stayuc.DateOf(r.BillDate),
		DueDate:       stayuc.DateOf(r.DueDate),
		Subtotal:      nums[0],
		Tax:           nums[1],
		TotalAmount:   nums[2],
		PaidAmount:    nums[3],
		BalanceDue:    nums[2].Sub(nums[3]),
		PaymentStatus: r.PaymentStatus,
		Status:        r.Status,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

var _ billuc.Store = (*BillStoreAdapter)(nil)
