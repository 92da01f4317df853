package postgres

import (
	"context"

	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
	"github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/pgutil"
	billuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/bill"
	stayuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/stay"
)

func (a *BillStoreAdapter) GetView(ctx context.Context, id string) (*billuc.View, error) {
	row, err := a.repo.GetByID(ctx, id)
	if err != nil {
		if pgutil.IsNoRows(err) {
			return nil, billuc.ErrNotFound
		}
		return nil, err
	}
	return a.buildView(ctx, row)
}

func (a *BillStoreAdapter) GetViewByCode(ctx context.Context, code string) (*billuc.View, error) {
	row, err := a.repo.GetByCode(ctx, code)
	if err != nil {
		if pgutil.IsNoRows(err) {
			return nil, billuc.ErrNotFound
		}
		return nil, err
	}
	return a.buildView(ctx, row)
}

func (a *BillStoreAdapter) buildView(ctx context.Context, row *BillRow) (*billuc.View, error) {
	b, err := mapBill(row)
	if err != nil {
		return nil, err
	}

	items, err := a.repo.GetViewItems(ctx, row.ID)
	if err != nil {
		return nil, err
	}
	pays, err := a.repo.GetViewPayments(ctx, row.ID)
	if err != nil {
		return nil, err
	}

	out := &billuc.View{
		Bill:     *b,
		Items:    make([]billuc.ViewItem, 0, len(items)),
		Payments: make([]billuc.ViewPay, 0, len(pays)),
	}
	for i := range items {
		it, err := mapViewItem(&items[i])
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *it)
	}
	for _, p := range pays {
		amount, err := pgutil.Decimal(p.Amount)
		if err != nil {
			return nil, err
		}
		out.Payments = append(out.Payments, billuc.ViewPay{
			ID:        p.ID,
			Method:    p.Method,
			Amount:    amount,
			PaidAt:    p.PaidAt,
			Reference: p.Reference,
			Note:      p.Note,
			Status:    p.Status,
		})
	}
	return out, nil
}

func mapViewItem(r *BillViewItemRow) (*billuc.ViewItem, error) {
	out := &billuc.ViewItem{
		ID:           r.ID,
		StayID:       r.StayID,
		DogName:      r.DogName,
		DogSize:      pricing.DogSize(r.DogSize),
		StayType:     pricing.StayType(r.StayType),
		CheckInDate:  stayuc.DateOf(r.CheckInDate),
		CheckOutDate: stayuc.DateOf(r.CheckOutDate),
		Description:  r.Description,
		Rover:        r.Rover,
	}

	var err error
	if out.Quantity, err = pgutil.Decimal(r.Quantity); err != nil {
		return nil, err
	}
	if out.UnitPrice, err = pgutil.Decimal(r.UnitPrice); err != nil {
		return nil, err
	}
	if out.TotalPrice, err = pgutil.Decimal(r.TotalPrice); err != nil {
		return nil, err
	}
	if out.DropoffFee, err = pgutil.Decimal(r.DropoffFee); err != nil {
		return nil, err
	}
	if out.PickupFee, err = pgutil.Decimal(r.PickupFee); err != nil {
		return nil, err
	}
	if out.PuppyFee, err = pgutil.Decimal(r.PuppyFee); err != nil {
		return nil, err
	}
	if out.ExtraCharge, err = pgutil.Decimal(r.ExtraCharge); err != nil {
		return nil, err
	}
	if out.CheckInTime, err = pgutil.TimeOfDay(r.CheckInTime); err != nil {
		return nil, err
	}
	if out.CheckOutTime, err = pgutil.TimeOfDay(r.CheckOutTime); err != nil {
		return nil, err
	}
	return out, nil
}
