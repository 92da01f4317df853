package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
	"github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/pgutil"
	stayuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/stay"
)

type StayStoreAdapter struct {
	repo *StayRepo
}

func NewStayStoreAdapter(repo *StayRepo) *StayStoreAdapter {
	return &StayStoreAdapter{repo: repo}
}

func (a *StayStoreAdapter) GetDog(ctx context.Context, dogID string) (*stayuc.DogRef, error) {
	row, err := a.repo.GetDog(ctx, dogID)
	if err != nil {
		if pgutil.IsNoRows(err) {
			return nil, pricing.ErrDogNotFound
		}
		return nil, err
	}

	var p numParser
	ref := &stayuc.DogRef{
		ID:     row.ID,
		Name:   row.Name,
		Status: row.Status,
		Pricing: pricing.Dog{
			Size:               pricing.DogSize(row.Size),
			PickupFeeOverride:  p.ptr(row.PickupFeeOverride),
			DropoffFeeOverride: p.ptr(row.DropoffFeeOverride),
			CustomDailyRate:    p.ptr(row.CustomDailyRate),
		},
	}
	if p.err != nil {
		return nil, p.err
	}
	return ref, nil
}

func (a *StayStoreAdapter) Create(ctx context.Context, rec stayuc.Record) (*stayuc.Stay, error) {
	row, err := a.repo.Create(ctx, toRow(rec))
	if err != nil {
		if pgutil.IsForeignKeyViolation(err) {
			return nil, pricing.ErrDogNotFound
		}
		return nil, err
	}
	return MapStay(row)
}

func (a *StayStoreAdapter) Update(ctx context.Context, id string, rec stayuc.Record) (*stayuc.Stay, error) {
	row, err := a.repo.Update(ctx, id, toRow(rec))
	if err != nil {
		switch {
		case pgutil.IsNoRows(err):
			return nil, stayuc.ErrNotFound
		case pgutil.IsForeignKeyViolation(err):
			return nil, pricing.ErrDogNotFound
		}
		return nil, err
	}
	return MapStay(row)
}

func (a *StayStoreAdapter) GetByID(ctx context.Context, id string) (*stayuc.Stay, error) {
	row, err := a.repo.GetByID(ctx, id)
	if err != nil {
		if pgutil.IsNoRows(err) {
			return nil, stayuc.ErrNotFound
		}
		return nil, err
	}
	return MapStay(row)
}

func (a *StayStoreAdapter) List(ctx context.Context, q stayuc.ListQuery) ([]stayuc.Stay, error) {
	rows, err := a.repo.List(ctx, StayFilter{
		DogID:      q.DogID,
		CustomerID: q.CustomerID,
		Status:     q.Status,
		Today:      q.Today.Time,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	return MapStays(rows)
}

func (a *StayStoreAdapter) UpdateStatus(ctx context.Context, id string, status string) (*stayuc.Stay, error) {
	row, err := a.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		if pgutil.IsNoRows(err) {
			return nil, stayuc.ErrNotFound
		}
		return nil, err
	}
	return MapStay(row)
}

func (a *StayStoreAdapter) Delete(ctx context.Context, id string) error {
	err := a.repo.Delete(ctx, id)
	switch {
	case pgutil.IsNoRows(err):
		return stayuc.ErrNotFound
	case pgutil.IsForeignKeyViolation(err):
		return stayuc.ErrBilled
	default:
		return err
	}
}

func toRow(rec stayuc.Record) StayRow {
	res := rec.Result
	return StayRow{
		DogID:                rec.DogID,
		CheckInDate:          rec.CheckInDate.Time,
		CheckOutDate:         rec.CheckOutDate.Time,
		CheckInTime:          pgutil.TimeArg(rec.CheckInTime),
		CheckOutTime:         pgutil.TimeArg(rec.CheckOutTime),
		StayType:             string(rec.StayType),
		RateType:             string(rec.RateType),
		ManualDaysCount:      rec.ManualDaysCount,
		RequiresDropoff:      rec.RequiresDropoff,
		RequiresPickup:       rec.RequiresPickup,
		IsPuppy:              rec.IsPuppy,
		Rover:                rec.Rover,
		SpecialPrice:         pgutil.NumArg(rec.SpecialPrice),
		SpecialPriceComments: rec.SpecialPriceComments,
		ExtraChargeComments:  rec.ExtraChargeComments,
		Notes:                rec.Notes,
		DaysCount:            res.DaysCount.String(),
		DailyRate:            res.DailyRate.String(),
		RateMultiplier:       res.RateMultiplier.String(),
		DropoffFee:           res.DropoffFee.String(),
		PickupFee:            res.PickupFee.String(),
		PuppyFee:             res.PuppyFee.String(),
		ExtraCharge:          res.ExtraCharge.String(),
		BoardingCost:         res.BoardingCost.String(),
		ComputedTotal:        res.ComputedTotal.String(),
		RoverDiscount:        res.RoverDiscount.String(),
		TotalCost:            res.TotalCost.String(),
		Status:               rec.Status,
	}
}

// MapStay converts a joined stay row to the usecase type. The stored status
// is returned as is; callers derive the current one.
func MapStay(r *StayRow) (*stayuc.Stay, error) {
	var p numParser
	out := &stayuc.Stay{
		ID:                   r.ID,
		DogID:                r.DogID,
		DogName:              r.DogName,
		DogSize:              pricing.DogSize(r.DogSize),
		CustomerID:           r.CustomerID,
		CustomerName:         r.CustomerName,
		CustomerPhone:        r.CustomerPhone,
		CheckInDate:          stayuc.DateOf(r.CheckInDate),
		CheckOutDate:         stayuc.DateOf(r.CheckOutDate),
		StayType:             pricing.StayType(r.StayType),
		RateType:             pricing.RateType(r.RateType),
		ManualDaysCount:      r.ManualDaysCount,
		RequiresDropoff:      r.RequiresDropoff,
		RequiresPickup:       r.RequiresPickup,
		IsPuppy:              r.IsPuppy,
		Rover:                r.Rover,
		SpecialPrice:         p.ptr(r.SpecialPrice),
		SpecialPriceComments: r.SpecialPriceComments,
		ExtraChargeComments:  r.ExtraChargeComments,
		Notes:                r.Notes,
		Result: pricing.Result{
			DaysCount:           p.num(r.DaysCount),
			DailyRate:           p.num(r.DailyRate),
			RateMultiplier:      p.num(r.RateMultiplier),
			DropoffFee:          p.num(r.DropoffFee),
			PickupFee:           p.num(r.PickupFee),
			PuppyFee:            p.num(r.PuppyFee),
			ExtraCharge:         p.num(r.ExtraCharge),
			BoardingCost:        p.num(r.BoardingCost),
			ComputedTotal:       p.num(r.ComputedTotal),
			SpecialPriceApplied: r.SpecialPriceApplied,
			RoverDiscount:       p.num(r.RoverDiscount),
			TotalCost:           p.num(r.TotalCost),
		},
		Status:    r.Status,
		Billed:    r.Billed,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if p.err != nil {
		return nil, p.err
	}

	var err error
	if out.CheckInTime, err = pgutil.TimeOfDay(r.CheckInTime); err != nil {
		return nil, err
	}
	if out.CheckOutTime, err = pgutil.TimeOfDay(r.CheckOutTime); err != nil {
		return nil, err
	}
	return out, nil
}

func MapStays(rows []StayRow) ([]stayuc.Stay, error) {
	out := make([]stayuc.Stay, 0, len(rows))
	for i := range rows {
		s, err := MapStay(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}

// numParser keeps the first parse error so a row can be mapped in one pass.
type numParser struct {
	err error
}

func (p *numParser) num(s string) decimal.Decimal {
	d, err := pgutil.Decimal(s)
	if err != nil && p.err == nil {
		p.err = err
	}
	return d
}

func (p *numParser) ptr(s *string) *decimal.Decimal {
	d, err := pgutil.DecimalPtr(s)
	if err != nil && p.err == nil {
		p.err = err
	}
	return d
}

var _ stayuc.Store = (*StayStoreAdapter)(nil)
