package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
	"github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/pgutil"
	rateuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/rate"
)

type RateStoreAdapter struct {
	repo *RateRepo
}

func NewRateStoreAdapter(repo *RateRepo) *RateStoreAdapter {
	return &RateStoreAdapter{repo: repo}
}

func (a *RateStoreAdapter) List(ctx context.Context) ([]rateuc.Rate, error) {
	rows, err := a.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]rateuc.Rate, 0, len(rows))
	for i := range rows {
		r, err := mapRate(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	return out, nil
}

func (a *RateStoreAdapter) GetByID(ctx context.Context, id string) (*rateuc.Rate, error) {
	row, err := a.repo.GetByID(ctx, id)
	if err != nil {
		if pgutil.IsNoRows(err) {
			return nil, rateuc.ErrNotFound
		}
		return nil, err
	}
	return mapRate(row)
}

func (a *RateStoreAdapter) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (*rateuc.Rate, error) {
	row, err := a.repo.UpdatePrice(ctx, id, price.String())
	if err != nil {
		if pgutil.IsNoRows(err) {
			return nil, rateuc.ErrNotFound
		}
		return nil, err
	}
	return mapRate(row)
}

func (a *RateStoreAdapter) InsertIfMissing(ctx context.Context, d rateuc.Default) (bool, error) {
	return a.repo.InsertIfMissing(ctx, RateRow{
		DogSize:     string(d.DogSize),
		RateType:    string(d.RateType),
		ServiceType: string(d.ServiceType),
		PricePerDay: d.PricePerDay.String(),
	})
}

func mapRate(r *RateRow) (*rateuc.Rate, error) {
	price, err := pgutil.Decimal(r.PricePerDay)
	if err != nil {
		return nil, err
	}
	return &rateuc.Rate{
		ID:          r.ID,
		DogSize:     pricing.DogSize(r.DogSize),
		RateType:    pricing.RateType(r.RateType),
		ServiceType: pricing.StayType(r.ServiceType),
		PricePerDay: price,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}, nil
}

var _ rateuc.Store = (*RateStoreAdapter)(nil)
