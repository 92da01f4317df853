package rate

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("rate not found")
	ErrInvalidPrice = errors.New("price per day must be greater than zero")
)

type Store interface {
	List(ctx context.Context) ([]Rate, error)
	GetByID(ctx context.Context, id string) (*Rate, error)
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (*Rate, error)
	// InsertIfMissing reports whether a row was created.
	InsertIfMissing(ctx context.Context, d Default) (bool, error)
}

type Usecase struct {
	store Store
}

func New(store Store) *Usecase {
	return &Usecase{store: store}
}

func (u *Usecase) List(ctx context.Context) ([]Rate, error) {
	return u.store.List(ctx)
}

func (u *Usecase) GetByID(ctx context.Context, id string) (*Rate, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidInput
	}
	return u.store.GetByID(ctx, id)
}

func (u *Usecase) Update(ctx context.Context, id string, in UpdateInput) (*Rate, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidInput
	}
	if in.PricePerDay == nil || !in.PricePerDay.IsPositive() {
		return nil, ErrInvalidPrice
	}
	return u.store.UpdatePrice(ctx, id, in.PricePerDay.Round(2))
}

// Initialize installs any of the default rates that are not configured yet.
// Existing prices are left untouched.
func (u *Usecase) Initialize(ctx context.Context) (*InitializeResult, error) {
	res := &InitializeResult{}
	for _, d := range Defaults {
		created, err := u.store.InsertIfMissing(ctx, d)
		if err != nil {
			return nil, err
		}
		if created {
			res.Created++
		} else {
			res.Existing++
		}
	}

	rates, err := u.store.List(ctx)
	if err != nil {
		return nil, err
	}
	res.Rates = rates
	return res, nil
}

// Snapshot reads the current rate table for a pricing run.
func (u *Usecase) Snapshot(ctx context.Context) (pricing.RateTable, error) {
	rates, err := u.store.List(ctx)
	if err != nil {
		return nil, err
	}
	table := make(pricing.RateTable, len(rates))
	for _, r := range rates {
		table[pricing.RateKey{Size: r.DogSize, RateType: r.RateType, StayType: r.ServiceType}] = r.PricePerDay
	}
	return table, nil
}
