package setting

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
)

var (
	ErrNotFound            = errors.New("setting not found")
	ErrInvalidSettingValue = errors.New("setting value must be greater than zero")
)

type Setting struct {
	Key         string          `json:"key"`
	Value       decimal.Decimal `json:"value"`
	Description *string         `json:"description,omitempty"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type UpdateInput struct {
	Value *decimal.Decimal `json:"value"`
}

type Store interface {
	List(ctx context.Context) ([]Setting, error)
	Get(ctx context.Context, key string) (*Setting, error)
	Update(ctx context.Context, key string, value decimal.Decimal) (*Setting, error)
}

type Usecase struct {
	store Store
}

func New(store Store) *Usecase {
	return &Usecase{store: store}
}

func (u *Usecase) List(ctx context.Context) ([]Setting, error) {
	return u.store.List(ctx)
}

func (u *Usecase) Get(ctx context.Context, key string) (*Setting, error) {
	if !pricing.IsSettingKey(key) {
		return nil, ErrNotFound
	}
	return u.store.Get(ctx, key)
}

// Update rejects zero and negative fees at the configuration boundary; the
// pricing engine trusts whatever snapshot it is given.
func (u *Usecase) Update(ctx context.Context, key string, in UpdateInput) (*Setting, error) {
	if !pricing.IsSettingKey(key) {
		return nil, ErrNotFound
	}
	if in.Value == nil || !in.Value.IsPositive() {
		return nil, ErrInvalidSettingValue
	}
	return u.store.Update(ctx, key, in.Value.Round(2))
}

// Snapshot reads the current fee settings for a pricing run.
func (u *Usecase) Snapshot(ctx context.Context) (pricing.FeeSettings, error) {
	rows, err := u.store.List(ctx)
	if err != nil {
		return pricing.FeeSettings{}, err
	}
	values := make(map[string]decimal.Decimal, len(rows))
	for _, s := range rows {
		values[s.Key] = s.Value
	}
	return pricing.FeeSettingsFromMap(values)
}
