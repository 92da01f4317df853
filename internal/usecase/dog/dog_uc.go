package dog

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrNotFound        = errors.New("dog not found")
	ErrCustomerMissing = errors.New("customer not found")
	ErrHasDependents   = errors.New("dog still has stays")
)

type Store interface {
	CustomerExists(ctx context.Context, customerID string) (bool, error)
	Create(ctx context.Context, in CreateInput) (*Dog, error)
	GetByID(ctx context.Context, id string) (*Dog, error)
	List(ctx context.Context, q ListQuery) ([]Dog, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Dog, error)
	Delete(ctx context.Context, id string) error
}

type Usecase struct {
	store Store
}

func New(store Store) *Usecase {
	return &Usecase{store: store}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Dog, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || !isUUID(in.CustomerID) || !in.Size.Valid() {
		return nil, ErrInvalidInput
	}
	if in.Status == "" {
		in.Status = StatusActive
	}
	if !isValidStatus(in.Status) {
		return nil, ErrInvalidInput
	}
	if !validAge(in.Age, in.AgeMonths) {
		return nil, ErrInvalidInput
	}
	if !validOverrides(in.PickupFeeOverride, in.DropoffFeeOverride, in.CustomDailyRate) {
		return nil, ErrInvalidInput
	}

	if err := u.requireCustomer(ctx, in.CustomerID); err != nil {
		return nil, err
	}

	return u.store.Create(ctx, in)
}

func (u *Usecase) GetByID(ctx context.Context, id string) (*Dog, error) {
	if !isUUID(id) {
		return nil, ErrInvalidInput
	}
	return u.store.GetByID(ctx, id)
}

func (u *Usecase) List(ctx context.Context, q ListQuery) ([]Dog, error) {
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.CustomerID != nil && !isUUID(*q.CustomerID) {
		return nil, ErrInvalidInput
	}
	if q.Status != nil && !isValidStatus(*q.Status) {
		return nil, ErrInvalidInput
	}
	return u.store.List(ctx, q)
}

func (u *Usecase) Update(ctx context.Context, id string, in UpdateInput) (*Dog, error) {
	if !isUUID(id) {
		return nil, ErrInvalidInput
	}

	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return nil, ErrInvalidInput
		}
		in.Name = &n
	}
	if in.Size != nil && !in.Size.Valid() {
		return nil, ErrInvalidInput
	}
	if in.Status != nil && !isValidStatus(*in.Status) {
		return nil, ErrInvalidInput
	}
	if !validAge(in.Age, in.AgeMonths) {
		return nil, ErrInvalidInput
	}
	if !validOverrides(in.PickupFeeOverride, in.DropoffFeeOverride, in.CustomDailyRate) {
		return nil, ErrInvalidInput
	}
	for _, f := range in.Clear {
		switch f {
		case FieldPickupFeeOverride, FieldDropoffFeeOverride, FieldCustomDailyRate:
		default:
			return nil, ErrInvalidInput
		}
	}

	if in.CustomerID != nil {
		if !isUUID(*in.CustomerID) {
			return nil, ErrInvalidInput
		}
		if err := u.requireCustomer(ctx, *in.CustomerID); err != nil {
			return nil, err
		}
	}

	return u.store.Update(ctx, id, in)
}

func (u *Usecase) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrInvalidInput
	}
	return u.store.Delete(ctx, id)
}

func (u *Usecase) requireCustomer(ctx context.Context, customerID string) error {
	ok, err := u.store.CustomerExists(ctx, customerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrCustomerMissing
	}
	return nil
}

func isValidStatus(s string) bool {
	return s == StatusActive || s == StatusDeceased
}

func validAge(years, months *int) bool {
	if years != nil && *years < 0 {
		return false
	}
	if months != nil && (*months < 0 || *months > 11) {
		return false
	}
	return true
}

// zero is a legitimate fee override (free pick-up); a custom daily rate must be positive
func validOverrides(pickup, dropoff, custom *decimal.Decimal) bool {
	if pickup != nil && pickup.IsNegative() {
		return false
	}
	if dropoff != nil && dropoff.IsNegative() {
		return false
	}
	if custom != nil && !custom.IsPositive() {
		return false
	}
	return true
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
