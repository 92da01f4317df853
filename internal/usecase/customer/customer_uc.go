package customer

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotFound      = errors.New("customer not found")
	ErrHasDependents = errors.New("customer still has dogs or bills")
)

type Store interface {
	Create(ctx context.Context, in CreateInput) (*Customer, error)
	GetByID(ctx context.Context, id string) (*Customer, error)
	List(ctx context.Context, q ListQuery) ([]Customer, error)
	Update(ctx context.Context, id string, in UpdateInput) (*Customer, error)
	Delete(ctx context.Context, id string) error
}

type Usecase struct {
	store Store
}

func New(store Store) *Usecase {
	return &Usecase{store: store}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Customer, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, ErrInvalidInput
	}

	email, ok := normalizeEmail(in.Email)
	if !ok {
		return nil, ErrInvalidInput
	}
	in.Email = email
	in.Phone = trimOptional(in.Phone)

	return u.store.Create(ctx, in)
}

func (u *Usecase) GetByID(ctx context.Context, id string) (*Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidInput
	}
	return u.store.GetByID(ctx, id)
}

func (u *Usecase) List(ctx context.Context, q ListQuery) ([]Customer, error) {
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	q.Search = trimOptional(q.Search)
	return u.store.List(ctx, q)
}

func (u *Usecase) Update(ctx context.Context, id string, in UpdateInput) (*Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidInput
	}

	if in.Name != nil {
		n := strings.TrimSpace(*in.Name)
		if n == "" {
			return nil, ErrInvalidInput
		}
		in.Name = &n
	}

	email, ok := normalizeEmail(in.Email)
	if !ok {
		return nil, ErrInvalidInput
	}
	in.Email = email
	in.Phone = trimOptional(in.Phone)

	return u.store.Update(ctx, id, in)
}

func (u *Usecase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidInput
	}
	return u.store.Delete(ctx, id)
}

// email is optional; when present it must look like one
func normalizeEmail(s *string) (*string, bool) {
	s = trimOptional(s)
	if s == nil {
		return nil, true
	}
	e := strings.ToLower(*s)
	if !strings.Contains(e, "@") {
		return nil, false
	}
	return &e, true
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
