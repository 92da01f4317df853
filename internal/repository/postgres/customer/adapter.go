package postgres

import (
	"context"

	"github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/pgutil"
	customeruc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/customer"
)

type CustomerStoreAdapter struct {
	repo *CustomerRepo
}

func NewCustomerStoreAdapter(repo *CustomerRepo) *CustomerStoreAdapter {
	return &CustomerStoreAdapter{repo: repo}
}

func (a *CustomerStoreAdapter) Create(ctx context.Context, in customeruc.CreateInput) (*customeruc.Customer, error) {
	row, err := a.repo.Create(ctx, CustomerRow{
		Name:    in.Name,
		Phone:   in.Phone,
		Email:   in.Email,
		Address: in.Address,
		Notes:   in.Notes,
	})
	if err != nil {
		return nil, err
	}
	return mapCustomer(row), nil
}

func (a *CustomerStoreAdapter) GetByID(ctx context.Context, id string) (*customeruc.Customer, error) {
	row, err := a.repo.GetByID(ctx, id)
	if err != nil {
		if pgutil.IsNoRows(err) {
			return nil, customeruc.ErrNotFound
		}
		return nil, err
	}
	return mapCustomer(row), nil
}

func (a *CustomerStoreAdapter) List(ctx context.Context, q customeruc.ListQuery) ([]customeruc.Customer, error) {
	rows, err := a.repo.List(ctx, q.Search, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]customeruc.Customer, 0, len(rows))
	for i := range rows {
		out = append(out, *mapCustomer(&rows[i]))
	}
	return out, nil
}

func (a *CustomerStoreAdapter) Update(ctx context.Context, id string, in customeruc.UpdateInput) (*customeruc.Customer, error) {
	rowIn := CustomerRow{}
	if in.Name != nil {
		rowIn.Name = *in.Name
	}
	rowIn.Phone = in.Phone
	rowIn.Email = in.Email
	rowIn.Address = in.Address
	rowIn.Notes = in.Notes

	row, err := a.repo.Update(ctx, id, rowIn)
	if err != nil {
		if pgutil.IsNoRows(err) {
			return nil, customeruc.ErrNotFound
		}
		return nil, err
	}
	return mapCustomer(row), nil
}

func (a *CustomerStoreAdapter) Delete(ctx context.Context, id string) error {
	err := a.repo.Delete(ctx, id)
	switch {
	case pgutil.IsNoRows(err):
		return customeruc.ErrNotFound
	case pgutil.IsForeignKeyViolation(err):
		return customeruc.ErrHasDependents
	default:
		return err
	}
}

func mapCustomer(r *CustomerRow) *customeruc.Customer {
	return &customeruc.Customer{
		ID:        r.ID,
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		Address:   r.Address,
		Notes:     r.Notes,
		DogCount:  r.DogCount,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

var _ customeruc.Store = (*CustomerStoreAdapter)(nil)
