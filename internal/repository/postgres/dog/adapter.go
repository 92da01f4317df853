package postgres

import (
	"context"

	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
	"github.com/kosarinj/lilys-dogboarding-app/internal/repository/postgres/pgutil"
	doguc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/dog"
)

type DogStoreAdapter struct {
	repo *DogRepo
}

func NewDogStoreAdapter(repo *DogRepo) *DogStoreAdapter {
	return &DogStoreAdapter{repo: repo}
}

func (a *DogStoreAdapter) CustomerExists(ctx context.Context, customerID string) (bool, error) {
	return a.repo.CustomerExists(ctx, customerID)
}

func (a *DogStoreAdapter) Create(ctx context.Context, in doguc.CreateInput) (*doguc.Dog, error) {
	row, err := a.repo.Create(ctx, DogRow{
		CustomerID:          in.CustomerID,
		Name:                in.Name,
		Breed:               in.Breed,
		Age:                 in.Age,
		AgeMonths:           in.AgeMonths,
		Location:            in.Location,
		Size:                string(in.Size),
		Status:              in.Status,
		FoodPreferences:     in.FoodPreferences,
		BehavioralNotes:     in.BehavioralNotes,
		SpecialInstructions: in.SpecialInstructions,
		PhotoURL:            in.PhotoURL,
		PickupFeeOverride:   pgutil.NumArg(in.PickupFeeOverride),
		DropoffFeeOverride:  pgutil.NumArg(in.DropoffFeeOverride),
		CustomDailyRate:     pgutil.NumArg(in.CustomDailyRate),
	})
	if err != nil {
		if pgutil.IsForeignKeyViolation(err) {
			return nil, doguc.ErrCustomerMissing
		}
		return nil, err
	}
	return mapDog(row)
}

func (a *DogStoreAdapter) GetByID(ctx context.Context, id string) (*doguc.Dog, error) {
	row, err := a.repo.GetByID(ctx, id)
	if err != nil {
		if pgutil.IsNoRows(err) {
			return nil, doguc.ErrNotFound
		}
		return nil, err
	}
	return mapDog(row)
}

func (a *DogStoreAdapter) List(ctx context.Context, q doguc.ListQuery) ([]doguc.Dog, error) {
	rows, err := a.repo.List(ctx, q.CustomerID, q.Status, q.Limit, q.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]doguc.Dog, 0, len(rows))
	for i := range rows {
		d, err := mapDog(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func (a *DogStoreAdapter) Update(ctx context.Context, id string, in doguc.UpdateInput) (*doguc.Dog, error) {
	patch := DogPatch{
		CustomerID:          in.CustomerID,
		Name:                in.Name,
		Breed:               in.Breed,
		Age:                 in.Age,
		AgeMonths:           in.AgeMonths,
		Location:            in.Location,
		Status:              in.Status,
		FoodPreferences:     in.FoodPreferences,
		BehavioralNotes:     in.BehavioralNotes,
		SpecialInstructions: in.SpecialInstructions,
		PhotoURL:            in.PhotoURL,
		PickupFeeOverride:   pgutil.NumArg(in.PickupFeeOverride),
		DropoffFeeOverride:  pgutil.NumArg(in.DropoffFeeOverride),
		CustomDailyRate:     pgutil.NumArg(in.CustomDailyRate),
		ClearPickupFee:      in.Clears(doguc.FieldPickupFeeOverride),
		ClearDropoffFee:     in.Clears(doguc.FieldDropoffFeeOverride),
		ClearCustomRate:     in.Clears(doguc.FieldCustomDailyRate),
	}
	if in.Size != nil {
		s := string(*in.Size)
		patch.Size = &s
	}

	row, err := a.repo.Update(ctx, id, patch)
	if err != nil {
		switch {
		case pgutil.IsNoRows(err):
			return nil, doguc.ErrNotFound
		case pgutil.IsForeignKeyViolation(err):
			return nil, doguc.ErrCustomerMissing
		}
		return nil, err
	}
	return mapDog(row)
}

func (a *DogStoreAdapter) Delete(ctx context.Context, id string) error {
	err := a.repo.Delete(ctx, id)
	switch {
	case pgutil.IsNoRows(err):
		return doguc.ErrNotFound
	case pgutil.IsForeignKeyViolation(err):
		return doguc.ErrHasDependents
	default:
		return err
	}
}

func mapDog(r *DogRow) (*doguc.Dog, error) {
	pickup, err := pgutil.DecimalPtr(r.PickupFeeOverride)
	if err != nil {
		return nil, err
	}
	dropoff, err := pgutil.DecimalPtr(r.DropoffFeeOverride)
	if err != nil {
		return nil, err
	}
	custom, err := pgutil.DecimalPtr(r.CustomDailyRate)
	if err != nil {
		return nil, err
	}
	return &doguc.Dog{
		ID:                  r.ID,
		CustomerID:          r.CustomerID,
		CustomerName:        r.CustomerName,
		Name:                r.Name,
		Breed:               r.Breed,
		Age:                 r.Age,
		AgeMonths:           r.AgeMonths,
		Location:            r.Location,
		Size:                pricing.DogSize(r.Size),
		Status:              r.Status,
		FoodPreferences:     r.FoodPreferences,
		BehavioralNotes:     r.BehavioralNotes,
		SpecialInstructions: r.SpecialInstructions,
		PhotoURL:            r.PhotoURL,
		PickupFeeOverride:   pickup,
		DropoffFeeOverride:  dropoff,
		CustomDailyRate:     custom,
		CreatedAt:           r.CreatedAt,
		UpdatedAt:           r.UpdatedAt,
	}, nil
}

var _ doguc.Store = (*DogStoreAdapter)(nil)
