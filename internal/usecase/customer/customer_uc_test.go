package customer

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	items   map[string]*Customer
	lastQ   ListQuery
	hasDogs map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: map[string]*Customer{}, hasDogs: map[string]bool{}}
}

func (f *fakeStore) Create(_ context.Context, in CreateInput) (*Customer, error) {
	c := &Customer{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		Notes:     in.Notes,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.items[c.ID] = c
	return c, nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*Customer, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (f *fakeStore) List(_ context.Context, q ListQuery) ([]Customer, error) {
	f.lastQ = q
	out := make([]Customer, 0, len(f.items))
	for _, c := range f.items {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeStore) Update(_ context.Context, id string, in UpdateInput) (*Customer, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Email != nil {
		c.Email = in.Email
	}
	if in.Phone != nil {
		c.Phone = in.Phone
	}
	return c, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return ErrNotFound
	}
	if f.hasDogs[id] {
		return ErrHasDependents
	}
	delete(f.items, id)
	return nil
}

func strp(s string) *string { return &s }

func TestCreate_NormalizesInput(t *testing.T) {
	uc := New(newFakeStore())

	out, err := uc.Create(context.Background(), CreateInput{
		Name:  "  Lily Owner ",
		Email: strp(" Lily@Example.COM "),
		Phone: strp("   "),
	})
	require.NoError(t, err)
	require.Equal(t, "Lily Owner", out.Name)
	require.Equal(t, "lily@example.com", *out.Email)
	require.Nil(t, out.Phone)
}

func TestCreate_Validation(t *testing.T) {
	uc := New(newFakeStore())

	_, err := uc.Create(context.Background(), CreateInput{Name: "  "})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Create(context.Background(), CreateInput{Name: "Sam", Email: strp("not-an-email")})
	require.ErrorIs(t, err, ErrInvalidInput)

	out, err := uc.Create(context.Background(), CreateInput{Name: "Sam"})
	require.NoError(t, err)
	require.Nil(t, out.Email)
}

func TestGetUpdateDelete(t *testing.T) {
	store := newFakeStore()
	uc := New(store)
	ctx := context.Background()

	c, err := uc.Create(ctx, CreateInput{Name: "Sam"})
	require.NoError(t, err)

	_, err = uc.GetByID(ctx, "nope")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.GetByID(ctx, uuid.NewString())
	require.ErrorIs(t, err, ErrNotFound)

	_, err = uc.Update(ctx, c.ID, UpdateInput{Name: strp(" ")})
	require.ErrorIs(t, err, ErrInvalidInput)

	out, err := uc.Update(ctx, c.ID, UpdateInput{Name: strp("Samantha"), Email: strp("S@X.io")})
	require.NoError(t, err)
	require.Equal(t, "Samantha", out.Name)
	require.Equal(t, "s@x.io", *out.Email)

	store.hasDogs[c.ID] = true
	require.ErrorIs(t, uc.Delete(ctx, c.ID), ErrHasDependents)

	store.hasDogs[c.ID] = false
	require.NoError(t, uc.Delete(ctx, c.ID))
	require.ErrorIs(t, uc.Delete(ctx, "bad-id"), ErrInvalidInput)
}

func TestList_ClampsPaging(t *testing.T) {
	store := newFakeStore()
	uc := New(store)

	_, err := uc.List(context.Background(), ListQuery{Limit: 1000, Offset: -5, Search: strp("  ")})
	require.NoError(t, err)
	require.Equal(t, 50, store.lastQ.Limit)
	require.Equal(t, 0, store.lastQ.Offset)
	require.Nil(t, store.lastQ.Search)
}
