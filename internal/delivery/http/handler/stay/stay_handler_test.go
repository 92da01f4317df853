package stay

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kosarinj/lilys-dogboarding-app/internal/delivery/middleware"
	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
	stayuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/stay"
)

// --- Fakes ---------------------------------------------------------------

const dogID = "3f6c1a9e-8b2d-4e7f-9a1c-5d4b3e2f1a0b"

type fakeStore struct {
	created int
}

func (f *fakeStore) GetDog(_ context.Context, id string) (*stayuc.DogRef, error) {
	if id != dogID {
		return nil, pricing.ErrDogNotFound
	}
	return &stayuc.DogRef{ID: id, Name: "Biscuit", Status: "active", Pricing: pricing.Dog{Size: pricing.SizeMedium}}, nil
}

func (f *fakeStore) Create(_ context.Context, rec stayuc.Record) (*stayuc.Stay, error) {
	f.created++
	return &stayuc.Stay{ID: "new", DogID: rec.DogID, CheckInDate: rec.CheckInDate, CheckOutDate: rec.CheckOutDate, Result: rec.Result, Status: rec.Status}, nil
}

func (f *fakeStore) Update(context.Context, string, stayuc.Record) (*stayuc.Stay, error) {
	return nil, stayuc.ErrNotFound
}

func (f *fakeStore) GetByID(context.Context, string) (*stayuc.Stay, error) {
	return nil, stayuc.ErrNotFound
}

func (f *fakeStore) List(context.Context, stayuc.ListQuery) ([]stayuc.Stay, error) {
	return nil, nil
}

func (f *fakeStore) UpdateStatus(context.Context, string, string) (*stayuc.Stay, error) {
	return nil, stayuc.ErrNotFound
}

func (f *fakeStore) Delete(context.Context, string) error {
	return stayuc.ErrNotFound
}

type fakeRates pricing.RateTable

func (r fakeRates) Snapshot(context.Context) (pricing.RateTable, error) {
	return pricing.RateTable(r), nil
}

type fakeFees pricing.FeeSettings

func (f fakeFees) Snapshot(context.Context) (pricing.FeeSettings, error) {
	return pricing.FeeSettings(f), nil
}

// --- Helpers -------------------------------------------------------------

func newApp(store *fakeStore) *fiber.App {
	rates := fakeRates{
		{Size: pricing.SizeMedium, RateType: pricing.RateRegular, StayType: pricing.StayBoarding}: decimal.RequireFromString("50"),
	}
	fees := fakeFees{DropoffFee: decimal.RequireFromString("15"), PickupFee: decimal.RequireFromString("15")}
	h := New(stayuc.New(store, rates, fees, zap.NewNop()))

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(zap.NewNop())})
	app.Post("/stays/quote", h.Quote)
	app.Post("/stays", h.Create)
	app.Get("/stays/:id", h.GetByID)
	return app
}

func post(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return res.StatusCode, out
}

func body(fields string) string {
	base := `"dogId":"` + dogID + `","checkInDate":"2030-03-01","checkOutDate":"2030-03-04","stayType":"boarding"`
	return "{" + base + "," + fields + "}"
}

// --- Tests ---------------------------------------------------------------

// This test validates:
// - a quote returns the priced breakdown and stores nothing
func TestQuote_ReturnsBreakdown(t *testing.T) {
	store := &fakeStore{}
	app := newApp(store)

	status, out := post(t, app, "/stays/quote", body(`"rateType":"regular","requiresDropoff":true`))
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "3", out["daysCount"])
	require.Equal(t, "15", out["dropoffFee"])
	require.Equal(t, "165", out["totalCost"])
	require.Zero(t, store.created)
}

// This test validates:
// - pricing failures map to client errors with a JSON error body
func TestQuote_ErrorMapping(t *testing.T) {
	app := newApp(&fakeStore{})

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing rate", body(`"rateType":"holiday"`), fiber.StatusNotFound},
		{"bad time", body(`"rateType":"regular","checkInTime":"25:00"`), fiber.StatusBadRequest},
		{"unknown stay type", `{"dogId":"` + dogID + `","checkInDate":"2030-03-01","checkOutDate":"2030-03-04","stayType":"hotel","rateType":"regular"}`, fiber.StatusBadRequest},
		{"unknown dog", `{"dogId":"0b9d2c1e-7a6f-4e5d-8c3b-2a1f0e9d8c7b","checkInDate":"2030-03-01","checkOutDate":"2030-03-04","stayType":"boarding","rateType":"regular"}`, fiber.StatusNotFound},
		{"reversed dates", `{"dogId":"` + dogID + `","checkInDate":"2030-03-04","checkOutDate":"2030-03-01","stayType":"boarding","rateType":"regular"}`, fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, out := post(t, app, "/stays/quote", tc.body)
			require.Equal(t, tc.want, status)
			require.NotEmpty(t, out["error"])
		})
	}
}

// This test validates:
// - creating a stay persists the rounded breakdown and answers 201
func TestCreate_Persists(t *testing.T) {
	store := &fakeStore{}
	app := newApp(store)

	status, out := post(t, app, "/stays", body(`"rateType":"regular","requiresPickup":true`))
	require.Equal(t, fiber.StatusCreated, status)
	require.Equal(t, "165", out["totalCost"])
	require.Equal(t, "upcoming", out["status"])
	require.Equal(t, 1, store.created)
}

// This test validates:
// - blank time fields from the booking form are treated as unset
func TestQuote_BlankTimesAccepted(t *testing.T) {
	app := newApp(&fakeStore{})

	status, out := post(t, app, "/stays/quote", body(`"rateType":"regular","checkInTime":"","checkOutTime":""`))
	require.Equal(t, fiber.StatusOK, status)
	require.Equal(t, "150", out["totalCost"])
}
