package stay

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
)

// --- Fakes ---------------------------------------------------------------

type fakeStore struct {
	dogs   map[string]*DogRef
	stays  map[string]*Stay
	lastQ  ListQuery
	billed map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		dogs:   map[string]*DogRef{},
		stays:  map[string]*Stay{},
		billed: map[string]bool{},
	}
}

func (f *fakeStore) addDog(status string, d pricing.Dog) string {
	id := uuid.NewString()
	f.dogs[id] = &DogRef{ID: id, Name: "Biscuit", Status: status, Pricing: d}
	return id
}

func (f *fakeStore) GetDog(_ context.Context, id string) (*DogRef, error) {
	d, ok := f.dogs[id]
	if !ok {
		return nil, pricing.ErrDogNotFound
	}
	return d, nil
}

func (f *fakeStore) fromRecord(id string, rec Record) *Stay {
	return &Stay{
		ID:              id,
		DogID:           rec.DogID,
		CheckInDate:     rec.CheckInDate,
		CheckOutDate:    rec.CheckOutDate,
		CheckInTime:     rec.CheckInTime,
		CheckOutTime:    rec.CheckOutTime,
		StayType:        rec.StayType,
		RateType:        rec.RateType,
		RequiresDropoff: rec.RequiresDropoff,
		RequiresPickup:  rec.RequiresPickup,
		IsPuppy:         rec.IsPuppy,
		Rover:           rec.Rover,
		SpecialPrice:    rec.SpecialPrice,
		Result:          rec.Result,
		Status:          rec.Status,
		Billed:          f.billed[id],
	}
}

func (f *fakeStore) Create(_ context.Context, rec Record) (*Stay, error) {
	s := f.fromRecord(uuid.NewString(), rec)
	f.stays[s.ID] = s
	cp := *s
	return &cp, nil
}

func (f *fakeStore) Update(_ context.Context, id string, rec Record) (*Stay, error) {
	if _, ok := f.stays[id]; !ok {
		return nil, ErrNotFound
	}
	s := f.fromRecord(id, rec)
	f.stays[id] = s
	cp := *s
	return &cp, nil
}

func (f *fakeStore) GetByID(_ context.Context, id string) (*Stay, error) {
	s, ok := f.stays[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *s
	cp.Billed = f.billed[id]
	return &cp, nil
}

func (f *fakeStore) List(_ context.Context, q ListQuery) ([]Stay, error) {
	f.lastQ = q
	out := make([]Stay, 0, len(f.stays))
	for _, s := range f.stays {
		out = append(out, *s)
	}
	return out, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id string, status string) (*Stay, error) {
	s, ok := f.stays[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.Status = status
	cp := *s
	return &cp, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if f.billed[id] {
		return ErrBilled
	}
	delete(f.stays, id)
	return nil
}

type fakeRates struct {
	table pricing.RateTable
	calls int
}

func (f *fakeRates) Snapshot(context.Context) (pricing.RateTable, error) {
	f.calls++
	return f.table, nil
}

type fakeFees struct {
	fees pricing.FeeSettings
}

func (f *fakeFees) Snapshot(context.Context) (pricing.FeeSettings, error) {
	return f.fees, nil
}

// --- Helpers -------------------------------------------------------------

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(s string) Date {
	v, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return v
}

type fixture struct {
	store *fakeStore
	rates *fakeRates
	fees  *fakeFees
	uc    *Usecase
	dogID string
}

func newFixture(t *testing.T, today string) *fixture {
	t.Helper()
	store := newFakeStore()
	rates := &fakeRates{table: pricing.RateTable{
		{Size: pricing.SizeMedium, RateType: pricing.RateRegular, StayType: pricing.StayBoarding}: d("50"),
		{Size: pricing.SizeMedium, RateType: pricing.RateRegular, StayType: pricing.StayDaycare}:  d("35"),
	}}
	fees := &fakeFees{fees: pricing.FeeSettings{
		DropoffFee:              d("20"),
		PickupFee:               d("20"),
		BoardingPuppyFeeRegular: d("10"),
	}}
	uc := New(store, rates, fees, zap.NewNop())
	now := date(today).Time.Add(15 * time.Hour)
	uc.now = func() time.Time { return now }

	return &fixture{
		store: store,
		rates: rates,
		fees:  fees,
		uc:    uc,
		dogID: store.addDog("active", pricing.Dog{Size: pricing.SizeMedium}),
	}
}

func (f *fixture) boarding(in, out string) Input {
	return Input{
		DogID:        f.dogID,
		CheckInDate:  date(in),
		CheckOutDate: date(out),
		StayType:     pricing.StayBoarding,
		RateType:     pricing.RateRegular,
	}
}

// --- Tests ---------------------------------------------------------------

func TestQuote_UsesFreshSnapshots(t *testing.T) {
	f := newFixture(t, "2025-02-20")
	ctx := context.Background()

	res, err := f.uc.Quote(ctx, f.boarding("2025-03-01", "2025-03-04"))
	require.NoError(t, err)
	require.Equal(t, "150.00", res.TotalCost.StringFixed(2))

	f.rates.table[pricing.RateKey{Size: pricing.SizeMedium, RateType: pricing.RateRegular, StayType: pricing.StayBoarding}] = d("60")
	res, err = f.uc.Quote(ctx, f.boarding("2025-03-01", "2025-03-04"))
	require.NoError(t, err)
	require.Equal(t, "180.00", res.TotalCost.StringFixed(2))
	require.Equal(t, 2, f.rates.calls)

	require.Empty(t, f.store.stays)
}

func TestCreate_PersistsBreakdownAndStatus(t *testing.T) {
	f := newFixture(t, "2025-03-02")

	in := f.boarding("2025-03-01", "2025-03-04")
	in.RequiresDropoff = true
	in.RequiresPickup = true
	in.Rover = true

	out, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, StatusActive, out.Status)
	require.Equal(t, "3", out.DaysCount.String())
	require.Equal(t, "152.00", out.TotalCost.StringFixed(2))
	require.Equal(t, "38.00", out.RoverDiscount.StringFixed(2))
	require.Len(t, f.store.stays, 1)
}

func TestCreate_Rejections(t *testing.T) {
	f := newFixture(t, "2025-02-20")
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.boarding("2025-03-01", "2025-03-01"))
	require.ErrorIs(t, err, pricing.ErrInvalidDateRange)

	in := f.boarding("2025-03-01", "2025-03-03")
	in.StayType = pricing.StayDaycare
	in.RateType = pricing.RateHoliday
	_, err = f.uc.Create(ctx, in)
	require.ErrorIs(t, err, pricing.ErrRateNotFound)

	in = f.boarding("2025-03-01", "2025-03-03")
	in.DogID = uuid.NewString()
	_, err = f.uc.Create(ctx, in)
	require.ErrorIs(t, err, pricing.ErrDogNotFound)

	in = f.boarding("2025-03-01", "2025-03-03")
	in.DogID = f.store.addDog("deceased", pricing.Dog{Size: pricing.SizeMedium})
	_, err = f.uc.Create(ctx, in)
	require.ErrorIs(t, err, ErrDogDeceased)

	in = f.boarding("2025-03-01", "2025-03-03")
	in.StayType = "overnight"
	_, err = f.uc.Create(ctx, in)
	require.ErrorIs(t, err, ErrInvalidInput)

	in = f.boarding("2025-03-01", "2025-03-03")
	in.CheckOutDate = Date{}
	_, err = f.uc.Create(ctx, in)
	require.ErrorIs(t, err, ErrInvalidInput)

	require.Empty(t, f.store.stays)
}

func TestCreate_ManualDaysIgnoredForBoarding(t *testing.T) {
	f := newFixture(t, "2025-02-20")

	in := f.boarding("2025-03-01", "2025-03-03")
	n := 9
	in.ManualDaysCount = &n

	out, err := f.uc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, "2", out.DaysCount.String())
}

func TestUpdate_RepricesAndKeepsCancelled(t *testing.T) {
	f := newFixture(t, "2025-02-20")
	ctx := context.Background()

	s, err := f.uc.Create(ctx, f.boarding("2025-03-01", "2025-03-04"))
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, s.ID, UpdateStatusInput{Status: StatusCancelled})
	require.NoError(t, err)

	out, err := f.uc.Update(ctx, s.ID, f.boarding("2025-03-01", "2025-03-06"))
	require.NoError(t, err)
	require.Equal(t, "250.00", out.TotalCost.StringFixed(2))
	require.Equal(t, StatusCancelled, out.Status)
}

func TestUpdate_BilledStayIsLocked(t *testing.T) {
	f := newFixture(t, "2025-03-10")
	ctx := context.Background()

	s, err := f.uc.Create(ctx, f.boarding("2025-03-01", "2025-03-04"))
	require.NoError(t, err)
	f.store.billed[s.ID] = true

	_, err = f.uc.Update(ctx, s.ID, f.boarding("2025-03-01", "2025-03-05"))
	require.ErrorIs(t, err, ErrBilled)

	_, err = f.uc.UpdateStatus(ctx, s.ID, UpdateStatusInput{Status: StatusCancelled})
	require.ErrorIs(t, err, ErrInvalidTransition)

	require.ErrorIs(t, f.uc.Delete(ctx, s.ID), ErrBilled)
}

func TestUpdate_RejectsMoveToDeceasedDog(t *testing.T) {
	f := newFixture(t, "2025-02-20")
	ctx := context.Background()

	s, err := f.uc.Create(ctx, f.boarding("2025-03-01", "2025-03-04"))
	require.NoError(t, err)

	in := f.boarding("2025-03-01", "2025-03-04")
	in.DogID = f.store.addDog("deceased", pricing.Dog{Size: pricing.SizeMedium})
	_, err = f.uc.Update(ctx, s.ID, in)
	require.ErrorIs(t, err, ErrDogDeceased)

	got, err := f.uc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, f.dogID, got.DogID)

	// the stay's own dog passing away does not freeze its booking
	f.store.dogs[f.dogID].Status = "deceased"
	out, err := f.uc.Update(ctx, s.ID, f.boarding("2025-03-01", "2025-03-05"))
	require.NoError(t, err)
	require.Equal(t, "200.00", out.TotalCost.StringFixed(2))
}

func TestUpdateStatus_Transitions(t *testing.T) {
	f := newFixture(t, "2025-02-20")
	ctx := context.Background()

	s, err := f.uc.Create(ctx, f.boarding("2025-03-01", "2025-03-04"))
	require.NoError(t, err)
	require.Equal(t, StatusUpcoming, s.Status)

	_, err = f.uc.UpdateStatus(ctx, s.ID, UpdateStatusInput{Status: "paused"})
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = f.uc.UpdateStatus(ctx, s.ID, UpdateStatusInput{Status: StatusCompleted})
	require.ErrorIs(t, err, ErrInvalidTransition)

	out, err := f.uc.UpdateStatus(ctx, s.ID, UpdateStatusInput{Status: StatusCancelled})
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, out.Status)

	_, err = f.uc.UpdateStatus(ctx, s.ID, UpdateStatusInput{Status: StatusCancelled})
	require.ErrorIs(t, err, ErrInvalidTransition)

	// cancellation survives the calendar moving past the stay
	f.uc.now = func() time.Time { return date("2025-04-01").Time }
	got, err := f.uc.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, got.Status)
}

func TestList_DerivesStatusWithOneClock(t *testing.T) {
	f := newFixture(t, "2025-03-05")
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.boarding("2025-03-01", "2025-03-04"))
	require.NoError(t, err)

	out, err := f.uc.List(ctx, ListQuery{})
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, StatusCompleted, out[0].Status)
	require.Equal(t, "2025-03-05", f.store.lastQ.Today.String())
	require.Equal(t, 100, f.store.lastQ.Limit)

	bad := "later"
	_, err = f.uc.List(ctx, ListQuery{Status: &bad})
	require.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeriveStatus(t *testing.T) {
	in, out := date("2025-03-01"), date("2025-03-04")

	cases := []struct {
		stored string
		today  string
		want   string
	}{
		{"", "2025-02-28", StatusUpcoming},
		{"", "2025-03-01", StatusActive},
		{StatusUpcoming, "2025-03-04", StatusActive},
		{StatusActive, "2025-03-05", StatusCompleted},
		{StatusCompleted, "2025-02-01", StatusUpcoming},
		{StatusCancelled, "2025-03-02", StatusCancelled},
		{StatusCancelled, "2025-02-01", StatusCancelled},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, DeriveStatus(tc.stored, in, out, date(tc.today)), "%s on %s", tc.stored, tc.today)
	}
}

func TestInput_JSON(t *testing.T) {
	var in Input
	body := `{
		"dogId": "9f0c7a1e-4a43-4b8e-9a57-2c7d1f5f4b10",
		"checkInDate": "2025-03-01",
		"checkOutDate": "2025-03-04T00:00:00.000Z",
		"checkInTime": "09:00",
		"stayType": "daycare",
		"rateType": "regular",
		"manualDaysCount": 2,
		"specialPrice": "99.5",
		"extraCharge": 12.25,
		"isPuppy": true
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	require.Equal(t, "2025-03-04", in.CheckOutDate.String())
	require.Equal(t, "09:00", in.CheckInTime.String())
	require.Nil(t, in.CheckOutTime)
	require.Equal(t, "99.5", in.SpecialPrice.String())
	require.Equal(t, "12.25", in.ExtraCharge.String())

	req := in.PricingRequest()
	require.NotNil(t, req.ManualDaysCount)
	require.Equal(t, 2, *req.ManualDaysCount)
	require.True(t, req.IsPuppy)
}

func TestInput_JSON_BlankTimesAreUnset(t *testing.T) {
	var in Input
	body := `{
		"dogId": "9f0c7a1e-4a43-4b8e-9a57-2c7d1f5f4b10",
		"checkInDate": "2025-03-01",
		"checkOutDate": "2025-03-01",
		"checkInTime": "",
		"checkOutTime": "17:00",
		"stayType": "daycare",
		"rateType": "regular"
	}`
	require.NoError(t, json.Unmarshal([]byte(body), &in))
	require.Nil(t, in.CheckInTime)
	require.Equal(t, "17:00", in.CheckOutTime.String())
	require.Equal(t, "2025-03-01", in.CheckInDate.String())
	require.Equal(t, pricing.StayDaycare, in.StayType)

	err := json.Unmarshal([]byte(`{"checkInTime":"09:00:zz"}`), &in)
	require.ErrorIs(t, err, pricing.ErrInvalidTime)
}
