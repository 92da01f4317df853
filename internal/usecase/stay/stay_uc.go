package stay

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kosarinj/lilys-dogboarding-app/internal/metrics"
	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
	doguc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/dog"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("stay not found")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrBilled            = errors.New("stay is already on a bill")
	ErrDogDeceased       = errors.New("dog is marked deceased")
)

type Store interface {
	GetDog(ctx context.Context, dogID string) (*DogRef, error)

	Create(ctx context.Context, rec Record) (*Stay, error)
	Update(ctx context.Context, id string, rec Record) (*Stay, error)
	GetByID(ctx context.Context, id string) (*Stay, error)
	List(ctx context.Context, q ListQuery) ([]Stay, error)
	UpdateStatus(ctx context.Context, id string, status string) (*Stay, error)
	Delete(ctx context.Context, id string) error
}

// RateSource and FeeSource hand out fresh configuration snapshots; every
// pricing run reads them again so edits apply to the next computation.
type RateSource interface {
	Snapshot(ctx context.Context) (pricing.RateTable, error)
}

type FeeSource interface {
	Snapshot(ctx context.Context) (pricing.FeeSettings, error)
}

type Usecase struct {
	store Store
	rates RateSource
	fees  FeeSource
	log   *zap.Logger
	now   func() time.Time
}

func New(store Store, rates RateSource, fees FeeSource, log *zap.Logger) *Usecase {
	return &Usecase{
		store: store,
		rates: rates,
		fees:  fees,
		log:   log,
		now:   time.Now,
	}
}

// Quote prices a stay without persisting anything.
func (u *Usecase) Quote(ctx context.Context, in Input) (*pricing.Result, error) {
	_, res, err := u.price(ctx, in)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (u *Usecase) Create(ctx context.Context, in Input) (*Stay, error) {
	ref, res, err := u.price(ctx, in)
	if err != nil {
		return nil, err
	}
	if ref.Status == doguc.StatusDeceased {
		return nil, ErrDogDeceased
	}

	rec := Record{
		Input:  in,
		Result: roundResult(*res),
		Status: DeriveStatus("", in.CheckInDate, in.CheckOutDate, u.today()),
	}
	out, err := u.store.Create(ctx, rec)
	if err != nil {
		return nil, err
	}

	u.log.Info("stay created",
		zap.String("stay_id", out.ID),
		zap.String("dog_id", out.DogID),
		zap.String("stay_type", string(out.StayType)),
		zap.String("total_cost", out.TotalCost.StringFixed(2)),
	)
	return u.withStatus(out), nil
}

// Update replaces the stay's booking details and re-prices it against the
// current rates and fees.
func (u *Usecase) Update(ctx context.Context, id string, in Input) (*Stay, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidInput
	}

	cur, err := u.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if cur.Billed {
		return nil, ErrBilled
	}

	ref, res, err := u.price(ctx, in)
	if err != nil {
		return nil, err
	}
	// A stay already booked for a dog that has since died can still be corrected.
	if in.DogID != cur.DogID && ref.Status == doguc.StatusDeceased {
		return nil, ErrDogDeceased
	}

	rec := Record{
		Input:  in,
		Result: roundResult(*res),
		Status: DeriveStatus(cur.Status, in.CheckInDate, in.CheckOutDate, u.today()),
	}
	out, err := u.store.Update(ctx, id, rec)
	if err != nil {
		return nil, err
	}

	u.log.Info("stay repriced",
		zap.String("stay_id", id),
		zap.String("previous_total", cur.TotalCost.StringFixed(2)),
		zap.String("total_cost", out.TotalCost.StringFixed(2)),
	)
	return u.withStatus(out), nil
}

func (u *Usecase) GetByID(ctx context.Context, id string) (*Stay, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidInput
	}
	out, err := u.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.withStatus(out), nil
}

func (u *Usecase) List(ctx context.Context, q ListQuery) ([]Stay, error) {
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 100
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.DogID != nil && !isUUID(*q.DogID) {
		return nil, ErrInvalidInput
	}
	if q.CustomerID != nil && !isUUID(*q.CustomerID) {
		return nil, ErrInvalidInput
	}
	if q.Status != nil && !isValidStatus(*q.Status) {
		return nil, ErrInvalidStatus
	}
	q.Today = u.today()

	out, err := u.store.List(ctx, q)
	if err != nil {
		return nil, err
	}
	for i := range out {
		u.withStatus(&out[i])
	}
	return out, nil
}

// UpdateStatus only accepts explicit operator states. Upcoming, active and
// completed follow from the dates and cannot be set by hand.
func (u *Usecase) UpdateStatus(ctx context.Context, id string, in UpdateStatusInput) (*Stay, error) {
	if _, err := uuid.Parse(id); err != nil || in.Status == "" {
		return nil, ErrInvalidInput
	}
	if !isValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	cur, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isValidTransition(cur.Status, in.Status) {
		return nil, ErrInvalidTransition
	}
	if cur.Billed {
		return nil, ErrBilled
	}

	out, err := u.store.UpdateStatus(ctx, id, in.Status)
	if err != nil {
		return nil, err
	}
	u.log.Info("stay status changed", zap.String("stay_id", id), zap.String("from", cur.Status), zap.String("to", in.Status))
	return u.withStatus(out), nil
}

func (u *Usecase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrInvalidInput
	}
	return u.store.Delete(ctx, id)
}

// price validates the input and runs the engine against fresh snapshots.
func (u *Usecase) price(ctx context.Context, in Input) (*DogRef, *pricing.Result, error) {
	if err := validate(in); err != nil {
		return nil, nil, err
	}

	ref, err := u.store.GetDog(ctx, in.DogID)
	if err != nil {
		return nil, nil, err
	}

	rates, err := u.rates.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}
	fees, err := u.fees.Snapshot(ctx)
	if err != nil {
		return nil, nil, err
	}

	res, err := pricing.ComputeTotal(in.PricingRequest(), ref.Pricing, rates, fees)
	if err != nil {
		metrics.StayPriced(string(in.StayType), outcome(err))
		u.log.Debug("stay pricing rejected", zap.String("dog_id", in.DogID), zap.Error(err))
		return nil, nil, err
	}
	metrics.StayPriced(string(in.StayType), "ok")
	return ref, res, nil
}

func (u *Usecase) today() Date {
	return DateOf(u.now())
}

func (u *Usecase) withStatus(s *Stay) *Stay {
	s.Status = DeriveStatus(s.Status, s.CheckInDate, s.CheckOutDate, u.today())
	return s
}

// DeriveStatus computes a stay's status from its dates. A cancelled stay stays
// cancelled regardless of the calendar.
func DeriveStatus(stored string, checkIn, checkOut, today Date) string {
	if stored == StatusCancelled {
		return StatusCancelled
	}
	switch {
	case today.Before(checkIn.Time):
		return StatusUpcoming
	case today.After(checkOut.Time):
		return StatusCompleted
	default:
		return StatusActive
	}
}

func validate(in Input) error {
	if !isUUID(in.DogID) || !in.StayType.Valid() || !in.RateType.Valid() {
		return ErrInvalidInput
	}
	if in.CheckInDate.IsZero() || in.CheckOutDate.IsZero() {
		return ErrInvalidInput
	}
	return nil
}

func roundResult(r pricing.Result) pricing.Result {
	r.DailyRate = r.DailyRate.Round(2)
	r.DropoffFee = r.DropoffFee.Round(2)
	r.PickupFee = r.PickupFee.Round(2)
	r.PuppyFee = r.PuppyFee.Round(2)
	r.ExtraCharge = r.ExtraCharge.Round(2)
	r.BoardingCost = r.BoardingCost.Round(2)
	r.ComputedTotal = r.ComputedTotal.Round(2)
	r.RoverDiscount = r.RoverDiscount.Round(2)
	r.TotalCost = r.TotalCost.Round(2)
	return r
}

func outcome(err error) string {
	switch {
	case errors.Is(err, pricing.ErrRateNotFound):
		return "rate_not_found"
	case errors.Is(err, pricing.ErrInvalidDateRange):
		return "invalid_date_range"
	case errors.Is(err, pricing.ErrInvalidAmount):
		return "invalid_amount"
	default:
		return "error"
	}
}

func isValidStatus(s string) bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

func isValidTransition(from, to string) bool {
	switch from {
	case StatusUpcoming, StatusActive:
		return to == StatusCancelled
	default:
		return false
	}
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
