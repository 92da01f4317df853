package bill

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kosarinj/lilys-dogboarding-app/internal/metrics"
	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
	"github.com/kosarinj/lilys-dogboarding-app/internal/usecase/stay"
)

var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrNotFound          = errors.New("bill not found")
	ErrCustomerMissing   = errors.New("customer not found")
	ErrStayNotBillable   = errors.New("stay cannot be billed")
	ErrCodeConflict      = errors.New("bill code already exists")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPaid              = errors.New("paid bills cannot be deleted")
)

const (
	codePrefix   = "BILL-"
	codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	codeLength   = 6
	codeAttempts = 5
)

type Store interface {
	CustomerExists(ctx context.Context, customerID string) (bool, error)
	// BillableStays returns the requested stays that belong to the customer,
	// have started, are not cancelled and are not on any bill yet.
	BillableStays(ctx context.Context, customerID string, stayIDs []string, today stay.Date) ([]BillableStay, error)
	// Create inserts the bill and its items atomically. A duplicate bill code
	// is reported as ErrCodeConflict.
	Create(ctx context.Context, in NewBill) (*Bill, error)

	GetByID(ctx context.Context, id string) (*Bill, error)
	GetView(ctx context.Context, id string) (*View, error)
	GetViewByCode(ctx context.Context, code string) (*View, error)
	List(ctx context.Context, q ListQuery) ([]Bill, error)
	UpdateStatus(ctx context.Context, id string, in UpdateStatusInput) (*Bill, error)
	Delete(ctx context.Context, id string) error

	UnbilledStays(ctx context.Context, today stay.Date) ([]stay.Stay, error)
}

type Usecase struct {
	store   Store
	dueDays int
	log     *zap.Logger
	now     func() time.Time
	newCode func() (string, error)
}

func New(store Store, dueDays int, log *zap.Logger) *Usecase {
	if dueDays < 0 {
		dueDays = 7
	}
	return &Usecase{
		store:   store,
		dueDays: dueDays,
		log:     log,
		now:     time.Now,
		newCode: GenerateCode,
	}
}

// Create bills a customer for a set of stays. Each stay becomes one line item
// priced at the stay's stored total.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Bill, error) {
	if !isUUID(in.CustomerID) || len(in.StayIDs) == 0 {
		return nil, ErrInvalidInput
	}
	ids := make([]string, 0, len(in.StayIDs))
	seen := make(map[string]bool, len(in.StayIDs))
	for _, id := range in.StayIDs {
		if !isUUID(id) {
			return nil, ErrInvalidInput
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	ok, err := u.store.CustomerExists(ctx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrCustomerMissing
	}

	today := stay.DateOf(u.now())
	stays, err := u.store.BillableStays(ctx, in.CustomerID, ids, today)
	if err != nil {
		return nil, err
	}
	if missing := missingStays(ids, stays); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrStayNotBillable, strings.Join(missing, ", "))
	}

	nb := NewBill{
		CustomerID: in.CustomerID,
		BillDate:   today,
		DueDate:    stay.DateOf(today.AddDate(0, 0, u.dueDays)),
		Tax:        decimal.Zero,
		Subtotal:   decimal.Zero,
		Notes:      in.Notes,
		Items:      make([]NewItem, 0, len(stays)),
	}
	for _, s := range stays {
		nb.Subtotal = nb.Subtotal.Add(s.TotalCost)
		nb.Items = append(nb.Items, NewItem{
			StayID:      s.ID,
			Description: ItemDescription(s.StayType, s.DaysCount),
			Quantity:    s.DaysCount,
			UnitPrice:   s.DailyRate,
			TotalPrice:  s.TotalCost,
		})
	}
	nb.Subtotal = nb.Subtotal.Round(2)
	nb.TotalAmount = nb.Subtotal.Add(nb.Tax)

	for attempt := 1; attempt <= codeAttempts; attempt++ {
		code, err := u.newCode()
		if err != nil {
			return nil, err
		}
		nb.BillCode = code

		out, err := u.store.Create(ctx, nb)
		if errors.Is(err, ErrCodeConflict) {
			u.log.Warn("bill code collision", zap.String("bill_code", code), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return nil, err
		}

		metrics.BillCreated()
		u.log.Info("bill created",
			zap.String("bill_id", out.ID),
			zap.String("bill_code", out.BillCode),
			zap.Int("items", len(nb.Items)),
			zap.String("total_amount", out.TotalAmount.StringFixed(2)),
		)
		return out, nil
	}
	return nil, fmt.Errorf("generate bill code: %w", ErrCodeConflict)
}

func (u *Usecase) List(ctx context.Context, q ListQuery) ([]Bill, error) {
	if q.Limit <= 0 || q.Limit > 200 {
		q.Limit = 50
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.CustomerID != nil && !isUUID(*q.CustomerID) {
		return nil, ErrInvalidInput
	}
	if q.Status != nil && !isValidStatus(*q.Status) {
		return nil, ErrInvalidStatus
	}
	return u.store.List(ctx, q)
}

func (u *Usecase) GetView(ctx context.Context, id string) (*View, error) {
	if !isUUID(id) {
		return nil, ErrInvalidInput
	}
	return u.store.GetView(ctx, id)
}

// GetViewByCode serves the guest bill page. Codes are matched case-insensitively.
func (u *Usecase) GetViewByCode(ctx context.Context, code string) (*View, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !ValidCode(code) {
		return nil, ErrNotFound
	}
	return u.store.GetViewByCode(ctx, code)
}

func (u *Usecase) UpdateStatus(ctx context.Context, id string, in UpdateStatusInput) (*Bill, error) {
	if !isUUID(id) || in.Status == "" {
		return nil, ErrInvalidInput
	}
	if !isValidStatus(in.Status) {
		return nil, ErrInvalidStatus
	}

	cur, err := u.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isValidTransition(cur.Status, in.Status) {
		return nil, ErrInvalidTransition
	}

	out, err := u.store.UpdateStatus(ctx, id, in)
	if err != nil {
		return nil, err
	}
	u.log.Info("bill status changed", zap.String("bill_id", id), zap.String("from", cur.Status), zap.String("to", in.Status))
	return out, nil
}

// Delete removes a bill and frees its stays for billing again.
func (u *Usecase) Delete(ctx context.Context, id string) error {
	if !isUUID(id) {
		return ErrInvalidInput
	}
	cur, err := u.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if cur.Status == StatusPaid || cur.PaymentStatus == PaymentPaid || cur.PaymentStatus == PaymentOverpaid {
		return ErrPaid
	}
	return u.store.Delete(ctx, id)
}

// UnbilledStays lists stays that have started, are not cancelled and are not
// on a bill.
func (u *Usecase) UnbilledStays(ctx context.Context) ([]stay.Stay, error) {
	today := stay.DateOf(u.now())
	out, err := u.store.UnbilledStays(ctx, today)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Status = stay.DeriveStatus(out[i].Status, out[i].CheckInDate, out[i].CheckOutDate, today)
	}
	return out, nil
}

// ItemDescription renders a bill line such as "Boarding - 3 days".
func ItemDescription(stayType pricing.StayType, days decimal.Decimal) string {
	label := "Boarding"
	if stayType == pricing.StayDaycare {
		label = "Daycare"
	}
	unit := "days"
	if days.Equal(decimal.NewFromInt(1)) {
		unit = "day"
	}
	return fmt.Sprintf("%s - %s %s", label, days.String(), unit)
}

// GenerateCode returns a random bill code such as BILL-7KQ2MX. The alphabet
// leaves out characters that are easy to misread (0/O, 1/I).
func GenerateCode() (string, error) {
	var b strings.Builder
	b.Grow(len(codePrefix) + codeLength)
	b.WriteString(codePrefix)

	max := big.NewInt(int64(len(codeAlphabet)))
	for i := 0; i < codeLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate bill code: %w", err)
		}
		b.WriteByte(codeAlphabet[n.Int64()])
	}
	return b.String(), nil
}

func ValidCode(code string) bool {
	if !strings.HasPrefix(code, codePrefix) || len(code) != len(codePrefix)+codeLength {
		return false
	}
	for _, r := range code[len(codePrefix):] {
		if !strings.ContainsRune(codeAlphabet, r) {
			return false
		}
	}
	return true
}

func missingStays(ids []string, found []BillableStay) []string {
	have := make(map[string]bool, len(found))
	for _, s := range found {
		have[s.ID] = true
	}
	var missing []string
	for _, id := range ids {
		if !have[id] {
			missing = append(missing, id)
		}
	}
	return missing
}

func isValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	default:
		return false
	}
}

func isValidTransition(from, to string) bool {
	switch from {
	case StatusDraft:
		return to == StatusSent || to == StatusCancelled
	case StatusSent:
		return to == StatusPaid || to == StatusOverdue || to == StatusCancelled
	case StatusOverdue:
		return to == StatusPaid || to == StatusCancelled
	default:
		return false
	}
}

func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
