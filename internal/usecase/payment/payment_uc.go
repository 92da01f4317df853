package payment

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/kosarinj/lilys-dogboarding-app/internal/metrics"
	billuc "github.com/kosarinj/lilys-dogboarding-app/internal/usecase/bill"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidAmount = errors.New("payment amount must be greater than 0")
	ErrBillMissing   = errors.New("bill not found")
	ErrBillClosed    = errors.New("bill is cancelled")
)

const (
	MethodCash     = "cash"
	MethodTransfer = "transfer"
	MethodCard     = "card"
	MethodRover    = "rover"
)

const (
	StatusPosted = "posted"
	StatusVoided = "voided"
)

type Payment struct {
	ID        string          `json:"id"`
	BillID    string          `json:"billId"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paidAt"`
	Reference *string         `json:"reference,omitempty"`
	Note      *string         `json:"note,omitempty"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// BillState is the bill's payment position right after a payment is posted.
type BillState struct {
	BillID        string          `json:"billId"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	BalanceDue    decimal.Decimal `json:"balanceDue"`
	PaymentStatus string          `json:"paymentStatus"`
	Status        string          `json:"status"`
}

type CreateInput struct {
	BillID    string          `json:"-"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	Reference *string         `json:"reference"`
	Note      *string         `json:"note"`
	PaidAt    *time.Time      `json:"paidAt"`
}

type Store interface {
	// Create posts the payment and recomputes the bill's paid amount and
	// statuses in one transaction, using PaymentStatusFor and SettledStatus.
	Create(ctx context.Context, in CreateInput) (*Payment, *BillState, error)
	ListByBill(ctx context.Context, billID string) ([]Payment, error)
}

type Usecase struct {
	store Store
	log   *zap.Logger
}

func New(store Store, log *zap.Logger) *Usecase {
	return &Usecase{store: store, log: log}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*Payment, *BillState, error) {
	if _, err := uuid.Parse(in.BillID); err != nil {
		return nil, nil, ErrInvalidInput
	}
	in.Method = strings.ToLower(strings.TrimSpace(in.Method))
	if !isValidMethod(in.Method) {
		return nil, nil, ErrInvalidInput
	}
	if !in.Amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}
	in.Amount = in.Amount.Round(2)
	in.Reference = trimOptional(in.Reference)
	in.Note = trimOptional(in.Note)

	p, state, err := u.store.Create(ctx, in)
	if err != nil {
		return nil, nil, err
	}

	metrics.PaymentRecorded(p.Method)
	u.log.Info("payment recorded",
		zap.String("payment_id", p.ID),
		zap.String("bill_id", p.BillID),
		zap.String("method", p.Method),
		zap.String("amount", p.Amount.StringFixed(2)),
		zap.String("payment_status", state.PaymentStatus),
	)
	return p, state, nil
}

func (u *Usecase) ListByBill(ctx context.Context, billID string) ([]Payment, error) {
	if _, err := uuid.Parse(billID); err != nil {
		return nil, ErrInvalidInput
	}
	return u.store.ListByBill(ctx, billID)
}

// PaymentStatusFor classifies how much of a bill total has been paid.
func PaymentStatusFor(paid, total decimal.Decimal) string {
	switch {
	case !paid.IsPositive():
		return billuc.PaymentUnpaid
	case paid.LessThan(total):
		return billuc.PaymentPartial
	case paid.Equal(total):
		return billuc.PaymentPaid
	default:
		return billuc.PaymentOverpaid
	}
}

// SettledStatus moves an open bill to paid once it is fully paid. Other
// statuses are returned unchanged.
func SettledStatus(status, paymentStatus string) string {
	if paymentStatus != billuc.PaymentPaid && paymentStatus != billuc.PaymentOverpaid {
		return status
	}
	switch status {
	case billuc.StatusDraft, billuc.StatusSent, billuc.StatusOverdue:
		return billuc.StatusPaid
	default:
		return status
	}
}

func isValidMethod(m string) bool {
	switch m {
	case MethodCash, MethodTransfer, MethodCard, MethodRover:
		return true
	default:
		return false
	}
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
