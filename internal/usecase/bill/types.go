package bill

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
	"github.com/kosarinj/lilys-dogboarding-app/internal/usecase/stay"
)

const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
	StatusCancelled = "cancelled"
)

const (
	PaymentUnpaid   = "unpaid"
	PaymentPartial  = "partial"
	PaymentPaid     = "paid"
	PaymentOverpaid = "overpaid"
)

type Bill struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customerId"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone *string         `json:"customerPhone,omitempty"`
	CustomerEmail *string         `json:"customerEmail,omitempty"`
	BillCode      string          `json:"billCode"`
	BillDate      stay.Date       `json:"billDate"`
	DueDate       stay.Date       `json:"dueDate"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	BalanceDue    decimal.Decimal `json:"balanceDue"`
	PaymentStatus string          `json:"paymentStatus"`
	Status        string          `json:"status"`
	PaymentMethod *string         `json:"paymentMethod,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

type CreateInput struct {
	CustomerID string   `json:"customerId"`
	StayIDs    []string `json:"stayIds"`
	Notes      *string  `json:"notes"`
}

// BillableStay is the part of a stay a bill line is built from.
type BillableStay struct {
	ID        string
	StayType  pricing.StayType
	DaysCount decimal.Decimal
	DailyRate decimal.Decimal
	TotalCost decimal.Decimal
}

// NewBill is a fully computed bill ready to be inserted with its items.
type NewBill struct {
	CustomerID  string
	BillCode    string
	BillDate    stay.Date
	DueDate     stay.Date
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	TotalAmount decimal.Decimal
	Notes       *string
	Items       []NewItem
}

type NewItem struct {
	StayID      string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}

type ListQuery struct {
	CustomerID *string
	Status     *string
	Limit      int
	Offset     int
}

type UpdateStatusInput struct {
	Status        string  `json:"status"`
	PaymentMethod *string `json:"paymentMethod"`
}
