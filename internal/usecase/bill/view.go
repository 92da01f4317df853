package bill

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
	"github.com/kosarinj/lilys-dogboarding-app/internal/usecase/stay"
)

// View is a bill with its line items and payments, as shown to the operator
// and on the guest page.
type View struct {
	Bill
	Items    []ViewItem `json:"items"`
	Payments []ViewPay  `json:"payments"`
}

type ViewItem struct {
	ID           string             `json:"id"`
	StayID       string             `json:"stayId"`
	DogName      string             `json:"dogName"`
	DogSize      pricing.DogSize    `json:"dogSize"`
	StayType     pricing.StayType   `json:"stayType"`
	CheckInDate  stay.Date          `json:"checkInDate"`
	CheckOutDate stay.Date          `json:"checkOutDate"`
	CheckInTime  *pricing.TimeOfDay `json:"checkInTime,omitempty"`
	CheckOutTime *pricing.TimeOfDay `json:"checkOutTime,omitempty"`
	Description  string             `json:"description"`
	Quantity     decimal.Decimal    `json:"quantity"`
	UnitPrice    decimal.Decimal    `json:"unitPrice"`
	TotalPrice   decimal.Decimal    `json:"totalPrice"`
	DropoffFee   decimal.Decimal    `json:"dropoffFee"`
	PickupFee    decimal.Decimal    `json:"pickupFee"`
	PuppyFee     decimal.Decimal    `json:"puppyFee"`
	ExtraCharge  decimal.Decimal    `json:"extraCharge"`
	Rover        bool               `json:"rover"`
}

type ViewPay struct {
	ID        string          `json:"id"`
	Method    string          `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paidAt"`
	Reference *string         `json:"reference,omitempty"`
	Note      *string         `json:"note,omitempty"`
	Status    string          `json:"status"`
}
