package dog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
)

const (
	StatusActive   = "active"
	StatusDeceased = "deceased"
)

// Fields that can be cleared back to "use the global setting" on update.
const (
	FieldPickupFeeOverride  = "pickupFeeOverride"
	FieldDropoffFeeOverride = "dropoffFeeOverride"
	FieldCustomDailyRate    = "customDailyRate"
)

type Dog struct {
	ID                  string           `json:"id"`
	CustomerID          string           `json:"customerId"`
	CustomerName        string           `json:"customerName,omitempty"`
	Name                string           `json:"name"`
	Breed               *string          `json:"breed,omitempty"`
	Age                 *int             `json:"age,omitempty"`
	AgeMonths           *int             `json:"ageMonths,omitempty"`
	Location            *string          `json:"location,omitempty"`
	Size                pricing.DogSize  `json:"size"`
	Status              string           `json:"status"`
	FoodPreferences     *string          `json:"foodPreferences,omitempty"`
	BehavioralNotes     *string          `json:"behavioralNotes,omitempty"`
	SpecialInstructions *string          `json:"specialInstructions,omitempty"`
	PhotoURL            *string          `json:"photoUrl,omitempty"`
	PickupFeeOverride   *decimal.Decimal `json:"pickupFeeOverride,omitempty"`
	DropoffFeeOverride  *decimal.Decimal `json:"dropoffFeeOverride,omitempty"`
	CustomDailyRate     *decimal.Decimal `json:"customDailyRate,omitempty"`
	CreatedAt           time.Time        `json:"createdAt"`
	UpdatedAt           time.Time        `json:"updatedAt"`
}

// PricingDog is the subset of a dog the pricing engine reads.
func (d *Dog) PricingDog() pricing.Dog {
	return pricing.Dog{
		Size:               d.Size,
		PickupFeeOverride:  d.PickupFeeOverride,
		DropoffFeeOverride: d.DropoffFeeOverride,
		CustomDailyRate:    d.CustomDailyRate,
	}
}

type CreateInput struct {
	CustomerID          string           `json:"customerId"`
	Name                string           `json:"name"`
	Breed               *string          `json:"breed"`
	Age                 *int             `json:"age"`
	AgeMonths           *int             `json:"ageMonths"`
	Location            *string          `json:"location"`
	Size                pricing.DogSize  `json:"size"`
	Status              string           `json:"status"`
	FoodPreferences     *string          `json:"foodPreferences"`
	BehavioralNotes     *string          `json:"behavioralNotes"`
	SpecialInstructions *string          `json:"specialInstructions"`
	PhotoURL            *string          `json:"photoUrl"`
	PickupFeeOverride   *decimal.Decimal `json:"pickupFeeOverride"`
	DropoffFeeOverride  *decimal.Decimal `json:"dropoffFeeOverride"`
	CustomDailyRate     *decimal.Decimal `json:"customDailyRate"`
}

type UpdateInput struct {
	CustomerID          *string          `json:"customerId"`
	Name                *string          `json:"name"`
	Breed               *string          `json:"breed"`
	Age                 *int             `json:"age"`
	AgeMonths           *int             `json:"ageMonths"`
	Location            *string          `json:"location"`
	Size                *pricing.DogSize `json:"size"`
	Status              *string          `json:"status"`
	FoodPreferences     *string          `json:"foodPreferences"`
	BehavioralNotes     *string          `json:"behavioralNotes"`
	SpecialInstructions *string          `json:"specialInstructions"`
	PhotoURL            *string          `json:"photoUrl"`
	PickupFeeOverride   *decimal.Decimal `json:"pickupFeeOverride"`
	DropoffFeeOverride  *decimal.Decimal `json:"dropoffFeeOverride"`
	CustomDailyRate     *decimal.Decimal `json:"customDailyRate"`
	// Clear names override fields to reset to NULL.
	Clear []string `json:"clear"`
}

func (in UpdateInput) Clears(field string) bool {
	for _, f := range in.Clear {
		if f == field {
			return true
		}
	}
	return false
}

type ListQuery struct {
	CustomerID *string
	Status     *string
	Limit      int
	Offset     int
}
