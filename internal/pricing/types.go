package pricing

import (
	"time"

	"github.com/shopspring/decimal"
)

type DogSize string

const (
	SizeSmall  DogSize = "small"
	SizeMedium DogSize = "medium"
	SizeLarge  DogSize = "large"
)

func (s DogSize) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	default:
		return false
	}
}

// RateType is the rate a stay is billed at. Custom is only meaningful for
// dogs with a custom daily rate; the rate table itself only holds regular and
// holiday prices.
type RateType string

const (
	RateRegular RateType = "regular"
	RateHoliday RateType = "holiday"
	RateCustom  RateType = "custom"
)

func (r RateType) Valid() bool {
	switch r {
	case RateRegular, RateHoliday, RateCustom:
		return true
	default:
		return false
	}
}

type StayType string

const (
	StayBoarding StayType = "boarding"
	StayDaycare  StayType = "daycare"
)

func (s StayType) Valid() bool {
	return s == StayBoarding || s == StayDaycare
}

type FeeKind string

const (
	FeePickup  FeeKind = "pickup"
	FeeDropoff FeeKind = "dropoff"
)

// Dog holds the attributes of a dog that affect what its stays cost.
// A nil override means "not set"; a zero override is a real price.
type Dog struct {
	Size               DogSize
	PickupFeeOverride  *decimal.Decimal
	DropoffFeeOverride *decimal.Decimal
	CustomDailyRate    *decimal.Decimal
}

type StayRequest struct {
	CheckInDate     time.Time
	CheckOutDate    time.Time
	CheckInTime     *TimeOfDay
	CheckOutTime    *TimeOfDay
	StayType        StayType
	RateType        RateType
	ManualDaysCount *int
	SpecialPrice    *decimal.Decimal
	RequiresDropoff bool
	RequiresPickup  bool
	IsPuppy         bool
	Rover           bool
	ExtraCharge     *decimal.Decimal
}

type Result struct {
	DaysCount           decimal.Decimal `json:"daysCount"`
	DailyRate           decimal.Decimal `json:"dailyRate"`
	RateMultiplier      decimal.Decimal `json:"rateMultiplier"`
	DropoffFee          decimal.Decimal `json:"dropoffFee"`
	PickupFee           decimal.Decimal `json:"pickupFee"`
	PuppyFee            decimal.Decimal `json:"puppyFee"`
	ExtraCharge         decimal.Decimal `json:"extraCharge"`
	BoardingCost        decimal.Decimal `json:"boardingCost"`
	ComputedTotal       decimal.Decimal `json:"computedTotal"`
	SpecialPriceApplied bool            `json:"specialPriceApplied"`
	RoverDiscount       decimal.Decimal `json:"roverDiscount"`
	TotalCost           decimal.Decimal `json:"totalCost"`
}
