package rate

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
)

type Rate struct {
	ID          string           `json:"id"`
	DogSize     pricing.DogSize  `json:"dogSize"`
	RateType    pricing.RateType `json:"rateType"`
	ServiceType pricing.StayType `json:"serviceType"`
	PricePerDay decimal.Decimal  `json:"pricePerDay"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type UpdateInput struct {
	PricePerDay *decimal.Decimal `json:"pricePerDay"`
}

// Default is one entry of the stock price list installed by Initialize.
type Default struct {
	DogSize     pricing.DogSize
	RateType    pricing.RateType
	ServiceType pricing.StayType
	PricePerDay decimal.Decimal
}

type InitializeResult struct {
	Created  int    `json:"created"`
	Existing int    `json:"existing"`
	Rates    []Rate `json:"rates"`
}

func def(size pricing.DogSize, rt pricing.RateType, st pricing.StayType, price string) Default {
	return Default{DogSize: size, RateType: rt, ServiceType: st, PricePerDay: decimal.RequireFromString(price)}
}

var Defaults = []Default{
	def(pricing.SizeSmall, pricing.RateRegular, pricing.StayBoarding, "40.00"),
	def(pricing.SizeMedium, pricing.RateRegular, pricing.StayBoarding, "50.00"),
	def(pricing.SizeLarge, pricing.RateRegular, pricing.StayBoarding, "60.00"),
	def(pricing.SizeSmall, pricing.RateHoliday, pricing.StayBoarding, "60.00"),
	def(pricing.SizeMedium, pricing.RateHoliday, pricing.StayBoarding, "75.00"),
	def(pricing.SizeLarge, pricing.RateHoliday, pricing.StayBoarding, "90.00"),
	def(pricing.SizeSmall, pricing.RateRegular, pricing.StayDaycare, "30.00"),
	def(pricing.SizeMedium, pricing.RateRegular, pricing.StayDaycare, "35.00"),
	def(pricing.SizeLarge, pricing.RateRegular, pricing.StayDaycare, "40.00"),
	def(pricing.SizeSmall, pricing.RateHoliday, pricing.StayDaycare, "45.00"),
	def(pricing.SizeMedium, pricing.RateHoliday, pricing.StayDaycare, "52.50"),
	def(pricing.SizeLarge, pricing.RateHoliday, pricing.StayDaycare, "60.00"),
}
