package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type RateKey struct {
	Size     DogSize
	RateType RateType
	StayType StayType
}

// RateTable is a point-in-time snapshot of the configured daily prices.
type RateTable map[RateKey]decimal.Decimal

func (t RateTable) Rate(size DogSize, rateType RateType, stayType StayType) (decimal.Decimal, bool) {
	p, ok := t[RateKey{Size: size, RateType: rateType, StayType: stayType}]
	return p, ok
}

const (
	SettingDropoffFee              = "dropoff_fee"
	SettingPickupFee               = "pickup_fee"
	SettingBoardingPuppyFeeRegular = "boarding_puppy_fee_regular"
	SettingBoardingPuppyFeeHoliday = "boarding_puppy_fee_holiday"
	SettingDaycarePuppyFeeRegular  = "daycare_puppy_fee_regular"
	SettingDaycarePuppyFeeHoliday  = "daycare_puppy_fee_holiday"
)

// SettingKeys lists every fee setting the engine reads.
var SettingKeys = []string{
	SettingDropoffFee,
	SettingPickupFee,
	SettingBoardingPuppyFeeRegular,
	SettingBoardingPuppyFeeHoliday,
	SettingDaycarePuppyFeeRegular,
	SettingDaycarePuppyFeeHoliday,
}

// FeeSettings is a point-in-time snapshot of the global fee configuration.
type FeeSettings struct {
	DropoffFee              decimal.Decimal
	PickupFee               decimal.Decimal
	BoardingPuppyFeeRegular decimal.Decimal
	BoardingPuppyFeeHoliday decimal.Decimal
	DaycarePuppyFeeRegular  decimal.Decimal
	DaycarePuppyFeeHoliday  decimal.Decimal
}

// FeeSettingsFromMap builds a snapshot from setting_key -> setting_value rows.
// Every key in SettingKeys must be present.
func FeeSettingsFromMap(values map[string]decimal.Decimal) (FeeSettings, error) {
	for _, k := range SettingKeys {
		if _, ok := values[k]; !ok {
			return FeeSettings{}, fmt.Errorf("%w: %s", ErrFeeSettingMissing, k)
		}
	}
	return FeeSettings{
		DropoffFee:              values[SettingDropoffFee],
		PickupFee:               values[SettingPickupFee],
		BoardingPuppyFeeRegular: values[SettingBoardingPuppyFeeRegular],
		BoardingPuppyFeeHoliday: values[SettingBoardingPuppyFeeHoliday],
		DaycarePuppyFeeRegular:  values[SettingDaycarePuppyFeeRegular],
		DaycarePuppyFeeHoliday:  values[SettingDaycarePuppyFeeHoliday],
	}, nil
}

// IsSettingKey reports whether key is one of the fee settings.
func IsSettingKey(key string) bool {
	for _, k := range SettingKeys {
		if k == key {
			return true
		}
	}
	return false
}
