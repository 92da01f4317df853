package pricing

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var (
	halfDay        = decimal.RequireFromString("0.5")
	roverRate      = decimal.RequireFromString("0.8")
	fullDayMinutes = 8 * 60
	halfDayMinutes = 2 * 60
)

// ComputeDaysCount returns the number of billable days for a stay.
//
// Boarding counts nights between the two dates plus one when the dog is picked
// up later in the day than it was dropped off. A boarding stay that ends up with
// no billable day is rejected with ErrInvalidDateRange. Daycare may carry a
// manual day count (for non-consecutive visits inside the date range) and is
// always billed at least one day.
func ComputeDaysCount(
	stayType StayType,
	checkInDate, checkOutDate time.Time,
	checkInTime, checkOutTime *TimeOfDay,
	manualDaysCount *int,
) (decimal.Decimal, error) {
	days := calendarDays(checkInDate, checkOutDate)

	if checkInTime != nil && checkOutTime != nil && checkOutTime.Minutes() > checkInTime.Minutes() {
		days++
	}

	if stayType == StayDaycare {
		if manualDaysCount != nil {
			if *manualDaysCount < 0 {
				return decimal.Zero, ErrInvalidAmount
			}
			days = *manualDaysCount
		}
		if days < 1 {
			days = 1
		}
		return decimal.NewFromInt(int64(days)), nil
	}

	if days <= 0 {
		return decimal.Zero, ErrInvalidDateRange
	}
	return decimal.NewFromInt(int64(days)), nil
}

// DaycareRateMultiplier prices a daycare visit as a half day when the dog
// stays between 2 and 8 hours. Everything else is billed as a full day.
func DaycareRateMultiplier(stayType StayType, checkInTime, checkOutTime *TimeOfDay) decimal.Decimal {
	if stayType != StayDaycare || checkInTime == nil || checkOutTime == nil {
		return decimal.NewFromInt(1)
	}
	minutes := checkOutTime.Minutes() - checkInTime.Minutes()
	if minutes >= halfDayMinutes && minutes < fullDayMinutes {
		return halfDay
	}
	return decimal.NewFromInt(1)
}

// LookupDailyRate never falls back to another rate or service type; a missing
// entry is ErrRateNotFound.
func LookupDailyRate(dog Dog, rateType RateType, stayType StayType, rates RateTable) (decimal.Decimal, error) {
	if rateType == RateCustom && dog.CustomDailyRate != nil {
		return *dog.CustomDailyRate, nil
	}

	effective := rateType
	if rateType == RateCustom {
		effective = RateRegular
	}

	price, ok := rates.Rate(dog.Size, effective, stayType)
	if !ok {
		return decimal.Zero, ErrRateNotFound
	}
	return price, nil
}

func ResolveFee(dog Dog, kind FeeKind, fees FeeSettings) decimal.Decimal {
	switch kind {
	case FeePickup:
		if dog.PickupFeeOverride != nil {
			return *dog.PickupFeeOverride
		}
		return fees.PickupFee
	case FeeDropoff:
		if dog.DropoffFeeOverride != nil {
			return *dog.DropoffFeeOverride
		}
		return fees.DropoffFee
	default:
		return decimal.Zero
	}
}

// PuppyFeeFor returns the per-day puppy surcharge. Custom-rate stays use the regular fee.
func PuppyFeeFor(stayType StayType, rateType RateType, fees FeeSettings) decimal.Decimal {
	holiday := rateType == RateHoliday
	if stayType == StayDaycare {
		if holiday {
			return fees.DaycarePuppyFeeHoliday
		}
		return fees.DaycarePuppyFeeRegular
	}
	if holiday {
		return fees.BoardingPuppyFeeHoliday
	}
	return fees.BoardingPuppyFeeRegular
}

// ComputeTotal prices a stay. It is a pure function of its arguments: callers
// pass the rate and fee snapshots they want the stay priced against.
func ComputeTotal(req StayRequest, dog Dog, rates RateTable, fees FeeSettings) (*Result, error) {
	if isNegative(req.SpecialPrice) || isNegative(req.ExtraCharge) {
		return nil, ErrInvalidAmount
	}

	days, err := ComputeDaysCount(req.StayType, req.CheckInDate, req.CheckOutDate, req.CheckInTime, req.CheckOutTime, req.ManualDaysCount)
	if err != nil {
		return nil, err
	}

	dailyRate, err := LookupDailyRate(dog, req.RateType, req.StayType, rates)
	if err != nil {
		return nil, err
	}

	multiplier := DaycareRateMultiplier(req.StayType, req.CheckInTime, req.CheckOutTime)

	// daycare drops off and picks up on every visit day, boarding once per stay
	feeMultiplier := decimal.NewFromInt(1)
	if req.StayType == StayDaycare {
		feeMultiplier = days
	}

	res := &Result{
		DaysCount:      days,
		DailyRate:      dailyRate,
		RateMultiplier: multiplier,
		DropoffFee:     decimal.Zero,
		PickupFee:      decimal.Zero,
		PuppyFee:       decimal.Zero,
		ExtraCharge:    decimal.Zero,
		RoverDiscount:  decimal.Zero,
	}

	if req.RequiresDropoff {
		res.DropoffFee = ResolveFee(dog, FeeDropoff, fees).Mul(feeMultiplier)
	}
	if req.RequiresPickup {
		res.PickupFee = ResolveFee(dog, FeePickup, fees).Mul(feeMultiplier)
	}
	if req.IsPuppy {
		res.PuppyFee = PuppyFeeFor(req.StayType, req.RateType, fees).Mul(days).Mul(multiplier)
	}
	if req.ExtraCharge != nil {
		res.ExtraCharge = *req.ExtraCharge
	}

	res.BoardingCost = dailyRate.Mul(days).Mul(multiplier)
	res.ComputedTotal = res.BoardingCost.
		Add(res.DropoffFee).
		Add(res.PickupFee).
		Add(res.PuppyFee).
		Add(res.ExtraCharge)

	total := res.ComputedTotal
	if req.SpecialPrice != nil && req.SpecialPrice.IsPositive() {
		// fees and extra charges still stack on top of an operator price
		res.SpecialPriceApplied = true
		total = req.SpecialPrice.
			Add(res.DropoffFee).
			Add(res.PickupFee).
			Add(res.ExtraCharge)
	}

	if req.Rover {
		discounted := total.Mul(roverRate)
		res.RoverDiscount = total.Sub(discounted)
		total = discounted
	}

	res.TotalCost = total
	return res, nil
}

func calendarDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(math.Ceil(t.Sub(f).Hours() / 24))
}

func isNegative(d *decimal.Decimal) bool {
	return d != nil && d.IsNegative()
}
