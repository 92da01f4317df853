package pricing

import "errors"

var (
	ErrDogNotFound      = errors.New("dog not found")
	ErrRateNotFound     = errors.New("rate not found for this dog size, rate type and service type")
	ErrInvalidDateRange = errors.New("for boarding, check-out must be after check-in (at least 1 night)")
	ErrInvalidAmount    = errors.New("amounts must not be negative")
	ErrInvalidTime      = errors.New("invalid time of day, expected HH:MM")

	ErrFeeSettingMissing = errors.New("fee setting not configured")
)
