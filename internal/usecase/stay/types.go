package stay

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kosarinj/lilys-dogboarding-app/internal/pricing"
)

const dateLayout = "2006-01-02"

// Date is a calendar date without time zone, encoded as YYYY-MM-DD.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	// accept full timestamps from clients that send Date objects
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

const (
	StatusUpcoming  = "upcoming"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

type Stay struct {
	ID                   string             `json:"id"`
	DogID                string             `json:"dogId"`
	DogName              string             `json:"dogName"`
	DogSize              pricing.DogSize    `json:"dogSize"`
	CustomerID           string             `json:"customerId"`
	CustomerName         string             `json:"customerName"`
	CustomerPhone        *string            `json:"customerPhone,omitempty"`
	CheckInDate          Date               `json:"checkInDate"`
	CheckOutDate         Date               `json:"checkOutDate"`
	CheckInTime          *pricing.TimeOfDay `json:"checkInTime"`
	CheckOutTime         *pricing.TimeOfDay `json:"checkOutTime"`
	StayType             pricing.StayType   `json:"stayType"`
	RateType             pricing.RateType   `json:"rateType"`
	ManualDaysCount      *int               `json:"manualDaysCount,omitempty"`
	RequiresDropoff      bool               `json:"requiresDropoff"`
	RequiresPickup       bool               `json:"requiresPickup"`
	IsPuppy              bool               `json:"isPuppy"`
	Rover                bool               `json:"rover"`
	SpecialPrice         *decimal.Decimal   `json:"specialPrice,omitempty"`
	SpecialPriceComments *string            `json:"specialPriceComments,omitempty"`
	ExtraChargeComments  *string            `json:"extraChargeComments,omitempty"`
	Notes                *string            `json:"notes,omitempty"`
	pricing.Result
	Status    string    `json:"status"`
	Billed    bool      `json:"billed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Input is the body of a quote, create or full update.
type Input struct {
	DogID                string             `json:"dogId"`
	CheckInDate          Date               `json:"checkInDate"`
	CheckOutDate         Date               `json:"checkOutDate"`
	CheckInTime          *pricing.TimeOfDay `json:"checkInTime"`
	CheckOutTime         *pricing.TimeOfDay `json:"checkOutTime"`
	StayType             pricing.StayType   `json:"stayType"`
	RateType             pricing.RateType   `json:"rateType"`
	ManualDaysCount      *int               `json:"manualDaysCount"`
	RequiresDropoff      bool               `json:"requiresDropoff"`
	RequiresPickup       bool               `json:"requiresPickup"`
	IsPuppy              bool               `json:"isPuppy"`
	Rover                bool               `json:"rover"`
	SpecialPrice         *decimal.Decimal   `json:"specialPrice"`
	SpecialPriceComments *string            `json:"specialPriceComments"`
	ExtraCharge          *decimal.Decimal   `json:"extraCharge"`
	ExtraChargeComments  *string            `json:"extraChargeComments"`
	Notes                *string            `json:"notes"`
}

// UnmarshalJSON reads blank check-in and check-out times as unset.
func (in *Input) UnmarshalJSON(b []byte) error {
	type plain Input
	var aux struct {
		plain
		CheckInTime  *string `json:"checkInTime"`
		CheckOutTime *string `json:"checkOutTime"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	checkIn, err := pricing.ParseOptionalTimeOfDay(aux.CheckInTime)
	if err != nil {
		return err
	}
	checkOut, err := pricing.ParseOptionalTimeOfDay(aux.CheckOutTime)
	if err != nil {
		return err
	}
	*in = Input(aux.plain)
	in.CheckInTime = checkIn
	in.CheckOutTime = checkOut
	return nil
}

func (in Input) PricingRequest() pricing.StayRequest {
	req := pricing.StayRequest{
		CheckInDate:     in.CheckInDate.Time,
		CheckOutDate:    in.CheckOutDate.Time,
		CheckInTime:     in.CheckInTime,
		CheckOutTime:    in.CheckOutTime,
		StayType:        in.StayType,
		RateType:        in.RateType,
		SpecialPrice:    in.SpecialPrice,
		RequiresDropoff: in.RequiresDropoff,
		RequiresPickup:  in.RequiresPickup,
		IsPuppy:         in.IsPuppy,
		Rover:           in.Rover,
		ExtraCharge:     in.ExtraCharge,
	}
	// a manual count only means something for daycare
	if in.StayType == pricing.StayDaycare {
		req.ManualDaysCount = in.ManualDaysCount
	}
	return req
}

// Record is what gets persisted for a stay: the operator input plus the
// priced breakdown and the status at write time.
type Record struct {
	Input
	Result pricing.Result
	Status string
}

// DogRef is what the stay flow needs to know about the dog being booked.
type DogRef struct {
	ID      string
	Name    string
	Status  string
	Pricing pricing.Dog
}

type ListQuery struct {
	DogID      *string
	CustomerID *string
	Status     *string
	Today      Date
	Limit      int
	Offset     int
}

type UpdateStatusInput struct {
	Status string `json:"status"`
}
