package models

// ItemDetail describes one item being moved.
type ItemDetail struct {
	Name      string   `json:"name"`
	WeightKg  float64  `json:"weightKg,omitempty"`
	Fragile   bool     `json:"fragile,omitempty"`
	PhotoURLs []string `json:"photoUrls,omitempty"`
}

// Schedule captures when the pickup should happen.
type Schedule struct {
	Kind     string `json:"kind"` // "now" or "later"
	Date     string `json:"date,omitempty"`
	TimeSlot string `json:"timeSlot,omitempty"`
}

const (
	ScheduleNow   = "now"
	ScheduleLater = "later"
)

// FareBreakdown is a client-facing price preview. It is an estimate only;
// final settlement happens outside this service.
type FareBreakdown struct {
	BasePrice         int     `json:"basePrice"`
	DistancePrice     int     `json:"distancePrice"`
	HelperPrice       int     `json:"helperPrice"`
	InsurancePrice    int     `json:"insurancePrice"`
	TotalPrice        int     `json:"totalPrice"`
	HasInsurance      bool    `json:"hasInsurance"`
	EstimatedDistance float64 `json:"estimatedDistance"`
	EstimatedTime     string  `json:"estimatedTime,omitempty"`
}

// BookingDraft accumulates fields from each wizard step. It is owned
// exclusively by one booking session for the lifetime of one booking attempt
// and is discarded on completion or cancellation. Fields are additive-only
// during forward progress; going backward never clears collected fields, so
// resuming forward restores prior input.
type BookingDraft struct {
	Pickup        string         `json:"pickup,omitempty"`
	Dropoff       string         `json:"dropoff,omitempty"`
	Service       string         `json:"service,omitempty"`
	ItemDetails   []ItemDetail   `json:"itemDetails,omitempty"`
	HelperCount   int            `json:"helperCount"`
	Schedule      *Schedule      `json:"schedule,omitempty"`
	Fare          *FareBreakdown `json:"fare,omitempty"`
	PaymentMethod string         `json:"paymentMethod,omitempty"`
	BookingID     string         `json:"bookingId,omitempty"`
}
