package booking

import (
	"encoding/json"
	"fmt"
	"strings"

	"spedocity/models"
)

// StepPayload is the tagged union of per-step completion payloads. Each
// variant carries exactly the fields its step contributes to the draft and
// merges them through its own reducer. The apply method is unexported so the
// set of variants is closed.
type StepPayload interface {
	Step() models.Step
	apply(d *models.BookingDraft)
}

// PickupPayload sets the pickup address.
type PickupPayload struct {
	Address string `json:"address"`
}

func (p PickupPayload) Step() models.Step            { return models.StepPickup }
func (p PickupPayload) apply(d *models.BookingDraft) { d.Pickup = p.Address }

// DropoffPayload sets the dropoff address.
type DropoffPayload struct {
	Address string `json:"address"`
}

func (p DropoffPayload) Step() models.Step            { return models.StepDropoff }
func (p DropoffPayload) apply(d *models.BookingDraft) { d.Dropoff = p.Address }

// ServicePayload selects the vehicle/service type.
type ServicePayload struct {
	Service string `json:"service"`
}

func (p ServicePayload) Step() models.Step            { return models.StepService }
func (p ServicePayload) apply(d *models.BookingDraft) { d.Service = p.Service }

// ItemsPayload records the items being moved.
type ItemsPayload struct {
	Items []models.ItemDetail `json:"items"`
}

func (p ItemsPayload) Step() models.Step            { return models.StepItems }
func (p ItemsPayload) apply(d *models.BookingDraft) { d.ItemDetails = p.Items }

// HelpersPayload sets how many helpers are requested.
type HelpersPayload struct {
	Count int `json:"count"`
}

func (p HelpersPayload) Step() models.Step            { return models.StepHelpers }
func (p HelpersPayload) apply(d *models.BookingDraft) { d.HelperCount = p.Count }

// SchedulePayload sets when the pickup happens.
type SchedulePayload struct {
	Schedule models.Schedule `json:"schedule"`
}

func (p SchedulePayload) Step() models.Step { return models.StepSchedule }
func (p SchedulePayload) apply(d *models.BookingDraft) {
	s := p.Schedule
	d.Schedule = &s
}

// FarePayload records the accepted fare estimate.
type FarePayload struct {
	Fare models.FareBreakdown `json:"fare"`
}

func (p FarePayload) Step() models.Step { return models.StepFare }
func (p FarePayload) apply(d *models.BookingDraft) {
	f := p.Fare
	d.Fare = &f
}

// PaymentPayload selects the payment method.
type PaymentPayload struct {
	Method string `json:"method"`
}

func (p PaymentPayload) Step() models.Step            { return models.StepPayment }
func (p PaymentPayload) apply(d *models.BookingDraft) { d.PaymentMethod = p.Method }

// ConfirmPayload completes the confirmation step. It contributes no fields.
type ConfirmPayload struct{}

func (p ConfirmPayload) Step() models.Step            { return models.StepConfirm }
func (p ConfirmPayload) apply(d *models.BookingDraft) {}

// fareInput is the wire form of a fare-step completion: the client sends the
// estimate inputs and the server computes the breakdown, so a client cannot
// submit an arbitrary price.
type fareInput struct {
	EstimatedDistanceKm float64 `json:"estimatedDistanceKm"`
	Insurance           bool    `json:"insurance"`
	EstimatedTime       string  `json:"estimatedTime"`
}

// DecodePayload turns a raw step-completion body into the typed payload for
// the given step, validating the fields the step contributes. The draft
// supplies context already collected by earlier steps (service type and
// helper count for fare quoting).
func DecodePayload(step models.Step, draft models.BookingDraft, raw json.RawMessage) (StepPayload, error) {
	switch step {
	case models.StepPickup:
		var p PickupPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("invalid pickup payload: %w", err)
		}
		if strings.TrimSpace(p.Address) == "" {
			return nil, fmt.Errorf("pickup address must not be empty")
		}
		return p, nil

	case models.StepDropoff:
		var p DropoffPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("invalid dropoff payload: %w", err)
		}
		if strings.TrimSpace(p.Address) == "" {
			return nil, fmt.Errorf("dropoff address must not be empty")
		}
		return p, nil

	case models.StepService:
		var p ServicePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("invalid service payload: %w", err)
		}
		if _, ok := ServiceByKey(p.Service); !ok {
			return nil, fmt.Errorf("unknown service type %q", p.Service)
		}
		return p, nil

	case models.StepItems:
		var p ItemsPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("invalid items payload: %w", err)
		}
		return p, nil

	case models.StepHelpers:
		var p HelpersPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("invalid helpers payload: %w", err)
		}
		if p.Count < 0 {
			return nil, fmt.Errorf("helper count must not be negative")
		}
		return p, nil

	case models.StepSchedule:
		var p SchedulePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("invalid schedule payload: %w", err)
		}
		if p.Schedule.Kind != models.ScheduleNow && p.Schedule.Kind != models.ScheduleLater {
			return nil, fmt.Errorf("schedule kind must be %q or %q", models.ScheduleNow, models.ScheduleLater)
		}
		if p.Schedule.Kind == models.ScheduleLater && (p.Schedule.Date == "" || p.Schedule.TimeSlot == "") {
			return nil, fmt.Errorf("scheduled bookings require a date and time slot")
		}
		return p, nil

	case models.StepFare:
		var in fareInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return nil, fmt.Errorf("invalid fare payload: %w", err)
		}
		fare, err := QuoteFare(FareRequest{
			ServiceType:         draft.Service,
			EstimatedDistanceKm: in.EstimatedDistanceKm,
			HelperCount:         draft.HelperCount,
			Insurance:           in.Insurance,
			EstimatedTime:       in.EstimatedTime,
		})
		if err != nil {
			return nil, err
		}
		return FarePayload{Fare: fare}, nil

	case models.StepPayment:
		var p PaymentPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("invalid payment payload: %w", err)
		}
		if strings.TrimSpace(p.Method) == "" {
			return nil, fmt.Errorf("payment method must not be empty")
		}
		return p, nil

	case models.StepConfirm:
		return ConfirmPayload{}, nil
	}

	return nil, fmt.Errorf("unknown booking step %q", step)
}
