package booking

import (
	"fmt"
	"math"

	"spedocity/models"
)

// HelperRate is the flat price per requested helper.
const HelperRate = 50

// insuranceRate is applied to base + distance when insurance is requested.
const insuranceRate = 0.05

// serviceCatalog lists the bookable vehicle classes with their pricing rates.
var serviceCatalog = []models.ServiceType{
	{Key: "bike", Name: "Bike", BasePrice: 49, PerKmRate: 6, MaxWeightKg: 20},
	{Key: "mini-truck", Name: "Mini Truck", BasePrice: 199, PerKmRate: 8, MaxWeightKg: 750},
	{Key: "tempo", Name: "Tempo", BasePrice: 299, PerKmRate: 11, MaxWeightKg: 1500},
	{Key: "large-truck", Name: "Large Truck", BasePrice: 499, PerKmRate: 15, MaxWeightKg: 4000},
}

// Services returns the bookable service catalog.
func Services() []models.ServiceType {
	out := make([]models.ServiceType, len(serviceCatalog))
	copy(out, serviceCatalog)
	return out
}

// ServiceByKey looks up a catalog entry by its key.
func ServiceByKey(key string) (models.ServiceType, bool) {
	for _, s := range serviceCatalog {
		if s.Key == key {
			return s, true
		}
	}
	return models.ServiceType{}, false
}

// FareRequest carries the inputs to a fare quote.
type FareRequest struct {
	ServiceType         string
	EstimatedDistanceKm float64
	HelperCount         int
	Insurance           bool
	EstimatedTime       string
}

// roundHalfUp rounds to the nearest whole unit, halves away from zero.
func roundHalfUp(v float64) int {
	return int(math.Round(v))
}

// QuoteFare computes a deterministic fare estimate for the given inputs.
// The result is advisory only: it is a price preview for the client, and
// final pricing is settled by the order backend, not this function.
func QuoteFare(req FareRequest) (models.FareBreakdown, error) {
	svc, ok := ServiceByKey(req.ServiceType)
	if !ok {
		return models.FareBreakdown{}, fmt.Errorf("unknown service type %q", req.ServiceType)
	}
	if req.EstimatedDistanceKm < 0 {
		return models.FareBreakdown{}, fmt.Errorf("distance must not be negative")
	}
	if req.HelperCount < 0 {
		return models.FareBreakdown{}, fmt.Errorf("helper count must not be negative")
	}

	base := svc.BasePrice
	distance := roundHalfUp(req.EstimatedDistanceKm * svc.PerKmRate)
	helpers := req.HelperCount * HelperRate
	insurance := 0
	if req.Insurance {
		insurance = roundHalfUp(insuranceRate * float64(base+distance))
	}

	return models.FareBreakdown{
		BasePrice:         base,
		DistancePrice:     distance,
		HelperPrice:       helpers,
		InsurancePrice:    insurance,
		TotalPrice:        base + distance + helpers + insurance,
		HasInsurance:      req.Insurance,
		EstimatedDistance: req.EstimatedDistanceKm,
		EstimatedTime:     req.EstimatedTime,
	}, nil
}
