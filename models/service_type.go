package models

// ServiceType is one bookable vehicle/service class with its pricing rates.
// Prices are whole currency units.
type ServiceType struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	BasePrice   int     `json:"basePrice"`
	PerKmRate   float64 `json:"perKmRate"`
	MaxWeightKg float64 `json:"maxWeightKg,omitempty"`
}
