package models

import "fmt"

// Step is one named stage of the booking wizard. The set is closed; every
// step except the two ends has a statically known predecessor and successor.
type Step string

const (
	StepPickup   Step = "pickup"
	StepDropoff  Step = "dropoff"
	StepService  Step = "service"
	StepItems    Step = "items"
	StepHelpers  Step = "helpers"
	StepSchedule Step = "schedule"
	StepFare     Step = "fare"
	StepPayment  Step = "payment"
	StepConfirm  Step = "confirm"
)

// Steps lists all wizard steps in forward order.
var Steps = []Step{
	StepPickup, StepDropoff, StepService, StepItems, StepHelpers,
	StepSchedule, StepFare, StepPayment, StepConfirm,
}

// ParseStep converts a wire value into a Step.
func ParseStep(s string) (Step, error) {
	for _, st := range Steps {
		if string(st) == s {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown booking step %q", s)
}
