package booking

import (
	"spedocity/models"
)

// The wizard transition tables. Both are fixed: no step may be skipped except
// the documented pickup/dropoff pre-seed at session start.
var forwardTable = map[models.Step]models.Step{
	models.StepPickup:   models.StepDropoff,
	models.StepDropoff:  models.StepService,
	models.StepService:  models.StepItems,
	models.StepItems:    models.StepHelpers,
	models.StepHelpers:  models.StepSchedule,
	models.StepSchedule: models.StepFare,
	models.StepFare:     models.StepPayment,
	models.StepPayment:  models.StepConfirm,
}

var backwardTable = map[models.Step]models.Step{
	models.StepDropoff:  models.StepPickup,
	models.StepService:  models.StepDropoff,
	models.StepItems:    models.StepService,
	models.StepHelpers:  models.StepItems,
	models.StepSchedule: models.StepHelpers,
	models.StepFare:     models.StepSchedule,
	models.StepPayment:  models.StepFare,
}

// Advance applies a step-completion payload to the draft and returns the next
// step. It is a pure function of its inputs: the payload is merged through its
// reducer and the transition is read from the forward table. On the
// payment→confirm edge (and only there) a booking reference is generated and
// merged into the draft. Completing confirm returns completed=true with no
// further step.
//
// Advance performs no field validation; screens validate their slice of input
// before emitting a step-completed event.
func Advance(current models.Step, payload StepPayload, draft *models.BookingDraft, refs ReferenceGenerator) (next models.Step, completed bool, err error) {
	if payload.Step() != current {
		return "", false, &TransitionError{From: current, Event: "complete:" + string(payload.Step())}
	}

	if current == models.StepConfirm {
		return "", true, nil
	}

	next, ok := forwardTable[current]
	if !ok {
		return "", false, &TransitionError{From: current, Event: "complete"}
	}

	payload.apply(draft)
	if current == models.StepPayment {
		draft.BookingID = refs.NewBookingRef()
	}
	return next, false, nil
}

// Back returns the previous step for a back-navigation request. The draft is
// never touched: back navigation does not discard collected fields. A back
// request from the first step cancels the whole flow (cancelled=true); the
// confirmation step has no back transition.
func Back(current models.Step) (prev models.Step, cancelled bool, err error) {
	if current == models.StepPickup {
		return "", true, nil
	}
	prev, ok := backwardTable[current]
	if !ok {
		return "", false, &TransitionError{From: current, Event: "back"}
	}
	return prev, false, nil
}
