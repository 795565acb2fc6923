package booking

import (
	"testing"

	"spedocity/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRefGenerator struct {
	ref string
}

func (g fixedRefGenerator) NewBookingRef() string { return g.ref }

func TestAdvanceWalksAllSteps(t *testing.T) {
	refs := fixedRefGenerator{ref: "SPD0000000001"}
	draft := models.BookingDraft{}

	payloads := []StepPayload{
		PickupPayload{Address: "12 MG Road"},
		DropoffPayload{Address: "4 Church Street"},
		ServicePayload{Service: "mini-truck"},
		ItemsPayload{Items: []models.ItemDetail{{Name: "sofa", WeightKg: 40}}},
		HelpersPayload{Count: 1},
		SchedulePayload{Schedule: models.Schedule{Kind: models.ScheduleNow}},
		FarePayload{Fare: models.FareBreakdown{TotalPrice: 349}},
		PaymentPayload{Method: "wallet"},
	}

	current := models.StepPickup
	for _, p := range payloads {
		next, completed, err := Advance(current, p, &draft, refs)
		require.NoError(t, err, "advancing from %s", current)
		require.False(t, completed)
		current = next
	}

	assert.Equal(t, models.StepConfirm, current)
	assert.Equal(t, "12 MG Road", draft.Pickup)
	assert.Equal(t, "4 Church Street", draft.Dropoff)
	assert.Equal(t, "mini-truck", draft.Service)
	assert.Len(t, draft.ItemDetails, 1)
	assert.Equal(t, 1, draft.HelperCount)
	assert.Equal(t, models.ScheduleNow, draft.Schedule.Kind)
	assert.Equal(t, 349, draft.Fare.TotalPrice)
	assert.Equal(t, "wallet", draft.PaymentMethod)
	assert.Equal(t, "SPD0000000001", draft.BookingID)

	_, completed, err := Advance(current, ConfirmPayload{}, &draft, refs)
	require.NoError(t, err)
	assert.True(t, completed)
}

func TestAdvanceRejectsMismatchedPayload(t *testing.T) {
	draft := models.BookingDraft{}
	_, _, err := Advance(models.StepPickup, ServicePayload{Service: "bike"}, &draft, fixedRefGenerator{})
	require.Error(t, err)
	var transition *TransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, models.StepPickup, transition.From)
}

func TestBookingIDGeneratedOnlyOnPaymentEdge(t *testing.T) {
	refs := fixedRefGenerator{ref: "SPD42"}

	draft := models.BookingDraft{}
	_, _, err := Advance(models.StepPickup, PickupPayload{Address: "a"}, &draft, refs)
	require.NoError(t, err)
	assert.Empty(t, draft.BookingID, "booking ID must not exist before the payment step")

	_, _, err = Advance(models.StepPayment, PaymentPayload{Method: "cod"}, &draft, refs)
	require.NoError(t, err)
	assert.Equal(t, "SPD42", draft.BookingID)
}

func TestBackNavigation(t *testing.T) {
	t.Run("back from dropoff returns to pickup", func(t *testing.T) {
		prev, cancelled, err := Back(models.StepDropoff)
		require.NoError(t, err)
		assert.False(t, cancelled)
		assert.Equal(t, models.StepPickup, prev)
	})

	t.Run("back from pickup cancels the flow", func(t *testing.T) {
		_, cancelled, err := Back(models.StepPickup)
		require.NoError(t, err)
		assert.True(t, cancelled)
	})

	t.Run("confirm has no back transition", func(t *testing.T) {
		_, _, err := Back(models.StepConfirm)
		require.Error(t, err)
		var transition *TransitionError
		assert.ErrorAs(t, err, &transition)
	})

	t.Run("backward table mirrors forward table", func(t *testing.T) {
		for from, to := range forwardTable {
			if to == models.StepConfirm {
				continue
			}
			prev, cancelled, err := Back(to)
			require.NoError(t, err)
			assert.False(t, cancelled)
			assert.Equal(t, from, prev)
		}
	})
}

func TestBackThenForwardPreservesDraft(t *testing.T) {
	refs := fixedRefGenerator{}
	draft := models.BookingDraft{}

	_, _, err := Advance(models.StepPickup, PickupPayload{Address: "old pickup"}, &draft, refs)
	require.NoError(t, err)
	_, _, err = Advance(models.StepDropoff, DropoffPayload{Address: "dropoff"}, &draft, refs)
	require.NoError(t, err)

	// Wind back twice and re-complete pickup with a new value. Dropoff must
	// survive the detour untouched.
	prev, _, err := Back(models.StepService)
	require.NoError(t, err)
	assert.Equal(t, models.StepDropoff, prev)
	prev, _, err = Back(prev)
	require.NoError(t, err)
	assert.Equal(t, models.StepPickup, prev)
	assert.Equal(t, "dropoff", draft.Dropoff)

	_, _, err = Advance(models.StepPickup, PickupPayload{Address: "new pickup"}, &draft, refs)
	require.NoError(t, err)
	assert.Equal(t, "new pickup", draft.Pickup)
	assert.Equal(t, "dropoff", draft.Dropoff)
}
