package booking

import (
	"fmt"
	"math/rand"
	"time"
)

// ReferenceGenerator produces client-facing booking reference tokens. It is
// an injectable capability so tests can supply deterministic values.
type ReferenceGenerator interface {
	NewBookingRef() string
}

// bookingRefPrefix is the fixed alphabetic prefix of generated references.
const bookingRefPrefix = "SPD"

type clockRefGenerator struct{}

// NewReferenceGenerator returns the default wall-clock-based generator.
// References are practically unique within a deployment but carry no global
// uniqueness guarantee; they are display tokens, and the order document ID
// remains the authoritative identifier.
func NewReferenceGenerator() ReferenceGenerator {
	return clockRefGenerator{}
}

func (clockRefGenerator) NewBookingRef() string {
	return fmt.Sprintf("%s%d%04d", bookingRefPrefix, time.Now().UnixMilli(), rand.Intn(10000))
}
