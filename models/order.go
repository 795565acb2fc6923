package models

import "time"

// OrderStatus is the delivery lifecycle of a confirmed booking.
type OrderStatus string

const (
	OrderCreated        OrderStatus = "created"
	OrderDriverAssigned OrderStatus = "driver_assigned"
	OrderPickedUp       OrderStatus = "picked_up"
	OrderInTransit      OrderStatus = "in_transit"
	OrderDelivered      OrderStatus = "delivered"
	OrderCancelled      OrderStatus = "cancelled"
)

// Order is the durable record created when a booking session completes its
// confirm step. BookingRef is the client-facing display token generated at
// the payment→confirm edge; ID is the authoritative identifier.
type Order struct {
	ID            string         `bson:"id" json:"id"`
	BookingRef    string         `bson:"bookingRef" json:"bookingRef"`
	UserID        string         `bson:"userId" json:"userId"`
	Pickup        string         `bson:"pickup" json:"pickup"`
	Dropoff       string         `bson:"dropoff" json:"dropoff"`
	Service       string         `bson:"service" json:"service"`
	ItemDetails   []ItemDetail   `bson:"itemDetails,omitempty" json:"itemDetails,omitempty"`
	HelperCount   int            `bson:"helperCount" json:"helperCount"`
	Schedule      *Schedule      `bson:"schedule,omitempty" json:"schedule,omitempty"`
	TotalAmount   int            `bson:"totalAmount" json:"totalAmount"`
	Fare          *FareBreakdown `bson:"fare,omitempty" json:"fare,omitempty"`
	PaymentMethod string         `bson:"paymentMethod" json:"paymentMethod"`
	Status        OrderStatus    `bson:"status" json:"status"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`
}
