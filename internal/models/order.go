package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values. Fulfilled and cancelled are terminal; nothing moves
// backward out of processing.
const (
	OrderStatusPending         = "pending"
	OrderStatusAwaitingPayment = "awaiting_payment"
	OrderStatusProcessing      = "processing"
	OrderStatusFulfilled       = "fulfilled"
	OrderStatusCancelled       = "cancelled"
)

// Payment status values carried alongside the order status.
const (
	PaymentStatusPending         = "pending"
	PaymentStatusAwaitingInvoice = "awaiting_invoice"
	PaymentStatusPaid            = "paid"
)

// Payment method identifiers accepted at checkout.
const (
	PaymentMethodStripe  = "stripe"
	PaymentMethodVipps   = "vipps"
	PaymentMethodInvoice = "invoice"
)

// ShippingAddress captures the delivery details for an order.
type ShippingAddress struct {
	Name       string `bson:"name" json:"name"`
	Company    string `bson:"company,omitempty" json:"company,omitempty"`
	Street     string `bson:"street" json:"street"`
	City       string `bson:"city" json:"city"`
	PostalCode string `bson:"postalCode" json:"postalCode"`
	Country    string `bson:"country" json:"country"`
	Phone      string `bson:"phone" json:"phone"`
	Email      string `bson:"email" json:"email"`
}

// Order is an immutable snapshot of a cart at checkout time. It owns copies
// of the cart's items and totals; later cart mutations never touch it.
type Order struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OrderNumber     string              `bson:"orderNumber" json:"orderNumber"`
	UserID          *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	Items           []CartItem          `bson:"items" json:"items"`
	ShippingAddress ShippingAddress     `bson:"shippingAddress" json:"shippingAddress"`
	PaymentMethod   string              `bson:"paymentMethod" json:"paymentMethod"`
	PaymentStatus   string              `bson:"paymentStatus" json:"paymentStatus"`
	StripeSessionID string              `bson:"stripeSessionId,omitempty" json:"stripeSessionId,omitempty"`
	VippsReference  string              `bson:"vippsReference,omitempty" json:"vippsReference,omitempty"`
	Subtotal        float64             `bson:"subtotal" json:"subtotal"`
	DesignTotal     float64             `bson:"designTotal" json:"designTotal"`
	ShippingCost    float64             `bson:"shippingCost" json:"shippingCost"`
	Discount        float64             `bson:"discount" json:"discount"`
	Total           float64             `bson:"total" json:"total"`
	Status          string              `bson:"status" json:"status"`
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
}
