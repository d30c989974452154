package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentTransaction records one attempt against an external payment
// provider. Amount is in NOK; providers that bill in minor units convert at
// the call site.
type PaymentTransaction struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TransactionID  string             `bson:"transactionId" json:"transactionId"`
	OrderID        primitive.ObjectID `bson:"orderId" json:"orderId"`
	Provider       string             `bson:"provider" json:"provider"`
	SessionID      string             `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	Reference      string             `bson:"reference,omitempty" json:"reference,omitempty"`
	Amount         float64            `bson:"amount" json:"amount"`
	Currency       string             `bson:"currency" json:"currency"`
	PaymentStatus  string             `bson:"paymentStatus" json:"paymentStatus"`
	CapturedAmount int64              `bson:"capturedAmount,omitempty" json:"capturedAmount,omitempty"`
	Metadata       map[string]string  `bson:"metadata,omitempty" json:"metadata,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// Logo is an uploaded customer logo stored as base64 in Mongo.
type Logo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Filename    string             `bson:"filename" json:"filename"`
	ContentType string             `bson:"contentType" json:"contentType"`
	Size        int64              `bson:"size" json:"size"`
	Data        string             `bson:"data" json:"-"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
