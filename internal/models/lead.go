package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuoteRequest is a B2B lead from the quote form.
type QuoteRequest struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CompanyName       string             `bson:"companyName" json:"companyName"`
	ContactName       string             `bson:"contactName" json:"contactName"`
	Email             string             `bson:"email" json:"email"`
	Phone             string             `bson:"phone" json:"phone"`
	ProductTypes      []string           `bson:"productTypes" json:"productTypes"`
	EstimatedQuantity string             `bson:"estimatedQuantity" json:"estimatedQuantity"`
	Message           string             `bson:"message" json:"message"`
	LogoURL           string             `bson:"logoUrl,omitempty" json:"logoUrl,omitempty"`
	Status            string             `bson:"status" json:"status"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}

// ContactMessage is a plain contact-form submission.
type ContactMessage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject   string             `bson:"subject" json:"subject"`
	Message   string             `bson:"message" json:"message"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
