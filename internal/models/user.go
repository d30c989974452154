package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a storefront account. Business customers carry company
// details and may be assigned a discount tier by sales.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Name         string             `bson:"name" json:"name"`
	CompanyName  string             `bson:"companyName,omitempty" json:"companyName,omitempty"`
	OrgNumber    string             `bson:"orgNumber,omitempty" json:"orgNumber,omitempty"`
	IsBusiness   bool               `bson:"isBusiness" json:"isBusiness"`
	IsAdmin      bool               `bson:"isAdmin" json:"-"`
	DiscountTier int                `bson:"discountTier" json:"discountTier"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
