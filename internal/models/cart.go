package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Print methods and complexity tiers accepted on a DesignSpec.
const (
	MethodPrint      = "print"
	MethodEmbroidery = "embroidery"

	ComplexitySimple   = "simple"
	ComplexityNormal   = "normal"
	ComplexityDetailed = "detailed"
)

// DesignSpec is one customer decoration applied to one cart line. It is
// immutable once priced; editing a design means re-adding the line.
type DesignSpec struct {
	LogoURL     string   `bson:"logoUrl" json:"logoUrl"`
	LogoPreview string   `bson:"logoPreview,omitempty" json:"logoPreview,omitempty"`
	PositionX   float64  `bson:"positionX" json:"positionX"`
	PositionY   float64  `bson:"positionY" json:"positionY"`
	Scale       float64  `bson:"scale" json:"scale"`
	Rotation    float64  `bson:"rotation" json:"rotation"`
	View        string   `bson:"view" json:"view"`
	PrintArea   string   `bson:"printArea" json:"printArea"`
	PrintMethod string   `bson:"printMethod" json:"printMethod"`
	WidthCM     float64  `bson:"widthCm" json:"widthCm"`
	HeightCM    float64  `bson:"heightCm" json:"heightCm"`
	Colors      []string `bson:"colors" json:"colors"`
	Complexity  string   `bson:"complexity" json:"complexity"`
	Warnings    []string `bson:"warnings,omitempty" json:"warnings,omitempty"`
}

// CartItem snapshots the product price at add-time; catalog price changes do
// not reach existing cart lines.
type CartItem struct {
	ProductID    primitive.ObjectID `bson:"productId" json:"productId"`
	ProductName  string             `bson:"productName" json:"productName"`
	VariantColor string             `bson:"variantColor" json:"variantColor"`
	Size         string             `bson:"size" json:"size"`
	Quantity     int                `bson:"quantity" json:"quantity"`
	BasePrice    float64            `bson:"basePrice" json:"basePrice"`
	Design       *DesignSpec        `bson:"design,omitempty" json:"design,omitempty"`
	DesignPrice  float64            `bson:"designPrice" json:"designPrice"`
	TotalPrice   float64            `bson:"totalPrice" json:"totalPrice"`
}

// SameLine reports whether another add targets this line. Lines are keyed by
// product, variant color and size; a matching add replaces the line.
func (i CartItem) SameLine(productID primitive.ObjectID, variantColor, size string) bool {
	return i.ProductID == productID && i.VariantColor == variantColor && i.Size == size
}

// Cart is keyed by an opaque session id so guests can shop without an
// account. The aggregate fields are always derived from Items, never edited
// on their own.
type Cart struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID      *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	SessionID   string              `bson:"sessionId" json:"sessionId"`
	Items       []CartItem          `bson:"items" json:"items"`
	Subtotal    float64             `bson:"subtotal" json:"subtotal"`
	DesignTotal float64             `bson:"designTotal" json:"designTotal"`
	Shipping    float64             `bson:"shipping" json:"shipping"`
	Total       float64             `bson:"total" json:"total"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}
