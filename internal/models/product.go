package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductVariant is one color variant of a garment with its available sizes.
type ProductVariant struct {
	Color    string         `bson:"color" json:"color"`
	ColorHex string         `bson:"colorHex" json:"colorHex"`
	Sizes    []string       `bson:"sizes" json:"sizes"`
	Images   []string       `bson:"images" json:"images"`
	Stock    map[string]int `bson:"stock,omitempty" json:"stock,omitempty"`
}

// PrintArea describes a decoratable zone on a garment. The x/y/width/height
// values are editor coordinates (percent of the garment image); the cm limits
// bound the physical design size.
type PrintArea struct {
	Name        string  `bson:"name" json:"name"`
	NameNo      string  `bson:"nameNo" json:"nameNo"`
	X           float64 `bson:"x" json:"x"`
	Y           float64 `bson:"y" json:"y"`
	Width       float64 `bson:"width" json:"width"`
	Height      float64 `bson:"height" json:"height"`
	MaxWidthCM  float64 `bson:"maxWidthCm" json:"maxWidthCm"`
	MaxHeightCM float64 `bson:"maxHeightCm" json:"maxHeightCm"`
}

type Product struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Slug         string             `bson:"slug" json:"slug"`
	Description  string             `bson:"description" json:"description"`
	Category     string             `bson:"category" json:"category"`
	Brand        string             `bson:"brand,omitempty" json:"brand,omitempty"`
	BasePrice    float64            `bson:"basePrice" json:"basePrice"`
	Variants     []ProductVariant   `bson:"variants" json:"variants"`
	PrintMethods []string           `bson:"printMethods" json:"printMethods"`
	PrintAreas   []PrintArea        `bson:"printAreas" json:"printAreas"`
	Materials    []string           `bson:"materials" json:"materials"`
	Fit          string             `bson:"fit" json:"fit"`
	DeliveryDays int                `bson:"deliveryDays" json:"deliveryDays"`
	BestFor      []string           `bson:"bestFor" json:"bestFor"`
	MinQuantity  int                `bson:"minQuantity" json:"minQuantity"`
	Featured     bool               `bson:"featured" json:"featured"`
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// HasPrintArea reports whether the product offers the named placement.
func (p Product) HasPrintArea(name string) bool {
	for _, area := range p.PrintAreas {
		if area.Name == name {
			return true
		}
	}
	return false
}
