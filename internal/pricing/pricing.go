// Package pricing computes design prices for custom print and embroidery
// work. All prices are NOK ex VAT. Arithmetic runs on decimals and results
// are rounded half-up to the nearest øre.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/models"
)

// Rates for the area/complexity pricing model.
const (
	PrintRatePerCM2      = 1.2
	PrintSetupCost       = 150.0
	EmbroideryRatePerCM2 = 2.5
	EmbroiderySetupCost  = 200.0

	ShippingFee           = 99.0
	FreeShippingThreshold = 2000.0

	Currency = "NOK"
	VATRate  = 0.25
)

// ComplexityMultipliers apply to embroidery only; stitch density drives the
// machine time.
var ComplexityMultipliers = map[string]float64{
	models.ComplexitySimple:   0.8,
	models.ComplexityNormal:   1.0,
	models.ComplexityDetailed: 1.5,
}

type quantityBand struct {
	MinQuantity int
	Multiplier  float64
}

// QuantityBands are checked highest first; the first match wins.
var QuantityBands = []quantityBand{
	{MinQuantity: 100, Multiplier: 0.6},
	{MinQuantity: 50, Multiplier: 0.7},
	{MinQuantity: 25, Multiplier: 0.8},
	{MinQuantity: 10, Multiplier: 0.9},
}

// DesignUnitPrice returns the per-unit price of one design at the given
// order quantity. Setup cost is amortized across the quantity and the band
// discount applies to the whole unit price.
//
// The design must already be validated; quantity <= 0 only degrades the
// setup amortization to a single unit, it never divides by zero.
func DesignUnitPrice(design models.DesignSpec, quantity int) float64 {
	area := decimal.NewFromFloat(design.WidthCM).Mul(decimal.NewFromFloat(design.HeightCM))

	var base, setup decimal.Decimal
	if design.PrintMethod == models.MethodEmbroidery {
		base = area.
			Mul(decimal.NewFromFloat(EmbroideryRatePerCM2)).
			Mul(decimal.NewFromFloat(complexityMultiplier(design.Complexity)))
		setup = decimal.NewFromFloat(EmbroiderySetupCost)
	} else {
		colorCount := len(design.Colors)
		if colorCount < 1 {
			colorCount = 1
		}
		base = area.
			Mul(decimal.NewFromFloat(PrintRatePerCM2)).
			Mul(decimal.NewFromInt(int64(colorCount)))
		setup = decimal.NewFromFloat(PrintSetupCost)
	}

	setupQuantity := quantity
	if setupQuantity <= 0 {
		setupQuantity = 1
	}
	amortized := setup.Div(decimal.NewFromInt(int64(setupQuantity)))

	unit := base.Add(amortized).Mul(decimal.NewFromFloat(QuantityMultiplier(quantity)))
	price, _ := unit.Round(2).Float64()
	return price
}

// QuantityMultiplier returns the discount factor for the given quantity.
func QuantityMultiplier(quantity int) float64 {
	for _, band := range QuantityBands {
		if quantity >= band.MinQuantity {
			return band.Multiplier
		}
	}
	return 1.0
}

// ShippingFor returns the shipping cost for a goods total (subtotal plus
// design total). Shipping is free at or above the threshold.
func ShippingFor(goodsTotal float64) float64 {
	if goodsTotal >= FreeShippingThreshold {
		return 0
	}
	return ShippingFee
}

// Round2 rounds a NOK amount half-up to two decimals.
func Round2(amount float64) float64 {
	rounded, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return rounded
}

func complexityMultiplier(complexity string) float64 {
	if complexity == "" {
		return ComplexityMultipliers[models.ComplexityNormal]
	}
	return ComplexityMultipliers[complexity]
}

// ValidateDesign checks the enum and dimension fields of a design before it
// is priced. Placement-area membership is checked against the product by the
// cart aggregator.
func ValidateDesign(design models.DesignSpec) error {
	if design.PrintMethod != models.MethodPrint && design.PrintMethod != models.MethodEmbroidery {
		return fmt.Errorf("unknown print method: %q", design.PrintMethod)
	}
	if design.Complexity != "" {
		if _, ok := ComplexityMultipliers[design.Complexity]; !ok {
			return fmt.Errorf("unknown complexity: %q", design.Complexity)
		}
	}
	if design.WidthCM <= 0 || design.HeightCM <= 0 {
		return fmt.Errorf("design dimensions must be positive, got %.1fx%.1f cm", design.WidthCM, design.HeightCM)
	}
	return nil
}
