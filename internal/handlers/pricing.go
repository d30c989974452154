package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/models"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/pricing"
)

type calculatePricingRequest struct {
	PrintMethod string   `json:"printMethod" binding:"required"`
	WidthCM     float64  `json:"widthCm" binding:"required"`
	HeightCM    float64  `json:"heightCm" binding:"required"`
	Colors      []string `json:"colors"`
	Complexity  string   `json:"complexity"`
	Quantity    int      `json:"quantity" binding:"required"`
	BasePrice   float64  `json:"basePrice"`
}

// PricingInfo publishes the rate card the design editor shows customers.
func PricingInfo() gin.HandlerFunc {
	return func(c *gin.Context) {
		bands := make([]gin.H, 0, len(pricing.QuantityBands))
		for _, band := range pricing.QuantityBands {
			bands = append(bands, gin.H{
				"minQuantity": band.MinQuantity,
				"multiplier":  band.Multiplier,
			})
		}

		c.JSON(http.StatusOK, gin.H{
			"currency": pricing.Currency,
			"vatRate":  pricing.VATRate,
			"print": gin.H{
				"ratePerCm2": pricing.PrintRatePerCM2,
				"setupCost":  pricing.PrintSetupCost,
			},
			"embroidery": gin.H{
				"ratePerCm2":            pricing.EmbroideryRatePerCM2,
				"setupCost":             pricing.EmbroiderySetupCost,
				"complexityMultipliers": pricing.ComplexityMultipliers,
			},
			"quantityBands": bands,
			"shipping": gin.H{
				"fee":           pricing.ShippingFee,
				"freeThreshold": pricing.FreeShippingThreshold,
			},
		})
	}
}

// CalculatePricing prices a design without touching any cart. The editor
// calls this on every slider change.
func CalculatePricing() gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /pricing/calculate"
		defer handlePanic(c, route)

		var req calculatePricingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		design := models.DesignSpec{
			PrintMethod: req.PrintMethod,
			WidthCM:     req.WidthCM,
			HeightCM:    req.HeightCM,
			Colors:      req.Colors,
			Complexity:  req.Complexity,
		}
		if err := pricing.ValidateDesign(design); err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		unitDesignPrice := pricing.DesignUnitPrice(design, req.Quantity)
		unitTotal := pricing.Round2(req.BasePrice + unitDesignPrice)
		lineTotal := pricing.Round2(float64(req.Quantity) * unitTotal)

		c.JSON(http.StatusOK, gin.H{
			"unitDesignPrice":    unitDesignPrice,
			"unitTotal":          unitTotal,
			"lineTotal":          lineTotal,
			"quantityMultiplier": pricing.QuantityMultiplier(req.Quantity),
			"currency":           pricing.Currency,
		})
	}
}
