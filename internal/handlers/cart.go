package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/cart"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/models"
)

type addCartItemRequest struct {
	ProductID    string             `json:"productId" binding:"required"`
	VariantColor string             `json:"variantColor" binding:"required"`
	Size         string             `json:"size" binding:"required"`
	Quantity     int                `json:"quantity" binding:"required"`
	Design       *models.DesignSpec `json:"design"`
}

func GetCart(aggregator *cart.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /cart"
		defer handlePanic(c, route)

		sessionID := sessionIDFromRequest(c)

		result, err := aggregator.GetOrCreate(c.Request.Context(), sessionID)
		if err != nil {
			log.Println("[CART] [ERROR] load failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func AddCartItem(aggregator *cart.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /cart/items"
		defer handlePanic(c, route)

		sessionID := sessionIDFromRequest(c)

		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		productID, err := primitive.ObjectIDFromHex(req.ProductID)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Ugyldig produkt-ID")
			return
		}

		result, err := aggregator.AddOrUpdateItem(c.Request.Context(), sessionID, cart.AddItemParams{
			ProductID:    productID,
			VariantColor: req.VariantColor,
			Size:         req.Size,
			Quantity:     req.Quantity,
			Design:       req.Design,
		})
		if err != nil {
			respondCartError(c, route, err)
			return
		}

		log.Printf("[CART] [INFO] item added session=%s items=%d", sessionID, len(result.Items))
		c.JSON(http.StatusOK, result)
	}
}

func RemoveCartItem(aggregator *cart.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart/items/:index"
		defer handlePanic(c, route)

		sessionID := sessionIDFromRequest(c)

		index, err := strconv.Atoi(c.Param("index"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Ugyldig vareindeks")
			return
		}

		result, err := aggregator.RemoveItem(c.Request.Context(), sessionID, index)
		if err != nil {
			respondCartError(c, route, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func ClearCart(aggregator *cart.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "DELETE /cart"
		defer handlePanic(c, route)

		sessionID := sessionIDFromRequest(c)

		if err := aggregator.Clear(c.Request.Context(), sessionID); err != nil {
			log.Println("[CART] [ERROR] clear failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Handlekurv tømt"})
	}
}

func respondCartError(c *gin.Context, route string, err error) {
	var productErr cart.ProductNotFoundError
	if errors.As(err, &productErr) {
		respondWithError(c, http.StatusNotFound, route, "Produkt ikke funnet")
		return
	}
	var invalidErr cart.InvalidItemError
	if errors.As(err, &invalidErr) {
		respondWithError(c, http.StatusBadRequest, route, invalidErr.Reason)
		return
	}
	var rangeErr cart.OutOfRangeError
	if errors.As(err, &rangeErr) {
		respondWithError(c, http.StatusBadRequest, route, "Ugyldig vareindeks")
		return
	}
	var notFoundErr cart.NotFoundError
	if errors.As(err, &notFoundErr) {
		respondWithError(c, http.StatusNotFound, route, "Handlekurv ikke funnet")
		return
	}

	log.Println("[CART] [ERROR] unexpected error:", err)
	respondWithError(c, http.StatusInternalServerError, route, "db error")
}
