package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/models"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/orders"
)

type shippingAddressRequest struct {
	Name       string `json:"name" binding:"required"`
	Company    string `json:"company"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postalCode" binding:"required"`
	Country    string `json:"country"`
	Phone      string `json:"phone" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
}

type createOrderRequest struct {
	ShippingAddress shippingAddressRequest `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"required"`
	Notes           string                 `json:"notes"`
	SuccessURL      string                 `json:"successUrl"`
	CancelURL       string                 `json:"cancelUrl"`
}

func CreateOrder(assembler *orders.Assembler) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /orders"
		defer handlePanic(c, route)

		sessionID := sessionIDFromRequest(c)

		var req createOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		country := strings.TrimSpace(req.ShippingAddress.Country)
		if country == "" {
			country = "Norge"
		}

		var userID *primitive.ObjectID
		if value, ok := c.Get("userId"); ok {
			if id, ok := value.(primitive.ObjectID); ok {
				userID = &id
			}
		}

		result, err := assembler.Create(c.Request.Context(), orders.CreateParams{
			CartSessionID: sessionID,
			UserID:        userID,
			ShippingAddress: models.ShippingAddress{
				Name:       strings.TrimSpace(req.ShippingAddress.Name),
				Company:    strings.TrimSpace(req.ShippingAddress.Company),
				Street:     strings.TrimSpace(req.ShippingAddress.Street),
				City:       strings.TrimSpace(req.ShippingAddress.City),
				PostalCode: strings.TrimSpace(req.ShippingAddress.PostalCode),
				Country:    country,
				Phone:      strings.TrimSpace(req.ShippingAddress.Phone),
				Email:      strings.ToLower(strings.TrimSpace(req.ShippingAddress.Email)),
			},
			PaymentMethod: req.PaymentMethod,
			Notes:         req.Notes,
			SuccessURL:    req.SuccessURL,
			CancelURL:     req.CancelURL,
		})
		if err != nil {
			var emptyErr orders.EmptyCartError
			if errors.As(err, &emptyErr) {
				respondWithError(c, http.StatusBadRequest, route, "Handlekurven er tom")
				return
			}
			var methodErr orders.UnsupportedPaymentMethodError
			if errors.As(err, &methodErr) {
				respondWithError(c, http.StatusBadRequest, route, "Ugyldig betalingsmetode")
				return
			}
			log.Println("[ORDER] [ERROR] create failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "Kunne ikke opprette ordre")
			return
		}

		log.Println("[ORDER] [INFO] order created:", result.Order.OrderNumber)

		response := gin.H{"order": result.Order}
		if result.CheckoutURL != "" {
			response["checkoutUrl"] = result.CheckoutURL
		}
		c.JSON(http.StatusCreated, response)
	}
}

func GetOrder(store orders.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/:id"
		defer handlePanic(c, route)

		order, err := store.FindByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			var notFoundErr orders.NotFoundError
			if errors.As(err, &notFoundErr) {
				respondWithError(c, http.StatusNotFound, route, "Ordre ikke funnet")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}

func GetOrderByNumber(store orders.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /orders/number/:orderNumber"
		defer handlePanic(c, route)

		order, err := store.FindByNumber(c.Request.Context(), c.Param("orderNumber"))
		if err != nil {
			var notFoundErr orders.NotFoundError
			if errors.As(err, &notFoundErr) {
				respondWithError(c, http.StatusNotFound, route, "Ordre ikke funnet")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, order)
	}
}
