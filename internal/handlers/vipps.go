package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/models"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/orders"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/payments"
)

type initiateVippsRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	ReturnURL string `json:"returnUrl" binding:"required"`
}

// InitiateVippsPayment starts a wallet payment for an already persisted
// order. The NOK total converts to øre here; the provider only sees minor
// units.
func InitiateVippsPayment(client *payments.VippsClient, store orders.Store, transactions orders.TransactionRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /payments/vipps"
		defer handlePanic(c, route)

		if !client.Configured() {
			respondWithError(c, http.StatusServiceUnavailable, route, "Vipps er ikke konfigurert")
			return
		}

		var req initiateVippsRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		order, err := store.FindByID(c.Request.Context(), req.OrderID)
		if err != nil {
			var notFoundErr orders.NotFoundError
			if errors.As(err, &notFoundErr) {
				respondWithError(c, http.StatusNotFound, route, "Ordre ikke funnet")
				return
			}
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		if order.PaymentMethod != models.PaymentMethodVipps {
			respondWithError(c, http.StatusBadRequest, route, "Ordren er ikke en Vipps-ordre")
			return
		}
		if order.PaymentStatus == models.PaymentStatusPaid {
			respondWithError(c, http.StatusBadRequest, route, "Ordren er allerede betalt")
			return
		}

		amountMinor := decimal.NewFromFloat(order.Total).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
		reference := payments.NewPaymentReference(time.Now())

		payment, err := client.CreatePayment(c.Request.Context(), payments.CreatePaymentParams{
			AmountMinor:    amountMinor,
			Description:    "Firmaprint ordre " + order.OrderNumber,
			ReturnURL:      req.ReturnURL,
			Reference:      reference,
			IdempotencyKey: uuid.NewString(),
		})
		if err != nil {
			log.Println("[VIPPS] [ERROR] create payment failed:", err)
			respondWithError(c, http.StatusBadGateway, route, "Kunne ikke starte Vipps-betaling")
			return
		}

		if err := store.SetVippsReference(c.Request.Context(), req.OrderID, reference); err != nil {
			log.Println("[VIPPS] [ERROR] store reference failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		now := time.Now().UTC()
		tx := models.PaymentTransaction{
			TransactionID: uuid.NewString(),
			OrderID:       order.ID,
			Provider:      models.PaymentMethodVipps,
			Reference:     reference,
			Amount:        order.Total,
			Currency:      "NOK",
			PaymentStatus: models.PaymentStatusPending,
			Metadata:      map[string]string{"order_number": order.OrderNumber},
			CreatedAt:     now,
		}
		if err := transactions.Record(c.Request.Context(), tx); err != nil {
			log.Println("[VIPPS] [ERROR] transaction record failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[VIPPS] [INFO] payment initiated:", reference)
		c.JSON(http.StatusOK, gin.H{
			"redirectUrl": payment.RedirectURL,
			"reference":   reference,
		})
	}
}

func VippsPaymentStatus(client *payments.VippsClient, transactions orders.TransactionRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /payments/vipps/:reference"
		defer handlePanic(c, route)

		if !client.Configured() {
			respondWithError(c, http.StatusServiceUnavailable, route, "Vipps er ikke konfigurert")
			return
		}

		reference := c.Param("reference")

		status, err := client.PaymentStatus(c.Request.Context(), reference)
		if err != nil {
			log.Println("[VIPPS] [ERROR] status lookup failed:", err)
			respondWithError(c, http.StatusBadGateway, route, "Kunne ikke hente Vipps-status")
			return
		}

		if err := transactions.UpdateStatus(c.Request.Context(), reference, status.State, status.CapturedAmount); err != nil {
			log.Println("[VIPPS] [ERROR] transaction update failed:", err)
		}

		c.JSON(http.StatusOK, gin.H{
			"reference":        reference,
			"state":            status.State,
			"authorizedAmount": status.AuthorizedAmount,
			"capturedAmount":   status.CapturedAmount,
		})
	}
}

// CaptureVippsPayment captures the full authorized amount and marks the order
// paid.
func CaptureVippsPayment(client *payments.VippsClient, store orders.Store, transactions orders.TransactionRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /payments/vipps/:reference/capture"
		defer handlePanic(c, route)

		if !client.Configured() {
			respondWithError(c, http.StatusServiceUnavailable, route, "Vipps er ikke konfigurert")
			return
		}

		reference := c.Param("reference")

		tx, err := transactions.FindByReference(c.Request.Context(), reference)
		if err != nil {
			respondWithError(c, http.StatusNotFound, route, "Betaling ikke funnet")
			return
		}

		amountMinor := decimal.NewFromFloat(tx.Amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

		result, err := client.Capture(c.Request.Context(), reference, amountMinor)
		if err != nil {
			log.Println("[VIPPS] [ERROR] capture failed:", err)
			respondWithError(c, http.StatusBadGateway, route, "Kunne ikke belaste Vipps-betaling")
			return
		}

		if err := store.MarkPaidByVippsReference(c.Request.Context(), reference); err != nil {
			log.Println("[VIPPS] [ERROR] mark paid failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		if err := transactions.UpdateStatus(c.Request.Context(), reference, "CAPTURED", result.CapturedAmount); err != nil {
			log.Println("[VIPPS] [ERROR] transaction update failed:", err)
		}

		log.Println("[VIPPS] [INFO] payment captured:", reference)
		c.JSON(http.StatusOK, gin.H{
			"reference":      reference,
			"capturedAmount": result.CapturedAmount,
		})
	}
}
