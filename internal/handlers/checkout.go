package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/models"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/orders"
	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/payments"
)

// CheckoutStatus polls the hosted checkout session and marks the order paid
// once the provider reports payment. Polling is idempotent; a paid order is
// never downgraded.
func CheckoutStatus(checkout payments.Checkout, store orders.Store, transactions orders.TransactionRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /checkout/status/:session_id"
		defer handlePanic(c, route)

		sessionID := c.Param("session_id")

		status, err := checkout.GetStatus(c.Request.Context(), sessionID)
		if err != nil {
			log.Println("[CHECKOUT] [ERROR] status lookup failed:", err)
			respondWithError(c, http.StatusBadGateway, route, "Kunne ikke hente betalingsstatus")
			return
		}

		if status.PaymentStatus == "paid" {
			if err := store.MarkPaidByStripeSession(c.Request.Context(), sessionID); err != nil {
				log.Println("[CHECKOUT] [ERROR] mark paid failed:", err)
			}
			if err := transactions.UpdateStatus(c.Request.Context(), sessionID, models.PaymentStatusPaid, 0); err != nil {
				log.Println("[CHECKOUT] [ERROR] transaction update failed:", err)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"status":        status.Status,
			"paymentStatus": status.PaymentStatus,
			"amountTotal":   status.AmountTotal,
			"currency":      status.Currency,
		})
	}
}

// StripeWebhook acknowledges every delivery with 200 so the provider does not
// retry forever; failures are logged and resolved via status polling instead.
func StripeWebhook(checkout payments.Checkout, store orders.Store, transactions orders.TransactionRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /webhook/stripe"
		defer handlePanic(c, route)

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			log.Println("[WEBHOOK] [ERROR] read body failed:", err)
			c.JSON(http.StatusOK, gin.H{"status": "error"})
			return
		}

		event, err := checkout.HandleWebhook(body, c.GetHeader("Stripe-Signature"))
		if err != nil {
			log.Println("[WEBHOOK] [ERROR] verification failed:", err)
			c.JSON(http.StatusOK, gin.H{"status": "error"})
			return
		}

		if event.EventType == "checkout.session.completed" && event.PaymentStatus == "paid" {
			if err := store.MarkPaidByStripeSession(c.Request.Context(), event.SessionID); err != nil {
				log.Println("[WEBHOOK] [ERROR] mark paid failed:", err)
				c.JSON(http.StatusOK, gin.H{"status": "error"})
				return
			}
			if err := transactions.UpdateStatus(c.Request.Context(), event.SessionID, models.PaymentStatusPaid, 0); err != nil {
				log.Println("[WEBHOOK] [ERROR] transaction update failed:", err)
			}
			log.Println("[WEBHOOK] [INFO] session paid:", event.SessionID)
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
