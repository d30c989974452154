package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/models"
)

type quoteRequestBody struct {
	CompanyName       string   `json:"companyName" binding:"required"`
	ContactName       string   `json:"contactName" binding:"required"`
	Email             string   `json:"email" binding:"required,email"`
	Phone             string   `json:"phone" binding:"required"`
	ProductTypes      []string `json:"productTypes"`
	EstimatedQuantity string   `json:"estimatedQuantity"`
	Message           string   `json:"message"`
	LogoURL           string   `json:"logoUrl"`
}

type contactMessageBody struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

func CreateQuoteRequest(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /quotes"
		defer handlePanic(c, route)

		var req quoteRequestBody
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		quote := models.QuoteRequest{
			CompanyName:       strings.TrimSpace(req.CompanyName),
			ContactName:       strings.TrimSpace(req.ContactName),
			Email:             strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:             strings.TrimSpace(req.Phone),
			ProductTypes:      req.ProductTypes,
			EstimatedQuantity: strings.TrimSpace(req.EstimatedQuantity),
			Message:           req.Message,
			LogoURL:           req.LogoURL,
			Status:            "new",
			CreatedAt:         time.Now().UTC(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("quote_requests").InsertOne(ctx, quote); err != nil {
			log.Println("[LEAD] [ERROR] quote insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[LEAD] [INFO] quote request received from:", quote.CompanyName)
		c.JSON(http.StatusCreated, gin.H{"message": "Takk! Vi kontakter deg innen 24 timer."})
	}
}

// ListQuoteRequests is admin-only; newest first.
func ListQuoteRequests(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /quotes"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := db.Collection("quote_requests").Find(ctx, bson.M{}, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		quotes := make([]models.QuoteRequest, 0)
		if err := cursor.All(ctx, &quotes); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		c.JSON(http.StatusOK, quotes)
	}
}

func CreateContactMessage(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /contact"
		defer handlePanic(c, route)

		var req contactMessageBody
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		message := models.ContactMessage{
			Name:      strings.TrimSpace(req.Name),
			Email:     strings.ToLower(strings.TrimSpace(req.Email)),
			Phone:     strings.TrimSpace(req.Phone),
			Subject:   strings.TrimSpace(req.Subject),
			Message:   req.Message,
			CreatedAt: time.Now().UTC(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := db.Collection("contact_messages").InsertOne(ctx, message); err != nil {
			log.Println("[LEAD] [ERROR] contact insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Println("[LEAD] [INFO] contact message received from:", message.Email)
		c.JSON(http.StatusCreated, gin.H{"message": "Takk for din henvendelse! Vi svarer så snart vi kan."})
	}
}
