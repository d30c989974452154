package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/seed"
)

// SeedDatabase replaces the catalog with the Tracker dataset.
func SeedDatabase(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /seed"
		defer handlePanic(c, route)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		count, err := seed.Run(ctx, db)
		if err != nil {
			log.Println("[SEED] [ERROR] seeding failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		log.Printf("[SEED] [INFO] seeded %d products", count)
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Lagt til %d Tracker-produkter", count),
			"count":   count,
		})
	}
}

// Root is the API health endpoint.
func Root() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Firmaprint API",
			"status":  "ok",
		})
	}
}
