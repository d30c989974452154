package handlers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/models"
)

// Category identifiers are fixed; products reference them by id.
var productCategories = []gin.H{
	{"id": "tshirts", "name": "T-Shirts", "nameNo": "T-skjorter"},
	{"id": "hoodies", "name": "Hoodies", "nameNo": "Hettegensere"},
	{"id": "caps", "name": "Caps", "nameNo": "Capser"},
	{"id": "workwear", "name": "Workwear", "nameNo": "Arbeidsklær"},
	{"id": "bags", "name": "Bags", "nameNo": "Bager"},
	{"id": "accessories", "name": "Accessories", "nameNo": "Tilbehør"},
}

func GetProducts(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products"
		defer handlePanic(c, route)

		if err := ensureDBConnection(c.Request.Context(), db); err != nil {
			respondWithError(c, http.StatusServiceUnavailable, route, "database unavailable")
			return
		}

		filter := bson.M{"active": bson.M{"$ne": false}}

		if category := strings.TrimSpace(c.Query("category")); category != "" {
			filter["category"] = category
		}
		if brand := strings.TrimSpace(c.Query("brand")); brand != "" {
			filter["brand"] = brand
		}
		if method := strings.TrimSpace(c.Query("print_method")); method != "" {
			filter["printMethods"] = method
		}
		if featured := strings.TrimSpace(c.Query("featured")); featured != "" {
			filter["featured"] = featured == "true"
		}

		priceFilter := bson.M{}
		if raw := strings.TrimSpace(c.Query("min_price")); raw != "" {
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid min_price")
				return
			}
			priceFilter["$gte"] = value
		}
		if raw := strings.TrimSpace(c.Query("max_price")); raw != "" {
			value, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				respondWithError(c, http.StatusBadRequest, route, "invalid max_price")
				return
			}
			priceFilter["$lte"] = value
		}
		if len(priceFilter) > 0 {
			filter["basePrice"] = priceFilter
		}

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			filter["$or"] = []bson.M{
				{"name": bson.M{"$regex": search, "$options": "i"}},
				{"description": bson.M{"$regex": search, "$options": "i"}},
			}
		}

		skip, limit, err := parseSkipLimit(c.Query("skip"), c.Query("limit"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "invalid pagination params")
			return
		}

		findOptions := options.Find().
			SetSort(bson.D{{Key: "createdAt", Value: -1}}).
			SetSkip(skip).
			SetLimit(limit)

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		cursor, err := db.Collection("products").Find(ctx, filter, findOptions)
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		defer cursor.Close(ctx)

		products := make([]models.Product, 0)
		if err := cursor.All(ctx, &products); err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "decode error")
			return
		}

		log.Printf("[%s] returning %d products", route, len(products))
		c.JSON(http.StatusOK, products)
	}
}

func GetProductBySlug(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /products/:slug"
		defer handlePanic(c, route)

		slug := strings.TrimSpace(c.Param("slug"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var product models.Product
		err := db.Collection("products").FindOne(ctx, bson.M{
			"slug":   slug,
			"active": bson.M{"$ne": false},
		}).Decode(&product)
		if err == mongo.ErrNoDocuments {
			respondWithError(c, http.StatusNotFound, route, "Produkt ikke funnet")
			return
		}
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}

		c.JSON(http.StatusOK, product)
	}
}

func GetCategories() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, productCategories)
	}
}

func parseSkipLimit(skipStr, limitStr string) (int64, int64, error) {
	skip := int64(0)
	limit := int64(50)

	if skipStr != "" {
		parsed, err := strconv.ParseInt(skipStr, 10, 64)
		if err != nil || parsed < 0 {
			return 0, 0, strconv.ErrRange
		}
		skip = parsed
	}
	if limitStr != "" {
		parsed, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || parsed < 1 || parsed > 200 {
			return 0, 0, strconv.ErrRange
		}
		limit = parsed
	}

	return skip, limit, nil
}
