package handlers

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vetleolai-cyber/Firmaprint-nettside/internal/models"
)

const maxLogoSize = 10 << 20 // 10MB

var allowedLogoTypes = map[string]bool{
	"image/png":       true,
	"image/jpeg":      true,
	"image/svg+xml":   true,
	"application/pdf": true,
}

// UploadLogo stores the customer's logo as base64 in Mongo. Files this size
// do not justify object storage.
func UploadLogo(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /upload/logo"
		defer handlePanic(c, route)

		fileHeader, err := c.FormFile("file")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Fil mangler")
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if !allowedLogoTypes[contentType] {
			respondWithError(c, http.StatusBadRequest, route, "Ugyldig filtype. Tillatt: PNG, JPEG, SVG, PDF")
			return
		}
		if fileHeader.Size > maxLogoSize {
			respondWithError(c, http.StatusBadRequest, route, "Filen er for stor. Maks 10MB.")
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Kunne ikke lese filen")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxLogoSize+1))
		if err != nil {
			respondWithError(c, http.StatusInternalServerError, route, "Kunne ikke lese filen")
			return
		}
		if int64(len(data)) > maxLogoSize {
			respondWithError(c, http.StatusBadRequest, route, "Filen er for stor. Maks 10MB.")
			return
		}

		logo := models.Logo{
			Filename:    fileHeader.Filename,
			ContentType: contentType,
			Size:        int64(len(data)),
			Data:        base64.StdEncoding.EncodeToString(data),
			CreatedAt:   time.Now().UTC(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		res, err := db.Collection("logos").InsertOne(ctx, logo)
		if err != nil {
			log.Println("[UPLOAD] [ERROR] logo insert failed:", err)
			respondWithError(c, http.StatusInternalServerError, route, "db error")
			return
		}
		id, _ := res.InsertedID.(primitive.ObjectID)

		log.Printf("[UPLOAD] [INFO] logo stored: %s (%d bytes)", logo.Filename, logo.Size)
		c.JSON(http.StatusCreated, gin.H{
			"logoId":      id.Hex(),
			"logoUrl":     "/api/logos/" + id.Hex(),
			"filename":    logo.Filename,
			"contentType": logo.ContentType,
			"size":        logo.Size,
		})
	}
}

// GetLogo returns the logo as a data URL for the design editor preview.
func GetLogo(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "GET /logos/:id"
		defer handlePanic(c, route)

		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "Ugyldig logo-ID")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var logo models.Logo
		if err := db.Collection("logos").FindOne(ctx, bson.M{"_id": id}).Decode(&logo); err != nil {
			respondWithError(c, http.StatusNotFound, route, "Logo ikke funnet")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"id":          logo.ID.Hex(),
			"filename":    logo.Filename,
			"contentType": logo.ContentType,
			"dataUrl":     fmt.Sprintf("data:%s;base64,%s", logo.ContentType, logo.Data),
		})
	}
}
