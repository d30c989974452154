package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserAuth validates user JWT tokens and injects the userId into the context.
func UserAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := userIDFromHeader(c, secret)
		if err != nil {
			log.Println("[AUTH] [ERROR]", err.message)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.response})
			return
		}

		c.Set("userId", userID)
		c.Next()
	}
}

// OptionalUser attaches the userId when a valid token is present but never
// rejects the request. Guest carts and guest checkout rely on this.
func OptionalUser(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.TrimSpace(c.GetHeader("Authorization")) == "" {
			c.Next()
			return
		}
		userID, err := userIDFromHeader(c, secret)
		if err != nil {
			log.Println("[AUTH] [INFO] ignoring invalid optional token:", err.message)
			c.Next()
			return
		}
		c.Set("userId", userID)
		c.Next()
	}
}

type authError struct {
	message  string
	response string
}

func userIDFromHeader(c *gin.Context, secret string) (primitive.ObjectID, *authError) {
	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	if raw == "" {
		return primitive.NilObjectID, &authError{"missing token", "missing token"}
	}

	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return primitive.NilObjectID, &authError{"invalid token format", "invalid token"}
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, &authError{"token validation failed", "unauthorized"}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, &authError{"token claims invalid", "unauthorized"}
	}

	userIDValue, ok := claims["userId"].(string)
	if !ok || strings.TrimSpace(userIDValue) == "" {
		return primitive.NilObjectID, &authError{"userId claim missing", "unauthorized"}
	}

	userID, err := primitive.ObjectIDFromHex(userIDValue)
	if err != nil {
		return primitive.NilObjectID, &authError{"invalid userId claim", "unauthorized"}
	}

	return userID, nil
}
