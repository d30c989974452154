package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI       string
	DBName         string
	JWTSecret      string
	AccessTokenTTL time.Duration
	CORSOrigins    []string

	StripeAPIKey        string
	StripeWebhookSecret string

	VippsAPIURL          string
	VippsClientID        string
	VippsClientSecret    string
	VippsSubscriptionKey string
	VippsMerchantSerial  string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:       getEnvOrDefault("MONGO_URI", ""),
		DBName:         getEnvOrDefault("DB_NAME", "firmaprint"),
		JWTSecret:      getEnvOrDefault("JWT_SECRET", ""),
		AccessTokenTTL: getDurationEnv("ACCESS_TOKEN_TTL", 24, time.Hour),
		CORSOrigins:    splitList(getEnvOrDefault("CORS_ORIGINS", "*")),

		StripeAPIKey:        getEnvOrDefault("STRIPE_API_KEY", ""),
		StripeWebhookSecret: getEnvOrDefault("STRIPE_WEBHOOK_SECRET", ""),

		VippsAPIURL:          getEnvOrDefault("VIPPS_API_URL", "https://apitest.vipps.no"),
		VippsClientID:        getEnvOrDefault("VIPPS_CLIENT_ID", ""),
		VippsClientSecret:    getEnvOrDefault("VIPPS_CLIENT_SECRET", ""),
		VippsSubscriptionKey: getEnvOrDefault("VIPPS_SUBSCRIPTION_KEY", ""),
		VippsMerchantSerial:  getEnvOrDefault("VIPPS_MSN", ""),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
