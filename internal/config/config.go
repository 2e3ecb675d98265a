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
	MongoURI   string
	DBName     string
	Port       string
	CORSOrigin string

	AccessTokenSecret  string
	AccessTokenTTL     time.Duration
	RefreshTokenSecret string
	RefreshTokenTTL    time.Duration
	ReAuthTokenSecret  string
	ReAuthTokenTTL     time.Duration

	TwilioAccountSID       string
	TwilioAuthToken        string
	TwilioVerifyServiceSID string

	GoldPriceURL      string
	DiamondPriceURL   string
	SolitairePriceURL string
	LivePriceRefresh  time.Duration

	// Declared for the payment integration; no handler uses it yet.
	StripeKey string
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:   getEnvOrDefault("MONGO_URI", ""),
		DBName:     getEnvOrDefault("DB_NAME", "jewelry"),
		Port:       getEnvOrDefault("PORT", "8000"),
		CORSOrigin: getEnvOrDefault("CORS_ORIGIN", "http://localhost:5173"),

		AccessTokenSecret:  getEnvOrDefault("ACCESS_TOKEN_SECRET", ""),
		AccessTokenTTL:     getDurationEnv("ACCESS_TOKEN_EXPIRY_MINUTES", 15, time.Minute),
		RefreshTokenSecret: getEnvOrDefault("REFRESH_TOKEN_SECRET", ""),
		RefreshTokenTTL:    getDurationEnv("REFRESH_TOKEN_EXPIRY_DAYS", 30, 24*time.Hour),
		ReAuthTokenSecret:  getEnvOrDefault("RE_AUTH_TOKEN_SECRET", ""),
		ReAuthTokenTTL:     getDurationEnv("RE_AUTH_TOKEN_EXPIRY_MINUTES", 5, time.Minute),

		TwilioAccountSID:       getEnvOrDefault("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:        getEnvOrDefault("TWILIO_AUTH_TOKEN", ""),
		TwilioVerifyServiceSID: getEnvOrDefault("TWILIO_VERIFY_SERVICE_SID", ""),

		GoldPriceURL:      getEnvOrDefault("GOLD_PRICE_URL", ""),
		DiamondPriceURL:   getEnvOrDefault("DIAMOND_PRICE_URL", ""),
		SolitairePriceURL: getEnvOrDefault("SOLITAIRE_PRICE_URL", ""),
		LivePriceRefresh:  getDurationEnv("LIVE_PRICE_REFRESH_MINUTES", 15, time.Minute),

		StripeKey: getEnvOrDefault("STRIPE_KEY", ""),
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
