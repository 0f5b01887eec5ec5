package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Stripe   StripeConfig
	Storage  StorageConfig
	Geocode  GeocodeConfig
}

type ServerConfig struct {
	Port         string
	SignInURL    string
	DashboardURL string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
}

type StorageConfig struct {
	AccessKey string
	SecretKey string
	AccountID string
	Bucket    string
	PublicURL string
}

type GeocodeConfig struct {
	BaseURL   string
	UserAgent string
}

func Load() *Config {
	godotenv.Load()

	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "3000"),
			SignInURL:    getEnv("SIGNIN_URL", "/signin"),
			DashboardURL: getEnv("DASHBOARD_URL", "/dashboard"),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
			SuccessURL:    getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:3000/subscriptions/payment-success"),
			CancelURL:     getEnv("CHECKOUT_CANCEL_URL", "http://localhost:3000/subscriptions/payment-cancelled"),
		},
		Storage: StorageConfig{
			AccessKey: getEnv("R2_ACCESS_KEY", ""),
			SecretKey: getEnv("R2_SECRET_KEY", ""),
			AccountID: getEnv("R2_ACCOUNT_ID", ""),
			Bucket:    getEnv("R2_BUCKET_NAME", "ridepool-uploads"),
			PublicURL: getEnv("R2_PUBLIC_URL", ""),
		},
		Geocode: GeocodeConfig{
			BaseURL:   getEnv("GEOCODE_BASE_URL", "https://nominatim.openstreetmap.org"),
			UserAgent: getEnv("GEOCODE_USER_AGENT", "ridepool-backend/1.0"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
