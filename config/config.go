package config

import (
	"fmt"
	"os"
)

type Config struct {
	Port             string
	Env              string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     string
	PostgresSSLMode  string
	RedisURL         string
	StripeSecretKey  string
	StripeWebhookKey string
	AppBaseURL       string // public base URL used for checkout redirect targets
	JWTSecret        string
	AdminAccessCode  string
	PaymentTopicARN  string // SNS topic ARN for payment events
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8087"),
		Env:              getEnv("APP_ENV", "development"),
		PostgresUser:     os.Getenv("POSTGRES_USER"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresDB:       os.Getenv("POSTGRES_DB"),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379/0"),
		StripeSecretKey:  os.Getenv("STRIPE_API_KEY"),
		StripeWebhookKey: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		AppBaseURL:       getEnv("APP_BASE_URL", "http://localhost:3000"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AdminAccessCode:  os.Getenv("ADMIN_ACCESS_CODE"),
		PaymentTopicARN:  getEnv("PAYMENT_SNS_TOPIC_ARN", "arn:aws:sns:eu-west-3:000000000000:insurance-payment-events"),
	}

	if cfg.PostgresUser == "" || cfg.PostgresPassword == "" || cfg.PostgresDB == "" ||
		cfg.StripeSecretKey == "" || cfg.StripeWebhookKey == "" || cfg.JWTSecret == "" {
		return nil, fmt.Errorf("missing required environment variables")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
