package config

import (
	"os"
)

type StripeConfig struct {
	SecretKey         string
	WebhookSecret     string
	PremiumPriceID    string
	EnterprisePriceID string
}

type ResendConfig struct {
	APIKey      string
	FromAddress string
	FromName    string
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type Config struct {
	Port        string
	AppURL      string
	DatabaseURL string
	JWTSecret   string
	Stripe      StripeConfig
	Resend      ResendConfig
	R2          R2Config
}

// LoadConfig reads the full configuration from the environment once at boot.
// Missing Stripe keys are not fatal here: the payment client reports itself
// as disabled and the checkout endpoints fail fast instead.
func LoadConfig() *Config {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		AppURL:      getEnv("APP_URL", "http://localhost:3000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.WebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")
	cfg.Stripe.PremiumPriceID = os.Getenv("STRIPE_PREMIUM_PRICE_ID")
	cfg.Stripe.EnterprisePriceID = os.Getenv("STRIPE_ENTERPRISE_PRICE_ID")

	cfg.Resend.APIKey = os.Getenv("RESEND_API_KEY")
	cfg.Resend.FromAddress = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Resend.FromName = os.Getenv("EMAIL_FROM_NAME")

	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.PublicURL = os.Getenv("R2_PUBLIC_URL")

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
