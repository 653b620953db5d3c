package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Stripe
	StripeSecretKey     string
	StripeWebhookSecret string
	StripePriceID       string
	PaymentMethodTypes  []string

	// Supabase
	SupabaseURL           string
	SupabaseServiceKey    string
	SupabaseStorageBucket string

	// Slack
	SlackToken     string
	SlackChannelID string

	// Email (SMTP)
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	EmailFrom    string

	// Auth
	ArtistJWTSecret string

	// Database
	DatabaseURL string

	// Server
	Port        string
	Environment string
	Domain      string
}

func Load() (*Config, error) {
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	pmTypes := strings.Split(getEnv("PAYMENT_METHOD_TYPES", "card"), ",")
	for i, m := range pmTypes {
		pmTypes[i] = strings.TrimSpace(m)
	}

	cfg := &Config{
		StripeSecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		StripePriceID:       getEnv("STRIPE_PRICE_ID", ""),
		PaymentMethodTypes:  pmTypes,

		SupabaseURL:           getEnv("SUPABASE_URL", ""),
		SupabaseServiceKey:    getEnv("SUPABASE_SERVICE_KEY", ""),
		SupabaseStorageBucket: getEnv("SUPABASE_STORAGE_BUCKET", "mymoji-assets"),

		SlackToken:     getEnv("SLACK_OAUTH_TOKEN", ""),
		SlackChannelID: getEnv("SLACK_CHANNEL_ID", ""),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     smtpPort,
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		EmailFrom:    getEnv("EMAIL_FROM", "orders@mymoji.co"),

		ArtistJWTSecret: getEnv("ARTIST_JWT_SECRET", ""),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port:        getEnv("PORT", "4242"),
		Environment: getEnv("ENVIRONMENT", "development"),
		Domain:      getEnv("DOMAIN", "http://localhost:4242"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.StripeSecretKey == "" {
		return fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	if c.StripePriceID == "" || c.StripePriceID == "price_12345" {
		return fmt.Errorf("STRIPE_PRICE_ID must be set to a real Price ID")
	}
	if c.SupabaseURL == "" {
		return fmt.Errorf("SUPABASE_URL is required")
	}
	if c.SupabaseServiceKey == "" {
		return fmt.Errorf("SUPABASE_SERVICE_KEY is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
