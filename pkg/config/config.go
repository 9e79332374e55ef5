package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config is read once at startup and handed to every component through fx.
// Nothing else in the codebase touches os.Getenv.
type Config struct {
	Port        string
	Environment string // "development" | "production"

	PostgresURL string

	JWTSecret         string
	JWTRefreshSecret  string
	JWTExpiry         time.Duration
	JWTRefreshExpiry  time.Duration
	EncryptionKey     string
	DefaultCountry    string // E.164 prefix prepended to bare phone numbers
	UsageTimeLocation *time.Location

	GoogleAIKey string
	OpenAIKey   string

	StripeSecretKey      string
	StripeWebhookSecret  string
	StripePriceBase      string
	StripePricePro       string
	StripePriceUnlimited string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string

	FrontendURL string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("APP_ENV", "development"),

		PostgresURL: os.Getenv("POSTGRES_URL"),

		JWTSecret:        os.Getenv("JWT_SECRET"),
		JWTRefreshSecret: os.Getenv("JWT_REFRESH_SECRET"),
		JWTExpiry:        getDuration("JWT_EXPIRES_IN", 15*time.Minute),
		JWTRefreshExpiry: getDuration("JWT_REFRESH_EXPIRES_IN", 30*24*time.Hour),
		EncryptionKey:    os.Getenv("ENCRYPTION_KEY"),
		DefaultCountry:   getEnv("DEFAULT_COUNTRY_CODE", "+351"),

		GoogleAIKey: os.Getenv("GOOGLE_AI_API_KEY"),
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),

		StripeSecretKey:      os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret:  os.Getenv("STRIPE_WEBHOOK_SECRET"),
		StripePriceBase:      os.Getenv("STRIPE_PRICE_BASE"),
		StripePricePro:       os.Getenv("STRIPE_PRICE_PRO"),
		StripePriceUnlimited: os.Getenv("STRIPE_PRICE_UNLIMITED"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFromNumber: os.Getenv("TWILIO_PHONE_NUMBER"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getInt("SMTP_PORT", 587),
		SMTPUsername: os.Getenv("SMTP_USER"),
		SMTPPassword: os.Getenv("SMTP_PASS"),
		SMTPFrom:     getEnv("SMTP_FROM", "no-reply@fitai.app"),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "FitAI"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:8081"),
	}

	if cfg.JWTSecret == "" || cfg.JWTRefreshSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET and JWT_REFRESH_SECRET must be set")
	}
	if len(cfg.EncryptionKey) < 32 {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be at least 32 characters long")
	}

	loc, err := time.LoadLocation(getEnv("USAGE_TZ", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid USAGE_TZ: %w", err)
	}
	cfg.UsageTimeLocation = loc

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment != "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
