package config

import (
	"errors"
	"os"
	"strings"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	Mode        string

	// DefaultCampaignSlug is the campaign served when a request carries no
	// slug of its own (no X-Campaign-Slug header and no campaign subdomain).
	DefaultCampaignSlug string

	// WebhookURL, when set, receives an enrollment notice per new membership.
	WebhookURL string

	AllowedOrigins []string
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
	"http://campaign.lvh.me:8000",
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:                os.Getenv("PORT"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		Mode:                os.Getenv("APP_MODE"),
		DefaultCampaignSlug: os.Getenv("CAMPAIGN_SLUG"),
		WebhookURL:          os.Getenv("WEBHOOK_URL"),
		AllowedOrigins:      initAllowedOrigins(),
	}

	if cfg.Port == "" {
		cfg.Port = "3000"
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL environment variable is not set")
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}

	return cfg, nil
}

func initAllowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if allowedOrigins := os.Getenv("ALLOWED_ORIGINS"); allowedOrigins != "" {
		for _, origin := range strings.Split(allowedOrigins, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
