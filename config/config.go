package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	// CORS
	CORSAllowedOrigins []string
	// SMTP Configuration
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SMTPFromEmail  string
	InquiryEmailTo string
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Session / hand-off lifetimes
	SessionTTLMinutes int
	HandoffTTLMinutes int
	// Uploads
	UploadDir       string
	MaxUploadSizeMB int
	// Contact wizard behaviour after a successful submit:
	// "manual" keeps the confirmation state, "immediate" clears the form
	InquiryResetPolicy string
}

func LoadConfig() (*Config, error) {
	// Load .env when present; ignored in production where env vars are set directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DBUrl:              getEnv("DATABASE_URL", ""),
		FrontendURL:        strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),
		// SMTP Configuration
		SMTPHost:       getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail:  getEnv("SMTP_FROM_EMAIL", "noreply@abdujalil.dev"),
		InquiryEmailTo: getEnv("INQUIRY_EMAIL_TO", "hello@abdujalil.dev"),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Lifetimes
		SessionTTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 120),
		HandoffTTLMinutes: getEnvInt("HANDOFF_TTL_MINUTES", 30),
		// Uploads
		UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSizeMB: getEnvInt("MAX_UPLOAD_SIZE_MB", 10),
		// Submit behaviour
		InquiryResetPolicy: getEnv("INQUIRY_RESET_POLICY", "manual"),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Hand-off storage and rate limiting will use in-memory fallbacks.")
	}

	return cfg, nil
}

// MaxUploadBytes returns the attachment size limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadSizeMB) * 1024 * 1024
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// splitList parses a comma-separated env value, dropping empty entries
func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
