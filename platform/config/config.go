// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
// An empty URL keeps leads in memory.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// AdminConfig provides the back-office login settings.
type AdminConfig interface {
	JWTConfig
	GetAdminEmail() string
	GetAdminPasswordHash() string
	GetAdminName() string
	GetAccessTokenTTL() time.Duration
	GetAuthCookieName() string
	GetAuthCookieSecure() bool
	GetAuthCookieSameSite() http.SameSite
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetIntakeRatePerMinute() int
}

// WebhookConfig provides outbound automation webhook targets.
type WebhookConfig interface {
	GetLeadWebhookURL() string
	GetAlertWebhookURL() string
	GetWebhookTimeout() time.Duration
}

// SchedulerConfig provides Redis/asynq settings for background delivery.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// CatalogConfig provides settings for the property catalog source.
type CatalogConfig interface {
	GetSanityProjectID() string
	GetSanityDataset() string
	GetSanityAPIVersion() string
	GetSanityToken() string
	GetCatalogFile() string
	GetCatalogCacheTTL() time.Duration
	GetRedisURL() string
}

// EmailConfig provides settings for agency notification emails.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetAgencyNotifyAddress() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration.
// It implements all module-specific interfaces above.
type Config struct {
	Env                 string
	HTTPAddr            string
	DatabaseURL         string
	JWTAccessSecret     string
	AccessTokenTTL      time.Duration
	CORSAllowAll        bool
	CORSOrigins         []string
	CORSAllowCreds      bool
	IntakeRatePerMinute int

	AdminEmail         string
	AdminPasswordHash  string
	AdminName          string
	AuthCookieName     string
	AuthCookieSecure   bool
	AuthCookieSameSite http.SameSite

	LeadWebhookURL  string
	AlertWebhookURL string
	WebhookTimeout  time.Duration

	RedisURL         string
	RedisTLSInsecure bool
	AsynqQueueName   string
	AsynqConcurrency int

	SanityProjectID  string
	SanityDataset    string
	SanityAPIVersion string
	SanityToken      string
	CatalogFile      string
	CatalogCacheTTL  time.Duration

	EmailEnabled        bool
	SMTPHost            string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	EmailFromName       string
	EmailFromAddress    string
	AgencyNotifyAddress string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// AdminConfig
func (c *Config) GetAdminEmail() string                { return c.AdminEmail }
func (c *Config) GetAdminPasswordHash() string         { return c.AdminPasswordHash }
func (c *Config) GetAdminName() string                 { return c.AdminName }
func (c *Config) GetAccessTokenTTL() time.Duration     { return c.AccessTokenTTL }
func (c *Config) GetAuthCookieName() string            { return c.AuthCookieName }
func (c *Config) GetAuthCookieSecure() bool            { return c.AuthCookieSecure }
func (c *Config) GetAuthCookieSameSite() http.SameSite { return c.AuthCookieSameSite }

// HTTPConfig
func (c *Config) GetHTTPAddr() string         { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool       { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string    { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool     { return c.CORSAllowCreds }
func (c *Config) GetIntakeRatePerMinute() int { return c.IntakeRatePerMinute }

// WebhookConfig
func (c *Config) GetLeadWebhookURL() string        { return c.LeadWebhookURL }
func (c *Config) GetAlertWebhookURL() string       { return c.AlertWebhookURL }
func (c *Config) GetWebhookTimeout() time.Duration { return c.WebhookTimeout }

// SchedulerConfig
func (c *Config) GetRedisURL() string        { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool  { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string  { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int   { return c.AsynqConcurrency }

// CatalogConfig
func (c *Config) GetSanityProjectID() string        { return c.SanityProjectID }
func (c *Config) GetSanityDataset() string          { return c.SanityDataset }
func (c *Config) GetSanityAPIVersion() string       { return c.SanityAPIVersion }
func (c *Config) GetSanityToken() string            { return c.SanityToken }
func (c *Config) GetCatalogFile() string            { return c.CatalogFile }
func (c *Config) GetCatalogCacheTTL() time.Duration { return c.CatalogCacheTTL }

// EmailConfig
func (c *Config) GetEmailEnabled() bool          { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string            { return c.SMTPHost }
func (c *Config) GetSMTPPort() int               { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string        { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string        { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string       { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string    { return c.EmailFromAddress }
func (c *Config) GetAgencyNotifyAddress() string { return c.AgencyNotifyAddress }

// IsDevelopment reports whether the service runs with development defaults.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads configuration from the environment, honoring a local .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("APP_ENV", "development")

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cookieSecure := strings.EqualFold(getEnv("AUTH_COOKIE_SECURE", ""), "true")
	if getEnv("AUTH_COOKIE_SECURE", "") == "" {
		cookieSecure = strings.EqualFold(env, "production")
	}

	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "false"), "true")

	cfg := &Config{
		Env:                 env,
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		JWTAccessSecret:     getEnv("JWT_ACCESS_SECRET", ""),
		AccessTokenTTL:      mustDuration(getEnv("JWT_ACCESS_TTL", "24h")),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		CORSAllowCreds:      strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		IntakeRatePerMinute: mustInt(getEnv("INTAKE_RATE_PER_MINUTE", "10")),

		AdminEmail:         strings.ToLower(strings.TrimSpace(getEnv("ADMIN_EMAIL", "admin@inmobiliario.com"))),
		AdminPasswordHash:  getEnv("ADMIN_PASSWORD_HASH", ""),
		AdminName:          getEnv("ADMIN_NAME", "Admin User"),
		AuthCookieName:     getEnv("AUTH_COOKIE_NAME", "auth_token"),
		AuthCookieSecure:   cookieSecure,
		AuthCookieSameSite: parseSameSite(getEnv("AUTH_COOKIE_SAMESITE", "Lax")),

		LeadWebhookURL:  getEnv("LEAD_WEBHOOK_URL", ""),
		AlertWebhookURL: getEnv("ALERT_WEBHOOK_URL", ""),
		WebhookTimeout:  mustDuration(getEnv("WEBHOOK_TIMEOUT", "10s")),

		RedisURL:         getEnv("REDIS_URL", ""),
		RedisTLSInsecure: strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:   getEnv("ASYNQ_QUEUE", "webhooks"),
		AsynqConcurrency: mustInt(getEnv("ASYNQ_CONCURRENCY", "5")),

		SanityProjectID:  getEnv("SANITY_PROJECT_ID", ""),
		SanityDataset:    getEnv("SANITY_DATASET", "production"),
		SanityAPIVersion: getEnv("SANITY_API_VERSION", "2024-01-01"),
		SanityToken:      getEnv("SANITY_TOKEN", ""),
		CatalogFile:      getEnv("CATALOG_FILE", ""),
		CatalogCacheTTL:  mustDuration(getEnv("CATALOG_CACHE_TTL", "5m")),

		EmailEnabled:        emailEnabled && smtpHost != "",
		SMTPHost:            smtpHost,
		SMTPPort:            mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		EmailFromName:       getEnv("EMAIL_FROM_NAME", "Inmobiliaria"),
		EmailFromAddress:    getEnv("EMAIL_FROM_ADDRESS", ""),
		AgencyNotifyAddress: getEnv("AGENCY_NOTIFY_ADDRESS", ""),
	}

	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.AdminPasswordHash == "" && !cfg.IsDevelopment() {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is required outside development")
	}
	if emailEnabled && smtpHost == "" {
		return nil, fmt.Errorf("SMTP_HOST is required when EMAIL_ENABLED is true")
	}
	if cfg.EmailEnabled && (cfg.EmailFromAddress == "" || cfg.AgencyNotifyAddress == "") {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS and AGENCY_NOTIFY_ADDRESS are required when email is enabled")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}

func parseSameSite(value string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "none":
		return http.SameSiteNoneMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteLaxMode
	}
}
