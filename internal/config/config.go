package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultAPIVersion is the Shopify Admin API version the GraphQL documents are written against
const DefaultAPIVersion = "2025-01"

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Shopify     ShopifyConfig
	Warranty    WarrantyConfig
	Logging     LoggingConfig
	RateLimit   RateLimitConfig

	// SerializeByEmail holds a per-email lock for the whole registration pipeline
	SerializeByEmail bool
}

// ShopifyConfig holds the Admin API connection settings
type ShopifyConfig struct {
	Store      string
	AdminToken string
	APIVersion string
	Timeout    time.Duration

	// BaseURL overrides the https://{store} origin. Only used by tests and local fakes.
	BaseURL string
}

// WarrantyConfig names the customer metafield holding the warranty list
type WarrantyConfig struct {
	Namespace string
	Key       string
}

// LoggingConfig holds logrus settings
type LoggingConfig struct {
	Level  string
	Format string // "json" or "text"
}

// RateLimitConfig holds inbound rate limiting settings
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// IsConfigured reports whether both the store and the access token are present
func (c ShopifyConfig) IsConfigured() bool {
	return strings.TrimSpace(c.Store) != "" && strings.TrimSpace(c.AdminToken) != ""
}

// Endpoint returns the GraphQL Admin API URL
func (c ShopifyConfig) Endpoint() string {
	version := c.APIVersion
	if version == "" {
		version = DefaultAPIVersion
	}

	origin := strings.TrimRight(c.BaseURL, "/")
	if origin == "" {
		origin = "https://" + strings.TrimSpace(c.Store)
	}

	return origin + "/admin/api/" + version + "/graphql.json"
}

// Load loads configuration from environment variables and config files.
// Missing Shopify credentials are not an error here; requests report them.
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("SHOPIFY_API_VERSION", DefaultAPIVersion)
	v.SetDefault("SHOPIFY_TIMEOUT", "15s")
	v.SetDefault("WARRANTY_NAMESPACE", "dvigi")
	v.SetDefault("WARRANTY_KEY", "warranty_items")
	v.SetDefault("SERIALIZE_BY_EMAIL", true)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("RATE_LIMIT_RPS", 0)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Shopify: ShopifyConfig{
			Store:      v.GetString("SHOPIFY_STORE"),
			AdminToken: v.GetString("SHOPIFY_ADMIN_TOKEN"),
			APIVersion: v.GetString("SHOPIFY_API_VERSION"),
			Timeout:    v.GetDuration("SHOPIFY_TIMEOUT"),
		},
		Warranty: WarrantyConfig{
			Namespace: v.GetString("WARRANTY_NAMESPACE"),
			Key:       v.GetString("WARRANTY_KEY"),
		},
		Logging: LoggingConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		SerializeByEmail: v.GetBool("SERIALIZE_BY_EMAIL"),
	}

	return config, nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetEnvAsBool gets an environment variable as boolean with a fallback value
func GetEnvAsBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
