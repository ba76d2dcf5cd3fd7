package server

import (
	"testing"
	"time"

	"clubdvigi-api/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Port:        "8081",
		Shopify: config.ShopifyConfig{
			Store:      "dvigi-test.myshopify.com",
			AdminToken: "shpat_test",
			APIVersion: config.DefaultAPIVersion,
			Timeout:    5 * time.Second,
		},
		Warranty: config.WarrantyConfig{Namespace: "dvigi", Key: "warranty_items"},
		Logging:  config.LoggingConfig{Level: "error", Format: "text"},
	}
}

// TestNewContainer verifies that the container can be created successfully
func TestNewContainer(t *testing.T) {
	container, err := NewContainer(testConfig())
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}

	if container.RegistrationService == nil {
		t.Error("RegistrationService is nil")
	}
	if container.ShopifyClient == nil || !container.ShopifyClient.IsConfigured() {
		t.Error("ShopifyClient is not configured")
	}
	if container.Registry == nil || container.Metrics == nil {
		t.Error("metrics are not initialized")
	}

	if err := container.Close(); err != nil {
		t.Errorf("Failed to close container: %v", err)
	}
}

// TestNewContainer_WithoutCredentials boots without Shopify credentials
func TestNewContainer_WithoutCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.Shopify.AdminToken = ""

	container, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("Failed to create container: %v", err)
	}
	if container.ShopifyClient.IsConfigured() {
		t.Error("ShopifyClient should not be configured")
	}
}

// TestNewContainer_InvalidWarrantyKey rejects an empty metafield key
func TestNewContainer_InvalidWarrantyKey(t *testing.T) {
	cfg := testConfig()
	cfg.Warranty.Key = ""

	if _, err := NewContainer(cfg); err == nil {
		t.Error("expected error for empty warranty key")
	}
}

func TestNewContainer_NilConfig(t *testing.T) {
	if _, err := NewContainer(nil); err == nil {
		t.Error("expected error for nil config")
	}
}
