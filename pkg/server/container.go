package server

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"clubdvigi-api/internal/config"
	"clubdvigi-api/internal/metrics"
	"clubdvigi-api/internal/services"
	"clubdvigi-api/internal/shopify"
)

// Container holds all application dependencies
type Container struct {
	Config              *config.Config
	Logger              *logrus.Logger
	Registry            *prometheus.Registry
	Metrics             *metrics.Metrics
	ShopifyClient       *shopify.Client
	RegistrationService services.RegistrationService

	// Internal dependencies
	httpClient *http.Client
	services   *services.ServiceContainer
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := config.NewLogger(cfg.Logging)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	httpClient := &http.Client{Timeout: cfg.Shopify.Timeout}
	client, err := shopify.NewClient(cfg.Shopify, cfg.Warranty,
		shopify.WithHTTPClient(httpClient),
		shopify.WithLogger(logger),
		shopify.WithMetrics(m),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create shopify client: %w", err)
	}

	if !client.IsConfigured() {
		logger.Warn("SHOPIFY_STORE or SHOPIFY_ADMIN_TOKEN not set; requests will fail until configured")
	}

	serviceContainer, err := services.NewServiceContainer(client, &services.RegistrationConfig{
		SerializeByEmail: cfg.SerializeByEmail,
		Logger:           logger,
		Metrics:          m,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create service container: %w", err)
	}

	logger.WithFields(logrus.Fields{
		"mode":        config.GetDeploymentMode(),
		"api_version": cfg.Shopify.APIVersion,
	}).Info("Container initialized")

	return &Container{
		Config:              cfg,
		Logger:              logger,
		Registry:            registry,
		Metrics:             m,
		ShopifyClient:       client,
		RegistrationService: serviceContainer.RegistrationService,
		httpClient:          httpClient,
		services:            serviceContainer,
	}, nil
}

// Close cleans up all resources
func (c *Container) Close() error {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
	return nil
}
