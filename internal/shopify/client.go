package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"clubdvigi-api/internal/config"
	"clubdvigi-api/internal/metrics"
)

const (
	accessTokenHeader = "X-Shopify-Access-Token"
	maxResponseBytes  = 4 << 20
	maxErrorBodyBytes = 512
)

// Client calls the Shopify GraphQL Admin API
type Client struct {
	endpoint   string
	token      string
	configured bool
	httpClient *http.Client
	ops        *operations
	logger     *logrus.Logger
	metrics    metrics.UpstreamMetrics
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *logrus.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the upstream call recorder
func WithMetrics(m metrics.UpstreamMetrics) Option {
	return func(c *Client) {
		if m != nil {
			c.metrics = m
		}
	}
}

// NewClient creates a client for the configured store. A client without
// credentials is still returned; its calls fail with ErrNotConfigured.
func NewClient(cfg config.ShopifyConfig, warranty config.WarrantyConfig, opts ...Option) (*Client, error) {
	ops, err := newOperations(warranty.Namespace, warranty.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to build shopify operations: %w", err)
	}

	c := &Client{
		endpoint:   cfg.Endpoint(),
		token:      strings.TrimSpace(cfg.AdminToken),
		configured: cfg.IsConfigured(),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		ops:        ops,
		logger:     logrus.StandardLogger(),
		metrics:    metrics.Noop{},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// IsConfigured reports whether the store and access token are set
func (c *Client) IsConfigured() bool {
	return c != nil && c.configured
}

// Execute posts op with variables and decodes the data member into out.
// Top-level GraphQL errors are returned as *GraphQLError.
func (c *Client) Execute(ctx context.Context, op Operation, variables map[string]any, out any) (err error) {
	if !c.IsConfigured() {
		return ErrNotConfigured
	}

	start := time.Now()
	defer func() {
		c.metrics.ObserveCall(op.Name, outcome(err), time.Since(start))
	}()

	body, err := json.Marshal(Request{Query: op.Query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode %s request: %w", op.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", op.Name, err)
	}
	req.Header.Set(accessTokenHeader, c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("shopify %s request failed: %w", op.Name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read shopify %s response: %w", op.Name, err)
	}

	c.logger.WithFields(logrus.Fields{
		"operation":   op.Name,
		"status_code": resp.StatusCode,
		"latency_ms":  float64(time.Since(start).Nanoseconds()) / 1000000,
	}).Debug("Shopify GraphQL call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &HTTPError{
			Operation:  op.Name,
			StatusCode: resp.StatusCode,
			Body:       truncate(strings.TrimSpace(string(raw)), maxErrorBodyBytes),
		}
	}

	var envelope response
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, op.Name, err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return &GraphQLError{Operation: op.Name, Messages: messages}
	}

	if out == nil || len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, op.Name, err)
	}

	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
