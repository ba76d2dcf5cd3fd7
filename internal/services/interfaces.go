package services

import (
	"context"

	"clubdvigi-api/internal/models"
	"clubdvigi-api/internal/shopify"
)

// RegistrationService defines the Club Dvigi registration operations
type RegistrationService interface {
	// Register creates or updates the customer, merges tags and records the
	// purchased product in the warranty list
	Register(ctx context.Context, req *models.RegistrationRequest) (*models.RegistrationResult, error)

	// Lookup returns the contact fields of the customer registered with an email
	Lookup(ctx context.Context, req *models.LookupRequest) (*models.ContactDetails, error)
}

// CustomerStore is the customer backend the registration flow talks to.
// *shopify.Client implements it.
type CustomerStore interface {
	IsConfigured() bool
	FindCustomerByEmail(ctx context.Context, email string) (*shopify.Customer, error)
	LookupCustomerByEmail(ctx context.Context, email string) (*shopify.Customer, error)
	CreateCustomer(ctx context.Context, input shopify.CustomerInput) (string, error)
	UpdateCustomer(ctx context.Context, id string, input shopify.CustomerInput) error
	GetMetafield(ctx context.Context, ownerID string) (*shopify.Metafield, error)
	SetMetafield(ctx context.Context, ownerID, value string) error
}

var _ CustomerStore = (*shopify.Client)(nil)
