package services

import "errors"

var (
	// ErrEmailRequired is returned when a request carries no email
	ErrEmailRequired = errors.New("email is required")
	// ErrNotConfigured is returned when the Shopify store or token is missing
	ErrNotConfigured = errors.New("shopify store or admin token not configured")
	// ErrCustomerNotFound is returned by Lookup when no customer matches
	ErrCustomerNotFound = errors.New("customer not found")
)
