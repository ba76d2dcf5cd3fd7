package shopify

import (
	"context"
	"fmt"
)

// FindCustomerByEmail returns the first customer matching email with its
// tags, or nil when the search has no result
func (c *Client) FindCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	return c.searchCustomer(ctx, c.ops.searchCustomer, email)
}

// LookupCustomerByEmail returns the first customer matching email with its
// contact fields, or nil when the search has no result
func (c *Client) LookupCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	return c.searchCustomer(ctx, c.ops.lookupCustomer, email)
}

func (c *Client) searchCustomer(ctx context.Context, op Operation, email string) (*Customer, error) {
	var data customersQueryData
	if err := c.Execute(ctx, op, map[string]any{"q": "email:" + email}, &data); err != nil {
		return nil, err
	}

	if data.Customers == nil || len(data.Customers.Nodes) == 0 {
		return nil, nil
	}

	customer := data.Customers.Nodes[0]
	return &customer, nil
}

// CreateCustomer creates a customer and returns its id
func (c *Client) CreateCustomer(ctx context.Context, input CustomerInput) (string, error) {
	var data customerCreateData
	if err := c.Execute(ctx, c.ops.customerCreate, map[string]any{"input": input}, &data); err != nil {
		return "", err
	}

	payload := data.CustomerCreate
	if payload == nil {
		return "", fmt.Errorf("%w: customerCreate payload missing", ErrMalformedResponse)
	}
	if err := firstUserError(c.ops.customerCreate.Name, payload.UserErrors); err != nil {
		return "", err
	}
	if payload.Customer == nil || payload.Customer.ID == "" {
		return "", fmt.Errorf("%w: customerCreate returned no customer id", ErrMalformedResponse)
	}

	return payload.Customer.ID, nil
}

// UpdateCustomer replaces the customer's input fields and tags
func (c *Client) UpdateCustomer(ctx context.Context, id string, input CustomerInput) error {
	var data customerUpdateData
	vars := map[string]any{"id": id, "input": input}
	if err := c.Execute(ctx, c.ops.customerUpdate, vars, &data); err != nil {
		return err
	}

	if data.CustomerUpdate == nil {
		return nil
	}
	return firstUserError(c.ops.customerUpdate.Name, data.CustomerUpdate.UserErrors)
}

// GetMetafield reads the warranty metafield of a customer. A customer
// without the metafield yields nil.
func (c *Client) GetMetafield(ctx context.Context, ownerID string) (*Metafield, error) {
	var data customerMetafieldData
	if err := c.Execute(ctx, c.ops.getMetafield, map[string]any{"id": ownerID}, &data); err != nil {
		return nil, err
	}

	if data.Customer == nil {
		return nil, nil
	}
	return data.Customer.Metafield, nil
}

// SetMetafield writes value as the warranty metafield of a customer
func (c *Client) SetMetafield(ctx context.Context, ownerID, value string) error {
	var data metafieldsSetData
	vars := map[string]any{"ownerId": ownerID, "value": value}
	if err := c.Execute(ctx, c.ops.setMetafield, vars, &data); err != nil {
		return err
	}

	if data.MetafieldsSet == nil {
		return nil
	}
	return firstUserError(c.ops.setMetafield.Name, data.MetafieldsSet.UserErrors)
}

func firstUserError(operation string, userErrors []userErrorPayload) error {
	if len(userErrors) == 0 {
		return nil
	}
	return &UserError{
		Operation: operation,
		Field:     userErrors[0].Field,
		Message:   userErrors[0].Message,
	}
}
