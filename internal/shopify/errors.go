package shopify

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotConfigured is returned when the store or access token is missing
	ErrNotConfigured = errors.New("shopify client not configured")
	// ErrMalformedResponse is returned when the response body is not a GraphQL envelope
	ErrMalformedResponse = errors.New("malformed shopify response")
)

// UserError is the first entry of a mutation's userErrors list
type UserError struct {
	Operation string
	Field     []string
	Message   string
}

func (e *UserError) Error() string {
	return e.Message
}

// GraphQLError wraps the top-level errors list of a response
type GraphQLError struct {
	Operation string
	Messages  []string
}

func (e *GraphQLError) Error() string {
	return fmt.Sprintf("shopify %s failed: %s", e.Operation, strings.Join(e.Messages, "; "))
}

// HTTPError represents a non-2xx response
type HTTPError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("shopify %s failed: status=%d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("shopify %s failed: status=%d body=%s", e.Operation, e.StatusCode, e.Body)
}

// IsUserError returns the UserError wrapped in err, if any
func IsUserError(err error) (*UserError, bool) {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr, true
	}
	return nil, false
}

// outcome labels an error for metrics
func outcome(err error) string {
	var (
		userErr *UserError
		gqlErr  *GraphQLError
		httpErr *HTTPError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &userErr):
		return "user_error"
	case errors.As(err, &gqlErr):
		return "graphql_error"
	case errors.As(err, &httpErr):
		return "http_error"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed"
	default:
		return "transport_error"
	}
}
