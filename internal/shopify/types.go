package shopify

import "encoding/json"

// Customer is the subset of the Admin API Customer object this service reads
type Customer struct {
	ID        string   `json:"id"`
	Email     string   `json:"email"`
	FirstName *string  `json:"firstName"`
	LastName  *string  `json:"lastName"`
	Phone     *string  `json:"phone"`
	Tags      []string `json:"tags"`
}

// CustomerInput is the CustomerInput object for customerCreate and customerUpdate.
// Empty optional fields are omitted rather than sent as null.
type CustomerInput struct {
	Email     string   `json:"email"`
	FirstName string   `json:"firstName,omitempty"`
	LastName  string   `json:"lastName,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Tags      []string `json:"tags"`
}

// Metafield is a customer metafield value
type Metafield struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Request is the JSON body posted to the GraphQL endpoint
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// response is the GraphQL envelope
type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

type userErrorPayload struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type customersQueryData struct {
	Customers *struct {
		Nodes []Customer `json:"nodes"`
	} `json:"customers"`
}

type customerCreateData struct {
	CustomerCreate *struct {
		Customer *struct {
			ID string `json:"id"`
		} `json:"customer"`
		UserErrors []userErrorPayload `json:"userErrors"`
	} `json:"customerCreate"`
}

type customerUpdateData struct {
	CustomerUpdate *struct {
		Customer *struct {
			ID string `json:"id"`
		} `json:"customer"`
		UserErrors []userErrorPayload `json:"userErrors"`
	} `json:"customerUpdate"`
}

type customerMetafieldData struct {
	Customer *struct {
		Metafield *Metafield `json:"metafield"`
	} `json:"customer"`
}

type metafieldsSetData struct {
	MetafieldsSet *struct {
		UserErrors []userErrorPayload `json:"userErrors"`
	} `json:"metafieldsSet"`
}
