package shopify

import (
	"encoding/json"
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// Operation is a parsed GraphQL document sent to the Admin API
type Operation struct {
	Name  string
	Query string
	Kind  ast.Operation
}

const searchCustomerQuery = `
      query($q:String!){
        customers(first:1, query:$q){
          nodes{ id email tags }
        }
      }`

const lookupCustomerQuery = `
      query ($q: String!) {
        customers(first: 1, query: $q) {
          nodes { id email firstName lastName phone }
        }
      }`

const customerCreateMutation = `
        mutation($input:CustomerInput!){
          customerCreate(input:$input){
            customer{ id }
            userErrors{ message }
          }
        }`

const customerUpdateMutation = `
        mutation($id:ID!,$input:CustomerInput!){
          customerUpdate(id:$id,input:$input){
            customer{ id }
            userErrors{ message }
          }
        }`

const customerMetafieldQueryTemplate = `
      query($id:ID!){
        customer(id:$id){
          metafield(namespace:%s, key:%s){
            id
            value
          }
        }
      }`

const metafieldsSetMutationTemplate = `
      mutation($ownerId:ID!,$value:String!){
        metafieldsSet(metafields:[{
          ownerId:$ownerId,
          namespace:%s,
          key:%s,
          type:"json",
          value:$value
        }]){
          userErrors{ message }
        }
      }`

// operations holds the documents a Client sends
type operations struct {
	searchCustomer Operation
	lookupCustomer Operation
	customerCreate Operation
	customerUpdate Operation
	getMetafield   Operation
	setMetafield   Operation
}

// newOperations builds and parses every document. The metafield namespace
// and key are inlined as GraphQL string literals.
func newOperations(namespace, key string) (*operations, error) {
	ns, err := stringLiteral(namespace)
	if err != nil {
		return nil, err
	}
	k, err := stringLiteral(key)
	if err != nil {
		return nil, err
	}

	ops := &operations{}
	defs := []struct {
		target *Operation
		name   string
		query  string
	}{
		{&ops.searchCustomer, "customers", searchCustomerQuery},
		{&ops.lookupCustomer, "customers", lookupCustomerQuery},
		{&ops.customerCreate, "customerCreate", customerCreateMutation},
		{&ops.customerUpdate, "customerUpdate", customerUpdateMutation},
		{&ops.getMetafield, "customerMetafield", fmt.Sprintf(customerMetafieldQueryTemplate, ns, k)},
		{&ops.setMetafield, "metafieldsSet", fmt.Sprintf(metafieldsSetMutationTemplate, ns, k)},
	}

	for _, def := range defs {
		op, err := ParseOperation(def.name, def.query)
		if err != nil {
			return nil, err
		}
		*def.target = op
	}

	return ops, nil
}

// ParseOperation checks that query is a single, syntactically valid
// GraphQL operation
func ParseOperation(name, query string) (Operation, error) {
	doc, err := parser.ParseQuery(&ast.Source{Name: name, Input: query})
	if err != nil {
		return Operation{}, fmt.Errorf("invalid %s document: %w", name, err)
	}
	if len(doc.Operations) != 1 {
		return Operation{}, fmt.Errorf("invalid %s document: expected one operation, got %d", name, len(doc.Operations))
	}

	return Operation{
		Name:  name,
		Query: query,
		Kind:  doc.Operations[0].Operation,
	}, nil
}

func stringLiteral(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("metafield namespace and key must not be empty")
	}
	// JSON string escaping is valid GraphQL string escaping
	raw, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
