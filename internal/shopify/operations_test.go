package shopify

import (
	"strings"
	"testing"

	"github.com/vektah/gqlparser/v2/ast"
)

func TestNewOperations(t *testing.T) {
	ops, err := newOperations("dvigi", "warranty_items")
	if err != nil {
		t.Fatalf("newOperations() error = %v", err)
	}

	tests := []struct {
		op   Operation
		kind ast.Operation
	}{
		{ops.searchCustomer, ast.Query},
		{ops.lookupCustomer, ast.Query},
		{ops.customerCreate, ast.Mutation},
		{ops.customerUpdate, ast.Mutation},
		{ops.getMetafield, ast.Query},
		{ops.setMetafield, ast.Mutation},
	}
	for _, tt := range tests {
		if tt.op.Kind != tt.kind {
			t.Errorf("%s kind = %q, want %q", tt.op.Name, tt.op.Kind, tt.kind)
		}
	}

	if !strings.Contains(ops.getMetafield.Query, `metafield(namespace:"dvigi", key:"warranty_items")`) {
		t.Errorf("metafield query = %q", ops.getMetafield.Query)
	}
	if !strings.Contains(ops.setMetafield.Query, `type:"json"`) {
		t.Errorf("metafieldsSet query = %q", ops.setMetafield.Query)
	}
}

func TestNewOperations_EscapesNamespace(t *testing.T) {
	ops, err := newOperations(`dv"igi`, "warranty_items")
	if err != nil {
		t.Fatalf("newOperations() error = %v", err)
	}
	if !strings.Contains(ops.getMetafield.Query, `namespace:"dv\"igi"`) {
		t.Errorf("metafield query = %q", ops.getMetafield.Query)
	}
}

func TestNewOperations_RejectsEmpty(t *testing.T) {
	if _, err := newOperations("", "warranty_items"); err == nil {
		t.Error("expected error for empty namespace")
	}
	if _, err := newOperations("dvigi", ""); err == nil {
		t.Error("expected error for empty key")
	}
}

func TestParseOperation(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		wantErr bool
	}{
		{"query", `query($q:String!){ customers(first:1, query:$q){ nodes{ id } } }`, false},
		{"syntax error", `query($q:String!){ customers(first:1`, true},
		{"two operations", `query A { shop { id } } query B { shop { id } }`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOperation(tt.name, tt.query)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseOperation() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
