package schema

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/bitmk2/flocker/debug"
	"github.com/bitmk2/flocker/tree"
)

var ErrSchema = errors.New("schema error")

type Schema struct {
	Name    string       `yaml:"name"`
	Records []RecordDecl `yaml:"records"`
}

type RecordDecl struct {
	Name       string          `yaml:"name"`
	Doc        string          `yaml:"doc,omitempty"`
	Fields     []FieldDecl     `yaml:"fields"`
	Invariants []InvariantDecl `yaml:"invariants,omitempty"`
}

type FieldDecl struct {
	Name string `yaml:"name"`
	// Kind is a tree.Kind name; empty means any kind.
	Kind      string `yaml:"kind,omitempty"`
	Mandatory bool   `yaml:"mandatory,omitempty"`
}

type InvariantDecl struct {
	Name string `yaml:"name"`
	Expr string `yaml:"expr"`
}

// Parse decodes a schema document. JSON documents are accepted as YAML.
func Parse(d []byte) (*Schema, error) {
	s := &Schema{}
	if err := yaml.UnmarshalWithOptions(d, s, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	if s.Name == "" {
		return nil, fmt.Errorf("%w: schema must have a name", ErrSchema)
	}
	return s, nil
}

// ParseFile parses the schema in file p.
func ParseFile(p string) (*Schema, error) {
	d, err := os.ReadFile(p)
	if err != nil {
		return nil, err
	}
	s, err := Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p, err)
	}
	return s, nil
}

// RecordTypes builds the record types declared by s. Nothing is
// registered.
func (s *Schema) RecordTypes() ([]*tree.RecordType, error) {
	res := make([]*tree.RecordType, 0, len(s.Records))
	seen := map[string]bool{}
	for i := range s.Records {
		decl := &s.Records[i]
		if seen[decl.Name] {
			return nil, fmt.Errorf("%w: %s: record %q declared twice", ErrSchema, s.Name, decl.Name)
		}
		seen[decl.Name] = true
		rt, err := decl.recordType()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSchema, s.Name, err)
		}
		res = append(res, rt)
	}
	return res, nil
}

func (decl *RecordDecl) recordType() (*tree.RecordType, error) {
	fields := make([]tree.FieldSpec, len(decl.Fields))
	for i, f := range decl.Fields {
		kind := tree.AnyKind
		if f.Kind != "" {
			if err := kind.UnmarshalText([]byte(f.Kind)); err != nil {
				return nil, fmt.Errorf("record %s field %s: %w", decl.Name, f.Name, err)
			}
		}
		fields[i] = tree.FieldSpec{Name: f.Name, Kind: kind, Mandatory: f.Mandatory}
	}
	invs := make([]*tree.Invariant, len(decl.Invariants))
	for i, inv := range decl.Invariants {
		compiled, err := tree.ExprInvariant(inv.Name, inv.Expr)
		if err != nil {
			return nil, fmt.Errorf("record %s: %w", decl.Name, err)
		}
		invs[i] = compiled
	}
	if debug.Schema() {
		debug.Logf("schema: record %s: %d fields, %d invariants\n", decl.Name, len(fields), len(invs))
	}
	return tree.NewRecordType(decl.Name, fields, invs...)
}
