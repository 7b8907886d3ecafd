package schema

import (
	"fmt"
	"maps"
	"sync"

	"github.com/bitmk2/flocker/tree"
)

var (
	mu       sync.RWMutex
	registry = make(map[string]*Schema)
)

// Register builds the record types of s and registers them with package
// tree, then records s itself under its name. A schema redeclaring a
// record type which is already registered is rejected, and none of its
// record types are registered.
func Register(s *Schema) ([]*tree.RecordType, error) {
	if s == nil {
		return nil, fmt.Errorf("%w: cannot register nil schema", ErrSchema)
	}
	rts, err := s.RecordTypes()
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := registry[s.Name]; exists {
		return nil, fmt.Errorf("%w: schema %q already registered", ErrSchema, s.Name)
	}
	if err := tree.RegisterAll(rts...); err != nil {
		return nil, fmt.Errorf("%w: schema %s: %w", ErrSchema, s.Name, err)
	}
	registry[s.Name] = s
	return rts, nil
}

// Lookup looks up a schema by name
func Lookup(name string) *Schema {
	mu.RLock()
	defer mu.RUnlock()
	s := registry[name]
	return s
}

// All returns all registered schemas
func All() map[string]*Schema {
	mu.RLock()
	defer mu.RUnlock()
	return maps.Clone(registry)
}
