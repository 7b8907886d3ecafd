package tree

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrNoSuchItem  = errors.New("no such item")
	ErrUnsupported = errors.New("operation not supported by container")
)

// Evolver is a mutable staging copy of a mapping, set or record.
//
// An Evolver is produced from an immutable value, mutated by its owner and
// consumed exactly once by Persistent. The first mutation copies the
// backing storage, so the source value is never affected. Record
// validation is deferred to Persistent, which lets several interdependent
// fields change together.
type Evolver struct {
	src   Value
	keys  []Value
	vals  []Value
	owned bool
	dirty bool
	done  bool
}

// Evolver returns a staging copy of a container value.
func (v Value) Evolver() (*Evolver, error) {
	if !v.kind.IsContainer() {
		return nil, fmt.Errorf("%w: %s", ErrNotContainer, v.kind)
	}
	return &Evolver{src: v, keys: v.keys, vals: v.vals}, nil
}

func (e *Evolver) Kind() Kind {
	return e.src.kind
}

// Dirty reports whether any mutation was applied.
func (e *Evolver) Dirty() bool {
	return e.dirty
}

// Lookup returns the staged value of a mapping key or record field.
func (e *Evolver) Lookup(key Value) (Value, bool) {
	e.live()
	if e.src.kind == SetKind {
		return Value{}, false
	}
	i, found := slices.BinarySearchFunc(e.keys, key, Compare)
	if !found {
		return Value{}, false
	}
	return e.vals[i], true
}

// Set sets a mapping key or a record field.
func (e *Evolver) Set(key, val Value) error {
	e.live()
	switch e.src.kind {
	case MappingKind:
	case RecordKind:
		if err := e.fieldName(key); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: set on %s", ErrUnsupported, e.src.kind)
	}
	e.put(key, val)
	return nil
}

// Remove removes a mapping key, a set element or a record field. Removing
// an item that is not present is an error.
func (e *Evolver) Remove(item Value) error {
	e.live()
	if e.src.kind == RecordKind {
		if err := e.fieldName(item); err != nil {
			return err
		}
	}
	i, found := slices.BinarySearchFunc(e.keys, item, Compare)
	if !found {
		return fmt.Errorf("%w: %s", ErrNoSuchItem, item)
	}
	e.own()
	e.keys = slices.Delete(e.keys, i, i+1)
	if e.src.kind != SetKind {
		e.vals = slices.Delete(e.vals, i, i+1)
	}
	return nil
}

// Add adds an element to a set. Adding an element already present has no
// effect.
func (e *Evolver) Add(item Value) error {
	e.live()
	if e.src.kind != SetKind {
		return fmt.Errorf("%w: add on %s", ErrUnsupported, e.src.kind)
	}
	i, found := slices.BinarySearchFunc(e.keys, item, Compare)
	if found {
		return nil
	}
	e.own()
	e.keys = slices.Insert(e.keys, i, item)
	return nil
}

// Persistent finalizes the evolver. For records, this is where the record
// type's field constraints and invariants are checked.
func (e *Evolver) Persistent() (Value, error) {
	e.live()
	e.done = true
	if !e.dirty {
		return e.src, nil
	}
	res := e.src
	res.keys = e.keys
	if e.src.kind != SetKind {
		res.vals = e.vals
	}
	if res.kind == RecordKind {
		if err := res.rtype.validate(res); err != nil {
			return Value{}, err
		}
	}
	return res, nil
}

func (e *Evolver) live() {
	if e.done {
		panic("tree: evolver used after Persistent")
	}
}

func (e *Evolver) own() {
	e.dirty = true
	if e.owned {
		return
	}
	e.owned = true
	e.keys = slices.Clone(e.keys)
	if e.src.kind != SetKind {
		e.vals = slices.Clone(e.vals)
	}
}

func (e *Evolver) put(key, val Value) {
	i, found := slices.BinarySearchFunc(e.keys, key, Compare)
	e.own()
	if found {
		e.vals[i] = val
		return
	}
	e.keys = slices.Insert(e.keys, i, key)
	e.vals = slices.Insert(e.vals, i, val)
}

// fieldName resolves key against the record type. An undeclared field is a
// missing item, not a validation failure.
func (e *Evolver) fieldName(key Value) error {
	if key.kind != StringKind {
		return fmt.Errorf("%w: record %s: field name %s is not a string", ErrNoSuchItem, e.src.rtype.Name(), key)
	}
	return e.src.rtype.checkField(key.str)
}
