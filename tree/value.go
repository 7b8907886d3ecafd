package tree

import (
	"maps"
	"slices"
)

// Value is an immutable tree value. The zero Value is null.
//
// Mapping keys and set elements are kept sorted by Compare, so two
// structurally equal values have identical layouts. Values never change
// after construction; derived values share the slices of unchanged
// substructure.
type Value struct {
	kind    Kind
	b       bool
	i64     int64
	f64     float64
	isFloat bool
	str     string

	// keys holds mapping keys, set elements, or record field names (as
	// strings) in sorted order; vals is parallel to keys except for sets.
	keys  []Value
	vals  []Value
	rtype *RecordType
}

type KeyVal struct {
	Key Value
	Val Value
}

func Null() Value {
	return Value{}
}

func FromBool(v bool) Value {
	return Value{kind: BoolKind, b: v}
}

func FromInt(v int64) Value {
	return Value{kind: NumberKind, i64: v}
}

func FromFloat(f float64) Value {
	return Value{kind: NumberKind, f64: f, isFloat: true}
}

func FromString(v string) Value {
	return Value{kind: StringKind, str: v}
}

func FromMap(m map[string]Value) Value {
	res := Value{kind: MappingKind}
	keys := slices.Sorted(maps.Keys(m))
	res.keys = make([]Value, len(keys))
	res.vals = make([]Value, len(keys))
	for i, k := range keys {
		res.keys[i] = FromString(k)
		res.vals[i] = m[k]
	}
	return res
}

// FromKeyVals builds a mapping. When a key occurs more than once the last
// value wins.
func FromKeyVals(kvs []KeyVal) Value {
	ev := &Evolver{src: Value{kind: MappingKind}}
	for _, kv := range kvs {
		ev.put(kv.Key, kv.Val)
	}
	res := ev.src
	res.keys, res.vals = ev.keys, ev.vals
	return res
}

// FromSlice builds a set from vs, dropping duplicates.
func FromSlice(vs []Value) Value {
	elems := slices.Clone(vs)
	slices.SortFunc(elems, Compare)
	elems = slices.CompactFunc(elems, Equal)
	return Value{kind: SetKind, keys: elems}
}

func EmptyMapping() Value { return Value{kind: MappingKind} }
func EmptySet() Value     { return Value{kind: SetKind} }

func (v Value) Kind() Kind        { return v.kind }
func (v Value) IsNull() bool      { return v.kind == NullKind }
func (v Value) Bool() bool        { return v.b }
func (v Value) Str() string       { return v.str }
func (v Value) IsFloat() bool     { return v.isFloat }
func (v Value) Int() int64        { return v.i64 }
func (v Value) Float() float64    { return v.f64 }
func (v Value) IsScalar() bool    { return !v.kind.IsContainer() }
func (v Value) IsContainer() bool { return v.kind.IsContainer() }

// Len returns the number of keys, elements or set fields of a container and
// 0 for scalars.
func (v Value) Len() int { return len(v.keys) }

// Keys returns the sorted keys of a mapping or the set field names of a
// record. The result must not be modified.
func (v Value) Keys() []Value {
	if v.kind == SetKind {
		return nil
	}
	return v.keys
}

// Elems returns the sorted elements of a set. The result must not be
// modified.
func (v Value) Elems() []Value {
	if v.kind != SetKind {
		return nil
	}
	return v.keys
}

// Values returns the mapping values (or record field values) parallel to
// Keys. The result must not be modified.
func (v Value) Values() []Value {
	return v.vals
}

func (v Value) RecordType() *RecordType {
	return v.rtype
}

// Lookup returns the value stored under key in a mapping.
func (v Value) Lookup(key Value) (Value, bool) {
	if v.kind != MappingKind {
		return Value{}, false
	}
	i, ok := v.index(key)
	if !ok {
		return Value{}, false
	}
	return v.vals[i], true
}

// Field returns the value of a set record field.
func (v Value) Field(name string) (Value, bool) {
	if v.kind != RecordKind {
		return Value{}, false
	}
	i, ok := v.index(FromString(name))
	if !ok {
		return Value{}, false
	}
	return v.vals[i], true
}

// Has reports whether elem is an element of a set.
func (v Value) Has(elem Value) bool {
	if v.kind != SetKind {
		return false
	}
	_, ok := v.index(elem)
	return ok
}

// Fields projects a record to a mapping from field name to value, covering
// only the fields that are set.
func (v Value) Fields() Value {
	if v.kind != RecordKind {
		return Value{}
	}
	return Value{kind: MappingKind, keys: v.keys, vals: v.vals}
}

func (v Value) Equal(o Value) bool {
	return Compare(v, o) == 0
}

func Equal(a, b Value) bool {
	return Compare(a, b) == 0
}

// SameType reports whether a and b are of the same kind and, for records,
// of the same record type.
func SameType(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	if a.kind == RecordKind {
		return a.rtype.Name() == b.rtype.Name()
	}
	return true
}

func (v Value) index(key Value) (int, bool) {
	return slices.BinarySearchFunc(v.keys, key, Compare)
}
