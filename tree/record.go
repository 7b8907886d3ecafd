package tree

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// FieldSpec declares a record field.
type FieldSpec struct {
	Name string
	// Kind constrains the field value. NullKind (the zero value) and AnyKind
	// leave the field unconstrained. A null value is accepted for any
	// constraint unless the field is Mandatory.
	Kind      Kind
	Mandatory bool
}

// RecordType describes a family of records: their fields and the invariants
// that must hold whenever a record is constructed.
type RecordType struct {
	name       string
	fields     []FieldSpec
	byName     map[string]int
	invariants []*Invariant
}

func NewRecordType(name string, fields []FieldSpec, invs ...*Invariant) (*RecordType, error) {
	if name == "" {
		return nil, fmt.Errorf("record type with empty name")
	}
	rt := &RecordType{
		name:       name,
		fields:     slices.Clone(fields),
		byName:     make(map[string]int, len(fields)),
		invariants: invs,
	}
	for i, f := range fields {
		if f.Name == "" {
			return nil, fmt.Errorf("record type %s: field %d has no name", name, i)
		}
		if _, dup := rt.byName[f.Name]; dup {
			return nil, fmt.Errorf("record type %s: duplicate field %q", name, f.Name)
		}
		rt.byName[f.Name] = i
	}
	for _, inv := range invs {
		if inv == nil {
			return nil, fmt.Errorf("record type %s: nil invariant", name)
		}
	}
	return rt, nil
}

// MustRecordType is like NewRecordType but panics on error.
func MustRecordType(name string, fields []FieldSpec, invs ...*Invariant) *RecordType {
	rt, err := NewRecordType(name, fields, invs...)
	if err != nil {
		panic(err)
	}
	return rt
}

func (rt *RecordType) Name() string {
	if rt == nil {
		return ""
	}
	return rt.name
}

func (rt *RecordType) Fields() []FieldSpec {
	return slices.Clone(rt.fields)
}

func (rt *RecordType) Invariants() []*Invariant {
	return slices.Clone(rt.invariants)
}

func (rt *RecordType) FieldSpec(name string) (FieldSpec, bool) {
	i, ok := rt.byName[name]
	if !ok {
		return FieldSpec{}, false
	}
	return rt.fields[i], true
}

func (rt *RecordType) String() string {
	return rt.Name()
}

// New constructs a validated record with the given fields set.
func (rt *RecordType) New(fields map[string]Value) (Value, error) {
	res := Value{kind: RecordKind, rtype: rt}
	names := slices.Sorted(maps.Keys(fields))
	res.keys = make([]Value, len(names))
	res.vals = make([]Value, len(names))
	for i, name := range names {
		res.keys[i] = FromString(name)
		res.vals[i] = fields[name]
	}
	if err := rt.validate(res); err != nil {
		return Value{}, err
	}
	return res, nil
}

// MustNew is like New but panics on error.
func (rt *RecordType) MustNew(fields map[string]Value) Value {
	v, err := rt.New(fields)
	if err != nil {
		panic(err)
	}
	return v
}

func (rt *RecordType) checkField(name string) error {
	if _, ok := rt.byName[name]; !ok {
		return fmt.Errorf("%w: record %s has no field %q", ErrNoSuchItem, rt.name, name)
	}
	return nil
}

func (rt *RecordType) validate(rec Value) error {
	for i, k := range rec.keys {
		spec, ok := rt.FieldSpec(k.str)
		if !ok {
			return &InvariantViolationError{Record: rt.name, Invariant: k.str, Reason: "no such field"}
		}
		v := rec.vals[i]
		if spec.Kind == AnyKind || spec.Kind == NullKind || v.kind == NullKind || v.kind == spec.Kind {
			continue
		}
		return &InvariantViolationError{
			Record:    rt.name,
			Invariant: spec.Name,
			Reason:    fmt.Sprintf("expected %s, got %s", spec.Kind, v.kind),
		}
	}
	for _, spec := range rt.fields {
		if !spec.Mandatory {
			continue
		}
		v, ok := rec.Field(spec.Name)
		if !ok || v.IsNull() {
			return &InvariantViolationError{Record: rt.name, Invariant: spec.Name, Reason: "mandatory field not set"}
		}
	}
	for _, inv := range rt.invariants {
		if err := inv.check(rec); err != nil {
			return &InvariantViolationError{Record: rt.name, Invariant: inv.Name, Reason: err.Error()}
		}
	}
	return nil
}

var registry = struct {
	sync.RWMutex
	types map[string]*RecordType
}{types: map[string]*RecordType{}}

// Register makes rt available for decoding by name. Registering the same
// type twice is a no-op; registering a different type under a name already
// in use is an error.
func Register(rt *RecordType) error {
	return RegisterAll(rt)
}

// RegisterAll registers every type in rts, or none of them: a name
// conflict with the registry or within rts leaves the registry unchanged.
func RegisterAll(rts ...*RecordType) error {
	registry.Lock()
	defer registry.Unlock()
	batch := make(map[string]*RecordType, len(rts))
	for _, rt := range rts {
		prev, ok := registry.types[rt.name]
		if !ok {
			prev, ok = batch[rt.name]
		}
		if ok && prev != rt {
			return fmt.Errorf("record type %q already registered", rt.name)
		}
		batch[rt.name] = rt
	}
	maps.Copy(registry.types, batch)
	return nil
}

// MustRegister is like Register but panics on error.
func MustRegister(rt *RecordType) *RecordType {
	if err := Register(rt); err != nil {
		panic(err)
	}
	return rt
}

func LookupType(name string) (*RecordType, error) {
	registry.RLock()
	defer registry.RUnlock()
	rt, ok := registry.types[name]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownRecordType, name)
	}
	return rt, nil
}

// RegisteredTypes returns the registered record types sorted by name.
func RegisteredTypes() []*RecordType {
	registry.RLock()
	defer registry.RUnlock()
	names := slices.Sorted(maps.Keys(registry.types))
	res := make([]*RecordType, len(names))
	for i, n := range names {
		res[i] = registry.types[n]
	}
	return res
}
