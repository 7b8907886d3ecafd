package tree

import (
	"encoding/json"
	"fmt"
)

// valueJSON is the tagged serialized form of a Value. Every value carries
// its kind, so ints and floats, sets and mappings, and records of different
// types stay distinct across a round trip.
type valueJSON struct {
	Type   Kind     `json:"type"`
	Bool   *bool    `json:"bool,omitempty"`
	Int    *int64   `json:"int,omitempty"`
	Float  *float64 `json:"float,omitempty"`
	String *string  `json:"string,omitempty"`
	Record string   `json:"record,omitempty"`
	Fields []string `json:"fields,omitempty"`
	Keys   []Value  `json:"keys,omitempty"`
	Values []Value  `json:"values,omitempty"`
	Items  []Value  `json:"items,omitempty"`
}

func (v Value) MarshalJSON() ([]byte, error) {
	base := &valueJSON{Type: v.kind}
	switch v.kind {
	case NullKind:
	case BoolKind:
		base.Bool = &v.b
	case NumberKind:
		if v.isFloat {
			base.Float = &v.f64
		} else {
			base.Int = &v.i64
		}
	case StringKind:
		base.String = &v.str
	case MappingKind:
		base.Keys = v.keys
		base.Values = v.vals
	case SetKind:
		base.Items = v.keys
	case RecordKind:
		base.Record = v.rtype.Name()
		base.Fields = make([]string, len(v.keys))
		for i, k := range v.keys {
			base.Fields[i] = k.str
		}
		base.Values = v.vals
	default:
		return nil, fmt.Errorf("cannot marshal kind %s", v.kind)
	}
	return json.Marshal(base)
}

// UnmarshalJSON decodes the tagged form. Records are looked up by name in
// the registry and validated.
func (v *Value) UnmarshalJSON(d []byte) error {
	tmp := &valueJSON{}
	if err := json.Unmarshal(d, tmp); err != nil {
		return err
	}
	switch tmp.Type {
	case NullKind:
		*v = Null()
	case BoolKind:
		if tmp.Bool == nil {
			return fmt.Errorf("missing bool for Bool value")
		}
		*v = FromBool(*tmp.Bool)
	case NumberKind:
		switch {
		case tmp.Int != nil:
			*v = FromInt(*tmp.Int)
		case tmp.Float != nil:
			*v = FromFloat(*tmp.Float)
		default:
			return fmt.Errorf("missing int or float for Number value")
		}
	case StringKind:
		if tmp.String == nil {
			return fmt.Errorf("missing string for String value")
		}
		*v = FromString(*tmp.String)
	case MappingKind:
		if len(tmp.Keys) != len(tmp.Values) {
			return fmt.Errorf("mapping with %d keys and %d values", len(tmp.Keys), len(tmp.Values))
		}
		kvs := make([]KeyVal, len(tmp.Keys))
		for i := range tmp.Keys {
			kvs[i] = KeyVal{Key: tmp.Keys[i], Val: tmp.Values[i]}
		}
		*v = FromKeyVals(kvs)
	case SetKind:
		*v = FromSlice(tmp.Items)
	case RecordKind:
		if len(tmp.Fields) != len(tmp.Values) {
			return fmt.Errorf("record with %d fields and %d values", len(tmp.Fields), len(tmp.Values))
		}
		rt, err := LookupType(tmp.Record)
		if err != nil {
			return err
		}
		fields := make(map[string]Value, len(tmp.Fields))
		for i, f := range tmp.Fields {
			fields[f] = tmp.Values[i]
		}
		rec, err := rt.New(fields)
		if err != nil {
			return err
		}
		*v = rec
	default:
		return fmt.Errorf("invalid kind %s", tmp.Type)
	}
	return nil
}

type segmentJSON struct {
	Field  *string `json:"field,omitempty"`
	Key    *Value  `json:"key,omitempty"`
	Member *Value  `json:"member,omitempty"`
}

// MarshalJSON encodes a segment as {"field": name}, {"key": value} or
// {"member": value}.
func (s Segment) MarshalJSON() ([]byte, error) {
	var tmp segmentJSON
	switch s.Kind {
	case FieldSegment:
		tmp.Field = &s.Name
	case KeySegment:
		tmp.Key = &s.Key
	case MemberSegment:
		tmp.Member = &s.Key
	default:
		return nil, fmt.Errorf("invalid segment kind %d", s.Kind)
	}
	return json.Marshal(tmp)
}

func (s *Segment) UnmarshalJSON(d []byte) error {
	var tmp segmentJSON
	if err := json.Unmarshal(d, &tmp); err != nil {
		return err
	}
	n := 0
	if tmp.Field != nil {
		*s = Field(*tmp.Field)
		n++
	}
	if tmp.Key != nil {
		*s = Key(*tmp.Key)
		n++
	}
	if tmp.Member != nil {
		*s = Member(*tmp.Member)
		n++
	}
	if n != 1 {
		return fmt.Errorf("path segment must have exactly one of field, key, member: %s", d)
	}
	return nil
}
