package tree

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
)

// RecordKey is the object key naming the record type of a plain object.
const RecordKey = "$record"

// ToAny converts v to plain Go values as produced by encoding/json:
// mappings become map[string]any (non-string keys use their text form), sets
// become []any in sorted order and records become objects carrying
// RecordKey.
func ToAny(v Value) any {
	switch v.kind {
	case NullKind:
		return nil
	case BoolKind:
		return v.b
	case NumberKind:
		if v.isFloat {
			return v.f64
		}
		return int(v.i64)
	case StringKind:
		return v.str
	case MappingKind:
		res := make(map[string]any, len(v.keys))
		for i, k := range v.keys {
			ks := k.str
			if k.kind != StringKind {
				ks = k.String()
			}
			res[ks] = ToAny(v.vals[i])
		}
		return res
	case SetKind:
		res := make([]any, len(v.keys))
		for i, e := range v.keys {
			res[i] = ToAny(e)
		}
		return res
	case RecordKind:
		res := make(map[string]any, len(v.keys)+1)
		res[RecordKey] = v.rtype.Name()
		for i, k := range v.keys {
			res[k.str] = ToAny(v.vals[i])
		}
		return res
	default:
		panic("impossible production")
	}
}

// FromAny converts plain Go values, such as the output of encoding/json
// with UseNumber or of a YAML decoder, to a Value. Objects with a RecordKey
// entry are decoded as records of that registered type, other objects as
// mappings, and arrays as sets.
func FromAny(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case bool:
		return FromBool(v), nil
	case string:
		return FromString(v), nil
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return FromInt(i), nil
		}
		f, err := v.Float64()
		if err != nil {
			return Value{}, err
		}
		return FromFloat(f), nil
	case int:
		return FromInt(int64(v)), nil
	case int8:
		return FromInt(int64(v)), nil
	case int16:
		return FromInt(int64(v)), nil
	case int32:
		return FromInt(int64(v)), nil
	case int64:
		return FromInt(v), nil
	case uint:
		return fromUint(uint64(v))
	case uint8:
		return FromInt(int64(v)), nil
	case uint16:
		return FromInt(int64(v)), nil
	case uint32:
		return FromInt(int64(v)), nil
	case uint64:
		return fromUint(v)
	case float32:
		return FromFloat(float64(v)), nil
	case float64:
		return FromFloat(v), nil
	case []any:
		elems := make([]Value, len(v))
		for i, e := range v {
			ev, err := FromAny(e)
			if err != nil {
				return Value{}, err
			}
			elems[i] = ev
		}
		return FromSlice(elems), nil
	case map[string]any:
		return fromObject(v)
	case map[any]any:
		obj := make(map[string]any, len(v))
		for k, e := range v {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			obj[ks] = e
		}
		return fromObject(obj)
	default:
		return Value{}, fmt.Errorf("cannot convert %T to a tree value", x)
	}
}

func fromUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, fmt.Errorf("integer %d overflows int64", u)
	}
	return FromInt(int64(u)), nil
}

func fromObject(obj map[string]any) (Value, error) {
	var rt *RecordType
	if name, ok := obj[RecordKey]; ok {
		s, isStr := name.(string)
		if !isStr {
			return Value{}, fmt.Errorf("%s must be a string, got %T", RecordKey, name)
		}
		var err error
		if rt, err = LookupType(s); err != nil {
			return Value{}, err
		}
	}
	vals := make(map[string]Value, len(obj))
	for _, k := range slices.Sorted(maps.Keys(obj)) {
		if rt != nil && k == RecordKey {
			continue
		}
		v, err := FromAny(obj[k])
		if err != nil {
			return Value{}, fmt.Errorf("%s: %w", k, err)
		}
		vals[k] = v
	}
	if rt == nil {
		return FromMap(vals), nil
	}
	return rt.New(vals)
}
