package tree

import (
	"math"
	"strconv"
	"strings"
)

// String renders v compactly. Scalars use their literal form (strings are
// double quoted), mappings render as {k: v}, sets as #{e} and records as
// Name{field: v}.
func (v Value) String() string {
	var b strings.Builder
	v.writeTo(&b)
	return b.String()
}

func (v Value) writeTo(b *strings.Builder) {
	switch v.kind {
	case NullKind:
		b.WriteString("null")
	case BoolKind:
		b.WriteString(strconv.FormatBool(v.b))
	case NumberKind:
		b.WriteString(v.numberText())
	case StringKind:
		b.WriteString(strconv.Quote(v.str))
	case MappingKind, RecordKind:
		if v.kind == RecordKind {
			b.WriteString(v.rtype.Name())
		}
		b.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			if v.kind == RecordKind {
				b.WriteString(k.str)
			} else {
				k.writeTo(b)
			}
			b.WriteString(": ")
			v.vals[i].writeTo(b)
		}
		b.WriteByte('}')
	case SetKind:
		b.WriteString("#{")
		for i, e := range v.keys {
			if i > 0 {
				b.WriteString(", ")
			}
			e.writeTo(b)
		}
		b.WriteByte('}')
	}
}

// numberText keeps floats distinguishable from ints: 1.0 renders as "1.0".
func (v Value) numberText() string {
	if !v.isFloat {
		return strconv.FormatInt(v.i64, 10)
	}
	if math.IsInf(v.f64, 0) || math.IsNaN(v.f64) {
		return strconv.FormatFloat(v.f64, 'g', -1, 64)
	}
	s := strconv.FormatFloat(v.f64, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
