package tree

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two values.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
//
// Kinds order as Null < Bool < Number < String < Mapping < Set < Record.
func Compare(a, b Value) int {
	if a.kind != b.kind {
		return cmp.Compare(a.kind, b.kind)
	}
	switch a.kind {
	case NullKind:
		return 0
	case BoolKind:
		if a.b == b.b {
			return 0
		}
		if !a.b {
			return -1
		}
		return 1
	case NumberKind:
		return compareNumbers(a, b)
	case StringKind:
		return strings.Compare(a.str, b.str)
	case MappingKind:
		return compareEntries(a, b)
	case SetKind:
		return compareElems(a.keys, b.keys)
	case RecordKind:
		if c := strings.Compare(a.rtype.Name(), b.rtype.Name()); c != 0 {
			return c
		}
		return compareEntries(a, b)
	}
	return 0
}

// ints sort before floats, so 1 and 1.0 are distinct values.
func compareNumbers(a, b Value) int {
	if a.isFloat != b.isFloat {
		if !a.isFloat {
			return -1
		}
		return 1
	}
	if a.isFloat {
		return cmp.Compare(a.f64, b.f64)
	}
	return cmp.Compare(a.i64, b.i64)
}

func compareElems(a, b []Value) int {
	n := min(len(a), len(b))
	for i := range n {
		if c := Compare(a[i], b[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a), len(b))
}

func compareEntries(a, b Value) int {
	n := min(len(a.keys), len(b.keys))
	for i := range n {
		if c := Compare(a.keys[i], b.keys[i]); c != 0 {
			return c
		}
		if c := Compare(a.vals[i], b.vals[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(a.keys), len(b.keys))
}
