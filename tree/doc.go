// Package tree provides the immutable values that cluster configuration and
// state are made of.
//
// # Overview
//
// A tree is a nested composition of
//
//   - scalars: null, bool, number (int64 or float64), string
//   - mappings: keys to values, keys kept in sorted order
//   - sets: unique elements, kept in sorted order
//   - records: values of a declared RecordType, with named fields, optional
//     kind constraints, mandatory fields and invariants
//
// Values are never modified. Operations that change a tree return a new
// Value which shares all unchanged substructure with the original.
//
// # Creating Values
//
//	m := tree.FromMap(map[string]tree.Value{
//	    "a": tree.FromInt(1),
//	    "b": tree.FromSlice([]tree.Value{tree.FromString("x")}),
//	})
//
//	nodeType := tree.MustRecordType("Node", []tree.FieldSpec{
//	    {Name: "hostname", Kind: tree.StringKind, Mandatory: true},
//	    {Name: "applications", Kind: tree.SetKind},
//	})
//	node, err := nodeType.New(map[string]tree.Value{"hostname": tree.FromString("n1")})
//
// # Equality and Order
//
// Compare is a total order over values and Equal is structural equality.
// The order is used to keep mapping keys and set elements sorted, which
// makes iteration deterministic.
//
// # Evolvers
//
// Value.Evolver returns an Evolver, a single-owner mutable copy of a
// container which supports Set, Remove and Add and is turned back into an
// immutable value by Persistent. Record constraints are checked only in
// Persistent, so interdependent fields can be changed together.
//
// # Paths
//
// A Path is a sequence of Segments: record fields, mapping keys and set
// members. Value.Get resolves a path and Value.With replaces the value at a
// path, returning a new tree. Paths have a text form, see ParsePath.
//
// # Serialization
//
// Value implements json.Marshaler and json.Unmarshaler with a tagged form
// that preserves kinds exactly. ToAny and FromAny convert to and from plain
// Go values for human-written JSON and YAML. Decoding records requires
// their types to be registered with Register.
package tree
