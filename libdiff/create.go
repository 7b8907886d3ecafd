package libdiff

import (
	"github.com/bitmk2/flocker/debug"
	"github.com/bitmk2/flocker/tree"
)

// Create returns a Diff which turns a into b. Create(a, a) is empty and
// Create(a, b).Apply(a) is equal to b.
//
// Mappings, sets and records of the same type are diffed recursively; any
// other pair of unequal values is replaced wholesale. Entries are visited
// in tree.Compare order, so the result is deterministic.
func Create(a, b tree.Value) Diff {
	return Diff{Changes: diffFor(nil, a, b)}
}

func diffFor(path tree.Path, a, b tree.Value) []Change {
	if tree.Equal(a, b) {
		return nil
	}
	if debug.Diff() {
		debug.Logf("diff at %s: %s -> %s\n", path, a.Kind(), b.Kind())
	}
	if !tree.SameType(a, b) {
		return []Change{Set{Path: path, Value: b}}
	}
	switch a.Kind() {
	case tree.RecordKind:
		return diffEntries(path, a.Fields(), b.Fields(), fieldSegment)
	case tree.MappingKind:
		return diffEntries(path, a, b, tree.Key)
	case tree.SetKind:
		return diffSets(path, a, b)
	}
	return []Change{Set{Path: path, Value: b}}
}

func fieldSegment(k tree.Value) tree.Segment {
	return tree.Field(k.Str())
}

// diffEntries diffs two mappings (or record field projections) at path.
//
// Changes nested below path come first, in key order. They are followed
// by the changes to the container at path itself, so that these form one
// batch when applied: Sets for replaced entries, Sets for added entries,
// then Removes for removed entries.
func diffEntries(path tree.Path, a, b tree.Value, seg func(tree.Value) tree.Segment) []Change {
	var (
		nested  []Change
		replace []Change
		insert  []Change
		remove  []Change
	)
	ak, av := a.Keys(), a.Values()
	bk, bv := b.Keys(), b.Values()
	i, j := 0, 0
	for i < len(ak) || j < len(bk) {
		var c int
		switch {
		case i == len(ak):
			c = 1
		case j == len(bk):
			c = -1
		default:
			c = tree.Compare(ak[i], bk[j])
		}
		switch {
		case c < 0:
			remove = append(remove, Remove{Path: path, Item: ak[i]})
			i++
		case c > 0:
			insert = append(insert, Set{Path: path.Append(seg(bk[j])), Value: bv[j]})
			j++
		default:
			childPath := path.Append(seg(ak[i]))
			sub := diffFor(childPath, av[i], bv[j])
			if len(sub) == 1 && isSetAt(sub[0], childPath) {
				replace = append(replace, sub[0])
			} else {
				nested = append(nested, sub...)
			}
			i++
			j++
		}
	}
	res := nested
	res = append(res, replace...)
	res = append(res, insert...)
	return append(res, remove...)
}

func isSetAt(c Change, p tree.Path) bool {
	s, ok := c.(Set)
	return ok && s.Path.Equal(p)
}

// diffSets removes the elements of a not in b, then adds the elements of b
// not in a.
func diffSets(path tree.Path, a, b tree.Value) []Change {
	var remove, add []Change
	ae, be := a.Elems(), b.Elems()
	i, j := 0, 0
	for i < len(ae) || j < len(be) {
		var c int
		switch {
		case i == len(ae):
			c = 1
		case j == len(be):
			c = -1
		default:
			c = tree.Compare(ae[i], be[j])
		}
		switch {
		case c < 0:
			remove = append(remove, Remove{Path: path, Item: ae[i]})
			i++
		case c > 0:
			add = append(add, Add{Path: path, Item: be[j]})
			j++
		default:
			i++
			j++
		}
	}
	return append(remove, add...)
}
