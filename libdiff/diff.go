package libdiff

import (
	"fmt"
	"strings"

	"github.com/bitmk2/flocker/tree"
)

// Diff is an ordered sequence of changes. Order matters: a change may
// address structure introduced by an earlier one.
//
// A Diff consisting of a single Set with an empty path replaces the whole
// tree; such a Set may not be combined with other changes.
type Diff struct {
	Changes []Change
}

func New(changes ...Change) Diff {
	return Diff{Changes: changes}
}

func (d Diff) Len() int {
	return len(d.Changes)
}

func (d Diff) IsEmpty() bool {
	return len(d.Changes) == 0
}

// IsReplacement reports whether d replaces the whole tree.
func (d Diff) IsReplacement() bool {
	return len(d.Changes) == 1 && isReplacement(d.Changes[0])
}

// Validate checks the structural contract of d.
func (d Diff) Validate() error {
	for i, c := range d.Changes {
		if c == nil {
			return &MalformedDiffError{Index: i, Reason: "nil change"}
		}
		if isReplacement(c) && len(d.Changes) > 1 {
			return &MalformedDiffError{Index: i, Reason: "whole tree replacement combined with other changes"}
		}
	}
	return nil
}

// Apply applies d to v, returning the new tree. v is not modified. Changes
// that mutate the same container consecutively are committed together, so
// record invariants are checked once per run of changes.
func (d Diff) Apply(v tree.Value) (tree.Value, error) {
	if err := d.Validate(); err != nil {
		return tree.Value{}, err
	}
	if d.IsReplacement() {
		return d.Changes[0].(Set).Value, nil
	}
	p := newTransformProxy(v)
	for _, c := range d.Changes {
		if err := p.transform(c); err != nil {
			return tree.Value{}, err
		}
	}
	return p.commit()
}

// Replay applies d to base as Apply does, calling fn before each change.
// For a Set, prev is the value it overwrites in the tree as transformed by
// the changes before it, and found is false when there is none. Replay
// stops at the first error, from fn or from applying a change.
func (d Diff) Replay(base tree.Value, fn func(i int, c Change, prev tree.Value, found bool) error) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if d.IsReplacement() {
		return fn(0, d.Changes[0], base, true)
	}
	p := newTransformProxy(base)
	for i, c := range d.Changes {
		var (
			prev  tree.Value
			found bool
		)
		if s, ok := c.(Set); ok {
			var err error
			if prev, found, err = p.replaced(s); err != nil {
				return err
			}
		}
		if err := fn(i, c, prev, found); err != nil {
			return err
		}
		if err := p.transform(c); err != nil {
			return err
		}
	}
	_, err := p.commit()
	return err
}

// Equal reports whether d and o consist of the same changes in the same
// order.
func (d Diff) Equal(o Diff) bool {
	if len(d.Changes) != len(o.Changes) {
		return false
	}
	for i, c := range d.Changes {
		if !changeEqual(c, o.Changes[i]) {
			return false
		}
	}
	return true
}

func changeEqual(a, b Change) bool {
	switch x := a.(type) {
	case Remove:
		y, ok := b.(Remove)
		return ok && x.Path.Equal(y.Path) && x.Item.Equal(y.Item)
	case Set:
		y, ok := b.(Set)
		return ok && x.Path.Equal(y.Path) && x.Value.Equal(y.Value)
	case Add:
		y, ok := b.(Add)
		return ok && x.Path.Equal(y.Path) && x.Item.Equal(y.Item)
	}
	return a == nil && b == nil
}

func (d Diff) String() string {
	var b strings.Builder
	b.WriteString("Diff[")
	for i, c := range d.Changes {
		if i > 0 {
			b.WriteString(", ")
		}
		if s, ok := c.(fmt.Stringer); ok {
			b.WriteString(s.String())
		}
	}
	b.WriteString("]")
	return b.String()
}
